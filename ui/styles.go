// Package ui provides the terminal user interface for SSHFS Manager.
// This file contains the color palette and lipgloss styles.
package ui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha color palette
var (
	Mauve    = lipgloss.Color("#CBA6F7")
	Red      = lipgloss.Color("#F38BA8")
	Peach    = lipgloss.Color("#FAB387")
	Green    = lipgloss.Color("#A6E3A1")
	Sapphire = lipgloss.Color("#74C7EC")
	Blue     = lipgloss.Color("#89B4FA")
	Pink     = lipgloss.Color("#F5C2E7")

	Text     = lipgloss.Color("#CDD6F4")
	Subtext0 = lipgloss.Color("#A6ADC8")
	Overlay0 = lipgloss.Color("#6C7086")
	Surface1 = lipgloss.Color("#45475A")
	Surface0 = lipgloss.Color("#313244")
	Base     = lipgloss.Color("#1E1E2E")
)

// Semantic colors
var (
	Primary     = Mauve
	Accent      = Sapphire
	Danger      = Red
	Warning     = Peach
	Success     = Green
	TextMuted   = Subtext0
	Border      = Surface1
	BorderFocus = Mauve
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	// Connection cards
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	cardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderFocus).
				Padding(0, 1)

	cardHostStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(Accent)

	cardValueStyle = lipgloss.NewStyle().
			Foreground(Text)

	dimStyle = lipgloss.NewStyle().
			Foreground(Overlay0)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(TextMuted).
				Italic(true).
				Padding(1, 1)

	// Status and error panels
	statusStyle = lipgloss.NewStyle().
			Foreground(Success).
			Padding(0, 1)

	busyStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Padding(0, 1)

	errorPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Danger).
			Foreground(Danger).
			Padding(0, 1)

	errorTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Danger)

	// Dialogs
	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Background(Base).
			Padding(1, 2)

	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Accent).
				MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	labelFocusedStyle = lipgloss.NewStyle().
				Foreground(Pink).
				Bold(true)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Surface0).
			Padding(0, 1)

	inputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	dialogHelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			MarginTop(1)

	dangerTextStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Danger)
)

// truncate shortens s to maxLen runes, ending with an ellipsis.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// center places content in the middle of a width x height area.
func center(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
