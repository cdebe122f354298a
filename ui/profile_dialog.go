package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yllada/sshfs-manager/common"
	"github.com/yllada/sshfs-manager/profile"
)

// Field order in the connection dialog.
const (
	fieldHost = iota
	fieldUser
	fieldRemoteDir
)

// profileDialog is the modal add/edit form.
type profileDialog struct {
	title string
	// editID is the profile being edited, empty when adding.
	editID string

	inputs     []textinput.Model
	labels     []string
	focusIndex int
	submitted  bool
	cancelled  bool
}

// newAddDialog returns an empty dialog whose placeholders show the defaults.
func newAddDialog() profileDialog {
	return newProfileDialog("Add Connection", "", profile.Profile{})
}

// newEditDialog returns a dialog prefilled with p's current values.
func newEditDialog(p profile.Profile) profileDialog {
	return newProfileDialog("Edit Connection", p.ID, p)
}

func newProfileDialog(title, editID string, p profile.Profile) profileDialog {
	labels := []string{"Host", "User (default: " + common.DefaultUser + ")", "Remote Dir (default: " + common.DefaultRemoteDir + ")"}
	placeholders := []string{"example.com", common.DefaultUser, common.DefaultRemoteDir}
	values := []string{p.Host, p.User, p.RemoteDir}

	inputs := make([]textinput.Model, len(labels))
	for i := range labels {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.SetValue(values[i])
		ti.CharLimit = 256
		ti.Width = 40
		if i == fieldHost {
			ti.Focus()
		}
		inputs[i] = ti
	}

	return profileDialog{
		title:  title,
		editID: editID,
		inputs: inputs,
		labels: labels,
	}
}

// Update handles dialog key presses.
func (d profileDialog) Update(msg tea.Msg) (profileDialog, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			d.focusIndex = (d.focusIndex + 1) % len(d.inputs)
			return d, d.updateFocus()
		case "shift+tab", "up":
			d.focusIndex = (d.focusIndex - 1 + len(d.inputs)) % len(d.inputs)
			return d, d.updateFocus()
		case "enter":
			d.submitted = true
			return d, nil
		case "esc":
			d.cancelled = true
			return d, nil
		}
	}

	var cmd tea.Cmd
	d.inputs[d.focusIndex], cmd = d.inputs[d.focusIndex].Update(msg)
	return d, cmd
}

func (d *profileDialog) updateFocus() tea.Cmd {
	cmds := make([]tea.Cmd, len(d.inputs))
	for i := range d.inputs {
		if i == d.focusIndex {
			cmds[i] = d.inputs[i].Focus()
		} else {
			d.inputs[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

// Values returns host, user and remote dir as typed.
func (d profileDialog) Values() (host, user, remoteDir string) {
	return d.inputs[fieldHost].Value(), d.inputs[fieldUser].Value(), d.inputs[fieldRemoteDir].Value()
}

// View renders the dialog box.
func (d profileDialog) View() string {
	var b strings.Builder

	b.WriteString(dialogTitleStyle.Render(d.title))
	b.WriteString("\n")

	for i, input := range d.inputs {
		label, box := labelStyle, inputStyle
		if i == d.focusIndex {
			label, box = labelFocusedStyle, inputFocusedStyle
		}
		b.WriteString(label.Render(d.labels[i]))
		b.WriteString("\n")
		b.WriteString(box.Render(input.View()))
		b.WriteString("\n")
	}

	b.WriteString(dialogHelpStyle.Render("Tab: next field • Enter: save • Esc: cancel"))

	return dialogBoxStyle.Render(b.String())
}
