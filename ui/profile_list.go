package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yllada/sshfs-manager/profile"
)

// cardHeight is the rendered height of one card: three lines plus border.
const cardHeight = 5

// profileList renders the connection cards and tracks the selection.
type profileList struct {
	profiles []profile.Profile
	cursor   int
	offset   int
	width    int
	height   int
}

// SetSize updates the area available to the cards.
func (l *profileList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.ensureVisible()
}

// SetProfiles replaces the list contents, keeping the cursor in range.
func (l *profileList) SetProfiles(profiles []profile.Profile) {
	l.profiles = profiles
	if l.cursor >= len(profiles) {
		l.cursor = len(profiles) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

// Select moves the cursor to the profile with the given ID, if present.
func (l *profileList) Select(id string) {
	for i, p := range l.profiles {
		if p.ID == id {
			l.cursor = i
			l.ensureVisible()
			return
		}
	}
}

// Selected returns the profile under the cursor.
func (l profileList) Selected() (profile.Profile, bool) {
	if l.cursor < 0 || l.cursor >= len(l.profiles) {
		return profile.Profile{}, false
	}
	return l.profiles[l.cursor], true
}

func (l *profileList) Up() {
	if l.cursor > 0 {
		l.cursor--
		l.ensureVisible()
	}
}

func (l *profileList) Down() {
	if l.cursor < len(l.profiles)-1 {
		l.cursor++
		l.ensureVisible()
	}
}

// View renders the visible cards. mountPoint maps a host to the directory
// shown under each card.
func (l profileList) View(mountPoint func(host string) string) string {
	if len(l.profiles) == 0 {
		return placeholderStyle.Render("No connections yet. Press 'a' to add one.")
	}

	visible := l.visibleCards()
	end := l.offset + visible
	if end > len(l.profiles) {
		end = len(l.profiles)
	}

	cardWidth := l.width - 2
	if cardWidth < 30 {
		cardWidth = 30
	}

	var cards []string
	for i := l.offset; i < end; i++ {
		cards = append(cards, l.renderCard(l.profiles[i], i == l.cursor, cardWidth, mountPoint))
	}
	if len(l.profiles) > visible {
		cards = append(cards, dimStyle.Render(fmt.Sprintf(" %d/%d", l.cursor+1, len(l.profiles))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (l profileList) renderCard(p profile.Profile, selected bool, width int, mountPoint func(string) string) string {
	inner := width - 4

	marker := "  "
	if selected {
		marker = lipgloss.NewStyle().Foreground(Primary).Render("▸ ")
	}

	host := marker + cardHostStyle.Render(truncate("Host: "+p.Host, inner-2))
	user := "  " + cardLabelStyle.Render("User: ") + cardValueStyle.Render(p.User)
	dir := "  " + cardLabelStyle.Render("Remote Dir: ") + cardValueStyle.Render(p.RemoteDir)
	if mp := mountPoint(p.Host); mp != "" {
		dir += dimStyle.Render(truncate("  → "+mp, inner-lipgloss.Width(dir)))
	}

	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	return style.Width(width - 2).Render(strings.Join([]string{host, user, dir}, "\n"))
}

func (l profileList) visibleCards() int {
	n := l.height / cardHeight
	if n < 1 {
		n = 1
	}
	return n
}

func (l *profileList) ensureVisible() {
	visible := l.visibleCards()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}
