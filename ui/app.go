package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yllada/sshfs-manager/common"
	"github.com/yllada/sshfs-manager/mount"
	"github.com/yllada/sshfs-manager/notify"
	"github.com/yllada/sshfs-manager/profile"
)

// Mounter prepares mount commands. *mount.Mounter satisfies it.
type Mounter interface {
	Prepare(ctx context.Context, p profile.Profile) (*mount.Invocation, error)
	MountPoint(host string) (string, error)
}

type viewMode int

const (
	modeList viewMode = iota
	modeDialog
	modeConfirmDelete
)

// mountFinishedMsg is sent when the mount tool exits.
type mountFinishedMsg struct {
	host       string
	mountPoint string
	err        error
}

// Model is the Bubble Tea model of the application.
type Model struct {
	ctx      context.Context
	store    *profile.Store
	mounter  Mounter
	notifier common.Notifier

	keys   keyMap
	help   help.Model
	list   profileList
	dialog profileDialog
	mode   viewMode

	// pendingDelete is the profile awaiting delete confirmation.
	pendingDelete profile.Profile

	status   string
	err      error
	mounting bool
	quitting bool

	width  int
	height int
}

// New creates the UI model. loadErr, if set, is shown in the error panel on
// start; the store is usable either way.
func New(ctx context.Context, store *profile.Store, mounter Mounter, notifier common.Notifier, loadErr error) Model {
	m := Model{
		ctx:      ctx,
		store:    store,
		mounter:  mounter,
		notifier: notifier,
		keys:     defaultKeyMap(),
		help:     help.New(),
		err:      loadErr,
	}
	m.list.SetProfiles(store.List())
	return m
}

// Run starts the terminal UI and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, store *profile.Store, mounter Mounter, notifier common.Notifier, loadErr error) error {
	p := tea.NewProgram(
		New(ctx, store, mounter, notifier, loadErr),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	common.LogInfo("Starting terminal UI with %d connections", store.Len())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.SetSize(msg.Width, m.listHeight())
		return m, nil

	case mountFinishedMsg:
		return m.handleMountFinished(msg), nil

	case tea.KeyMsg:
		switch m.mode {
		case modeDialog:
			return m.updateDialog(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg), nil
		default:
			return m.updateList(msg)
		}
	}

	if m.mode == modeDialog {
		var cmd tea.Cmd
		m.dialog, cmd = m.dialog.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.list.Up()

	case key.Matches(msg, m.keys.Down):
		m.list.Down()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.list.SetSize(m.width, m.listHeight())

	case key.Matches(msg, m.keys.Dismiss):
		m.err = nil
		m.status = ""

	case key.Matches(msg, m.keys.Add):
		m.dialog = newAddDialog()
		m.mode = modeDialog
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		if p, ok := m.list.Selected(); ok {
			m.dialog = newEditDialog(p)
			m.mode = modeDialog
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.list.Selected(); ok {
			m.pendingDelete = p
			m.mode = modeConfirmDelete
		}

	case key.Matches(msg, m.keys.Mount):
		if p, ok := m.list.Selected(); ok {
			return m.startMount(p)
		}
	}

	return m, nil
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.dialog, cmd = m.dialog.Update(msg)

	switch {
	case m.dialog.cancelled:
		m.mode = modeList
		return m, nil
	case m.dialog.submitted:
		m.mode = modeList
		m.saveDialog()
		return m, nil
	}
	return m, cmd
}

// saveDialog applies the dialog's values to the store. A blank host
// discards the dialog.
func (m *Model) saveDialog() {
	host, user, remoteDir := m.dialog.Values()

	if m.dialog.editID == "" {
		added, err := m.store.Add(host, user, remoteDir)
		switch {
		case added == nil && err == nil:
			m.status = "Host is required; nothing added."
			return
		case err != nil:
			m.showError(err)
		default:
			m.status = fmt.Sprintf("Added %s", added.Host)
		}
		m.refresh()
		if added != nil {
			m.list.Select(added.ID)
		}
		return
	}

	confirmed, err := m.store.Edit(m.dialog.editID, host, user, remoteDir)
	switch {
	case err != nil:
		m.showError(err)
	case !confirmed:
		m.status = "Host is required; connection not changed."
		return
	default:
		m.status = "Connection updated"
	}
	m.refresh()
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) Model {
	switch strings.ToLower(msg.String()) {
	case "y":
		target := m.pendingDelete
		m.mode = modeList
		m.pendingDelete = profile.Profile{}
		if err := m.store.Delete(target.ID); err != nil {
			m.showError(err)
		} else {
			m.status = fmt.Sprintf("Deleted %s", target.Host)
		}
		m.refresh()
	case "n", "esc", "q", "ctrl+c":
		m.mode = modeList
		m.pendingDelete = profile.Profile{}
	}
	return m
}

// startMount hands the terminal to the mount tool. Keys pressed while a
// mount is in progress are ignored.
func (m Model) startMount(p profile.Profile) (tea.Model, tea.Cmd) {
	if m.mounting {
		return m, nil
	}

	inv, err := m.mounter.Prepare(m.ctx, p)
	if err != nil {
		common.LogError("Mount of %s not started: %v", p.Host, err)
		notify.MountFailed(m.notifier, p.Host, err)
		m.showError(err)
		return m, nil
	}

	common.LogInfo("Mounting %s at %s", p.Remote(), inv.MountPoint)
	common.LogDebug("Command: %s", inv.CommandLine())

	m.mounting = true
	m.err = nil
	m.status = fmt.Sprintf("Mounting %s...", p.Host)

	return m, tea.ExecProcess(inv.Cmd, func(runErr error) tea.Msg {
		return mountFinishedMsg{
			host:       p.Host,
			mountPoint: inv.MountPoint,
			err:        inv.Result(runErr),
		}
	})
}

func (m Model) handleMountFinished(msg mountFinishedMsg) Model {
	m.mounting = false

	if msg.err != nil {
		common.LogError("Mount of %s failed: %v", msg.host, msg.err)
		notify.MountFailed(m.notifier, msg.host, msg.err)
		m.showError(msg.err)
		return m
	}

	common.LogInfo("Mounted %s at %s", msg.host, msg.mountPoint)
	notify.MountSucceeded(m.notifier, msg.host, msg.mountPoint)
	m.status = fmt.Sprintf("Mounted %s at %s", msg.host, msg.mountPoint)
	return m
}

func (m *Model) showError(err error) {
	m.err = err
	m.status = ""
}

func (m *Model) refresh() {
	m.list.SetProfiles(m.store.List())
}

func (m Model) mountPoint(host string) string {
	mp, err := m.mounter.MountPoint(host)
	if err != nil {
		return ""
	}
	return mp
}

// listHeight is the space left for cards after the header, status line and
// help.
func (m Model) listHeight() int {
	h := m.height - 6
	if m.help.ShowAll {
		h -= 3
	}
	return h
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeDialog:
		return center(m.dialog.View(), m.width, m.height)
	case modeConfirmDelete:
		return center(m.confirmView(), m.width, m.height)
	}

	sections := []string{
		titleStyle.Render(common.AppName),
		subtitleStyle.Render(fmt.Sprintf("%d connections • %s", m.store.Len(), m.store.Path())),
		"",
		m.list.View(m.mountPoint),
	}

	switch {
	case m.err != nil:
		sections = append(sections, m.errorView())
	case m.mounting:
		sections = append(sections, busyStyle.Render(m.status))
	case m.status != "":
		sections = append(sections, statusStyle.Render(m.status))
	}

	sections = append(sections, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) confirmView() string {
	question := fmt.Sprintf("Are you sure you want to delete the connection to %s?", m.pendingDelete.Host)
	body := lipgloss.JoinVertical(lipgloss.Left,
		dangerTextStyle.Render("Delete Connection"),
		"",
		question,
		dialogHelpStyle.Render("y: delete • n/Esc: cancel"),
	)
	return dialogBoxStyle.Render(body)
}

func (m Model) errorView() string {
	width := m.width - 4
	if width < 20 {
		width = 60
	}
	body := errorTitleStyle.Render("Error") + "\n" + m.err.Error()
	return errorPanelStyle.Width(width).Render(body) + "\n" + dimStyle.Render(" esc: dismiss")
}
