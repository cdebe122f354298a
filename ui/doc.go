// Package ui provides the terminal user interface for SSHFS Manager.
//
// The UI is a Bubble Tea program. It shows one card per connection profile
// and lets the user add, edit, delete and mount them:
//
//   - a / e: open the connection dialog (add or edit)
//   - d: ask for confirmation, then delete
//   - m / enter: mount the selected connection
//   - q: quit
//
// # Mounting
//
// Mounts run through tea.ExecProcess. The UI releases the terminal while the
// mount tool runs so that ssh can prompt for a password, and resumes when the
// tool exits. Only one mount runs at a time.
//
// # File Organization
//
//   - app.go: Model, Update loop and program startup
//   - profile_list.go: connection cards and cursor handling
//   - profile_dialog.go: add/edit dialog
//   - keys.go: key bindings and help
//   - styles.go: Catppuccin palette and lipgloss styles
package ui
