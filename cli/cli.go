// Package cli provides command-line interface functionality for SSHFS Manager.
// It lets users manage and mount connection profiles from scripts without
// starting the interactive terminal UI.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/yllada/sshfs-manager/common"
	"github.com/yllada/sshfs-manager/notify"
	"github.com/yllada/sshfs-manager/profile"
)

// Mounter mounts profiles. *mount.Mounter satisfies it.
type Mounter interface {
	Mount(ctx context.Context, p profile.Profile) (string, error)
	MountPoint(host string) (string, error)
}

// EditOptions holds the new field values for Edit. A nil field keeps the
// profile's current value, like a dialog prefilled with it.
type EditOptions struct {
	Host      *string
	User      *string
	RemoteDir *string
}

// CLI represents the command-line interface.
type CLI struct {
	store    *profile.Store
	mounter  Mounter
	notifier common.Notifier

	in         io.Reader
	out        io.Writer
	isTerminal func() bool
}

// New creates a CLI that reads confirmations from stdin and writes to stdout.
func New(store *profile.Store, mounter Mounter, notifier common.Notifier) *CLI {
	return &CLI{
		store:    store,
		mounter:  mounter,
		notifier: notifier,
		in:       os.Stdin,
		out:      os.Stdout,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// ListProfiles prints all connection profiles in file order.
func (c *CLI) ListProfiles() error {
	profiles := c.store.List()

	if len(profiles) == 0 {
		fmt.Fprintln(c.out, "No connections configured.")
		fmt.Fprintln(c.out, "Add one with: sshfs-manager --add HOST [--user USER] [--remote-dir DIR]")
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tHOST\tUSER\tREMOTE DIR\tMOUNT POINT")
	fmt.Fprintln(w, "-\t----\t----\t----------\t-----------")

	for i, p := range profiles {
		mountPoint, err := c.mounter.MountPoint(p.Host)
		if err != nil {
			mountPoint = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			i+1, p.Host, p.User, p.RemoteDir, mountPoint)
	}

	return w.Flush()
}

// Add creates a profile. A blank host cancels without error.
func (c *CLI) Add(host, user, remoteDir string) error {
	added, err := c.store.Add(host, user, remoteDir)
	if err != nil {
		return fmt.Errorf("failed to save connection: %w", err)
	}
	if added == nil {
		fmt.Fprintln(c.out, "Host is required; nothing added.")
		return nil
	}

	fmt.Fprintf(c.out, "✓ Added %s (%s)\n", added.Host, added.Remote())
	return nil
}

// Edit updates the profile matching ref. Setting the host to blank cancels
// without error and leaves the profile unchanged.
func (c *CLI) Edit(ref string, opts EditOptions) error {
	current, err := c.store.Find(ref)
	if err != nil {
		return err
	}

	host, user, remoteDir := current.Host, current.User, current.RemoteDir
	if opts.Host != nil {
		host = *opts.Host
	}
	if opts.User != nil {
		user = *opts.User
	}
	if opts.RemoteDir != nil {
		remoteDir = *opts.RemoteDir
	}

	confirmed, err := c.store.Edit(current.ID, host, user, remoteDir)
	if err != nil {
		return fmt.Errorf("failed to save connection: %w", err)
	}
	if !confirmed {
		fmt.Fprintln(c.out, "Host is required; connection not changed.")
		return nil
	}

	updated, err := c.store.Get(current.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "✓ Updated %s (%s)\n", updated.Host, updated.Remote())
	return nil
}

// Delete removes the profile matching ref after the user confirms.
// assumeYes skips the prompt. Without it, a non-interactive stdin is an
// error rather than an implicit yes.
func (c *CLI) Delete(ref string, assumeYes bool) error {
	target, err := c.store.Find(ref)
	if err != nil {
		return err
	}

	if !assumeYes {
		if !c.isTerminal() {
			return fmt.Errorf("%w: refusing to delete %s without confirmation; pass --yes", common.ErrCancelled, target.Host)
		}
		confirmed, err := c.confirm(fmt.Sprintf(
			"Are you sure you want to delete the connection to %s? [y/N] ", target.Host))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(c.out, "Cancelled.")
			return nil
		}
	}

	if err := c.store.Delete(target.ID); err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}

	fmt.Fprintf(c.out, "✓ Deleted %s\n", target.Host)
	return nil
}

// Mount mounts the profile matching ref. The tool runs on the current
// terminal so it can prompt for a password; this call blocks until it exits.
func (c *CLI) Mount(ctx context.Context, ref string) error {
	target, err := c.store.Find(ref)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Mounting %s...\n", target.Remote())

	mountPoint, err := c.mounter.Mount(ctx, target)
	if err != nil {
		notify.MountFailed(c.notifier, target.Host, err)
		return err
	}

	notify.MountSucceeded(c.notifier, target.Host, mountPoint)
	fmt.Fprintf(c.out, "✓ Mounted %s at %s\n", target.Host, mountPoint)
	return nil
}

// confirm prints prompt and reads a yes/no answer. Anything but y or yes is no.
func (c *CLI) confirm(prompt string) (bool, error) {
	fmt.Fprint(c.out, prompt)

	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Println(`SSHFS Manager - mount remote directories over SSH

Usage:
  sshfs-manager [OPTIONS]

Options:
  --version              Show version and exit
  --verbose              Enable verbose logging
  --config PATH          Use an alternative settings file
  --file PATH            Use an alternative connections file
  --list                 List all connections
  --add HOST             Add a connection
  --edit REF             Edit a connection (with --host, --user, --remote-dir)
  --delete REF           Delete a connection (asks first unless --yes)
  --mount REF            Mount a connection
  --host HOST            New host for --edit
  --user USER            User for --add/--edit (default: root)
  --remote-dir DIR       Remote directory for --add/--edit (default: /root/)
  --yes                  Do not ask for confirmation
  --help                 Show this help message

REF is a host name or a list position (see --list). A host name wins over
a position, so a host called "2" is found by name.

Examples:
  sshfs-manager --add db1
  sshfs-manager --add web.example.com --user deploy --remote-dir /var/www/
  sshfs-manager --edit 2 --user admin
  sshfs-manager --mount db1
  sshfs-manager --delete db1 --yes

Notes:
  - Connections are stored in connections.toml (see connections_file in
    ~/.config/sshfs-manager/config.yaml)
  - Each host is mounted at ~/mounted/<host>/
  - Unmount with: fusermount -u ~/mounted/<host>
  - Run without options to launch the terminal UI`)
}
