package mount

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/yllada/sshfs-manager/common"
	"github.com/yllada/sshfs-manager/profile"
)

// Errors returned before the mount tool is started.
var (
	ErrInvalidHost = errors.New("host cannot be used as a mount point name")
	ErrMountPoint  = errors.New("failed to create mount point")
)

// Mounter runs the external mount tool for a profile.
type Mounter struct {
	// Tool is the mount command, looked up in PATH when not absolute.
	Tool string
	// Root is the directory holding one mount point per host.
	Root string

	// Standard streams handed to the tool. Nil means the process's own,
	// which lets the tool prompt for a password on the terminal.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Mounter for tool that mounts under root.
func New(tool, root string) *Mounter {
	return &Mounter{
		Tool: tool,
		Root: root,
	}
}

// Available reports whether the mount tool can be found.
func (m *Mounter) Available() bool {
	_, err := exec.LookPath(m.Tool)
	return err == nil
}

// MountPoint returns <root>/<host>/ with a trailing separator. Only the host
// takes part, so every profile for the same host shares a mount point.
func (m *Mounter) MountPoint(host string) (string, error) {
	host = strings.TrimSpace(host)
	if host == "" || host == "." || host == ".." || strings.ContainsAny(host, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidHost, host)
	}
	return filepath.Join(m.Root, host) + string(filepath.Separator), nil
}

// Invocation is a prepared mount command for one profile.
type Invocation struct {
	Profile    profile.Profile
	MountPoint string
	Cmd        *exec.Cmd

	stderr bytes.Buffer
}

// CommandLine returns the command as the user would type it.
func (inv *Invocation) CommandLine() string {
	return strings.Join(inv.Cmd.Args, " ")
}

// Result converts the command's exit into nil or a *MountError.
func (inv *Invocation) Result(runErr error) error {
	if runErr == nil {
		return nil
	}
	return &MountError{
		Host:    inv.Profile.Host,
		Command: append([]string(nil), inv.Cmd.Args...),
		Output:  strings.TrimSpace(inv.stderr.String()),
		Err:     runErr,
	}
}

// Prepare creates the mount point and builds the command without running it.
// The directory is created on every call, whether or not the mount later
// succeeds.
func (m *Mounter) Prepare(ctx context.Context, p profile.Profile) (*Invocation, error) {
	mountPoint, err := m.MountPoint(p.Host)
	if err != nil {
		return nil, err
	}

	if err := common.EnsureDir(mountPoint); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMountPoint, mountPoint, err)
	}

	inv := &Invocation{
		Profile:    p,
		MountPoint: mountPoint,
		Cmd:        exec.CommandContext(ctx, m.Tool, p.Remote(), mountPoint),
	}

	inv.Cmd.Stdin = m.Stdin
	if inv.Cmd.Stdin == nil {
		inv.Cmd.Stdin = os.Stdin
	}
	inv.Cmd.Stdout = m.Stdout
	if inv.Cmd.Stdout == nil {
		inv.Cmd.Stdout = os.Stdout
	}
	stderr := m.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	inv.Cmd.Stderr = io.MultiWriter(stderr, &inv.stderr)

	return inv, nil
}

// Mount prepares and runs the mount command for p, blocking until the tool
// exits. It returns the mount point, which is set even when the command
// fails.
func (m *Mounter) Mount(ctx context.Context, p profile.Profile) (string, error) {
	inv, err := m.Prepare(ctx, p)
	if err != nil {
		common.LogError("Mount of %s not started: %v", p.Host, err)
		return "", err
	}

	common.LogInfo("Mounting %s at %s", p.Remote(), inv.MountPoint)
	common.LogDebug("Command: %s", inv.CommandLine())

	if err := inv.Result(inv.Cmd.Run()); err != nil {
		common.LogError("Mount of %s failed: %v", p.Host, err)
		return inv.MountPoint, err
	}

	common.LogInfo("Mounted %s at %s", p.Host, inv.MountPoint)
	return inv.MountPoint, nil
}
