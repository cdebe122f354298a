package mount

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/yllada/sshfs-manager/common"
)

// MountError reports a mount command that failed to start or exited non-zero.
type MountError struct {
	Host    string
	Command []string
	// Output is whatever the tool wrote to stderr, trimmed.
	Output string
	Err    error
}

// Error renders the host, the full command line and the underlying error so
// the user can rerun the command by hand.
func (e *MountError) Error() string {
	var b strings.Builder
	b.WriteString("Failed to mount ")
	b.WriteString(e.Host)
	b.WriteString(".\n\nCommand:\n")
	b.WriteString(strings.Join(e.Command, " "))
	b.WriteString("\n\nError:\n")
	b.WriteString(e.Err.Error())
	if e.Output != "" {
		b.WriteString("\n")
		b.WriteString(e.Output)
	}
	return b.String()
}

// Unwrap exposes common.ErrMountFailed, common.ErrToolNotFound when the tool
// is missing, and the exec error itself.
func (e *MountError) Unwrap() []error {
	errs := []error{common.ErrMountFailed}
	if errors.Is(e.Err, exec.ErrNotFound) {
		errs = append(errs, common.ErrToolNotFound)
	}
	return append(errs, e.Err)
}

// ExitCode returns the tool's exit status, or -1 if it never ran to
// completion.
func (e *MountError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
