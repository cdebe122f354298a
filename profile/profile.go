package profile

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yllada/sshfs-manager/common"
)

// Profile represents one remote filesystem that can be mounted.
type Profile struct {
	// ID identifies the profile for the lifetime of the process.
	ID string `toml:"-"`
	// Host is the remote endpoint. Required.
	Host string `toml:"host"`
	// User is the login name, "root" when blank.
	User string `toml:"user"`
	// RemoteDir is the directory on the remote side, "/root/" when blank.
	RemoteDir string `toml:"remote_dir"`
}

// New builds a profile from raw input, trimming every field and applying
// defaults. The host is not validated here.
func New(host, user, remoteDir string) Profile {
	p := Profile{
		ID:        uuid.NewString(),
		Host:      host,
		User:      user,
		RemoteDir: remoteDir,
	}
	p.normalize()
	return p
}

// normalize trims all fields and fills in the default user and remote dir.
func (p *Profile) normalize() {
	p.Host = strings.TrimSpace(p.Host)
	p.User = strings.TrimSpace(p.User)
	p.RemoteDir = strings.TrimSpace(p.RemoteDir)

	if p.User == "" {
		p.User = common.DefaultUser
	}
	if p.RemoteDir == "" {
		p.RemoteDir = common.DefaultRemoteDir
	}
}

// Validate checks that the profile has a host.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Host) == "" {
		return fmt.Errorf("%w: host is required", common.ErrInvalidProfile)
	}
	return nil
}

// Remote returns the mount source in "user@host:remote_dir" form.
func (p Profile) Remote() string {
	return p.User + "@" + p.Host + ":" + p.RemoteDir
}

// ShortID returns the first eight characters of the ID for display.
func (p Profile) ShortID() string {
	if len(p.ID) > 8 {
		return p.ID[:8]
	}
	return p.ID
}
