// Package common provides shared constants, types, and utilities
// used across the SSHFS Manager application.
package common

// Application metadata.
const (
	// AppName is the display name of the application.
	AppName = "SSHFS Manager"
	// ConfigDirName is the name of the configuration directory under ~/.config.
	ConfigDirName = "sshfs-manager"
)

// File names used by the application.
const (
	// ConnectionsFileName is the backing file for connection profiles,
	// resolved relative to the working directory unless configured otherwise.
	ConnectionsFileName = "connections.toml"
	ConfigFileName      = "config.yaml"
	LogFileName         = "sshfs-manager.log"
)

// Profile defaults applied when a field is absent or blank.
const (
	DefaultUser      = "root"
	DefaultRemoteDir = "/root/"
)

// Mount defaults.
const (
	// DefaultMountTool is the external command used to mount a profile.
	DefaultMountTool = "sshfs"
	// DefaultMountRoot is the local directory holding one mount point per host.
	DefaultMountRoot = "~/mounted"
)

// Log levels accepted in the configuration file.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)
