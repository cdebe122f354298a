// Package config provides configuration management for SSHFS Manager.
// It handles loading, saving, and validating application settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yllada/sshfs-manager/common"
)

// Config represents the application configuration.
// Settings are persisted to a YAML file in the user's config directory;
// connection profiles live in their own TOML file (see ConnectionsFile).
type Config struct {
	// ConnectionsFile is the path of the profile backing file. Relative
	// paths are resolved against the working directory.
	ConnectionsFile string `yaml:"connections_file"`
	// MountTool is the command invoked to mount a profile.
	MountTool string `yaml:"mount_tool"`
	// MountRoot is the directory that holds one mount point per host.
	// A leading "~/" is expanded to the home directory.
	MountRoot string `yaml:"mount_root"`
	// ShowNotifications enables desktop notifications for mount results.
	ShowNotifications bool `yaml:"show_notifications"`
	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ConnectionsFile:   common.ConnectionsFileName,
		MountTool:         common.DefaultMountTool,
		MountRoot:         common.DefaultMountRoot,
		ShowNotifications: true,
		LogLevel:          common.LogLevelInfo,
	}
}

// DefaultPath returns ~/.config/sshfs-manager/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", common.ConfigDirName, common.ConfigFileName), nil
}

// Load reads the configuration at path.
// If the file doesn't exist, it is created with default values. An empty
// file loads as the defaults.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.Save(path); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: error opening configuration: %v", common.ErrConfigLoad, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // Strict validation: reject unknown fields

	// An empty or comment-only file has no document; keep the defaults.
	config := DefaultConfig()
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: error parsing configuration: %v", common.ErrConfigLoad, err)
	}

	config.validate()
	return config, nil
}

// validate replaces blank or unknown values with their defaults.
func (c *Config) validate() {
	defaults := DefaultConfig()

	c.ConnectionsFile = strings.TrimSpace(c.ConnectionsFile)
	if c.ConnectionsFile == "" {
		c.ConnectionsFile = defaults.ConnectionsFile
	}
	c.MountTool = strings.TrimSpace(c.MountTool)
	if c.MountTool == "" {
		c.MountTool = defaults.MountTool
	}
	c.MountRoot = strings.TrimSpace(c.MountRoot)
	if c.MountRoot == "" {
		c.MountRoot = defaults.MountRoot
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case common.LogLevelDebug, common.LogLevelInfo, common.LogLevelWarn, common.LogLevelError:
		c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	default:
		c.LogLevel = defaults.LogLevel
	}
}

// Save writes the configuration to path, creating its directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("%w: error creating config directory: %v", common.ErrConfigSave, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: error serializing configuration: %v", common.ErrConfigSave, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: error saving configuration: %v", common.ErrConfigSave, err)
	}

	return nil
}

// ResolvedMountRoot returns MountRoot with "~" expanded.
func (c *Config) ResolvedMountRoot() (string, error) {
	return common.ExpandHome(c.MountRoot)
}

// ResolvedConnectionsFile returns ConnectionsFile with "~" expanded.
func (c *Config) ResolvedConnectionsFile() (string, error) {
	return common.ExpandHome(c.ConnectionsFile)
}
