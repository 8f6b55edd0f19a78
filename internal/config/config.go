// Package config handles the XDG configuration directory, its files and the
// optional board.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// SettingsFile is the optional YAML settings filename.
	SettingsFile = "board.yaml"

	// BoardFile is the default file-backed storage filename.
	BoardFile = "board.json"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultAddr is the default listen address for the HTTP API.
	DefaultAddr = "127.0.0.1:8080"
)

// Environment overrides for the storage settings.
const (
	EnvStorageDriver = "TASKBOARD_STORAGE_DRIVER"
	EnvStorageDSN    = "TASKBOARD_STORAGE_DSN"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Storage selects where the board is persisted.
	Storage Storage

	// Server configures the HTTP API.
	Server Server
}

// Storage is the storage section of board.yaml.
type Storage struct {
	// Driver is one of file, sqlite, mysql, postgres. Empty means file.
	Driver string `yaml:"driver"`

	// DSN is a path for file and sqlite, a connection string otherwise.
	DSN string `yaml:"dsn"`

	// Key is the storage key the board is written under.
	Key string `yaml:"key"`
}

// Server is the server section of board.yaml.
type Server struct {
	Addr string `yaml:"addr"`
}

type settings struct {
	Storage Storage `yaml:"storage"`
	Server  Server  `yaml:"server"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
// board.yaml is read if present; environment overrides are applied last.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	if v := os.Getenv(EnvStorageDriver); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv(EnvStorageDSN); v != "" {
		cfg.Storage.DSN = v
	}
	return cfg, nil
}

func (c *Config) loadSettings() error {
	data, err := os.ReadFile(c.SettingsPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}

	var s settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	c.Storage = s.Storage
	c.Server = s.Server
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to board.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// StorageDriver returns the configured driver, defaulting to file.
func (c *Config) StorageDriver() string {
	if c.Storage.Driver == "" {
		return "file"
	}
	return c.Storage.Driver
}

// StorageDSN returns the configured DSN.
// File and sqlite storage default to a file inside the config directory.
func (c *Config) StorageDSN() string {
	if c.Storage.DSN != "" {
		return c.Storage.DSN
	}
	switch c.StorageDriver() {
	case "file":
		return filepath.Join(c.Dir, BoardFile)
	case "sqlite":
		return filepath.Join(c.Dir, "board.db")
	}
	return ""
}

// ServerAddr returns the HTTP listen address.
func (c *Config) ServerAddr() string {
	if c.Server.Addr == "" {
		return DefaultAddr
	}
	return c.Server.Addr
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
