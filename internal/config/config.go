// Package config handles the configuration directory, file paths and config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "listbot"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.yaml"

	// DataFile is the default snapshot filename.
	DataFile = "lists.json"

	// HistoryFile is the chat input history filename.
	HistoryFile = "history"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultUser is the chat user id when none is configured.
	DefaultUser = "local"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// DataFile is the snapshot path. Relative paths are resolved against Dir.
	DataFile string

	// User is the chat user id messages are sent as.
	User string

	// PendingTTL expires unfinished delete/edit flows. Zero keeps them forever.
	PendingTTL time.Duration

	// Wrap is the console reply width. Zero disables wrapping.
	Wrap int

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// File mirrors config.yaml.
type File struct {
	DataFile   string `yaml:"data_file"`
	User       string `yaml:"user"`
	PendingTTL string `yaml:"pending_ttl"` // e.g. "10m"
	Wrap       int    `yaml:"wrap"`
	Debug      bool   `yaml:"debug"`
}

// New creates a new Config with the default or specified config directory
// and applies config.yaml from that directory if present.
// If configDir is empty, uses XDG_CONFIG_HOME/listbot or $HOME/.config/listbot.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, User: DefaultUser}

	f, err := LoadFile(cfg.FilePath())
	if err != nil {
		return nil, err
	}
	if err := cfg.apply(f); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads config.yaml, expanding ${VAR} references first.
// A missing file yields zero settings.
func LoadFile(path string) (File, error) {
	var f File
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &f); err != nil {
		return f, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

func (c *Config) apply(f File) error {
	if f.DataFile != "" {
		c.DataFile = f.DataFile
	}
	if f.User != "" {
		c.User = f.User
	}
	if f.PendingTTL != "" {
		ttl, err := time.ParseDuration(f.PendingTTL)
		if err != nil || ttl < 0 {
			return fmt.Errorf("invalid pending_ttl: %q", f.PendingTTL)
		}
		c.PendingTTL = ttl
	}
	if f.Wrap < 0 {
		return fmt.Errorf("invalid wrap: %d", f.Wrap)
	}
	c.Wrap = f.Wrap
	c.Debug = f.Debug
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

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataPath returns the snapshot file path.
func (c *Config) DataPath() string {
	if c.DataFile == "" {
		return filepath.Join(c.Dir, DataFile)
	}
	if filepath.IsAbs(c.DataFile) {
		return c.DataFile
	}
	return filepath.Join(c.Dir, c.DataFile)
}

// HistoryPath returns the path to the chat input history.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Dir, HistoryFile)
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
