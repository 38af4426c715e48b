// Package config handles global chessmine configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global chessmine configuration.
type Config struct {
	// Database is the path to the SQLite index. Defaults to
	// ~/.local/share/chessmine/index.db.
	Database string `toml:"database"`

	// DefaultLimit is the result page size for queries when --limit is
	// not given. Defaults to 50.
	DefaultLimit int `toml:"default_limit"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output. Supported
	// values are ANSI color codes ("0" to "255") or hex colors
	// ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Load reads the config from the default location. A missing file is
// not an error; it yields a zero config with defaults applied on read.
func Load() (*Config, error) {
	return LoadFrom(ResolveConfigPath(""))
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// ResolveConfigPath returns the override when given, otherwise the
// default ~/.config/chessmine/config.toml.
func ResolveConfigPath(override string) string {
	if override != "" {
		return override
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "chessmine", "config.toml")
}

// DatabasePath returns the configured database path or its default.
func (c *Config) DatabasePath() string {
	if c.Database != "" {
		return expandHome(c.Database)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "chessmine.db"
	}
	return filepath.Join(home, ".local", "share", "chessmine", "index.db")
}

// Limit returns the configured default query limit or its default.
func (c *Config) Limit() int {
	if c.DefaultLimit > 0 {
		return c.DefaultLimit
	}
	return 50
}

func expandHome(path string) string {
	if len(path) < 2 || path[0] != '~' || path[1] != '/' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
