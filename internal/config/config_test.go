package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
database = "/tmp/test-index.db"
default_limit = 25

[ui]
accent = "#FF0000"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Database != "/tmp/test-index.db" {
		t.Errorf("Database = %q", cfg.Database)
	}
	if cfg.Limit() != 25 {
		t.Errorf("Limit() = %d, want 25", cfg.Limit())
	}
	if cfg.UI.Accent != "#FF0000" {
		t.Errorf("Accent = %q", cfg.UI.Accent)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Limit() != 50 {
		t.Errorf("default Limit() = %d, want 50", cfg.Limit())
	}
	if !strings.HasSuffix(cfg.DatabasePath(), filepath.Join("chessmine", "index.db")) {
		t.Errorf("default DatabasePath() = %q", cfg.DatabasePath())
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("database = [unclosed"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("invalid TOML should fail to load")
	}
}

func TestDatabasePathExpandsHome(t *testing.T) {
	cfg := &Config{Database: "~/games/index.db"}
	got := cfg.DatabasePath()
	if strings.HasPrefix(got, "~") {
		t.Errorf("DatabasePath() = %q, tilde not expanded", got)
	}
	if !strings.HasSuffix(got, filepath.Join("games", "index.db")) {
		t.Errorf("DatabasePath() = %q", got)
	}
}

func TestResolveConfigPathOverride(t *testing.T) {
	if got := ResolveConfigPath("/etc/chessmine.toml"); got != "/etc/chessmine.toml" {
		t.Errorf("ResolveConfigPath override = %q", got)
	}
	if got := ResolveConfigPath(""); !strings.HasSuffix(got, filepath.Join("chessmine", "config.toml")) {
		t.Errorf("ResolveConfigPath default = %q", got)
	}
}
