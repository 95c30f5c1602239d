package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.Top != nil || cfg.Game.Ledger != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodesGameSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[game]
ledger = "/tmp/scores.csv"
top = 5
seed = 42
history = false
log-level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	g := cfg.Game
	if g.Ledger == nil || *g.Ledger != "/tmp/scores.csv" {
		t.Fatalf("unexpected ledger %v", g.Ledger)
	}
	if g.Top == nil || *g.Top != 5 || g.Seed == nil || *g.Seed != 42 {
		t.Fatalf("unexpected numbers: %+v", g)
	}
	if g.History == nil || *g.History {
		t.Fatalf("expected history=false")
	}
	if g.LogLevel == nil || *g.LogLevel != "debug" {
		t.Fatalf("unexpected log level %v", g.LogLevel)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game]\ngrid = 9\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "game.grid") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "colorhunt", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultLedgerPath(); got != filepath.Join("/data", "colorhunt", "table.csv") {
		t.Fatalf("unexpected ledger path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "colorhunt", "colorhunt.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "colorhunt", "colorhunt.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}
