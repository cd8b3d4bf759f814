package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.toml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Grid.Columns != 80 || cfg.Grid.Rows != 24 {
		t.Errorf("default grid = %dx%d, want 80x24", cfg.Grid.Columns, cfg.Grid.Rows)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file not written: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Grid.Columns = 40
	cfg.Grid.Rows = 12
	cfg.Glyphs.Supplemental = "éü"
	cfg.Glyphs.UnknownTile = 93
	cfg.Theme = "paper"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Grid != cfg.Grid {
		t.Errorf("grid = %+v, want %+v", got.Grid, cfg.Grid)
	}
	if got.Glyphs != cfg.Glyphs {
		t.Errorf("glyphs = %+v, want %+v", got.Glyphs, cfg.Glyphs)
	}
	if got.Theme != cfg.Theme {
		t.Errorf("theme = %q, want %q", got.Theme, cfg.Theme)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[grid]\ncolumns = 32\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Grid.Columns != 32 {
		t.Errorf("columns = %d, want 32", cfg.Grid.Columns)
	}
	if cfg.Grid.Rows != 24 {
		t.Errorf("rows = %d, want default 24", cfg.Grid.Rows)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.Rows = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero rows should fail validation")
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[grid]\ncolumns = -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom should reject a negative grid")
	}
}

func TestFindShell(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shell.Path = "/bin/fish"
	if got := cfg.FindShell(); got != "/bin/fish" {
		t.Errorf("FindShell = %q, want configured path", got)
	}

	cfg.Shell.Path = ""
	t.Setenv("SHELL", "/bin/zsh")
	if got := cfg.FindShell(); got != "/bin/zsh" {
		t.Errorf("FindShell = %q, want $SHELL", got)
	}

	t.Setenv("SHELL", "")
	if got := cfg.FindShell(); got != "/bin/sh" {
		t.Errorf("FindShell = %q, want /bin/sh", got)
	}
}
