package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// GridConfig holds the tile grid dimensions
type GridConfig struct {
	Columns int `toml:"columns"`
	Rows    int `toml:"rows"`
}

// GlyphConfig holds the character-to-tile mapping settings
type GlyphConfig struct {
	// Supplemental characters bound to tile indices from 94 up, in order
	Supplemental string `toml:"supplemental"`
	// UnknownTile is the tile written for unmapped characters
	UnknownTile int `toml:"unknown_tile"`
}

// FontConfig holds the font used by the image renderer
type FontConfig struct {
	// Path to a TTF file (empty = built-in fallback face)
	Path string  `toml:"path"`
	Size float64 `toml:"size"`
}

// ShellConfig holds shell-specific settings
type ShellConfig struct {
	// Path to shell binary (empty = system default)
	Path string `toml:"path"`
	// AdditionalEnv extra environment variables
	AdditionalEnv map[string]string `toml:"env"`
}

// Config holds the terminal configuration
type Config struct {
	Grid   GridConfig  `toml:"grid"`
	Glyphs GlyphConfig `toml:"glyphs"`
	Shell  ShellConfig `toml:"shell"`
	Font   FontConfig  `toml:"font"`
	Theme  string      `toml:"theme"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Columns: 80,
			Rows:    24,
		},
		Glyphs: GlyphConfig{
			Supplemental: "",
			UnknownTile:  0,
		},
		Shell: ShellConfig{
			Path:          "",
			AdditionalEnv: map[string]string{},
		},
		Font: FontConfig{
			Path: "",
			Size: 15.0,
		},
		Theme: "slate",
	}
}

// Validate reports configuration values the terminal cannot run with.
func (c *Config) Validate() error {
	if c.Grid.Columns <= 0 || c.Grid.Rows <= 0 {
		return fmt.Errorf("config: grid must be positive, got %dx%d", c.Grid.Columns, c.Grid.Rows)
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("config: font size must be positive, got %v", c.Font.Size)
	}
	return nil
}

// GetConfigDir returns the config directory path
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".config/tileterm"
	}
	return filepath.Join(homeDir, ".config", "tileterm")
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.toml")
}

// Load loads the configuration from the default path, writing defaults on
// first run.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads the configuration from an explicit path
func LoadFrom(path string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.SaveTo(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	// Unset fields keep their defaults
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration to the default path
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves the configuration to an explicit path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// FindShell returns the configured shell path, falling back to $SHELL and
// then /bin/sh.
func (c *Config) FindShell() string {
	if c.Shell.Path != "" {
		return c.Shell.Path
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}
