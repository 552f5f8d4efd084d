// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the features panel.
//
// Configuration lives in a single TOML file (default
// ~/.extview/config.toml) with sensible defaults and environment variable
// overrides. A Watcher reloads the file on change so theme and keybinding
// settings apply without restarting the host.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrInvalidModifier = errors.New("invalid modifier convention")
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete panel configuration.
type Config struct {
	UI          UIConfig          `toml:"ui"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
	Access      AccessConfig      `toml:"access"`
}

// UIConfig controls presentation.
type UIConfig struct {
	// Theme selects the color scheme: "auto", "dark" or "light".
	Theme string `toml:"theme"`

	// WordWrap is the column markdown content wraps at.
	WordWrap int `toml:"word_wrap"`
}

// KeybindingsConfig controls how key chords are displayed.
type KeybindingsConfig struct {
	// Modifier selects the modifier convention for keybinding labels:
	// "auto" (derive from the running OS), "mac", "windows" or "linux".
	Modifier string `toml:"modifier"`
}

// AccessConfig controls access-data persistence.
type AccessConfig struct {
	// DatabasePath is the SQLite file usage history is stored in.
	// Empty means ~/.extview/access.db.
	DatabasePath string `toml:"database_path"`
}

// =============================================================================
// LOADING
// =============================================================================

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".extview", "config.toml"), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UI:          UIConfig{Theme: "auto", WordWrap: 80},
		Keybindings: KeybindingsConfig{Modifier: "auto"},
	}
}

// Load reads the config at path, layering file values over defaults and
// environment overrides over both. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides layers EXTVIEW_* environment variables over the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("EXTVIEW_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("EXTVIEW_MODIFIER"); v != "" {
		c.Keybindings.Modifier = v
	}
	if v := os.Getenv("EXTVIEW_ACCESS_DB"); v != "" {
		c.Access.DatabasePath = v
	}
}

// Validate checks enumerated fields and clamps out-of-range values.
func (c *Config) Validate() error {
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTheme, c.UI.Theme)
	}

	switch c.Keybindings.Modifier {
	case "auto", "mac", "windows", "linux":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidModifier, c.Keybindings.Modifier)
	}

	if c.UI.WordWrap < 40 {
		c.UI.WordWrap = 40
	}
	if c.UI.WordWrap > 200 {
		c.UI.WordWrap = 200
	}
	return nil
}

// Save writes the config to path in TOML form.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(c)
}

// DatabasePath resolves the access database location.
func (c *Config) DatabasePath() (string, error) {
	if c.Access.DatabasePath != "" {
		return c.Access.DatabasePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".extview", "access.db"), nil
}
