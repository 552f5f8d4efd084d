// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("Theme = %q, want %q", cfg.UI.Theme, "auto")
	}
	if cfg.UI.WordWrap != 80 {
		t.Errorf("WordWrap = %d, want 80", cfg.UI.WordWrap)
	}
	if cfg.Keybindings.Modifier != "auto" {
		t.Errorf("Modifier = %q, want %q", cfg.Keybindings.Modifier, "auto")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[ui]
theme = "dark"
word_wrap = 100

[keybindings]
modifier = "mac"

[access]
database_path = "/tmp/access.db"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme = %q, want %q", cfg.UI.Theme, "dark")
	}
	if cfg.UI.WordWrap != 100 {
		t.Errorf("WordWrap = %d, want 100", cfg.UI.WordWrap)
	}
	if cfg.Keybindings.Modifier != "mac" {
		t.Errorf("Modifier = %q, want %q", cfg.Keybindings.Modifier, "mac")
	}

	db, err := cfg.DatabasePath()
	if err != nil {
		t.Fatalf("DatabasePath() error = %v", err)
	}
	if db != "/tmp/access.db" {
		t.Errorf("DatabasePath() = %q, want %q", db, "/tmp/access.db")
	}
}

func TestLoadRejectsBadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[ui]\ntheme = \"neon\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("Load() error = %v, want ErrInvalidTheme", err)
	}
}

func TestValidateClampsWordWrap(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{10, 40},
		{80, 80},
		{999, 200},
	}

	for _, tc := range tests {
		cfg := Default()
		cfg.UI.WordWrap = tc.in
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if cfg.UI.WordWrap != tc.want {
			t.Errorf("WordWrap %d clamped to %d, want %d", tc.in, cfg.UI.WordWrap, tc.want)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EXTVIEW_THEME", "light")
	t.Setenv("EXTVIEW_MODIFIER", "windows")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want env override %q", cfg.UI.Theme, "light")
	}
	if cfg.Keybindings.Modifier != "windows" {
		t.Errorf("Modifier = %q, want env override %q", cfg.Keybindings.Modifier, "windows")
	}
}

// =============================================================================
// SAVE TESTS
// =============================================================================

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Default()
	cfg.UI.Theme = "dark"
	cfg.UI.WordWrap = 120
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.UI.Theme != "dark" || loaded.UI.WordWrap != 120 {
		t.Errorf("round trip = %+v, want saved values", loaded.UI)
	}
}
