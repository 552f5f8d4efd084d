// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/extview-tui/internal/ui/styles"
)

// =============================================================================
// MODIFIER CONVENTION
// =============================================================================

// ModifierConvention selects how modifier keys are written in keybinding
// labels.
type ModifierConvention int

const (
	ConventionLinux ModifierConvention = iota
	ConventionWindows
	ConventionMac
)

// ConventionFor resolves a configured convention name ("auto", "mac",
// "windows", "linux") against the running OS.
func ConventionFor(name, goos string) ModifierConvention {
	switch name {
	case "mac":
		return ConventionMac
	case "windows":
		return ConventionWindows
	case "linux":
		return ConventionLinux
	}
	// "auto" and anything unrecognized follow the OS.
	switch goos {
	case "darwin":
		return ConventionMac
	case "windows":
		return ConventionWindows
	default:
		return ConventionLinux
	}
}

// =============================================================================
// KEYBINDING LABEL
// =============================================================================

// KeybindingLabel renders a key chord like "ctrl+shift+p" as a row of
// keycaps following the OS modifier convention. Multi-stroke chords
// separated by spaces ("ctrl+k ctrl+s") render stroke by stroke.
type KeybindingLabel struct {
	Chord      string
	Convention ModifierConvention

	theme *styles.Theme
}

// NewKeybindingLabel creates a label for the chord.
func NewKeybindingLabel(chord string, conv ModifierConvention, theme *styles.Theme) KeybindingLabel {
	return KeybindingLabel{Chord: chord, Convention: conv, theme: theme}
}

// Render produces the styled label.
func (k KeybindingLabel) Render() string {
	strokes := strings.Fields(k.Chord)
	parts := make([]string, 0, len(strokes))
	for _, stroke := range strokes {
		parts = append(parts, k.renderStroke(stroke))
	}
	return strings.Join(parts, " ")
}

// renderStroke renders one keystroke ("ctrl+shift+p").
func (k KeybindingLabel) renderStroke(stroke string) string {
	keys := strings.Split(stroke, "+")
	caps := make([]string, 0, len(keys))
	for _, key := range keys {
		caps = append(caps, k.theme.Keycap.Render(k.keyName(key)))
	}

	sep := "+"
	if k.Convention == ConventionMac {
		// macOS writes modifier glyphs flush against the key.
		sep = ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(caps, sep))
}

// keyName maps a chord part to its display form under the convention.
func (k KeybindingLabel) keyName(key string) string {
	lower := strings.ToLower(strings.TrimSpace(key))

	if k.Convention == ConventionMac {
		switch lower {
		case "ctrl", "control":
			return "⌃"
		case "shift":
			return "⇧"
		case "alt", "option", "opt":
			return "⌥"
		case "cmd", "meta", "super", "win":
			return "⌘"
		}
	} else {
		switch lower {
		case "ctrl", "control":
			return "Ctrl"
		case "shift":
			return "Shift"
		case "alt", "option", "opt":
			return "Alt"
		case "cmd", "meta", "super", "win":
			if k.Convention == ConventionWindows {
				return "Win"
			}
			return "Super"
		}
	}

	// Plain keys: single letters uppercase, named keys title-case as given.
	if len(lower) == 1 {
		return strings.ToUpper(lower)
	}
	return lower
}
