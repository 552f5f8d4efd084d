// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/extview-tui/internal/ui/styles"
)

// =============================================================================
// COLOR SWATCH
// =============================================================================

// ColorSwatch renders a color reference as a filled block in that color
// followed by its hex code.
type ColorSwatch struct {
	Hex string

	theme *styles.Theme
}

// NewColorSwatch creates a swatch for the hex color ("#RRGGBB").
func NewColorSwatch(hex string, theme *styles.Theme) ColorSwatch {
	return ColorSwatch{Hex: normalizeHex(hex), theme: theme}
}

// Render produces the swatch plus hex text.
func (c ColorSwatch) Render() string {
	block := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Hex)).
		Render("██")

	return block + " " + c.theme.SwatchText.Render(c.Hex)
}

// normalizeHex uppercases the code and ensures a leading '#'.
func normalizeHex(hex string) string {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return hex
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	return "#" + strings.ToUpper(strings.TrimPrefix(hex, "#"))
}
