// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/extview-tui/internal/extension"
	"github.com/muesli/termenv"
)

// =============================================================================
// THEME
// =============================================================================

// Theme holds the styled components for the features panel. One instance is
// built at startup (and rebuilt on config reload) and shared by pointer
// across all components.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// List pane
	ListTitle        lipgloss.Style
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	NoAccessBadge    lipgloss.Style

	// Detail pane
	DetailTitle       lipgloss.Style
	DetailDescription lipgloss.Style
	DetailBorder      lipgloss.Style

	// Status banner
	BannerError   lipgloss.Style
	BannerWarning lipgloss.Style
	BannerInfo    lipgloss.Style

	// Buttons
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	ButtonDanger lipgloss.Style

	// Dialog
	DialogBox   lipgloss.Style
	DialogTitle lipgloss.Style
	DialogHint  lipgloss.Style

	// Tables
	TableBorder lipgloss.Style
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style

	// Widgets
	Keycap     lipgloss.Style
	SwatchText lipgloss.Style

	// Misc
	Placeholder lipgloss.Style
	SplitBorder lipgloss.Style
	Hint        lipgloss.Style
}

// NewTheme builds a theme using automatic background detection.
func NewTheme() *Theme {
	return NewThemeWithMode("auto")
}

// NewThemeWithMode builds a theme for the configured color mode: "auto",
// "dark" or "light". Forced modes override terminal detection.
func NewThemeWithMode(mode string) *Theme {
	switch mode {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}

	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}

	t.ListTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		Padding(0, 1)

	t.ListItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ListItemSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	t.NoAccessBadge = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(SurfaceDim).
		Padding(0, 1)

	t.DetailTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.DetailDescription = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.DetailBorder = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay)

	t.BannerError = lipgloss.NewStyle().
		Foreground(Rose).
		Background(SurfaceDim).
		Padding(0, 1)

	t.BannerWarning = lipgloss.NewStyle().
		Foreground(Amber).
		Background(SurfaceDim).
		Padding(0, 1)

	t.BannerInfo = lipgloss.NewStyle().
		Foreground(Blue).
		Background(SurfaceDim).
		Padding(0, 1)

	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 2).
		MarginRight(1)

	t.ButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 2).
		MarginRight(1)

	t.ButtonDanger = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Rose).
		Bold(true).
		Padding(0, 2).
		MarginRight(1)

	t.DialogBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Background(Surface).
		Padding(1, 2)

	t.DialogTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.DialogHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.TableBorder = lipgloss.NewStyle().
		Foreground(Overlay)

	t.TableHeader = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		Padding(0, 1)

	t.TableCell = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.Keycap = lipgloss.NewStyle().
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)

	t.SwatchText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.SplitBorder = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay)

	t.Hint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	return t
}

// =============================================================================
// SEVERITY HELPERS
// =============================================================================

// SeverityIcon returns the glyph for a severity.
func SeverityIcon(s extension.Severity) string {
	switch s {
	case extension.SeverityError:
		return "✗"
	case extension.SeverityWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}

// SeverityStyle returns the banner style for a severity.
func (t *Theme) SeverityStyle(s extension.Severity) lipgloss.Style {
	switch s {
	case extension.SeverityError:
		return t.BannerError
	case extension.SeverityWarning:
		return t.BannerWarning
	default:
		return t.BannerInfo
	}
}
