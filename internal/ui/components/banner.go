// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/extview-tui/internal/extension"
	"github.com/jeranaias/extview-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BANNER
// =============================================================================

// StatusBanner is a one-line severity banner shown above the detail body.
// The banner is fixed at construction and does not track later changes.
type StatusBanner struct {
	severity extension.Severity
	message  string
	theme    *styles.Theme
	width    int
}

// NewStatusBanner creates a banner for the given severity and message.
func NewStatusBanner(theme *styles.Theme, severity extension.Severity, message string) *StatusBanner {
	return &StatusBanner{severity: severity, message: message, theme: theme}
}

// SetWidth updates the banner width.
func (b *StatusBanner) SetWidth(width int) {
	b.width = width
}

// View renders the banner line.
func (b *StatusBanner) View() string {
	style := b.theme.SeverityStyle(b.severity)
	if b.width > 0 {
		style = style.Width(b.width)
	}
	return style.Render(styles.SeverityIcon(b.severity) + " " + b.message)
}
