// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/extview-tui/internal/ui/styles"
)

// =============================================================================
// EMPTY PLACEHOLDER
// =============================================================================

// Placeholder fills the panel area with a centered message when there is
// nothing to show.
type Placeholder struct {
	message string
	theme   *styles.Theme
	width   int
	height  int
}

// NewPlaceholder creates a placeholder with the given message.
func NewPlaceholder(theme *styles.Theme, message string) *Placeholder {
	return &Placeholder{message: message, theme: theme}
}

// SetSize updates the area the placeholder fills.
func (p *Placeholder) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// View renders the centered message.
func (p *Placeholder) View() string {
	text := p.theme.Placeholder.Render(p.message)
	if p.width > 0 && p.height > 0 {
		return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, text)
	}
	return text
}
