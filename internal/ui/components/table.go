// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jeranaias/extview-tui/internal/features"
	"github.com/jeranaias/extview-tui/internal/ui/styles"
)

// =============================================================================
// TABLE VIEW
// =============================================================================

// TableView renders table fragments for the feature detail body. Each cell
// value is resolved through the cell union before layout.
type TableView struct {
	theme      *styles.Theme
	convention ModifierConvention
	width      int
}

// NewTableView creates a table view. convention controls how keybinding
// cells spell modifier keys.
func NewTableView(theme *styles.Theme, convention ModifierConvention, width int) *TableView {
	return &TableView{theme: theme, convention: convention, width: width}
}

// SetWidth updates the available width.
func (v *TableView) SetWidth(width int) {
	v.width = width
}

// Render lays out a table fragment.
func (v *TableView) Render(t features.Table) string {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rendered := make([]string, 0, len(row))
		for _, cell := range row {
			rendered = append(rendered, v.RenderCell(cell))
		}
		rows = append(rows, rendered)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(v.theme.TableBorder).
		Headers(t.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return v.theme.TableHeader
			}
			return v.theme.TableCell
		})

	if v.width > 0 {
		tbl = tbl.Width(v.width)
	}

	return tbl.Render()
}

// RenderCell resolves one cell of the table union to terminal text.
// Grouped cells render in order and concatenate with a single space.
func (v *TableView) RenderCell(cell features.Cell) string {
	switch c := cell.(type) {
	case features.TextCell:
		return string(c)

	case features.MarkdownCell:
		return renderInline(substituteIcons(c.Text))

	case features.KeybindingCell:
		return NewKeybindingLabel(c.Chord, v.convention, v.theme).Render()

	case features.ColorCell:
		return NewColorSwatch(c.Hex, v.theme).Render()

	case features.CellGroup:
		parts := make([]string, 0, len(c))
		for _, inner := range c {
			parts = append(parts, v.RenderCell(inner))
		}
		return strings.Join(parts, " ")

	default:
		return ""
	}
}
