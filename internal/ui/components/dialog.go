// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/extview-tui/internal/ui/styles"
)

// =============================================================================
// CONFIRM DIALOG
// =============================================================================

// ConfirmResultMsg reports the user's answer to a confirmation dialog.
type ConfirmResultMsg struct {
	// Tag identifies which request this answers.
	Tag string

	Confirmed bool
}

// Dialog buttons
const (
	dialogConfirm = 0
	dialogCancel  = 1
	dialogButtons = 2
)

// ConfirmDialog is a blocking confirmation prompt. While visible it captures
// all key input; the rest of the UI keeps rendering but the pending action
// waits for an answer.
type ConfirmDialog struct {
	title   string
	message string
	confirm string
	tag     string
	danger  bool

	visible  bool
	selected int
	width    int
	height   int

	theme *styles.Theme
}

// NewConfirmDialog creates a hidden dialog.
func NewConfirmDialog(theme *styles.Theme) *ConfirmDialog {
	return &ConfirmDialog{theme: theme, selected: dialogConfirm}
}

// Show displays the dialog. confirmLabel names the confirming button
// ("Allow Access"); danger styles it as a destructive action. tag is echoed
// back in the result message.
func (d *ConfirmDialog) Show(tag, title, message, confirmLabel string, danger bool) {
	d.tag = tag
	d.title = title
	d.message = message
	d.confirm = confirmLabel
	d.danger = danger
	d.visible = true
	d.selected = dialogConfirm
}

// Hide dismisses the dialog without answering.
func (d *ConfirmDialog) Hide() {
	d.visible = false
}

// IsVisible reports whether the dialog is showing.
func (d *ConfirmDialog) IsVisible() bool {
	return d.visible
}

// SetSize updates the dialog dimensions for centering.
func (d *ConfirmDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// =============================================================================
// BUBBLE TEA METHODS
// =============================================================================

// Update handles key events. The bool result reports whether the event was
// consumed; while visible every key is.
func (d *ConfirmDialog) Update(msg tea.Msg) (tea.Cmd, bool) {
	if !d.visible {
		return nil, false
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}

	switch key.String() {
	case "left", "h", "shift+tab":
		d.selected = (d.selected - 1 + dialogButtons) % dialogButtons
		return nil, true

	case "right", "l", "tab":
		d.selected = (d.selected + 1) % dialogButtons
		return nil, true

	case "enter", " ":
		return d.answer(d.selected == dialogConfirm), true

	case "y":
		return d.answer(true), true

	case "n", "esc":
		return d.answer(false), true
	}

	return nil, true
}

// answer hides the dialog and emits the result.
func (d *ConfirmDialog) answer(confirmed bool) tea.Cmd {
	tag := d.tag
	d.Hide()
	return func() tea.Msg {
		return ConfirmResultMsg{Tag: tag, Confirmed: confirmed}
	}
}

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the dialog centered in the available area.
func (d *ConfirmDialog) View() string {
	if !d.visible {
		return ""
	}

	boxWidth := 56
	if d.width > 0 && d.width < 66 {
		boxWidth = d.width - 10
	}
	if boxWidth < 36 {
		boxWidth = 36
	}

	var content strings.Builder
	content.WriteString(d.theme.DialogTitle.Render(d.title))
	content.WriteString("\n\n")

	message := lipgloss.NewStyle().Width(boxWidth - 6).Render(d.message)
	content.WriteString(message)
	content.WriteString("\n\n")
	content.WriteString(d.renderButtons())
	content.WriteString("\n\n")
	content.WriteString(d.theme.DialogHint.Render("y=Confirm  n=Cancel  Tab=Navigate"))

	box := d.theme.DialogBox.Width(boxWidth).Render(content.String())

	if d.width > 0 && d.height > 0 {
		return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// renderButtons renders the confirm/cancel row.
func (d *ConfirmDialog) renderButtons() string {
	confirmStyle := d.theme.Button
	if d.selected == dialogConfirm {
		confirmStyle = d.theme.ButtonActive
		if d.danger {
			confirmStyle = d.theme.ButtonDanger
		}
	}

	cancelStyle := d.theme.Button
	if d.selected == dialogCancel {
		cancelStyle = d.theme.ButtonActive
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		confirmStyle.Render(d.confirm),
		cancelStyle.Render("Cancel"),
	)
}
