// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/extview-tui/internal/ui/styles"
)

func showTestDialog(t *testing.T) *ConfirmDialog {
	t.Helper()
	d := NewConfirmDialog(styles.NewTheme())
	d.SetSize(80, 24)
	d.Show("enable:markdown", "Allow Access", "Grant this feature access to the extension?", "Allow Access", false)
	return d
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func resolveCmd(t *testing.T, cmd tea.Cmd) ConfirmResultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a result command, got nil")
	}
	msg, ok := cmd().(ConfirmResultMsg)
	if !ok {
		t.Fatalf("command produced %T, want ConfirmResultMsg", cmd())
	}
	return msg
}

func TestDialogConfirmWithEnter(t *testing.T) {
	d := showTestDialog(t)

	cmd, handled := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !handled {
		t.Fatal("enter not handled")
	}

	result := resolveCmd(t, cmd)
	if !result.Confirmed {
		t.Error("default selection should confirm")
	}
	if result.Tag != "enable:markdown" {
		t.Errorf("tag = %q", result.Tag)
	}
	if d.IsVisible() {
		t.Error("dialog still visible after answer")
	}
}

func TestDialogCancelViaNavigation(t *testing.T) {
	d := showTestDialog(t)

	if _, handled := d.Update(keyMsg("l")); !handled {
		t.Fatal("right not handled")
	}
	cmd, _ := d.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if result := resolveCmd(t, cmd); result.Confirmed {
		t.Error("cancel button should not confirm")
	}
}

func TestDialogNavigationWraps(t *testing.T) {
	d := showTestDialog(t)

	// Left from the first button wraps to cancel.
	d.Update(keyMsg("h"))
	cmd, _ := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if result := resolveCmd(t, cmd); result.Confirmed {
		t.Error("wrapped selection should land on cancel")
	}
}

func TestDialogShortcuts(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"y", true},
		{"n", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			d := showTestDialog(t)
			cmd, _ := d.Update(keyMsg(tt.key))
			if result := resolveCmd(t, cmd); result.Confirmed != tt.want {
				t.Errorf("%q => confirmed=%v, want %v", tt.key, result.Confirmed, tt.want)
			}
		})
	}
}

func TestDialogEscapeCancels(t *testing.T) {
	d := showTestDialog(t)
	cmd, _ := d.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if result := resolveCmd(t, cmd); result.Confirmed {
		t.Error("escape should cancel")
	}
}

func TestDialogIgnoresKeysWhenHidden(t *testing.T) {
	d := NewConfirmDialog(styles.NewTheme())
	if _, handled := d.Update(keyMsg("y")); handled {
		t.Error("hidden dialog consumed a key")
	}
	if d.View() != "" {
		t.Error("hidden dialog rendered content")
	}
}

func TestDialogViewContents(t *testing.T) {
	d := showTestDialog(t)
	view := d.View()
	for _, want := range []string{"Allow Access", "Cancel", "Grant this feature"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
