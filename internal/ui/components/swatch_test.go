// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/extview-tui/internal/ui/styles"
)

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"#ff0000", "#FF0000"},
		{"ff0000", "#FF0000"},
		{"#AbCdEf", "#ABCDEF"},
		{"  #abc  ", "#ABC"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeHex(tt.input); got != tt.want {
			t.Errorf("normalizeHex(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestColorSwatchRender(t *testing.T) {
	theme := styles.NewTheme()
	out := NewColorSwatch("1e90ff", theme).Render()

	if !strings.Contains(out, "██") {
		t.Errorf("swatch missing color block: %q", out)
	}
	if !strings.Contains(out, "#1E90FF") {
		t.Errorf("swatch missing hex label: %q", out)
	}
}
