// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "testing"

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"cut", "hello world", 8, "hello..."},
		{"tiny", "hello", 2, "he"},
		{"zero", "hello", 0, ""},
		{"wide chars", "日本語テキスト", 7, "日本..."},
	}

	for _, tc := range tests {
		if got := TruncateWidth(tc.in, tc.maxWidth); got != tc.want {
			t.Errorf("%s: TruncateWidth(%q, %d) = %q, want %q", tc.name, tc.in, tc.maxWidth, got, tc.want)
		}
	}
}

func TestPadWidth(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"pad", "ab", 5, "ab   "},
		{"exact", "abcde", 5, "abcde"},
		{"too wide", "abcdefgh", 5, "ab..."},
		{"zero", "ab", 0, ""},
	}

	for _, tc := range tests {
		if got := PadWidth(tc.in, tc.width); got != tc.want {
			t.Errorf("%s: PadWidth(%q, %d) = %q, want %q", tc.name, tc.in, tc.width, got, tc.want)
		}
	}
}

func TestWidthCountsColumns(t *testing.T) {
	if got := Width("日本"); got != 4 {
		t.Errorf("Width(日本) = %d, want 4", got)
	}
	if got := Width("ab"); got != 2 {
		t.Errorf("Width(ab) = %d, want 2", got)
	}
}
