// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extension

import "testing"

// =============================================================================
// MANIFEST TESTS
// =============================================================================

func TestManifestHasEntryPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Manifest
		want bool
	}{
		{"none", Manifest{ID: "a.b"}, false},
		{"desktop", Manifest{ID: "a.b", Main: "./out/main.js"}, true},
		{"web", Manifest{ID: "a.b", Browser: "./out/web.js"}, true},
		{"both", Manifest{ID: "a.b", Main: "./m.js", Browser: "./w.js"}, true},
	}

	for _, tc := range tests {
		if got := tc.m.HasEntryPoint(); got != tc.want {
			t.Errorf("%s: HasEntryPoint() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestManifestName(t *testing.T) {
	tests := []struct {
		m    Manifest
		want string
	}{
		{Manifest{ID: "pub.tool", DisplayName: "The Tool"}, "The Tool"},
		{Manifest{ID: "pub.tool"}, "tool"},
		{Manifest{ID: "bare"}, "bare"},
	}

	for _, tc := range tests {
		if got := tc.m.Name(); got != tc.want {
			t.Errorf("Name() = %q, want %q", got, tc.want)
		}
	}
}

// =============================================================================
// HOST TESTS
// =============================================================================

func TestHostLoadAndStatus(t *testing.T) {
	h := NewHost()

	if h.IsLoaded("pub.tool") {
		t.Error("IsLoaded() = true before Load")
	}

	h.Load(Manifest{ID: "pub.tool", Main: "./main.js"})

	if !h.IsLoaded("pub.tool") {
		t.Error("IsLoaded() = false after Load")
	}
	if len(h.Extensions()) != 1 {
		t.Errorf("Extensions() has %d entries, want 1", len(h.Extensions()))
	}

	h.SetActivation("pub.tool", ActivationTimes{OnStartup: true, ActivateMS: 42})
	h.RecordError("pub.tool", "boom")
	h.RecordError("pub.tool", "bang")
	h.RecordMessage("pub.tool", SeverityWarning, "careful")

	st := h.Status("pub.tool")
	if st.ActivationTimes == nil || st.ActivationTimes.ActivateMS != 42 {
		t.Errorf("ActivationTimes = %+v, want ActivateMS 42", st.ActivationTimes)
	}
	if len(st.RuntimeErrors) != 2 {
		t.Errorf("RuntimeErrors has %d entries, want 2", len(st.RuntimeErrors))
	}
	if len(st.Messages) != 1 || st.Messages[0].Severity != SeverityWarning {
		t.Errorf("Messages = %+v, want one warning", st.Messages)
	}
}

func TestHostChangeNotification(t *testing.T) {
	h := NewHost()
	h.Load(Manifest{ID: "pub.tool"})

	var seen [][]string
	sub := h.OnDidChangeStatus(func(ids []string) {
		seen = append(seen, ids)
	})

	h.RecordError("pub.tool", "boom")
	if len(seen) != 1 || seen[0][0] != "pub.tool" {
		t.Fatalf("change notifications = %v, want [[pub.tool]]", seen)
	}

	sub.Close()
	h.RecordError("pub.tool", "bang")
	if len(seen) != 1 {
		t.Errorf("received %d notifications after Close, want 1", len(seen))
	}
}

func TestHostStatusCopies(t *testing.T) {
	h := NewHost()
	h.Load(Manifest{ID: "pub.tool"})
	h.RecordError("pub.tool", "boom")

	st := h.Status("pub.tool")
	st.RuntimeErrors[0].Message = "mutated"

	if h.Status("pub.tool").RuntimeErrors[0].Message != "boom" {
		t.Error("Status() shares internal slices with callers")
	}
}
