// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package features

import (
	"testing"

	"github.com/jeranaias/extview-tui/internal/extension"
)

// =============================================================================
// TEST RENDERER
// =============================================================================

// probeRenderer counts construction/probe/dispose calls for the accessor
// tests.
type probeRenderer struct {
	accept   bool
	probes   *int
	disposes *int
}

func (p *probeRenderer) Kind() Kind { return KindMarkdown }

func (p *probeRenderer) ShouldRender(extension.Manifest) bool {
	if p.probes != nil {
		*p.probes++
	}
	return p.accept
}

func (p *probeRenderer) Dispose() {
	if p.disposes != nil {
		*p.disposes++
	}
}

func (p *probeRenderer) Render(extension.Manifest) *RenderedData[Markdown] {
	return NewRenderedData(Markdown{Text: "stub"}, nil, nil)
}

func acceptingDescriptor(id, label string, probes, disposes *int) Descriptor {
	return Descriptor{
		ID:    id,
		Label: label,
		Renderer: func() Renderer {
			return &probeRenderer{accept: true, probes: probes, disposes: disposes}
		},
	}
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(Descriptor{ID: "a", Label: "A"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := reg.Register(Descriptor{ID: "a", Label: "A again"}); err == nil {
		t.Error("Register() accepted a duplicate id")
	}

	if _, ok := reg.Lookup("a"); !ok {
		t.Error("Lookup() missed a registered feature")
	}
	if len(reg.Features()) != 1 {
		t.Errorf("Features() has %d entries, want 1", len(reg.Features()))
	}
}

// =============================================================================
// ACCESSOR TESTS
// =============================================================================

func TestApplicableSortsByLabel(t *testing.T) {
	reg := NewRegistry()
	reg.Register(acceptingDescriptor("z", "zebra", nil, nil))
	reg.Register(acceptingDescriptor("a", "Apple", nil, nil))
	reg.Register(acceptingDescriptor("m", "mango", nil, nil))

	builtin := Descriptor{
		ID:       RuntimeStatusID,
		Label:    "Runtime Status",
		Renderer: func() Renderer { return &probeRenderer{accept: true} },
	}

	got := Applicable(reg, builtin, extension.Manifest{ID: "pub.tool", Main: "./m.js"})

	wantIDs := []string{RuntimeStatusID, "a", "m", "z"}
	if len(got) != len(wantIDs) {
		t.Fatalf("Applicable() returned %d features, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("Applicable()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestApplicableFilters(t *testing.T) {
	reg := NewRegistry()
	reg.Register(acceptingDescriptor("yes", "Yes", nil, nil))
	reg.Register(Descriptor{
		ID:       "no",
		Label:    "No",
		Renderer: func() Renderer { return &probeRenderer{accept: false} },
	})
	reg.Register(Descriptor{ID: "bare", Label: "Bare"}) // No renderer at all

	builtin := Descriptor{
		ID:       RuntimeStatusID,
		Label:    "Runtime Status",
		Renderer: func() Renderer { return &probeRenderer{accept: false} },
	}

	got := Applicable(reg, builtin, extension.Manifest{ID: "pub.tool"})
	if len(got) != 1 || got[0].ID != "yes" {
		t.Errorf("Applicable() = %v, want only the accepting feature", got)
	}
}

func TestApplicableDisposesProbes(t *testing.T) {
	probes, disposes := 0, 0

	reg := NewRegistry()
	reg.Register(acceptingDescriptor("a", "A", &probes, &disposes))
	reg.Register(acceptingDescriptor("b", "B", &probes, &disposes))

	builtin := Descriptor{
		ID:    RuntimeStatusID,
		Label: "Runtime Status",
		Renderer: func() Renderer {
			return &probeRenderer{accept: true, probes: &probes, disposes: &disposes}
		},
	}

	Applicable(reg, builtin, extension.Manifest{ID: "pub.tool", Main: "./m.js"})

	if probes != 3 {
		t.Errorf("probes = %d, want 3", probes)
	}
	if disposes != 3 {
		t.Errorf("disposes = %d, want 3 (every probe instance discarded)", disposes)
	}
}
