// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package features

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jeranaias/extview-tui/internal/extension"
)

// =============================================================================
// APPLICABLE FEATURES
// =============================================================================

// labelCollator orders feature labels the way a user expects for their
// locale rather than by raw byte value.
var labelCollator = collate.New(language.Und)

// Applicable returns the features to list for the manifest: every
// registered descriptor whose renderer probe accepts the manifest, sorted
// by label, with the built-in Runtime Status feature prepended when its own
// probe accepts.
//
// Probe instances are constructed, asked once, and disposed immediately. A
// probe that panics propagates to the caller; applicability runs at view
// construction, inside the host's generic error boundary.
func Applicable(reg *Registry, builtin Descriptor, m extension.Manifest) []Descriptor {
	var out []Descriptor
	for _, d := range reg.Features() {
		if d.Renderer == nil {
			continue
		}
		probe := d.Renderer()
		ok := probe.ShouldRender(m)
		probe.Dispose()
		if ok {
			out = append(out, d)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return labelCollator.CompareString(out[i].Label, out[j].Label) < 0
	})

	if builtin.Renderer != nil {
		probe := builtin.Renderer()
		ok := probe.ShouldRender(m)
		probe.Dispose()
		if ok {
			out = append([]Descriptor{builtin}, out...)
		}
	}

	return out
}
