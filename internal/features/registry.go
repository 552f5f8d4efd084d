// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package features

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jeranaias/extview-tui/internal/extension"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrDuplicateFeature = errors.New("feature id already registered")
)

// =============================================================================
// RENDERER CONTRACT
// =============================================================================

// Renderer is the plugin contract feature contributors implement. A renderer
// instance may be constructed solely to probe ShouldRender and then
// discarded; construction must have no side effects beyond what the probe
// needs, and Dispose must be safe to call at any point.
type Renderer interface {
	// Kind declares which Render variant this renderer implements. The
	// panel dispatches on it once, at detail-view construction.
	Kind() Kind

	// ShouldRender reports whether the feature applies to the manifest.
	ShouldRender(m extension.Manifest) bool

	// Dispose releases anything the renderer holds.
	Dispose()
}

// MarkdownRenderer produces markdown content. Implemented by renderers of
// KindMarkdown.
type MarkdownRenderer interface {
	Renderer
	Render(m extension.Manifest) *RenderedData[Markdown]
}

// TableRenderer produces tabular content. Implemented by renderers of
// KindTable.
type TableRenderer interface {
	Renderer
	Render(m extension.Manifest) *RenderedData[Table]
}

// CompositeRenderer produces an ordered mix of markdown and table
// fragments. Implemented by renderers of KindMarkdownTable.
type CompositeRenderer interface {
	Renderer
	Render(m extension.Manifest) *RenderedData[[]Fragment]
}

// =============================================================================
// DESCRIPTOR
// =============================================================================

// AccessPolicy controls whether users may toggle an extension's access to
// the feature from the panel.
type AccessPolicy struct {
	CanToggle bool
}

// Descriptor describes one registered feature. Descriptors are immutable
// once registered.
type Descriptor struct {
	// ID uniquely identifies the feature.
	ID string

	// Label is the display name used in the list and detail header.
	Label string

	// Description is optional explanatory text.
	Description string

	// Access is the feature's toggle policy.
	Access AccessPolicy

	// Renderer constructs a fresh renderer instance. Nil for features that
	// contribute no panel content; such features never appear in the panel.
	Renderer func() Renderer
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds the feature descriptors contributed by the application.
// The handle is injected wherever it is needed; there is no package-global
// instance.
type Registry struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Descriptor)}
}

// Register adds a descriptor. Registering an id twice is an error.
func (r *Registry) Register(d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[d.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateFeature, d.ID)
	}
	r.byID[d.ID] = d
	r.order = append(r.order, d.ID)
	return nil
}

// Features returns all descriptors in registration order.
func (r *Registry) Features() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Lookup returns the descriptor with the given id.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	return d, ok
}
