// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extension

import (
	"sync"

	"github.com/jeranaias/extview-tui/internal/event"
)

// =============================================================================
// HOST
// =============================================================================

// Host is an in-process StatusProvider. The embedding application loads
// extensions into it and records activation, errors and messages as they
// happen; the panel observes through the StatusProvider surface.
type Host struct {
	mu       sync.RWMutex
	loaded   []Manifest
	statuses map[string]Status

	changed *event.Emitter[[]string]
}

// NewHost creates an empty host.
func NewHost() *Host {
	return &Host{
		statuses: make(map[string]Status),
		changed:  event.NewEmitter[[]string](),
	}
}

// Load registers a manifest as a loaded extension.
func (h *Host) Load(m Manifest) {
	h.mu.Lock()
	h.loaded = append(h.loaded, m)
	h.mu.Unlock()

	h.changed.Fire([]string{m.ID})
}

// SetActivation records activation timing for a loaded extension.
func (h *Host) SetActivation(id string, times ActivationTimes) {
	h.mu.Lock()
	st := h.statuses[id]
	st.ActivationTimes = &times
	h.statuses[id] = st
	h.mu.Unlock()

	h.changed.Fire([]string{id})
}

// RecordError records an uncaught runtime error for an extension.
func (h *Host) RecordError(id string, message string) {
	h.mu.Lock()
	st := h.statuses[id]
	st.RuntimeErrors = append(st.RuntimeErrors, RuntimeError{Message: message})
	h.statuses[id] = st
	h.mu.Unlock()

	h.changed.Fire([]string{id})
}

// RecordMessage records a diagnostic message for an extension.
func (h *Host) RecordMessage(id string, severity Severity, text string) {
	h.mu.Lock()
	st := h.statuses[id]
	st.Messages = append(st.Messages, Message{Severity: severity, Text: text})
	h.statuses[id] = st
	h.mu.Unlock()

	h.changed.Fire([]string{id})
}

// =============================================================================
// STATUS PROVIDER IMPLEMENTATION
// =============================================================================

// Extensions returns the manifests of all loaded extensions.
func (h *Host) Extensions() []Manifest {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Manifest, len(h.loaded))
	copy(out, h.loaded)
	return out
}

// IsLoaded reports whether the extension is loaded.
func (h *Host) IsLoaded(id string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, m := range h.loaded {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Status returns the recorded status for the extension.
func (h *Host) Status(id string) Status {
	h.mu.RLock()
	defer h.mu.RUnlock()

	st := h.statuses[id]
	// Copy slices so callers cannot mutate recorded state.
	out := Status{ActivationTimes: st.ActivationTimes}
	out.RuntimeErrors = append([]RuntimeError(nil), st.RuntimeErrors...)
	out.Messages = append([]Message(nil), st.Messages...)
	return out
}

// OnDidChangeStatus registers a status-change listener.
func (h *Host) OnDidChangeStatus(fn func(ids []string)) event.Subscription {
	return h.changed.Subscribe(fn)
}
