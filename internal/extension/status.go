// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extension

import (
	"github.com/jeranaias/extview-tui/internal/event"
)

// =============================================================================
// SEVERITY
// =============================================================================

// Severity classifies a recorded message or status.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// =============================================================================
// RUNTIME STATUS
// =============================================================================

// ActivationTimes records how and when an extension was activated.
type ActivationTimes struct {
	// OnStartup is true when the extension activated during editor startup
	// rather than in response to an activation event.
	OnStartup bool

	// ActivationEvent names the event that triggered activation. Empty for
	// startup activation.
	ActivationEvent string

	// ActivateMS is the time the activate call took, in milliseconds.
	ActivateMS int64
}

// RuntimeError is an uncaught error recorded against an extension.
type RuntimeError struct {
	Message string
}

// Message is a diagnostic message the host recorded for an extension.
type Message struct {
	Severity Severity
	Text     string
}

// Status is everything the host has recorded about a loaded extension's
// runtime behavior.
type Status struct {
	// ActivationTimes is nil until the extension has activated.
	ActivationTimes *ActivationTimes

	RuntimeErrors []RuntimeError
	Messages      []Message
}

// =============================================================================
// STATUS PROVIDER
// =============================================================================

// StatusProvider is the host surface the panel reads extension state from.
// The panel never mutates extension state through this interface.
type StatusProvider interface {
	// Extensions returns the manifests of all currently loaded extensions.
	Extensions() []Manifest

	// IsLoaded reports whether the extension with the given id is loaded.
	IsLoaded(id string) bool

	// Status returns the recorded runtime status for the given extension.
	// The zero Status is returned for extensions with nothing recorded.
	Status(id string) Status

	// OnDidChangeStatus registers a listener invoked with the ids of
	// extensions whose status changed.
	OnDidChangeStatus(h func(ids []string)) event.Subscription
}
