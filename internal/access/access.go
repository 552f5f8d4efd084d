// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package access tracks feature usage per extension: when a feature was
// invoked, how often, whether it currently reports a status, and whether the
// extension is allowed to use it at all.
package access

import (
	"time"

	"github.com/jeranaias/extview-tui/internal/event"
	"github.com/jeranaias/extview-tui/internal/extension"
)

// =============================================================================
// DATA MODEL
// =============================================================================

// Status is the current condition a feature reports for an extension.
type Status struct {
	Severity extension.Severity
	Message  string
}

// CurrentAccess describes the most recent access in this session.
type CurrentAccess struct {
	LastAccessed time.Time

	// Status is nil when the feature reports nothing unusual.
	Status *Status
}

// Data is the usage record for one (extension, feature) pair.
type Data struct {
	// Current is nil until the feature has been accessed this session.
	Current *CurrentAccess

	// AccessTimes holds every recorded access, oldest first.
	AccessTimes []time.Time
}

// Change identifies the (extension, feature) pair whose data changed.
type Change struct {
	Extension string
	Feature   string
}

// EnablementChange carries a flipped enablement flag.
type EnablementChange struct {
	Extension string
	Feature   string
	Enabled   bool
}

// =============================================================================
// SERVICE
// =============================================================================

// Service is the access-management surface the panel consumes. Reads are
// cheap; the single mutation entry point is SetEnablement.
type Service interface {
	// Data returns the usage record for the pair, with ok false when
	// nothing has ever been recorded.
	Data(extensionID, featureID string) (Data, bool)

	// IsEnabled reports whether the extension may use the feature.
	// Pairs with no recorded decision default to enabled.
	IsEnabled(extensionID, featureID string) bool

	// SetEnablement flips the enablement flag and notifies listeners.
	SetEnablement(extensionID, featureID string, enabled bool)

	// OnDidChangeData registers a listener for usage-record changes.
	OnDidChangeData(h func(Change)) event.Subscription

	// OnDidChangeEnablement registers a listener for enablement flips.
	OnDidChangeEnablement(h func(EnablementChange)) event.Subscription
}
