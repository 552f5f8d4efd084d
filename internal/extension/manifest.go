// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package extension models the editor extensions the features panel reports
// on: their manifests and the runtime status the host records for them.
package extension

import "strings"

// =============================================================================
// MANIFEST
// =============================================================================

// Manifest is the static declaration of an extension's identity and
// capabilities, as shipped in its package metadata.
type Manifest struct {
	// ID uniquely identifies the extension (publisher.name form).
	ID string

	// DisplayName is the human-readable name shown in the panel.
	DisplayName string

	// Version is the declared extension version.
	Version string

	// Main is the desktop entry point, empty when none is declared.
	Main string

	// Browser is the web entry point, empty when none is declared.
	Browser string

	// ActivationEvents lists the events that activate the extension.
	ActivationEvents []string
}

// HasEntryPoint reports whether the manifest declares a desktop or web
// entry point, i.e. whether the extension can be activated at all.
func (m Manifest) HasEntryPoint() bool {
	return m.Main != "" || m.Browser != ""
}

// Name returns the display name, falling back to the non-publisher part of
// the identifier.
func (m Manifest) Name() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	if i := strings.IndexByte(m.ID, '.'); i >= 0 {
		return m.ID[i+1:]
	}
	return m.ID
}
