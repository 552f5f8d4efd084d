// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package features defines the feature descriptors shown in the extension
// features panel and the renderer plugin contract that produces their
// content.
//
// A feature is a named capability an extension may expose or be measured
// against (usage telemetry, contributed commands, capability tables). Other
// parts of the application register descriptors in a Registry; each
// descriptor may carry a renderer factory producing markdown content, a
// table, or an ordered mix of both, wrapped in a live-updating envelope.
//
// The package also owns the built-in Runtime Status feature, which is never
// registered externally: it synthesizes a markdown report of an extension's
// activation timing, uncaught errors, messages and per-feature usage
// counters from the extension host and the access service.
package features
