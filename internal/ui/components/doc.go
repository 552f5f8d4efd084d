// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual widgets the features panel is
// assembled from: the confirmation dialog, markdown and table views,
// keybinding labels, color swatches and status banners.
//
// Components follow a common shape: construct with a *styles.Theme, size
// with SetSize or a width parameter, produce output with View or Render.
// Components hold no subscriptions themselves; live updating is owned by
// the views in ui/featurespanel.
package components
