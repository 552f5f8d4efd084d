// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package featurespanel implements the extension features panel: a split
// view listing the features applicable to one extension on the left and
// rendering the selected feature's content on the right. Feature content
// comes from plugin renderers registered in the features package; access
// toggles go through a confirmation dialog before they take effect.
package featurespanel
