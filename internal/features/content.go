// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package features

import (
	"sync"

	"github.com/jeranaias/extview-tui/internal/event"
)

// =============================================================================
// CONTENT KINDS
// =============================================================================

// Kind identifies which content a renderer produces.
type Kind int

const (
	KindMarkdown Kind = iota
	KindTable
	KindMarkdownTable
)

// String returns the wire-ish name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMarkdown:
		return "markdown"
	case KindTable:
		return "table"
	case KindMarkdownTable:
		return "markdown+table"
	default:
		return "unknown"
	}
}

// =============================================================================
// MARKDOWN
// =============================================================================

// Markdown is a piece of markdown content. Trusted content may carry
// command: links that the panel is allowed to execute through the host
// opener; untrusted content has command execution stripped.
type Markdown struct {
	Text    string
	Trusted bool
}

func (Markdown) isFragment() {}

// =============================================================================
// TABLE
// =============================================================================

// Table is tabular content: a header row plus data rows of cells.
type Table struct {
	Headers []string
	Rows    [][]Cell
}

func (Table) isFragment() {}

// Cell is one table cell. The concrete types below are the only
// implementations; the panel dispatches on them when rendering.
type Cell interface {
	isCell()
}

// TextCell is a plain string cell.
type TextCell string

func (TextCell) isCell() {}

// MarkdownCell renders its content as inline markdown.
type MarkdownCell Markdown

func (MarkdownCell) isCell() {}

// KeybindingCell renders a key chord ("ctrl+shift+p") through the
// keybinding-label widget, following the OS modifier convention.
type KeybindingCell struct {
	Chord string
}

func (KeybindingCell) isCell() {}

// ColorCell renders a swatch plus the hex code text.
type ColorCell struct {
	Hex string
}

func (ColorCell) isCell() {}

// CellGroup concatenates the renderings of its elements in order.
type CellGroup []Cell

func (CellGroup) isCell() {}

// =============================================================================
// FRAGMENTS
// =============================================================================

// Fragment is one element of markdown+table content: either Markdown or
// Table.
type Fragment interface {
	isFragment()
}

// =============================================================================
// RENDERED DATA ENVELOPE
// =============================================================================

// RenderedData wraps renderer output together with its change feed. The
// consuming view must call Dispose on teardown so the renderer can release
// the subscriptions backing OnDidChange.
type RenderedData[T any] struct {
	// Data is the content at render time.
	Data T

	// OnDidChange fires with recomputed content. Nil for static content.
	OnDidChange *event.Emitter[T]

	once    sync.Once
	dispose func()
}

// NewRenderedData builds an envelope. dispose may be nil.
func NewRenderedData[T any](data T, onDidChange *event.Emitter[T], dispose func()) *RenderedData[T] {
	return &RenderedData[T]{Data: data, OnDidChange: onDidChange, dispose: dispose}
}

// Dispose releases the renderer's internal subscriptions. Idempotent.
func (r *RenderedData[T]) Dispose() {
	r.once.Do(func() {
		if r.dispose != nil {
			r.dispose()
		}
	})
}
