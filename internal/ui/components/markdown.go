// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/extview-tui/internal/features"
	"github.com/jeranaias/extview-tui/internal/ui/styles"
)

// =============================================================================
// MARKDOWN VIEW
// =============================================================================

// iconPattern matches $(name) icon placeholders in markdown text.
var iconPattern = regexp.MustCompile(`\$\(([a-z][a-z0-9-]*)\)`)

// linkPattern matches inline markdown links. Used for link extraction and by
// the manual fallback renderer.
var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// icons maps placeholder names to terminal glyphs.
var icons = map[string]string{
	"error":   "✗",
	"warning": "⚠",
	"info":    "ℹ",
	"check":   "✓",
	"circle":  "●",
	"clock":   "◷",
	"gear":    "⚙",
	"key":     "⚿",
	"zap":     "⚡",
}

// Link is a hyperlink extracted from rendered markdown.
type Link struct {
	Label string
	HRef  string
}

// IsCommand reports whether the link targets an editor command rather than
// an external URL.
func (l Link) IsCommand() bool {
	return strings.HasPrefix(l.HRef, "command:")
}

// MarkdownView renders markdown fragments for the feature detail body.
// Rendering goes through glamour when a terminal renderer can be built and
// falls back to a simple manual pass otherwise.
type MarkdownView struct {
	renderer *glamour.TermRenderer
	width    int
	theme    *styles.Theme

	// links from the most recent Render call, in document order.
	links []Link

	// onError receives activation failures that should surface to the user.
	onError func(error)
}

// NewMarkdownView creates a markdown view wrapping at the given width.
func NewMarkdownView(theme *styles.Theme, width int, onError func(error)) *MarkdownView {
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		renderer = nil // fall back to manual rendering
	}
	return &MarkdownView{
		renderer: renderer,
		width:    width,
		theme:    theme,
		onError:  onError,
	}
}

// SetWidth changes the wrap width, rebuilding the glamour renderer.
func (v *MarkdownView) SetWidth(width int) {
	if width == v.width || width < 20 {
		return
	}
	v.width = width
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		renderer = nil
	}
	v.renderer = renderer
}

// Render renders a markdown fragment to styled terminal text and records the
// links it contains.
func (v *MarkdownView) Render(m features.Markdown) string {
	text := substituteIcons(m.Text)
	v.links = extractLinks(text)

	if v.renderer != nil {
		out, err := v.renderer.Render(text)
		if err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return v.renderFallback(text)
}

// Links returns the links found by the most recent Render, in order.
func (v *MarkdownView) Links() []Link {
	return v.links
}

// ActivateLink handles activation of a rendered link. Command links are only
// honored for trusted content; URL links always pass through. The opener
// callback performs the actual navigation.
func (v *MarkdownView) ActivateLink(link Link, trusted bool, opener func(href string) error) {
	if link.IsCommand() && !trusted {
		return
	}
	if opener == nil {
		return
	}
	if err := opener(link.HRef); err != nil && v.onError != nil {
		v.onError(fmt.Errorf("open %s: %w", link.HRef, err))
	}
}

// =============================================================================
// FALLBACK RENDERING
// =============================================================================

// renderFallback renders markdown without glamour: headings and bullets get
// minimal styling, fenced code blocks go through chroma.
func (v *MarkdownView) renderFallback(text string) string {
	var out strings.Builder
	lines := strings.Split(text, "\n")

	inCode := false
	var codeLang string
	var codeLines []string

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			if inCode {
				out.WriteString(highlightCode(strings.Join(codeLines, "\n"), codeLang))
				out.WriteString("\n")
				codeLines = nil
				inCode = false
			} else {
				codeLang = strings.TrimPrefix(line, "```")
				inCode = true
			}
			continue
		}
		if inCode {
			codeLines = append(codeLines, line)
			continue
		}

		switch {
		case strings.HasPrefix(line, "### "):
			out.WriteString(v.theme.DetailTitle.Render(strings.TrimPrefix(line, "### ")))
		case strings.HasPrefix(line, "## "):
			out.WriteString(v.theme.DetailTitle.Render(strings.TrimPrefix(line, "## ")))
		case strings.HasPrefix(line, "# "):
			out.WriteString(v.theme.DetailTitle.Render(strings.TrimPrefix(line, "# ")))
		case strings.HasPrefix(line, "- "):
			out.WriteString("  • " + renderInline(strings.TrimPrefix(line, "- ")))
		default:
			out.WriteString(renderInline(line))
		}
		out.WriteString("\n")
	}

	if inCode && len(codeLines) > 0 {
		out.WriteString(highlightCode(strings.Join(codeLines, "\n"), codeLang))
		out.WriteString("\n")
	}

	return strings.TrimRight(out.String(), "\n")
}

// renderInline strips inline emphasis markers and rewrites links as labels.
func renderInline(line string) string {
	line = linkPattern.ReplaceAllString(line, "$1")
	line = strings.ReplaceAll(line, "**", "")
	line = strings.ReplaceAll(line, "`", "")
	return line
}

// substituteIcons replaces $(name) placeholders with glyphs. Unknown names
// are left as-is.
func substituteIcons(text string) string {
	return iconPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := iconPattern.FindStringSubmatch(match)[1]
		if glyph, ok := icons[name]; ok {
			return glyph
		}
		return match
	})
}

// extractLinks collects inline links in document order.
func extractLinks(text string) []Link {
	matches := linkPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		links = append(links, Link{Label: m[1], HRef: m[2]})
	}
	return links
}
