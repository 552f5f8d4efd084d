// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package featurespanel

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/extview-tui/internal/access"
	"github.com/jeranaias/extview-tui/internal/event"
	"github.com/jeranaias/extview-tui/internal/extension"
	"github.com/jeranaias/extview-tui/internal/features"
	"github.com/jeranaias/extview-tui/internal/ui/components"
	"github.com/jeranaias/extview-tui/internal/ui/styles"
)

// =============================================================================
// DETAIL VIEW
// =============================================================================

// ContentChangedMsg reports that a feature's rendered content was replaced
// and the panel should apply it on the next pass.
type ContentChangedMsg struct {
	FeatureID string
}

// renderedLink pairs an extracted link with the trust of the fragment it
// came from.
type renderedLink struct {
	link    components.Link
	trusted bool
}

// detailConfig bundles the collaborators a detail view needs.
type detailConfig struct {
	theme      *styles.Theme
	access     access.Service
	manifest   extension.Manifest
	descriptor features.Descriptor
	convention components.ModifierConvention
	wordWrap   int
	opener     func(href string) error
	onError    func(error)
	notify     func(ContentChangedMsg)
}

// DetailView renders one feature for one extension: a header with the
// feature label and optional access toggle, a status banner when the
// feature reported a status at construction time, and the renderer's
// content in a scrollable body.
//
// The view owns exactly one renderer instance. Content changes replace the
// whole body. Change events arrive on arbitrary goroutines; handlers only
// store the recomputed body under the mutex and post a ContentChangedMsg,
// and the panel calls applyContent on the UI loop. The viewport is touched
// from the UI loop only. Dispose must be called before the view is dropped.
type DetailView struct {
	cfg      detailConfig
	theme    *styles.Theme
	markdown *components.MarkdownView
	table    *components.TableView
	banner   *components.StatusBanner
	viewport viewport.Model

	renderer        features.Renderer
	disposeEnvelope func()
	subs            event.Set

	notify func(ContentChangedMsg)

	mu         sync.Mutex
	body       string
	dirty      bool
	links      []renderedLink
	linkCursor int
	enabled    bool

	width  int
	height int
}

// newDetailView builds the view and performs the initial render.
func newDetailView(cfg detailConfig, width, height int) *DetailView {
	if cfg.notify == nil {
		cfg.notify = func(ContentChangedMsg) {}
	}

	v := &DetailView{
		cfg:     cfg,
		theme:   cfg.theme,
		notify:  cfg.notify,
		enabled: cfg.access.IsEnabled(cfg.manifest.ID, cfg.descriptor.ID),
	}

	bodyWidth := v.bodyWidth(width)
	v.markdown = components.NewMarkdownView(cfg.theme, bodyWidth, cfg.onError)
	v.table = components.NewTableView(cfg.theme, cfg.convention, bodyWidth)
	v.viewport = viewport.New(bodyWidth, 10)

	// The banner reflects the status at construction only.
	if data, ok := cfg.access.Data(cfg.manifest.ID, cfg.descriptor.ID); ok {
		if data.Current != nil && data.Current.Status != nil {
			v.banner = components.NewStatusBanner(cfg.theme, data.Current.Status.Severity, data.Current.Status.Message)
		}
	}

	// Keep the toggle label in sync with decisions made elsewhere.
	v.subs.Add(cfg.access.OnDidChangeEnablement(func(c access.EnablementChange) {
		if c.Extension != cfg.manifest.ID || c.Feature != cfg.descriptor.ID {
			return
		}
		v.mu.Lock()
		v.enabled = c.Enabled
		v.mu.Unlock()
		v.notify(ContentChangedMsg{FeatureID: cfg.descriptor.ID})
	}))

	v.render()
	v.SetSize(width, height)
	v.applyContent()
	return v
}

// FeatureID returns the id of the feature this view renders.
func (v *DetailView) FeatureID() string {
	return v.cfg.descriptor.ID
}

// CanToggleAccess reports whether the header offers an access toggle.
func (v *DetailView) CanToggleAccess() bool {
	return v.cfg.descriptor.Access.CanToggle
}

// Enabled reports the toggle state the header currently shows.
func (v *DetailView) Enabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.enabled
}

// =============================================================================
// RENDERING
// =============================================================================

// render constructs the renderer, dispatches on its kind, and stores the
// body. Subsequent content changes replace the body wholesale through the
// envelope's change feed.
func (v *DetailView) render() {
	if v.cfg.descriptor.Renderer == nil {
		return
	}
	r := v.cfg.descriptor.Renderer()
	v.renderer = r

	m := v.cfg.manifest
	id := v.cfg.descriptor.ID

	switch rr := r.(type) {
	case features.MarkdownRenderer:
		rd := rr.Render(m)
		v.setBody(v.renderMarkdown(rd.Data))
		if rd.OnDidChange != nil {
			v.subs.Add(rd.OnDidChange.Subscribe(func(md features.Markdown) {
				v.setBody(v.renderMarkdown(md))
				v.notify(ContentChangedMsg{FeatureID: id})
			}))
		}
		v.disposeEnvelope = rd.Dispose

	case features.TableRenderer:
		rd := rr.Render(m)
		v.setBody(v.table.Render(rd.Data), nil)
		if rd.OnDidChange != nil {
			v.subs.Add(rd.OnDidChange.Subscribe(func(t features.Table) {
				v.setBody(v.table.Render(t), nil)
				v.notify(ContentChangedMsg{FeatureID: id})
			}))
		}
		v.disposeEnvelope = rd.Dispose

	case features.CompositeRenderer:
		rd := rr.Render(m)
		v.setBody(v.renderFragments(rd.Data))
		if rd.OnDidChange != nil {
			v.subs.Add(rd.OnDidChange.Subscribe(func(fs []features.Fragment) {
				v.setBody(v.renderFragments(fs))
				v.notify(ContentChangedMsg{FeatureID: id})
			}))
		}
		v.disposeEnvelope = rd.Dispose
	}
}

// renderMarkdown renders one markdown fragment and collects its links.
func (v *DetailView) renderMarkdown(m features.Markdown) (string, []renderedLink) {
	body := v.markdown.Render(m)
	var links []renderedLink
	for _, l := range v.markdown.Links() {
		links = append(links, renderedLink{link: l, trusted: m.Trusted})
	}
	return body, links
}

// renderFragments renders an ordered mix of markdown and table fragments.
func (v *DetailView) renderFragments(fragments []features.Fragment) (string, []renderedLink) {
	parts := make([]string, 0, len(fragments))
	var links []renderedLink
	for _, f := range fragments {
		switch frag := f.(type) {
		case features.Markdown:
			body, fragLinks := v.renderMarkdown(frag)
			parts = append(parts, body)
			links = append(links, fragLinks...)
		case features.Table:
			parts = append(parts, v.table.Render(frag))
		}
	}
	return strings.Join(parts, "\n\n"), links
}

// setBody stores the replacement body and its links. Called from change
// handlers on arbitrary goroutines; the viewport is not touched here.
func (v *DetailView) setBody(body string, links []renderedLink) {
	v.mu.Lock()
	v.body = body
	v.links = links
	v.linkCursor = 0
	v.dirty = true
	v.mu.Unlock()
}

// applyContent pushes a stored body into the viewport. Must run on the UI
// loop; the panel calls it when handling ContentChangedMsg.
func (v *DetailView) applyContent() {
	v.mu.Lock()
	body := v.body
	dirty := v.dirty
	v.dirty = false
	v.mu.Unlock()

	if dirty {
		v.viewport.SetContent(body)
		v.viewport.GotoTop()
	}
}

// =============================================================================
// LINK ACTIVATION
// =============================================================================

// ActivateNextLink activates the rendered links in document order, cycling
// back to the first. Command links only fire for trusted fragments;
// activation failures go to the configured error handler.
func (v *DetailView) ActivateNextLink() {
	v.mu.Lock()
	if len(v.links) == 0 {
		v.mu.Unlock()
		return
	}
	l := v.links[v.linkCursor%len(v.links)]
	v.linkCursor++
	v.mu.Unlock()

	v.markdown.ActivateLink(l.link, l.trusted, v.cfg.opener)
}

// =============================================================================
// LAYOUT
// =============================================================================

// bodyWidth derives the content width from the pane width, capped at the
// configured word-wrap column.
func (v *DetailView) bodyWidth(width int) int {
	w := width - 2
	if v.cfg.wordWrap > 0 && w > v.cfg.wordWrap {
		w = v.cfg.wordWrap
	}
	if w < 20 {
		w = 20
	}
	return w
}

// SetSize lays the view out in the given area. Must run on the UI loop.
func (v *DetailView) SetSize(width, height int) {
	v.width = width
	v.height = height

	bodyWidth := v.bodyWidth(width)
	v.markdown.SetWidth(bodyWidth)
	v.table.SetWidth(bodyWidth)
	if v.banner != nil {
		v.banner.SetWidth(bodyWidth)
	}

	headerHeight := lipgloss.Height(v.renderHeader())
	bodyHeight := height - headerHeight
	if v.banner != nil {
		bodyHeight--
	}
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	v.viewport.Width = bodyWidth
	v.viewport.Height = bodyHeight

	v.mu.Lock()
	body := v.body
	v.mu.Unlock()
	v.viewport.SetContent(body)
}

// ScrollUp moves the body up one line.
func (v *DetailView) ScrollUp() { v.viewport.LineUp(1) }

// ScrollDown moves the body down one line.
func (v *DetailView) ScrollDown() { v.viewport.LineDown(1) }

// renderHeader renders the feature label, description, and toggle hint.
func (v *DetailView) renderHeader() string {
	var b strings.Builder
	b.WriteString(v.theme.DetailTitle.Render(v.cfg.descriptor.Label))
	if v.cfg.descriptor.Description != "" {
		b.WriteString("\n")
		b.WriteString(v.theme.DetailDescription.Render(v.cfg.descriptor.Description))
	}
	if v.CanToggleAccess() {
		b.WriteString("\n")
		b.WriteString(v.theme.Hint.Render("a: " + v.ToggleLabel()))
	}
	b.WriteString("\n")
	return b.String()
}

// ToggleLabel returns the action the toggle currently offers.
func (v *DetailView) ToggleLabel() string {
	if v.Enabled() {
		return "Revoke Access"
	}
	return "Allow Access"
}

// View renders the whole detail pane. Must run on the UI loop.
func (v *DetailView) View() string {
	sections := []string{v.renderHeader()}
	if v.banner != nil {
		sections = append(sections, v.banner.View())
	}
	sections = append(sections, v.viewport.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// =============================================================================
// TEARDOWN
// =============================================================================

// Dispose releases the subscriptions, the content envelope, and the
// renderer. Safe to call more than once.
func (v *DetailView) Dispose() {
	v.subs.Close()
	if v.disposeEnvelope != nil {
		v.disposeEnvelope()
		v.disposeEnvelope = nil
	}
	if v.renderer != nil {
		v.renderer.Dispose()
		v.renderer = nil
	}
}
