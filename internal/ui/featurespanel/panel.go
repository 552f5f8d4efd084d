// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package featurespanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/extview-tui/internal/access"
	"github.com/jeranaias/extview-tui/internal/event"
	"github.com/jeranaias/extview-tui/internal/extension"
	"github.com/jeranaias/extview-tui/internal/features"
	"github.com/jeranaias/extview-tui/internal/ui/components"
	"github.com/jeranaias/extview-tui/internal/ui/styles"
)

// =============================================================================
// PANEL
// =============================================================================

// RefreshMsg asks the panel to recompute its applicable features. Emitted
// when the host reports a status change for the panel's extension.
type RefreshMsg struct{}

// AccessChangedMsg schedules a repaint after an access-data or enablement
// change for the panel's extension. List rows read the access service at
// render time, so delivering the message is enough.
type AccessChangedMsg struct{}

// toggleTag prefixes confirmation-dialog tags for access toggles.
const toggleTag = "toggle:"

// Config wires the panel's collaborators.
type Config struct {
	Theme      *styles.Theme
	Registry   *features.Registry
	Builtin    features.Descriptor
	Host       extension.StatusProvider
	Access     access.Service
	Manifest   extension.Manifest
	Convention components.ModifierConvention

	// WordWrap caps the detail body's content width. Zero means the pane
	// width decides.
	WordWrap int

	// OpenLink navigates an activated link. Nil disables link activation.
	OpenLink func(href string) error

	// OnError receives activation failures and other recoverable errors.
	OnError func(error)

	// InitialFeature selects a feature by id at construction. Empty or
	// unknown ids fall back to the first applicable feature.
	InitialFeature string

	// Notify posts messages onto the UI loop for events raised off it.
	Notify func(tea.Msg)
}

// Panel is the extension features panel: a feature list on the left and a
// detail view for the selected feature on the right. With no applicable
// features it shows a placeholder instead of the split.
type Panel struct {
	cfg   Config
	theme *styles.Theme

	applicable  []features.Descriptor
	featureList list.Model
	detail      *DetailView
	dialog      *components.ConfirmDialog
	placeholder *components.Placeholder

	subs event.Set

	width  int
	height int
}

// NewPanel builds the panel for one extension.
func NewPanel(cfg Config) *Panel {
	if cfg.Notify == nil {
		cfg.Notify = func(tea.Msg) {}
	}

	p := &Panel{
		cfg:         cfg,
		theme:       cfg.Theme,
		dialog:      components.NewConfirmDialog(cfg.Theme),
		placeholder: components.NewPlaceholder(cfg.Theme, "No features contributed."),
	}

	p.subs.Add(cfg.Host.OnDidChangeStatus(func(ids []string) {
		for _, id := range ids {
			if id == cfg.Manifest.ID {
				cfg.Notify(RefreshMsg{})
				return
			}
		}
	}))

	// Access events fire off the UI loop; rows and headers pull fresh state
	// on the repaint these messages schedule.
	p.subs.Add(cfg.Access.OnDidChangeData(func(c access.Change) {
		if c.Extension == cfg.Manifest.ID {
			cfg.Notify(AccessChangedMsg{})
		}
	}))
	p.subs.Add(cfg.Access.OnDidChangeEnablement(func(c access.EnablementChange) {
		if c.Extension == cfg.Manifest.ID {
			cfg.Notify(AccessChangedMsg{})
		}
	}))

	p.refresh(cfg.InitialFeature)
	return p
}

// refresh recomputes the applicable features and rebuilds the list,
// preferring to keep preferredID selected.
func (p *Panel) refresh(preferredID string) {
	p.applicable = features.Applicable(p.cfg.Registry, p.cfg.Builtin, p.cfg.Manifest)

	if len(p.applicable) == 0 {
		p.closeDetail()
		p.featureList = list.Model{}
		return
	}

	items := make([]list.Item, 0, len(p.applicable))
	selected := 0
	for i, d := range p.applicable {
		items = append(items, featureItem{descriptor: d})
		if d.ID == preferredID {
			selected = i
		}
	}

	delegate := featureDelegate{
		theme:       p.theme,
		access:      p.cfg.Access,
		extensionID: p.cfg.Manifest.ID,
	}

	listWidth, listHeight := p.listArea()
	l := list.New(items, delegate, listWidth, listHeight)
	l.Title = "Features"
	l.Styles.Title = p.theme.ListTitle
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Select(selected)
	p.featureList = l

	p.selectFeature(p.applicable[selected])
}

// selectFeature shows the feature in the detail pane. Re-selecting the
// feature already shown is a no-op; anything else tears the old view down
// and builds a fresh one at the stored size.
func (p *Panel) selectFeature(d features.Descriptor) {
	if p.detail != nil && p.detail.FeatureID() == d.ID {
		return
	}
	p.closeDetail()

	detailWidth, detailHeight := p.detailArea()
	p.detail = newDetailView(detailConfig{
		theme:      p.theme,
		access:     p.cfg.Access,
		manifest:   p.cfg.Manifest,
		descriptor: d,
		convention: p.cfg.Convention,
		wordWrap:   p.cfg.WordWrap,
		opener:     p.cfg.OpenLink,
		onError:    p.cfg.OnError,
		notify:     func(m ContentChangedMsg) { p.cfg.Notify(m) },
	}, detailWidth, detailHeight)
}

// closeDetail disposes the current detail view, if any.
func (p *Panel) closeDetail() {
	if p.detail != nil {
		p.detail.Dispose()
		p.detail = nil
	}
}

// Selected returns the descriptor shown in the detail pane.
func (p *Panel) Selected() (features.Descriptor, bool) {
	if p.detail == nil {
		return features.Descriptor{}, false
	}
	d, ok := p.cfg.Registry.Lookup(p.detail.FeatureID())
	if !ok && p.detail.FeatureID() == p.cfg.Builtin.ID {
		return p.cfg.Builtin, true
	}
	return d, ok
}

// ApplyConfig re-applies reloaded display settings. The detail view bakes
// wrap width and modifier convention in at construction, so it is rebuilt
// for the same feature.
func (p *Panel) ApplyConfig(wordWrap int, convention components.ModifierConvention) {
	p.cfg.WordWrap = wordWrap
	p.cfg.Convention = convention

	if p.detail == nil {
		return
	}
	d, ok := p.Selected()
	if !ok {
		return
	}
	p.closeDetail()
	p.selectFeature(d)
}

// =============================================================================
// LAYOUT
// =============================================================================

// SetSize lays the panel out. The list takes a third of the width, the
// detail pane the rest.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height

	p.placeholder.SetSize(width, height)
	p.dialog.SetSize(width, height)

	if len(p.applicable) > 0 {
		listWidth, listHeight := p.listArea()
		p.featureList.SetSize(listWidth, listHeight)
	}
	if p.detail != nil {
		p.detail.SetSize(p.detailArea())
	}
}

// listArea returns the list pane dimensions.
func (p *Panel) listArea() (int, int) {
	w := p.width / 3
	if w < 24 {
		w = 24
	}
	h := p.height - 2
	if h < 5 {
		h = 5
	}
	return w, h
}

// detailArea returns the detail pane dimensions.
func (p *Panel) detailArea() (int, int) {
	listWidth, _ := p.listArea()
	w := p.width - listWidth - 3
	if w < 30 {
		w = 30
	}
	h := p.height - 2
	if h < 5 {
		h = 5
	}
	return w, h
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles input and internal messages.
func (p *Panel) Update(msg tea.Msg) tea.Cmd {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		p.SetSize(size.Width, size.Height)
		return nil
	}

	// A visible dialog captures everything else.
	if p.dialog.IsVisible() {
		cmd, _ := p.dialog.Update(msg)
		return cmd
	}

	switch m := msg.(type) {
	case RefreshMsg:
		preferred := ""
		if p.detail != nil {
			preferred = p.detail.FeatureID()
		}
		p.refresh(preferred)
		return nil

	case ContentChangedMsg:
		// The change handler only stored the body; push it into the
		// viewport here, on the UI loop.
		if p.detail != nil && p.detail.FeatureID() == m.FeatureID {
			p.detail.applyContent()
		}
		return nil

	case AccessChangedMsg:
		// Rows and headers read the access service during View.
		return nil

	case components.ConfirmResultMsg:
		return p.handleToggleResult(m)

	case tea.KeyMsg:
		return p.handleKey(m)
	}

	return nil
}

// handleKey routes keys to the list, the detail scroll, or the toggle.
func (p *Panel) handleKey(key tea.KeyMsg) tea.Cmd {
	if len(p.applicable) == 0 {
		return nil
	}

	switch key.String() {
	case "up", "k", "down", "j":
		var cmd tea.Cmd
		p.featureList, cmd = p.featureList.Update(key)
		if item, ok := p.featureList.SelectedItem().(featureItem); ok {
			p.selectFeature(item.descriptor)
		}
		return cmd

	case "pgup", "ctrl+u":
		if p.detail != nil {
			p.detail.ScrollUp()
		}
		return nil

	case "pgdown", "ctrl+d":
		if p.detail != nil {
			p.detail.ScrollDown()
		}
		return nil

	case "o":
		if p.detail != nil {
			p.detail.ActivateNextLink()
		}
		return nil

	case "a":
		return p.promptToggle()
	}

	return nil
}

// promptToggle opens the confirmation dialog for the selected feature's
// access toggle.
func (p *Panel) promptToggle() tea.Cmd {
	if p.detail == nil || !p.detail.CanToggleAccess() {
		return nil
	}

	d, ok := p.Selected()
	if !ok {
		return nil
	}

	action := p.detail.ToggleLabel()
	title := fmt.Sprintf("Enable '%s' Feature", d.Label)
	var message string
	if p.detail.Enabled() {
		message = fmt.Sprintf("Revoke %s access to %s? The extension will no longer be able to use this feature.",
			p.cfg.Manifest.Name(), d.Label)
	} else {
		message = fmt.Sprintf("Allow %s access to %s?", p.cfg.Manifest.Name(), d.Label)
	}

	p.dialog.Show(toggleTag+d.ID, title, message, action, p.detail.Enabled())
	return nil
}

// handleToggleResult applies a confirmed toggle. Cancel leaves the
// enablement untouched.
func (p *Panel) handleToggleResult(result components.ConfirmResultMsg) tea.Cmd {
	if !result.Confirmed {
		return nil
	}
	featureID, ok := strings.CutPrefix(result.Tag, toggleTag)
	if !ok {
		return nil
	}
	enabled := p.cfg.Access.IsEnabled(p.cfg.Manifest.ID, featureID)
	p.cfg.Access.SetEnablement(p.cfg.Manifest.ID, featureID, !enabled)
	return nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the panel.
func (p *Panel) View() string {
	if p.dialog.IsVisible() {
		return p.dialog.View()
	}

	if len(p.applicable) == 0 {
		return p.placeholder.View()
	}

	left := p.theme.SplitBorder.Render(p.featureList.View())

	var right string
	if p.detail != nil {
		right = p.theme.DetailBorder.Render(p.detail.View())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// Dispose releases the panel's subscriptions and the detail view.
func (p *Panel) Dispose() {
	p.subs.Close()
	p.closeDetail()
}
