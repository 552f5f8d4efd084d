// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package featurespanel

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jeranaias/extview-tui/internal/access"
	"github.com/jeranaias/extview-tui/internal/event"
	"github.com/jeranaias/extview-tui/internal/extension"
	"github.com/jeranaias/extview-tui/internal/features"
	"github.com/jeranaias/extview-tui/internal/ui/components"
	"github.com/jeranaias/extview-tui/internal/ui/styles"
)

// testMarkdownRenderer serves fixed markdown plus a live change feed.
type testMarkdownRenderer struct {
	text     string
	emitter  *event.Emitter[features.Markdown]
	built    *int
	disposed *int
}

func (r *testMarkdownRenderer) Kind() features.Kind { return features.KindMarkdown }

func (r *testMarkdownRenderer) ShouldRender(extension.Manifest) bool { return true }

func (r *testMarkdownRenderer) Dispose() {
	if r.disposed != nil {
		*r.disposed++
	}
}

func (r *testMarkdownRenderer) Render(extension.Manifest) *features.RenderedData[features.Markdown] {
	return features.NewRenderedData(features.Markdown{Text: r.text}, r.emitter, nil)
}

// testTableRenderer serves a fixed table.
type testTableRenderer struct{}

func (testTableRenderer) Kind() features.Kind                  { return features.KindTable }
func (testTableRenderer) ShouldRender(extension.Manifest) bool { return true }
func (testTableRenderer) Dispose()                             {}

func (testTableRenderer) Render(extension.Manifest) *features.RenderedData[features.Table] {
	return features.NewRenderedData(features.Table{
		Headers: []string{"Setting", "Value"},
		Rows: [][]features.Cell{
			{features.TextCell("editor.fontSize"), features.TextCell("14")},
		},
	}, nil, nil)
}

func testManifest() extension.Manifest {
	return extension.Manifest{
		ID:          "vendor.sample",
		DisplayName: "Sample Extension",
		Version:     "1.2.0",
		Main:        "./out/main.js",
	}
}

func markdownDescriptor(rend *testMarkdownRenderer, built *int) features.Descriptor {
	return features.Descriptor{
		ID:     "docs",
		Label:  "Documentation",
		Access: features.AccessPolicy{CanToggle: true},
		Renderer: func() features.Renderer {
			if built != nil {
				*built++
			}
			return rend
		},
	}
}

func newTestDetailView(t *testing.T, svc access.Service, d features.Descriptor, notify func(ContentChangedMsg)) *DetailView {
	t.Helper()
	return newDetailView(detailConfig{
		theme:      styles.NewTheme(),
		access:     svc,
		manifest:   testManifest(),
		descriptor: d,
		convention: components.ConventionLinux,
		notify:     notify,
	}, 60, 20)
}

func TestDetailRendersMarkdown(t *testing.T) {
	rend := &testMarkdownRenderer{text: "# Overview\n\nHello from the feature."}
	v := newTestDetailView(t, access.NewManager(), markdownDescriptor(rend, nil), nil)
	defer v.Dispose()

	view := v.View()
	for _, want := range []string{"Documentation", "Hello from the feature"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDetailRendersTable(t *testing.T) {
	d := features.Descriptor{
		ID:       "settings",
		Label:    "Settings",
		Renderer: func() features.Renderer { return testTableRenderer{} },
	}
	v := newTestDetailView(t, access.NewManager(), d, nil)
	defer v.Dispose()

	view := v.View()
	for _, want := range []string{"Setting", "editor.fontSize", "14"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDetailContentChangeReplacesBody(t *testing.T) {
	emitter := event.NewEmitter[features.Markdown]()
	rend := &testMarkdownRenderer{text: "first version", emitter: emitter}

	var notified []string
	v := newTestDetailView(t, access.NewManager(), markdownDescriptor(rend, nil), func(m ContentChangedMsg) {
		notified = append(notified, m.FeatureID)
	})
	defer v.Dispose()

	if !strings.Contains(v.View(), "first version") {
		t.Fatalf("initial content missing:\n%s", v.View())
	}

	emitter.Fire(features.Markdown{Text: "second version"})

	// The handler only stores the body; the viewport keeps the old content
	// until the panel applies it on the UI loop.
	if !strings.Contains(v.View(), "first version") {
		t.Errorf("viewport replaced before apply:\n%s", v.View())
	}
	if len(notified) != 1 || notified[0] != "docs" {
		t.Fatalf("notify calls = %v", notified)
	}

	v.applyContent()

	view := v.View()
	if !strings.Contains(view, "second version") {
		t.Errorf("updated content missing:\n%s", view)
	}
	if strings.Contains(view, "first version") {
		t.Errorf("stale content still present:\n%s", view)
	}
}

func TestDetailContentChangeOffUILoop(t *testing.T) {
	emitter := event.NewEmitter[features.Markdown]()
	rend := &testMarkdownRenderer{text: "revision 0", emitter: emitter}

	v := newTestDetailView(t, access.NewManager(), markdownDescriptor(rend, nil), nil)
	defer v.Dispose()

	// Fire content changes from another goroutine while the UI loop keeps
	// painting; handlers must not touch the viewport.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 50; i++ {
			emitter.Fire(features.Markdown{Text: fmt.Sprintf("revision %d", i)})
		}
	}()

paint:
	for {
		select {
		case <-done:
			break paint
		default:
			_ = v.View()
			v.SetSize(60, 20)
		}
	}

	v.applyContent()
	if !strings.Contains(v.View(), "revision 50") {
		t.Errorf("latest content not applied:\n%s", v.View())
	}
}

func TestDetailDisposeUnsubscribes(t *testing.T) {
	emitter := event.NewEmitter[features.Markdown]()
	disposed := 0
	rend := &testMarkdownRenderer{text: "content", emitter: emitter, disposed: &disposed}

	v := newTestDetailView(t, access.NewManager(), markdownDescriptor(rend, nil), nil)

	if emitter.ListenerCount() != 1 {
		t.Fatalf("listener count = %d, want 1", emitter.ListenerCount())
	}

	v.Dispose()

	if emitter.ListenerCount() != 0 {
		t.Errorf("listener count after dispose = %d, want 0", emitter.ListenerCount())
	}
	if disposed != 1 {
		t.Errorf("renderer disposed %d times, want 1", disposed)
	}

	// Idempotent.
	v.Dispose()
	if disposed != 1 {
		t.Errorf("second Dispose re-disposed the renderer")
	}
}

func TestDetailToggleLabelTracksEnablement(t *testing.T) {
	svc := access.NewManager()
	rend := &testMarkdownRenderer{text: "content"}
	v := newTestDetailView(t, svc, markdownDescriptor(rend, nil), nil)
	defer v.Dispose()

	if got := v.ToggleLabel(); got != "Revoke Access" {
		t.Fatalf("label for enabled pair = %q", got)
	}

	// A decision made outside the view must re-sync the label.
	svc.SetEnablement("vendor.sample", "docs", false)

	if got := v.ToggleLabel(); got != "Allow Access" {
		t.Errorf("label after revoke = %q", got)
	}
}

func TestDetailLinkActivation(t *testing.T) {
	var opened []string
	opener := func(href string) error {
		opened = append(opened, href)
		return nil
	}

	rend := &testMarkdownRenderer{
		text: "See [docs](https://example.com/docs) or run [Reload](command:reload).",
	}
	v := newDetailView(detailConfig{
		theme:      styles.NewTheme(),
		access:     access.NewManager(),
		manifest:   testManifest(),
		descriptor: markdownDescriptor(rend, nil),
		convention: components.ConventionLinux,
		opener:     opener,
	}, 60, 20)
	defer v.Dispose()

	// Untrusted content: the URL opens, the command link is skipped, then
	// the cursor wraps back to the URL.
	v.ActivateNextLink()
	v.ActivateNextLink()
	v.ActivateNextLink()

	want := []string{"https://example.com/docs", "https://example.com/docs"}
	if len(opened) != len(want) || opened[0] != want[0] || opened[1] != want[1] {
		t.Errorf("opened = %v, want %v", opened, want)
	}
}

func TestDetailTrustedCommandLink(t *testing.T) {
	var opened []string
	opener := func(href string) error {
		opened = append(opened, href)
		return nil
	}

	rend := &trustedMarkdownRenderer{text: "Run [Reload](command:reload)."}
	v := newDetailView(detailConfig{
		theme:      styles.NewTheme(),
		access:     access.NewManager(),
		manifest:   testManifest(),
		descriptor: features.Descriptor{
			ID:       "docs",
			Label:    "Documentation",
			Renderer: func() features.Renderer { return rend },
		},
		convention: components.ConventionLinux,
		opener:     opener,
	}, 60, 20)
	defer v.Dispose()

	v.ActivateNextLink()
	if len(opened) != 1 || opened[0] != "command:reload" {
		t.Errorf("opened = %v, want the command link", opened)
	}
}

// trustedMarkdownRenderer marks its content as trusted.
type trustedMarkdownRenderer struct {
	text string
}

func (r *trustedMarkdownRenderer) Kind() features.Kind                  { return features.KindMarkdown }
func (r *trustedMarkdownRenderer) ShouldRender(extension.Manifest) bool { return true }
func (r *trustedMarkdownRenderer) Dispose()                             {}

func (r *trustedMarkdownRenderer) Render(extension.Manifest) *features.RenderedData[features.Markdown] {
	return features.NewRenderedData(features.Markdown{Text: r.text, Trusted: true}, nil, nil)
}

func TestDetailBannerFromCurrentStatus(t *testing.T) {
	svc := access.NewManager()
	svc.RecordAccess("vendor.sample", "docs", &access.Status{
		Severity: extension.SeverityWarning,
		Message:  "rate limited",
	})

	rend := &testMarkdownRenderer{text: "content"}
	v := newTestDetailView(t, svc, markdownDescriptor(rend, nil), nil)
	defer v.Dispose()

	if !strings.Contains(v.View(), "rate limited") {
		t.Errorf("banner missing:\n%s", v.View())
	}
}
