// extview - extension features panel for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/extview-tui/internal/access"
	"github.com/jeranaias/extview-tui/internal/config"
	"github.com/jeranaias/extview-tui/internal/extension"
	"github.com/jeranaias/extview-tui/internal/features"
	"github.com/jeranaias/extview-tui/internal/logging"
	"github.com/jeranaias/extview-tui/internal/ui/components"
	"github.com/jeranaias/extview-tui/internal/ui/featurespanel"
	"github.com/jeranaias/extview-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// =============================================================================
// APP MODEL
// =============================================================================

// configReloadedMsg carries a config picked up by the file watcher.
type configReloadedMsg struct {
	cfg *config.Config
}

type app struct {
	panel *featurespanel.Panel
	theme *styles.Theme
}

func (a *app) Init() tea.Cmd {
	return nil
}

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch m.String() {
		case "q", "ctrl+c":
			a.panel.Dispose()
			return a, tea.Quit
		}

	case configReloadedMsg:
		// Components hold the theme by pointer; re-resolving it in place
		// re-skins them on the next paint. Wrap and modifier settings are
		// baked into the detail view, which ApplyConfig rebuilds.
		*a.theme = *styles.NewThemeWithMode(m.cfg.UI.Theme)
		a.panel.ApplyConfig(
			m.cfg.UI.WordWrap,
			components.ConventionFor(m.cfg.Keybindings.Modifier, runtime.GOOS),
		)
		return a, func() tea.Msg { return featurespanel.RefreshMsg{} }
	}

	return a, a.panel.Update(msg)
}

// openLink hands an activated URL to the desktop opener.
func openLink(href string) error {
	cmd := "xdg-open"
	if runtime.GOOS == "darwin" {
		cmd = "open"
	}
	return exec.Command(cmd, href).Start()
}

func (a *app) View() string {
	return a.panel.View()
}

// =============================================================================
// DEMO EXTENSION HOST
// =============================================================================

// buildDemoHost loads a couple of simulated extensions and seeds their
// runtime state.
func buildDemoHost() *extension.Host {
	host := extension.NewHost()

	host.Load(extension.Manifest{
		ID:               "acme.color-tools",
		DisplayName:      "Acme Color Tools",
		Version:          "2.4.1",
		Main:             "./out/extension.js",
		ActivationEvents: []string{"onStartupFinished"},
	})
	host.SetActivation("acme.color-tools", extension.ActivationTimes{
		OnStartup:  true,
		ActivateMS: 38,
	})
	host.RecordMessage("acme.color-tools", extension.SeverityInfo, "color index built")

	host.Load(extension.Manifest{
		ID:               "acme.shortcuts",
		DisplayName:      "Acme Shortcut Pack",
		Version:          "1.0.3",
		Browser:          "./dist/web.js",
		ActivationEvents: []string{"onCommand:shortcuts.show"},
	})
	host.SetActivation("acme.shortcuts", extension.ActivationTimes{
		ActivationEvent: "onCommand:shortcuts.show",
		ActivateMS:      112,
	})
	host.RecordError("acme.shortcuts", "failed to read user keymap")

	return host
}

// seedAccessData records demo usage so the panel has history to show.
func seedAccessData(mgr *access.Manager) {
	mgr.RecordAccess("acme.color-tools", "colorPalette", nil)
	mgr.RecordAccess("acme.color-tools", "colorPalette", nil)
	mgr.RecordAccess("acme.shortcuts", "keybindings", &access.Status{
		Severity: extension.SeverityWarning,
		Message:  "2 conflicting chords ignored",
	})
}

// registerDemoFeatures contributes one renderer of each kind.
func registerDemoFeatures(reg *features.Registry) error {
	descriptors := []features.Descriptor{
		{
			ID:          "docs",
			Label:       "Documentation",
			Description: "What the extension ships",
			Access:      features.AccessPolicy{CanToggle: true},
			Renderer:    func() features.Renderer { return docsRenderer{} },
		},
		{
			ID:          "keybindings",
			Label:       "Keybindings",
			Description: "Chords the extension contributes",
			Access:      features.AccessPolicy{CanToggle: true},
			Renderer:    func() features.Renderer { return keybindingsRenderer{} },
		},
		{
			ID:          "colorPalette",
			Label:       "Color Palette",
			Description: "Theme colors the extension defines",
			Access:      features.AccessPolicy{CanToggle: true},
			Renderer:    func() features.Renderer { return paletteRenderer{} },
		},
	}
	for _, d := range descriptors {
		if err := reg.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// docsRenderer contributes static markdown.
type docsRenderer struct{}

func (docsRenderer) Kind() features.Kind                  { return features.KindMarkdown }
func (docsRenderer) ShouldRender(extension.Manifest) bool { return true }
func (docsRenderer) Dispose()                             {}

func (docsRenderer) Render(m extension.Manifest) *features.RenderedData[features.Markdown] {
	text := fmt.Sprintf("# %s\n\nVersion `%s`.\n\n"+
		"$(info) See [the manual](https://example.com/%s) for details.\n",
		m.Name(), m.Version, m.ID)
	return features.NewRenderedData(features.Markdown{Text: text}, nil, nil)
}

// keybindingsRenderer contributes a chord table.
type keybindingsRenderer struct{}

func (keybindingsRenderer) Kind() features.Kind { return features.KindTable }
func (keybindingsRenderer) Dispose()            {}

func (keybindingsRenderer) ShouldRender(m extension.Manifest) bool {
	return m.ID == "acme.shortcuts"
}

func (keybindingsRenderer) Render(extension.Manifest) *features.RenderedData[features.Table] {
	t := features.Table{
		Headers: []string{"Command", "Keybinding", "When"},
		Rows: [][]features.Cell{
			{features.TextCell("Show Shortcuts"), features.KeybindingCell{Chord: "ctrl+k ctrl+s"}, features.TextCell("editorFocus")},
			{features.TextCell("Repeat Last"), features.KeybindingCell{Chord: "ctrl+shift+."}, features.TextCell("")},
		},
	}
	return features.NewRenderedData(t, nil, nil)
}

// paletteRenderer mixes markdown and a color table.
type paletteRenderer struct{}

func (paletteRenderer) Kind() features.Kind { return features.KindMarkdownTable }
func (paletteRenderer) Dispose()            {}

func (paletteRenderer) ShouldRender(m extension.Manifest) bool {
	return m.ID == "acme.color-tools"
}

func (paletteRenderer) Render(extension.Manifest) *features.RenderedData[[]features.Fragment] {
	fragments := []features.Fragment{
		features.Markdown{Text: "### Contributed Colors\n\nApplied when the Acme theme is active."},
		features.Table{
			Headers: []string{"Token", "Color"},
			Rows: [][]features.Cell{
				{features.TextCell("editor.background"), features.CellGroup{
					features.ColorCell{Hex: "#1E1E2E"},
					features.TextCell("(dark)"),
				}},
				{features.TextCell("editor.foreground"), features.ColorCell{Hex: "#CDD6F4"}},
			},
		},
	}
	return features.NewRenderedData(fragments, nil, nil)
}

// =============================================================================
// MAIN
// =============================================================================

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("extview %s (%s)\n", Version, GitCommit)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "extview: stdout is not a terminal")
		os.Exit(1)
	}

	logger := logging.Setup()

	cfgPath, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "extview: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "extview: load config: %v\n", err)
		os.Exit(1)
	}

	theme := styles.NewThemeWithMode(cfg.UI.Theme)
	logger.Debug("terminal", "profile", theme.ColorProfile, "dark", theme.IsDark)
	convention := components.ConventionFor(cfg.Keybindings.Modifier, runtime.GOOS)

	// Usage history persists across runs when the store opens; a failure
	// degrades to in-memory tracking.
	var mgr *access.Manager
	dbPath, err := cfg.DatabasePath()
	if err == nil {
		if store, serr := access.OpenStore(dbPath); serr == nil {
			mgr, err = access.NewManagerWithStore(store)
			if err != nil {
				logger.Warn("access store unusable", "err", err)
				store.Close()
				mgr = nil
			}
		} else {
			logger.Warn("open access store", "path", dbPath, "err", serr)
		}
	}
	if mgr == nil {
		mgr = access.NewManager()
	}
	defer mgr.Close()

	host := buildDemoHost()
	seedAccessData(mgr)

	reg := features.NewRegistry()
	if err := registerDemoFeatures(reg); err != nil {
		fmt.Fprintf(os.Stderr, "extview: %v\n", err)
		os.Exit(1)
	}
	builtin := features.NewRuntimeStatus(reg, host, mgr, nil)

	manifest := host.Extensions()[0]

	var program *tea.Program
	panel := featurespanel.NewPanel(featurespanel.Config{
		Theme:      theme,
		Registry:   reg,
		Builtin:    builtin,
		Host:       host,
		Access:     mgr,
		Manifest:   manifest,
		Convention: convention,
		WordWrap:   cfg.UI.WordWrap,
		OpenLink:   openLink,
		OnError: func(err error) {
			logger.Error("unexpected", "err", err)
		},
		Notify: func(m tea.Msg) {
			if program != nil {
				program.Send(m)
			}
		},
	})

	// Simulate ongoing extension activity so the live sections move.
	ticker := time.NewTicker(15 * time.Second)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				mgr.RecordAccess(manifest.ID, "colorPalette", nil)
			case <-done:
				return
			}
		}
	}()
	defer func() {
		ticker.Stop()
		close(done)
	}()

	program = tea.NewProgram(&app{panel: panel, theme: theme}, tea.WithAltScreen())

	watcher, err := config.NewWatcher(cfgPath, time.Second, func(next *config.Config) {
		logger.Debug("config reloaded", "path", cfgPath)
		program.Send(configReloadedMsg{cfg: next})
	})
	if err == nil {
		if werr := watcher.Watch(); werr != nil {
			logger.Warn("config watcher", "err", werr)
		}
		defer watcher.Close()
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "extview: %v\n", err)
		os.Exit(1)
	}
}
