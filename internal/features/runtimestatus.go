// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package features

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jeranaias/extview-tui/internal/access"
	"github.com/jeranaias/extview-tui/internal/event"
	"github.com/jeranaias/extview-tui/internal/extension"
)

// =============================================================================
// RUNTIME STATUS FEATURE
// =============================================================================

// RuntimeStatusID is the id of the built-in Runtime Status feature.
const RuntimeStatusID = "runtimeStatus"

// UsageSource is the access surface Runtime Status reads: the plain service
// plus the per-session request count.
type UsageSource interface {
	access.Service
	SessionCount(extensionID, featureID string) int
}

// NewRuntimeStatus builds the synthetic Runtime Status descriptor. It is
// not registered in the Registry; the accessor prepends it when applicable.
// clock supplies "now" for the usage counters and may be nil for wall time.
func NewRuntimeStatus(reg *Registry, host extension.StatusProvider, usage UsageSource, clock func() time.Time) Descriptor {
	if clock == nil {
		clock = time.Now
	}
	d := Descriptor{
		ID:          RuntimeStatusID,
		Label:       "Runtime Status",
		Description: "Extension runtime status",
		Access:      AccessPolicy{CanToggle: false},
	}
	d.Renderer = func() Renderer {
		return &runtimeStatusRenderer{reg: reg, host: host, usage: usage, clock: clock, self: d}
	}
	return d
}

// runtimeStatusRenderer composes the markdown report. One instance backs at
// most one Render call; Dispose releases the live-update subscriptions.
type runtimeStatusRenderer struct {
	reg   *Registry
	host  extension.StatusProvider
	usage UsageSource
	clock func() time.Time
	self  Descriptor

	subs event.Set
}

// Kind reports markdown content.
func (r *runtimeStatusRenderer) Kind() Kind { return KindMarkdown }

// ShouldRender accepts extensions that are loaded and declare a desktop or
// web entry point.
func (r *runtimeStatusRenderer) ShouldRender(m extension.Manifest) bool {
	return r.host.IsLoaded(m.ID) && m.HasEntryPoint()
}

// Dispose releases live-update subscriptions.
func (r *runtimeStatusRenderer) Dispose() {
	r.subs.Close()
}

// Render produces the live markdown envelope. Content recomputes when the
// host reports a status change naming this extension, and on every
// access-data change regardless of which pair changed.
func (r *runtimeStatusRenderer) Render(m extension.Manifest) *RenderedData[Markdown] {
	changed := event.NewEmitter[Markdown]()
	fire := func() { changed.Fire(r.compose(m)) }

	r.subs.Add(r.host.OnDidChangeStatus(func(ids []string) {
		for _, id := range ids {
			if id == m.ID {
				fire()
				return
			}
		}
	}))
	r.subs.Add(r.usage.OnDidChangeData(func(access.Change) {
		// Broad invalidation: any pair's data may feed a usage section.
		fire()
	}))

	return NewRenderedData(r.compose(m), changed, r.subs.Close)
}

// =============================================================================
// CONTENT GENERATION
// =============================================================================

// compose renders the full report from current state. Pure read of host and
// usage state; no memoization.
func (r *runtimeStatusRenderer) compose(m extension.Manifest) Markdown {
	var sections []string

	if r.host.IsLoaded(m.ID) {
		sections = append(sections, r.activationSection(m))
	}

	st := r.host.Status(m.ID)
	if n := len(st.RuntimeErrors); n > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "### Uncaught Errors (%d)\n", n)
		for _, e := range st.RuntimeErrors {
			fmt.Fprintf(&b, "\n- $(error) %s", e.Message)
		}
		sections = append(sections, b.String())
	}

	if n := len(st.Messages); n > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "### Messages (%d)\n", n)
		for _, msg := range st.Messages {
			fmt.Fprintf(&b, "\n- $(%s) %s", severityIcon(msg.Severity), msg.Text)
		}
		sections = append(sections, b.String())
	}

	for _, d := range append(r.reg.Features(), r.self) {
		if s, ok := r.usageSection(m, d); ok {
			sections = append(sections, s)
		}
	}

	return Markdown{Text: strings.Join(sections, "\n\n")}
}

// activationSection reports how the extension activated.
func (r *runtimeStatusRenderer) activationSection(m extension.Manifest) string {
	st := r.host.Status(m.ID)
	if at := st.ActivationTimes; at != nil {
		if at.OnStartup {
			return fmt.Sprintf("### Activation\n\nActivated on Startup: `%dms`", at.ActivateMS)
		}
		return fmt.Sprintf("### Activation\n\nActivated by `%s` event: `%dms`", at.ActivationEvent, at.ActivateMS)
	}
	return "### Activation\n\nNot yet activated"
}

// usageSection reports access counters for one feature, or ok false when
// the pair has no recorded data.
func (r *runtimeStatusRenderer) usageSection(m extension.Manifest, d Descriptor) (string, bool) {
	data, ok := r.usage.Data(m.ID, d.ID)
	if !ok {
		return "", false
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("### %s Usage", d.Label))

	if cur := data.Current; cur != nil && cur.Status != nil {
		lines = append(lines, fmt.Sprintf("$(%s) %s", severityIcon(cur.Status.Severity), cur.Status.Message))
	}

	if len(data.AccessTimes) > 0 {
		now := r.clock()

		if cur := data.Current; cur != nil {
			lines = append(lines, fmt.Sprintf("Recent: `%s`", humanize.RelTime(cur.LastAccessed, now, "ago", "from now")))
			lines = append(lines, fmt.Sprintf("Session: `%d` Requests", r.usage.SessionCount(m.ID, d.ID)))
		}

		// Each cutoff derives from the same fixed "now"; computing them off
		// one another would compound drift across the three counters.
		startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		weekAgo := now.AddDate(0, 0, -7)
		monthAgo := now.AddDate(0, 0, -30)

		lines = append(lines, fmt.Sprintf("Today: `%d`", countSince(data.AccessTimes, startOfToday)))
		lines = append(lines, fmt.Sprintf("Last 7 Days: `%d`", countSince(data.AccessTimes, weekAgo)))
		lines = append(lines, fmt.Sprintf("Last 30 Days: `%d`", countSince(data.AccessTimes, monthAgo)))
	}

	return strings.Join(lines, "\n\n"), true
}

// countSince counts access times at or after the cutoff.
func countSince(times []time.Time, cutoff time.Time) int {
	n := 0
	for _, at := range times {
		if !at.Before(cutoff) {
			n++
		}
	}
	return n
}

// severityIcon maps a severity to its inline icon name.
func severityIcon(s extension.Severity) string {
	switch s {
	case extension.SeverityError:
		return "error"
	case extension.SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}
