// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package featurespanel

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/extview-tui/internal/access"
	"github.com/jeranaias/extview-tui/internal/features"
	"github.com/jeranaias/extview-tui/internal/ui/styles"
	"github.com/jeranaias/extview-tui/internal/util"
)

// =============================================================================
// LIST ITEMS
// =============================================================================

// featureItem adapts a feature descriptor to the list widget.
type featureItem struct {
	descriptor features.Descriptor
}

func (i featureItem) FilterValue() string { return i.descriptor.Label }

// featureDelegate renders one list row: the label, a severity icon when the
// feature currently reports a status, and a "No Access" badge when the
// extension's access has been revoked. The delegate reads the access
// service at render time so rows stay current without per-row
// subscriptions.
type featureDelegate struct {
	theme       *styles.Theme
	access      access.Service
	extensionID string
}

func (d featureDelegate) Height() int                         { return 1 }
func (d featureDelegate) Spacing() int                        { return 0 }
func (d featureDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d featureDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	fi, ok := item.(featureItem)
	if !ok {
		return
	}

	label := fi.descriptor.Label

	if data, ok := d.access.Data(d.extensionID, fi.descriptor.ID); ok {
		if data.Current != nil && data.Current.Status != nil {
			label = styles.SeverityIcon(data.Current.Status.Severity) + " " + label
		}
	}

	// Badge width plus row padding must survive the clip.
	maxLabel := m.Width() - 4
	if d.showNoAccess(fi.descriptor) {
		maxLabel -= util.Width(" No Access")
	}
	line := util.TruncateWidth(label, maxLabel)
	if d.showNoAccess(fi.descriptor) {
		line += " " + d.theme.NoAccessBadge.Render("No Access")
	}

	style := d.theme.ListItem
	if index == m.Index() {
		style = d.theme.ListItemSelected
	}
	fmt.Fprint(w, style.Render(line))
}

// showNoAccess reports whether the row gets the revoked badge. The built-in
// Runtime Status feature is never badged.
func (d featureDelegate) showNoAccess(desc features.Descriptor) bool {
	if desc.ID == features.RuntimeStatusID {
		return false
	}
	return !d.access.IsEnabled(d.extensionID, desc.ID)
}
