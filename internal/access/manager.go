// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/extview-tui/internal/event"
)

// =============================================================================
// MANAGER
// =============================================================================

// pairKey identifies one (extension, feature) usage record.
type pairKey struct {
	extension string
	feature   string
}

// Manager is the in-process Service implementation. It keeps all records in
// memory and, when constructed with a Store, loads history at startup and
// persists new accesses with a throttled flush.
type Manager struct {
	mu         sync.RWMutex
	records    map[pairKey]*Data
	enablement map[pairKey]bool

	sessionID    string
	sessionStart time.Time

	store   *Store
	limiter *rate.Limiter
	dirty   map[pairKey]struct{}

	dataChanged       *event.Emitter[Change]
	enablementChanged *event.Emitter[EnablementChange]

	// now is swapped in tests for deterministic timestamps.
	now func() time.Time
}

// NewManager creates a manager with no persistence.
func NewManager() *Manager {
	return &Manager{
		records:           make(map[pairKey]*Data),
		enablement:        make(map[pairKey]bool),
		sessionID:         uuid.NewString(),
		sessionStart:      time.Now(),
		dirty:             make(map[pairKey]struct{}),
		dataChanged:       event.NewEmitter[Change](),
		enablementChanged: event.NewEmitter[EnablementChange](),
		now:               time.Now,
	}
}

// NewManagerWithStore creates a manager backed by a persistent store.
// Historical access times and enablement decisions are loaded up front;
// writes are flushed at most twice per second, with a final flush on Close.
func NewManagerWithStore(store *Store) (*Manager, error) {
	m := NewManager()
	m.store = store
	m.limiter = rate.NewLimiter(rate.Every(500*time.Millisecond), 1)

	pairs, err := store.Pairs()
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		times, err := store.AccessTimes(p.Extension, p.Feature)
		if err != nil {
			return nil, err
		}
		m.records[pairKey{p.Extension, p.Feature}] = &Data{AccessTimes: times}
	}

	decisions, err := store.EnablementDecisions()
	if err != nil {
		return nil, err
	}
	for _, d := range decisions {
		m.enablement[pairKey{d.Extension, d.Feature}] = d.Enabled
	}

	return m, nil
}

// SessionID returns the identifier of the current tracking session.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Close flushes pending writes. The manager must not be used afterwards.
func (m *Manager) Close() error {
	if m.store == nil {
		return nil
	}
	m.flush(true)
	return m.store.Close()
}

// =============================================================================
// RECORDING
// =============================================================================

// RecordAccess notes that an extension used a feature, optionally carrying a
// status the feature currently reports, and notifies data listeners.
func (m *Manager) RecordAccess(extensionID, featureID string, status *Status) {
	now := m.now()

	m.mu.Lock()
	key := pairKey{extensionID, featureID}
	rec := m.records[key]
	if rec == nil {
		rec = &Data{}
		m.records[key] = rec
	}
	rec.AccessTimes = append(rec.AccessTimes, now)
	rec.Current = &CurrentAccess{LastAccessed: now, Status: status}
	m.dirty[key] = struct{}{}
	m.mu.Unlock()

	if m.store != nil {
		m.store.AppendAccess(Record{
			ID:        uuid.NewString(),
			Session:   m.sessionID,
			Extension: extensionID,
			Feature:   featureID,
			At:        now,
		})
		m.flush(false)
	}

	m.dataChanged.Fire(Change{Extension: extensionID, Feature: featureID})
}

// SessionCount returns how many accesses were recorded for the pair since
// this manager started.
func (m *Manager) SessionCount(extensionID, featureID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec := m.records[pairKey{extensionID, featureID}]
	if rec == nil {
		return 0
	}
	n := 0
	for _, at := range rec.AccessTimes {
		if !at.Before(m.sessionStart) {
			n++
		}
	}
	return n
}

// flush writes buffered access rows through to the store. Writes are rate
// limited unless force is set.
func (m *Manager) flush(force bool) {
	if m.store == nil {
		return
	}
	if !force && !m.limiter.Allow() {
		return
	}
	// Flush must not block the UI event loop on a slow disk.
	if force {
		_ = m.store.Flush(context.Background())
		return
	}
	go func() { _ = m.store.Flush(context.Background()) }()
}

// =============================================================================
// SERVICE IMPLEMENTATION
// =============================================================================

// Data returns a copy of the usage record for the pair.
func (m *Manager) Data(extensionID, featureID string) (Data, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec := m.records[pairKey{extensionID, featureID}]
	if rec == nil {
		return Data{}, false
	}

	out := Data{AccessTimes: append([]time.Time(nil), rec.AccessTimes...)}
	if rec.Current != nil {
		cur := *rec.Current
		if cur.Status != nil {
			st := *cur.Status
			cur.Status = &st
		}
		out.Current = &cur
	}
	return out, true
}

// IsEnabled reports the enablement flag, defaulting to enabled.
func (m *Manager) IsEnabled(extensionID, featureID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	enabled, ok := m.enablement[pairKey{extensionID, featureID}]
	if !ok {
		return true
	}
	return enabled
}

// SetEnablement flips the flag, persists the decision and notifies listeners.
// Setting the current value again still notifies; the panel relies on the
// notification to re-sync toggle labels regardless of origin.
func (m *Manager) SetEnablement(extensionID, featureID string, enabled bool) {
	m.mu.Lock()
	m.enablement[pairKey{extensionID, featureID}] = enabled
	m.mu.Unlock()

	if m.store != nil {
		_ = m.store.SaveEnablement(extensionID, featureID, enabled)
	}

	m.enablementChanged.Fire(EnablementChange{
		Extension: extensionID,
		Feature:   featureID,
		Enabled:   enabled,
	})
}

// OnDidChangeData registers a usage-record listener.
func (m *Manager) OnDidChangeData(h func(Change)) event.Subscription {
	return m.dataChanged.Subscribe(h)
}

// OnDidChangeEnablement registers an enablement listener.
func (m *Manager) OnDidChangeEnablement(h func(EnablementChange)) event.Subscription {
	return m.enablementChanged.Subscribe(h)
}
