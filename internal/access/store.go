// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrStoreClosed = errors.New("access store closed")
)

// =============================================================================
// SCHEMA
// =============================================================================

const storeSchema = `
CREATE TABLE IF NOT EXISTS accesses (
	id         TEXT PRIMARY KEY,
	session    TEXT NOT NULL,
	extension  TEXT NOT NULL,
	feature    TEXT NOT NULL,
	at         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_accesses_pair ON accesses(extension, feature, at);

CREATE TABLE IF NOT EXISTS enablement (
	extension  TEXT NOT NULL,
	feature    TEXT NOT NULL,
	enabled    INTEGER NOT NULL,
	PRIMARY KEY (extension, feature)
);
`

// =============================================================================
// STORE
// =============================================================================

// Record is one persisted access row.
type Record struct {
	ID        string
	Session   string
	Extension string
	Feature   string
	At        time.Time
}

// Pair identifies an (extension, feature) combination present in the store.
type Pair struct {
	Extension string
	Feature   string
}

// EnablementDecision is one persisted enablement flag.
type EnablementDecision struct {
	Extension string
	Feature   string
	Enabled   bool
}

// Store persists access history and enablement decisions in SQLite so usage
// counters survive editor restarts. Access rows are buffered in memory and
// written in batches via Flush.
type Store struct {
	mu      sync.Mutex
	db      *sql.DB
	pending []Record
	closed  bool
}

// OpenStore opens (creating if needed) the database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close flushes pending rows and closes the database.
func (s *Store) Close() error {
	if err := s.Flush(context.Background()); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// =============================================================================
// WRITES
// =============================================================================

// AppendAccess buffers an access row for the next Flush.
func (s *Store) AppendAccess(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = append(s.pending, r)
}

// Flush writes all buffered rows in one transaction.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO accesses (id, session, extension, feature, at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range batch {
		if _, err := stmt.ExecContext(ctx, r.ID, r.Session, r.Extension, r.Feature, r.At.UnixMilli()); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SaveEnablement upserts an enablement decision.
func (s *Store) SaveEnablement(extensionID, featureID string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	flag := 0
	if enabled {
		flag = 1
	}
	_, err := s.db.Exec(
		"INSERT INTO enablement (extension, feature, enabled) VALUES (?, ?, ?) "+
			"ON CONFLICT(extension, feature) DO UPDATE SET enabled = excluded.enabled",
		extensionID, featureID, flag)
	return err
}

// =============================================================================
// READS
// =============================================================================

// Pairs returns every (extension, feature) pair with recorded accesses.
func (s *Store) Pairs() ([]Pair, error) {
	rows, err := s.db.Query("SELECT DISTINCT extension, feature FROM accesses")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []Pair
	for rows.Next() {
		var p Pair
		if err := rows.Scan(&p.Extension, &p.Feature); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// AccessTimes returns all recorded access times for a pair, oldest first.
func (s *Store) AccessTimes(extensionID, featureID string) ([]time.Time, error) {
	rows, err := s.db.Query(
		"SELECT at FROM accesses WHERE extension = ? AND feature = ? ORDER BY at ASC",
		extensionID, featureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var millis int64
		if err := rows.Scan(&millis); err != nil {
			return nil, err
		}
		times = append(times, time.UnixMilli(millis))
	}
	return times, rows.Err()
}

// EnablementDecisions returns every persisted enablement flag.
func (s *Store) EnablementDecisions() ([]EnablementDecision, error) {
	rows, err := s.db.Query("SELECT extension, feature, enabled FROM enablement")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EnablementDecision
	for rows.Next() {
		var d EnablementDecision
		var flag int
		if err := rows.Scan(&d.Extension, &d.Feature, &flag); err != nil {
			return nil, err
		}
		d.Enabled = flag != 0
		out = append(out, d)
	}
	return out, rows.Err()
}
