// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable slot store for the entropy TUI.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SQLITE-BACKED SLOTS
// =============================================================================

// SQLiteSlots stores slots as rows in a SQLite key/value table. Useful when
// the data directory sits on a filesystem where atomic rename is unreliable,
// or when an operator prefers a single database file.
type SQLiteSlots struct {
	db   *sql.DB
	path string
}

const slotsSchema = `
CREATE TABLE IF NOT EXISTS slots (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// NewSQLiteSlots opens (creating if needed) a slot database at path.
func NewSQLiteSlots(path string) (*SQLiteSlots, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The TUI is the only writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(slotsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteSlots{db: db, path: path}, nil
}

// Get returns the value stored under key.
func (s *SQLiteSlots) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrSlotNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	return value, nil
}

// Set writes value under key, replacing any previous value.
func (s *SQLiteSlots) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}

// Delete removes the slot. Deleting an absent slot is not an error.
func (s *SQLiteSlots) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteSlots) Close() error {
	return s.db.Close()
}

var _ Slots = (*SQLiteSlots)(nil)

// String implements fmt.Stringer for diagnostics.
func (s *SQLiteSlots) String() string {
	return fmt.Sprintf("sqlite slots (%s)", s.path)
}
