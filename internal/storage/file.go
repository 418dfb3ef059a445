// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable slot store for the entropy TUI.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/entropy-tui/internal/util"
)

// =============================================================================
// FILE-BACKED SLOTS
// =============================================================================

// FileSlots stores each slot as a file under a base directory.
// Writes are atomic with fsync so a crash never leaves a half-written slot.
type FileSlots struct {
	// BaseDir is the directory for slot files.
	// Default: ~/.entropy/
	BaseDir string
}

// NewFileSlots creates a file-backed slot store under the user's home
// directory.
func NewFileSlots() (*FileSlots, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewFileSlotsWithDir(filepath.Join(homeDir, ".entropy"))
}

// NewFileSlotsWithDir creates a file-backed slot store with a custom
// directory.
func NewFileSlotsWithDir(baseDir string) (*FileSlots, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &FileSlots{BaseDir: baseDir}, nil
}

// Get returns the value stored under key.
func (s *FileSlots) Get(key string) (string, error) {
	data, err := os.ReadFile(s.slotPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrSlotNotFound
		}
		return "", err
	}
	return string(data), nil
}

// Set writes value under key, replacing any previous value.
func (s *FileSlots) Set(key, value string) error {
	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	return util.AtomicWriteFile(s.slotPath(key), []byte(value), 0644)
}

// Delete removes the slot. Deleting an absent slot is not an error.
func (s *FileSlots) Delete(key string) error {
	err := os.Remove(s.slotPath(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *FileSlots) Close() error {
	return nil
}

// slotPath returns the file path for a slot key. Keys are sanitized to a
// flat filename so a hostile key can never escape the base directory.
func (s *FileSlots) slotPath(key string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(s.BaseDir, name+".json")
}

// ensure interface compliance at compile time.
var _ Slots = (*FileSlots)(nil)

// String implements fmt.Stringer for diagnostics.
func (s *FileSlots) String() string {
	return fmt.Sprintf("file slots (%s)", s.BaseDir)
}
