// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable slot store for the entropy TUI.
//
// Persistence is modeled as a small set of durable string-keyed slots:
// one slot holds the serialized conversation list, another the identifier
// of the current conversation. The conversation store reads both slots at
// startup and rewrites them after every mutation.
//
// # Backends
//
//   - FileSlots: one file per slot, written atomically with fsync (default)
//   - SQLiteSlots: a key/value table in a SQLite database
//   - EncryptedSlots: wraps any backend with AES-GCM encryption at rest
//
// All backends implement the Slots interface and are interchangeable; the
// backend is selected in the configuration file.
package storage
