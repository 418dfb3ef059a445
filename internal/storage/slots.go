// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable slot store for the entropy TUI.
package storage

// =============================================================================
// SLOT KEYS
// =============================================================================

// Well-known slot keys. The conversation store persists exactly these two.
const (
	// SlotConversations holds the serialized conversation list.
	SlotConversations = "conversations"

	// SlotCurrentConversation holds the id of the current conversation.
	// The slot is absent when no conversation is current.
	SlotCurrentConversation = "current-conversation"
)

// =============================================================================
// SLOTS INTERFACE
// =============================================================================

// Slots is a durable string-keyed store with a handful of named slots.
// Implementations must make Set durable before returning (best effort;
// callers treat persistence as a shadow of in-memory state and never block
// on write failures).
type Slots interface {
	// Get returns the value stored under key. Returns ErrSlotNotFound
	// when the slot has never been written or has been deleted.
	Get(key string) (string, error)

	// Set writes value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes the slot. Deleting an absent slot is not an error.
	Delete(key string) error

	// Close releases backend resources. Safe to call more than once.
	Close() error
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrSlotNotFound is returned when a slot has no stored value.
// Use errors.Is(err, ErrSlotNotFound) to check for this error.
var ErrSlotNotFound = &SlotError{Message: "slot not found"}

// SlotError represents a storage-related error.
// It implements the error interface and can be compared using errors.Is.
type SlotError struct {
	Message string
}

// Error implements the error interface.
func (e *SlotError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing slot errors.
func (e *SlotError) Is(target error) bool {
	t, ok := target.(*SlotError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}
