// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/jeranaias/entropy-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Entropy"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
// A message is immutable once created and is owned exclusively by its
// parent conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Model is the identifier of the Entropy model the message was
	// addressed to (user) or produced by (assistant).
	Model string `json:"model,omitempty"`
}

// NewMessage creates a new message with a generated ID and the current time.
func NewMessage(role Role, content, modelID string) *Message {
	return &Message{
		ID:        generateMessageID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Model:     modelID,
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content, modelID string) *Message {
	return NewMessage(RoleUser, content, modelID)
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content, modelID string) *Message {
	return NewMessage(RoleAssistant, content, modelID)
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// Preview returns a single-line truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	return util.TruncateRunes(util.CollapseNewlines(m.Content), maxLen)
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateMessageID creates a unique message ID. The timestamp prefix keeps
// IDs roughly sortable by creation time; the random suffix guarantees
// uniqueness for messages created in the same nanosecond tick.
func generateMessageID() string {
	suffix := make([]byte, 4)
	rand.Read(suffix)
	return "msg_" + strconv.FormatInt(time.Now().UnixNano(), 36) + hex.EncodeToString(suffix)
}
