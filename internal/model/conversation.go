// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/jeranaias/entropy-tui/internal/util"
)

// DefaultTitle is the title of a conversation before its first user message.
const DefaultTitle = "New Chat"

// TitleMaxRunes is where auto-derived titles are cut. Titles longer than
// this get an "..." suffix.
const TitleMaxRunes = 50

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a complete chat thread with history and metadata.
// The message sequence is append-only during normal operation and is never
// reordered or deduplicated.
type Conversation struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Messages  []*Message `json:"messages"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at,omitempty"`
}

// NewConversation creates a new empty conversation with a generated ID.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        generateConversationID(),
		Title:     DefaultTitle,
		Messages:  make([]*Message, 0),
		CreatedAt: time.Now(),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends a message to the conversation and bumps UpdatedAt.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// DeriveTitle builds a conversation title from the first user message: the
// first 50 runes of the trimmed text, with "..." appended only when the
// text is longer than that. Line breaks are collapsed so the title fits on
// one sidebar row.
func DeriveTitle(firstMessage string) string {
	text := util.CollapseNewlines(util.NormalizeInput(firstMessage))
	if text == "" {
		return DefaultTitle
	}
	return util.TruncateRunes(text, TitleMaxRunes)
}

// SetTitle overwrites the conversation title.
func (c *Conversation) SetTitle(title string) {
	c.Title = title
	c.UpdatedAt = time.Now()
}

// =============================================================================
// SNAPSHOT HELPERS
// =============================================================================

// Preview returns a short single-line preview of the first user message,
// or an empty string for a conversation with no user messages yet.
func (c *Conversation) Preview(maxLen int) string {
	for _, msg := range c.Messages {
		if msg.Role == RoleUser {
			return msg.Preview(maxLen)
		}
	}
	return ""
}

// Clone creates a deep copy of the conversation. Messages are value-copied
// so mutations of the clone can never leak into the original.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Messages:  make([]*Message, len(c.Messages)),
	}
	for i, msg := range c.Messages {
		msgCopy := *msg
		clone.Messages[i] = &msgCopy
	}
	return clone
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateConversationID creates a unique conversation ID.
func generateConversationID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "conv_" + hex.EncodeToString(bytes)
}
