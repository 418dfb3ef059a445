// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the application
// for representing chat conversations and their messages.
//
// # Key Types
//
//   - Conversation: Container for a chat thread with messages and metadata
//   - Message: Single immutable message with role, content, timestamp and model
//   - Role: Message role enumeration (user, assistant)
//
// # Usage
//
// Create a new conversation and add a message:
//
//	conv := model.NewConversation()
//	conv.AddMessage(model.NewUserMessage("Hello!", "entropy-standard"))
//
// Messages are immutable once created and owned exclusively by their parent
// conversation. The message sequence is append-only and insertion-ordered.
package model
