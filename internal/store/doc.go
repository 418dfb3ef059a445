// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the canonical in-memory conversation state and its
// best-effort persistence shadow.
//
// # Key Types
//
//   - Store: mutex-guarded state container holding the conversation list
//     (most recent first), the current conversation, the selected model,
//     and the in-flight loading flag
//
// # Usage
//
// Create a store over a storage backend and hydrate it:
//
//	st := store.New(slots)
//	st.LoadFromStorage()
//	conv := st.NewConversation()
//
// # Persistence Model
//
// Every durable mutation (NewConversation, Select, AppendMessage,
// SetTitle) persists synchronously after the in-memory update, so the
// write always observes post-mutation state. Persistence failures are
// logged and swallowed: the in-memory store is the source of truth for
// the session, storage is a best-effort shadow. SetSelectedModel and
// SetLoading are ephemeral and never persisted.
package store
