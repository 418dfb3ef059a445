// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/jeranaias/entropy-tui/internal/model"
	"github.com/jeranaias/entropy-tui/internal/personality"
	"github.com/jeranaias/entropy-tui/internal/storage"
)

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// Store is the canonical state container for the chat session.
//
// RELIABILITY: all access goes through the mutex. Bubble Tea commands run
// on their own goroutines, so the store cannot assume single-threaded
// callers the way a pure event-loop design could.
type Store struct {
	mu sync.Mutex

	slots storage.Slots

	// conversations is ordered most recent first.
	conversations []*model.Conversation
	currentID     string

	// Ephemeral state, never persisted.
	selectedModel personality.ModelID
	isLoading     bool
	isInitialized bool
}

// New creates a store over the given storage backend.
// The store starts empty and uninitialized; call LoadFromStorage to hydrate.
func New(slots storage.Slots) *Store {
	return &Store{
		slots:         slots,
		selectedModel: personality.Default(),
	}
}

// =============================================================================
// DURABLE MUTATIONS
// =============================================================================

// NewConversation creates a fresh conversation, prepends it to the list,
// makes it current, and persists. It always succeeds.
func (s *Store) NewConversation() *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := model.NewConversation()
	s.conversations = append([]*model.Conversation{conv}, s.conversations...)
	s.currentID = conv.ID
	s.persistLocked()
	return conv
}

// Select makes the conversation with the given id current and persists the
// pointer. An unknown id leaves state unchanged.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(id) == nil {
		return
	}
	s.currentID = id
	s.persistLocked()
}

// AppendMessage appends msg to the conversation with the given id, bumps
// its UpdatedAt, and persists. An unknown id is a no-op. The first user
// message also sets the conversation title, derived from the message text.
func (s *Store) AppendMessage(conversationID string, msg *model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(conversationID)
	if conv == nil {
		return
	}

	if conv.IsEmpty() && msg.Role == model.RoleUser {
		conv.SetTitle(model.DeriveTitle(msg.Content))
	}
	conv.AddMessage(msg)
	s.persistLocked()
}

// SetTitle overwrites the title of the conversation with the given id and
// persists. An unknown id is a no-op.
func (s *Store) SetTitle(conversationID, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(conversationID)
	if conv == nil {
		return
	}
	conv.SetTitle(title)
	s.persistLocked()
}

// =============================================================================
// EPHEMERAL MUTATIONS
// =============================================================================

// SetSelectedModel records the model used for the next submission.
// Not persisted.
func (s *Store) SetSelectedModel(id personality.ModelID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedModel = id
}

// SetLoading sets the in-flight turn guard. Not persisted.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = loading
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Current returns the current conversation, or nil when none is selected.
// The returned pointer is the canonical list entry.
func (s *Store) Current() *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(s.currentID)
}

// CurrentID returns the id of the current conversation, or "".
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// Find returns the conversation with the given id, or nil.
func (s *Store) Find(id string) *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

// Conversations returns a snapshot of the conversation list, most recent
// first. The slice is a copy; the entries are the canonical objects.
func (s *Store) Conversations() []*model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}

// SelectedModel returns the model chosen for the next submission.
func (s *Store) SelectedModel() personality.ModelID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedModel
}

// IsLoading reports whether a turn is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// IsInitialized reports whether LoadFromStorage has run.
func (s *Store) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isInitialized
}

func (s *Store) findLocked(id string) *model.Conversation {
	if id == "" {
		return nil
	}
	for _, conv := range s.conversations {
		if conv.ID == id {
			return conv
		}
	}
	return nil
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// LoadFromStorage hydrates the store from the storage backend.
//
// RELIABILITY: fail-safe. Any read or parse failure resets the store to an
// empty list with no current conversation rather than crashing. The
// initialized flag is set unconditionally as the last step, success or not.
func (s *Store) LoadFromStorage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.isInitialized = true }()

	s.conversations = nil
	s.currentID = ""

	raw, err := s.slots.Get(storage.SlotConversations)
	if err != nil {
		if !errors.Is(err, storage.ErrSlotNotFound) {
			log.Printf("store: loading conversations failed: %v", err)
		}
		return
	}

	var convs []*model.Conversation
	if err := json.Unmarshal([]byte(raw), &convs); err != nil {
		log.Printf("store: parsing conversations failed: %v", err)
		return
	}
	s.conversations = convs

	id, err := s.slots.Get(storage.SlotCurrentConversation)
	if err != nil {
		if !errors.Is(err, storage.ErrSlotNotFound) {
			log.Printf("store: loading current conversation failed: %v", err)
		}
		return
	}
	if s.findLocked(id) != nil {
		s.currentID = id
	}
}

// persistLocked writes the conversation list and current pointer to
// storage. Best-effort: failures are logged and never propagated, so a
// broken disk cannot block in-memory mutations. Caller holds the mutex.
func (s *Store) persistLocked() {
	data, err := json.Marshal(s.conversations)
	if err != nil {
		log.Printf("store: serializing conversations failed: %v", err)
		return
	}
	if err := s.slots.Set(storage.SlotConversations, string(data)); err != nil {
		log.Printf("store: persisting conversations failed: %v", err)
	}

	if s.currentID == "" {
		if err := s.slots.Delete(storage.SlotCurrentConversation); err != nil {
			log.Printf("store: clearing current conversation failed: %v", err)
		}
		return
	}
	if err := s.slots.Set(storage.SlotCurrentConversation, s.currentID); err != nil {
		log.Printf("store: persisting current conversation failed: %v", err)
	}
}
