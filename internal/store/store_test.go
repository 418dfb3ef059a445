// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/entropy-tui/internal/model"
	"github.com/jeranaias/entropy-tui/internal/personality"
	"github.com/jeranaias/entropy-tui/internal/storage"
)

func newTestStore(t *testing.T) (*Store, storage.Slots) {
	t.Helper()
	slots, err := storage.NewFileSlotsWithDir(t.TempDir())
	require.NoError(t, err)
	return New(slots), slots
}

func TestNewConversationPrependsAndSelects(t *testing.T) {
	st, _ := newTestStore(t)

	first := st.NewConversation()
	second := st.NewConversation()

	convs := st.Conversations()
	require.Len(t, convs, 2)
	assert.Equal(t, second.ID, convs[0].ID, "newest conversation goes first")
	assert.Equal(t, first.ID, convs[1].ID)
	assert.Equal(t, second.ID, st.CurrentID())
	assert.Equal(t, model.DefaultTitle, second.Title)
}

func TestSelectUnknownIDLeavesStateUnchanged(t *testing.T) {
	st, _ := newTestStore(t)
	conv := st.NewConversation()

	st.Select("conv_does_not_exist")

	assert.Equal(t, conv.ID, st.CurrentID())
}

func TestSelectSwitchesCurrent(t *testing.T) {
	st, _ := newTestStore(t)
	first := st.NewConversation()
	st.NewConversation()

	st.Select(first.ID)

	assert.Equal(t, first.ID, st.CurrentID())
	assert.Same(t, st.Find(first.ID), st.Current())
}

func TestAppendMessagePreservesOrder(t *testing.T) {
	st, _ := newTestStore(t)
	conv := st.NewConversation()

	st.AppendMessage(conv.ID, model.NewUserMessage("one", ""))
	st.AppendMessage(conv.ID, model.NewAssistantMessage("two", ""))
	st.AppendMessage(conv.ID, model.NewUserMessage("three", ""))

	cur := st.Current()
	require.Equal(t, 3, cur.MessageCount())
	assert.Equal(t, "one", cur.Messages[0].Content)
	assert.Equal(t, "two", cur.Messages[1].Content)
	assert.Equal(t, "three", cur.Messages[2].Content)

	// The current pointer is the canonical list entry, not a copy.
	assert.Same(t, st.Conversations()[0], cur)
}

func TestAppendMessageUnknownConversationIsNoOp(t *testing.T) {
	st, _ := newTestStore(t)
	conv := st.NewConversation()

	st.AppendMessage("conv_missing", model.NewUserMessage("lost", ""))

	assert.True(t, st.Find(conv.ID).IsEmpty())
}

func TestFirstUserMessageDerivesTitle(t *testing.T) {
	st, _ := newTestStore(t)
	conv := st.NewConversation()

	st.AppendMessage(conv.ID, model.NewUserMessage("What is JavaScript?", ""))
	assert.Equal(t, "What is JavaScript?", st.Current().Title)

	// Later messages never change the title.
	st.AppendMessage(conv.ID, model.NewAssistantMessage("A language.", ""))
	st.AppendMessage(conv.ID, model.NewUserMessage("And what is TypeScript, while we are at it?", ""))
	assert.Equal(t, "What is JavaScript?", st.Current().Title)
}

func TestSetTitle(t *testing.T) {
	st, _ := newTestStore(t)
	conv := st.NewConversation()

	st.SetTitle(conv.ID, "Renamed")
	assert.Equal(t, "Renamed", st.Current().Title)

	st.SetTitle("conv_missing", "Ignored")
	assert.Equal(t, "Renamed", st.Current().Title)
}

func TestEphemeralStateNotPersisted(t *testing.T) {
	st, slots := newTestStore(t)
	st.NewConversation()
	st.SetLoading(true)
	st.SetSelectedModel(personality.ModelTurbo)

	fresh := New(slots)
	fresh.LoadFromStorage()

	assert.False(t, fresh.IsLoading())
	assert.Equal(t, personality.Default(), fresh.SelectedModel())
}

func TestPersistLoadRoundTrip(t *testing.T) {
	st, slots := newTestStore(t)
	old := st.NewConversation()
	st.AppendMessage(old.ID, model.NewUserMessage("hello", string(personality.ModelStandard)))
	cur := st.NewConversation()
	st.AppendMessage(cur.ID, model.NewUserMessage("What is JavaScript?", string(personality.ModelHaiku)))
	st.AppendMessage(cur.ID, model.NewAssistantMessage("A language.", string(personality.ModelHaiku)))
	st.Select(old.ID)

	fresh := New(slots)
	fresh.LoadFromStorage()

	require.True(t, fresh.IsInitialized())
	require.Equal(t, old.ID, fresh.CurrentID())

	got := fresh.Conversations()
	want := st.Conversations()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Title, got[i].Title)
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
		require.Equal(t, want[i].MessageCount(), got[i].MessageCount())
		for j := range want[i].Messages {
			assert.Equal(t, want[i].Messages[j].ID, got[i].Messages[j].ID)
			assert.Equal(t, want[i].Messages[j].Role, got[i].Messages[j].Role)
			assert.Equal(t, want[i].Messages[j].Content, got[i].Messages[j].Content)
			assert.True(t, want[i].Messages[j].Timestamp.Equal(got[i].Messages[j].Timestamp))
		}
	}
}

func TestLoadFromStorageIsIdempotent(t *testing.T) {
	st, slots := newTestStore(t)
	conv := st.NewConversation()
	st.AppendMessage(conv.ID, model.NewUserMessage("hi", ""))

	fresh := New(slots)
	fresh.LoadFromStorage()
	firstIDs := conversationIDs(fresh)
	firstCurrent := fresh.CurrentID()

	fresh.LoadFromStorage()
	assert.Equal(t, firstIDs, conversationIDs(fresh))
	assert.Equal(t, firstCurrent, fresh.CurrentID())
}

func TestLoadFromStorageEmptyBackend(t *testing.T) {
	st, _ := newTestStore(t)
	st.LoadFromStorage()

	assert.True(t, st.IsInitialized())
	assert.Empty(t, st.Conversations())
	assert.Nil(t, st.Current())
}

func TestLoadFromStorageCorruptDataFailsSafe(t *testing.T) {
	st, slots := newTestStore(t)
	require.NoError(t, slots.Set(storage.SlotConversations, "{not json"))
	require.NoError(t, slots.Set(storage.SlotCurrentConversation, "conv_x"))

	st.LoadFromStorage()

	assert.True(t, st.IsInitialized(), "initialized even on failure")
	assert.Empty(t, st.Conversations())
	assert.Nil(t, st.Current())
}

func TestLoadFromStorageDanglingCurrentID(t *testing.T) {
	st, slots := newTestStore(t)
	conv := st.NewConversation()
	require.NoError(t, slots.Set(storage.SlotCurrentConversation, "conv_gone"))

	fresh := New(slots)
	fresh.LoadFromStorage()

	assert.Nil(t, fresh.Current())
	assert.NotNil(t, fresh.Find(conv.ID))
}

// failingSlots rejects every operation, for exercising best-effort writes.
type failingSlots struct{}

func (failingSlots) Get(string) (string, error) { return "", errors.New("disk on fire") }
func (failingSlots) Set(string, string) error   { return errors.New("disk on fire") }
func (failingSlots) Delete(string) error        { return errors.New("disk on fire") }
func (failingSlots) Close() error               { return nil }

func TestPersistFailureNeverBlocksMutation(t *testing.T) {
	st := New(failingSlots{})

	conv := st.NewConversation()
	st.AppendMessage(conv.ID, model.NewUserMessage("still here", ""))

	require.NotNil(t, st.Current())
	assert.Equal(t, 1, st.Current().MessageCount())
}

func TestLoadFailureFallsBackToEmpty(t *testing.T) {
	st := New(failingSlots{})
	st.LoadFromStorage()

	assert.True(t, st.IsInitialized())
	assert.Empty(t, st.Conversations())
}

func conversationIDs(st *Store) []string {
	convs := st.Conversations()
	ids := make([]string, len(convs))
	for i, c := range convs {
		ids[i] = c.ID
	}
	return ids
}
