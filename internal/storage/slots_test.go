// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns one instance of every Slots implementation, each rooted
// in a fresh temp dir, so the same contract suite runs against all of them.
func backends(t *testing.T) map[string]Slots {
	t.Helper()

	fileSlots, err := NewFileSlotsWithDir(t.TempDir())
	require.NoError(t, err)

	sqliteSlots, err := NewSQLiteSlots(filepath.Join(t.TempDir(), "entropy.db"))
	require.NoError(t, err)

	encInner, err := NewFileSlotsWithDir(t.TempDir())
	require.NoError(t, err)
	encSlots, err := NewEncryptedSlots(encInner, "hunter2")
	require.NoError(t, err)

	return map[string]Slots{
		"file":      fileSlots,
		"sqlite":    sqliteSlots,
		"encrypted": encSlots,
	}
}

func TestSlotsContract(t *testing.T) {
	for name, slots := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer slots.Close()

			// Absent slot.
			_, err := slots.Get(SlotConversations)
			assert.ErrorIs(t, err, ErrSlotNotFound)

			// Write and read back.
			require.NoError(t, slots.Set(SlotConversations, `[{"id":"conv_1"}]`))
			got, err := slots.Get(SlotConversations)
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"conv_1"}]`, got)

			// Overwrite replaces.
			require.NoError(t, slots.Set(SlotConversations, `[]`))
			got, err = slots.Get(SlotConversations)
			require.NoError(t, err)
			assert.Equal(t, `[]`, got)

			// Independent slots.
			require.NoError(t, slots.Set(SlotCurrentConversation, "conv_1"))
			got, err = slots.Get(SlotCurrentConversation)
			require.NoError(t, err)
			assert.Equal(t, "conv_1", got)
			got, err = slots.Get(SlotConversations)
			require.NoError(t, err)
			assert.Equal(t, `[]`, got)

			// Delete, including double delete.
			require.NoError(t, slots.Delete(SlotCurrentConversation))
			_, err = slots.Get(SlotCurrentConversation)
			assert.ErrorIs(t, err, ErrSlotNotFound)
			require.NoError(t, slots.Delete(SlotCurrentConversation))
		})
	}
}

func TestSlotsUnicodeRoundTrip(t *testing.T) {
	for name, slots := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer slots.Close()
			value := "haiku: 富士山\nnewlines\tand \"quotes\""
			require.NoError(t, slots.Set(SlotConversations, value))
			got, err := slots.Get(SlotConversations)
			require.NoError(t, err)
			assert.Equal(t, value, got)
		})
	}
}

func TestFileSlotsKeySanitized(t *testing.T) {
	dir := t.TempDir()
	slots, err := NewFileSlotsWithDir(dir)
	require.NoError(t, err)

	// A traversal attempt must stay inside the base directory.
	require.NoError(t, slots.Set("../escape", "x"))
	path := slots.slotPath("../escape")
	assert.Equal(t, dir, filepath.Dir(path))
}

func TestFileSlotsSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	slots, err := NewFileSlotsWithDir(dir)
	require.NoError(t, err)
	require.NoError(t, slots.Set(SlotConversations, "persisted"))

	reopened, err := NewFileSlotsWithDir(dir)
	require.NoError(t, err)
	got, err := reopened.Get(SlotConversations)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}

func TestSQLiteSlotsSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entropy.db")

	slots, err := NewSQLiteSlots(path)
	require.NoError(t, err)
	require.NoError(t, slots.Set(SlotCurrentConversation, "conv_42"))
	require.NoError(t, slots.Close())

	reopened, err := NewSQLiteSlots(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Get(SlotCurrentConversation)
	require.NoError(t, err)
	assert.Equal(t, "conv_42", got)
}

func TestEncryptedSlotsCiphertextAtRest(t *testing.T) {
	inner, err := NewFileSlotsWithDir(t.TempDir())
	require.NoError(t, err)

	enc, err := NewEncryptedSlots(inner, "correct horse")
	require.NoError(t, err)

	require.NoError(t, enc.Set(SlotConversations, "top secret haiku"))

	// The inner backend must hold ciphertext, not the plaintext.
	raw, err := inner.Get(SlotConversations)
	require.NoError(t, err)
	assert.NotContains(t, raw, "top secret haiku")

	got, err := enc.Get(SlotConversations)
	require.NoError(t, err)
	assert.Equal(t, "top secret haiku", got)
}

func TestEncryptedSlotsWrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	inner, err := NewFileSlotsWithDir(dir)
	require.NoError(t, err)

	enc, err := NewEncryptedSlots(inner, "right")
	require.NoError(t, err)
	require.NoError(t, enc.Set(SlotConversations, "payload"))

	// Reopen with the wrong passphrase: same salt, different key.
	inner2, err := NewFileSlotsWithDir(dir)
	require.NoError(t, err)
	wrong, err := NewEncryptedSlots(inner2, "wrong")
	require.NoError(t, err)

	_, err = wrong.Get(SlotConversations)
	assert.True(t, errors.Is(err, ErrBadPassphrase))
}

func TestEncryptedSlotsEmptyPassphrase(t *testing.T) {
	inner, err := NewFileSlotsWithDir(t.TempDir())
	require.NoError(t, err)
	_, err = NewEncryptedSlots(inner, "")
	assert.Error(t, err)
}
