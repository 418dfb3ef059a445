// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConversationDefaults(t *testing.T) {
	conv := NewConversation()

	assert.NotEmpty(t, conv.ID)
	assert.True(t, strings.HasPrefix(conv.ID, "conv_"))
	assert.Equal(t, DefaultTitle, conv.Title)
	assert.Empty(t, conv.Messages)
	assert.False(t, conv.CreatedAt.IsZero())
	assert.True(t, conv.UpdatedAt.IsZero())
}

func TestAddMessagePreservesOrder(t *testing.T) {
	conv := NewConversation()

	contents := []string{"first", "second", "third", "fourth"}
	for _, c := range contents {
		conv.AddMessage(NewUserMessage(c, "entropy-standard"))
	}

	require.Len(t, conv.Messages, len(contents))
	for i, c := range contents {
		assert.Equal(t, c, conv.Messages[i].Content)
	}
	assert.False(t, conv.UpdatedAt.IsZero())
}

func TestMessageIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		msg := NewUserMessage("x", "entropy-haiku")
		require.False(t, seen[msg.ID], "duplicate message ID %s", msg.ID)
		seen[msg.ID] = true
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short message kept whole", "What is JavaScript?", "What is JavaScript?"},
		{"exactly fifty runes kept whole", strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{"long message truncated with ellipsis", strings.Repeat("a", 51), strings.Repeat("a", 50) + "..."},
		{"surrounding whitespace trimmed", "  hello  ", "hello"},
		{"newlines collapsed", "line one\nline two", "line one line two"},
		{"empty input keeps default", "   ", DefaultTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.in))
		})
	}
}

func TestDeriveTitleUnicode(t *testing.T) {
	long := strings.Repeat("日", 60)
	got := DeriveTitle(long)
	assert.Equal(t, strings.Repeat("日", 50)+"...", got)
}

func TestClone(t *testing.T) {
	conv := NewConversation()
	conv.AddMessage(NewUserMessage("hello", "entropy-turbo"))
	conv.SetTitle("hello")

	clone := conv.Clone()

	require.Equal(t, conv.ID, clone.ID)
	require.Len(t, clone.Messages, 1)
	assert.Equal(t, conv.Messages[0].Content, clone.Messages[0].Content)

	// Deep copy: mutating the clone's message must not touch the original.
	clone.Messages[0].Content = "mutated"
	assert.Equal(t, "hello", conv.Messages[0].Content)
}

func TestPreview(t *testing.T) {
	conv := NewConversation()
	assert.Equal(t, "", conv.Preview(80))

	conv.AddMessage(NewAssistantMessage("assistant first", "entropy-standard"))
	assert.Equal(t, "", conv.Preview(80), "assistant messages are not previews")

	conv.AddMessage(NewUserMessage("the user question", "entropy-standard"))
	assert.Equal(t, "the user question", conv.Preview(80))
}

func TestRoleDisplayName(t *testing.T) {
	assert.Equal(t, "You", RoleUser.DisplayName())
	assert.Equal(t, "Entropy", RoleAssistant.DisplayName())
}
