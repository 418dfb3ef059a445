// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package personality

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownModels(t *testing.T) {
	tests := []struct {
		id    ModelID
		name  string
		delay time.Duration
		label string
	}{
		{ModelHaiku, "Entropy-Haiku", 2 * time.Second, "Composing haiku"},
		{ModelStandard, "Entropy-Standard", 1500 * time.Millisecond, "Generating response"},
		{ModelTurbo, "Entropy-Turbo", 8 * time.Second, "Processing at maximum speed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			p, ok := Lookup(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.name, p.Name)
			assert.Equal(t, tt.delay, p.Delay)
			assert.Equal(t, tt.label, p.ThinkingLabel)
			assert.NotEmpty(t, p.SystemPrompt)
			assert.Contains(t, p.SystemPrompt, "Entropy AI")
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("entropy-ultra")
	assert.False(t, ok)
	assert.False(t, IsValid("entropy-ultra"))

	// The remote boundary always needs some prompt to send.
	p := MustLookup("entropy-ultra")
	assert.Equal(t, Default(), p.ID)
}

func TestAllStableOrder(t *testing.T) {
	all := All()
	require.Len(t, all, 3)
	assert.Equal(t, ModelHaiku, all[0].ID)
	assert.Equal(t, ModelStandard, all[1].ID)
	assert.Equal(t, ModelTurbo, all[2].ID)
}

func TestNextCycles(t *testing.T) {
	assert.Equal(t, ModelStandard, Next(ModelHaiku))
	assert.Equal(t, ModelTurbo, Next(ModelStandard))
	assert.Equal(t, ModelHaiku, Next(ModelTurbo))
	assert.Equal(t, Default(), Next("bogus"))
}

func TestHaikuPromptExamples(t *testing.T) {
	p := MustLookup(ModelHaiku)
	assert.True(t, strings.Contains(p.SystemPrompt, "5-7-5"))
	assert.Contains(t, p.SystemPrompt, "Code language for web")
}
