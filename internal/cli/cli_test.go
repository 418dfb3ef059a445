// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/entropy-tui/internal/config"
	"github.com/jeranaias/entropy-tui/internal/personality"
)

// =============================================================================
// ARG PARSER
// =============================================================================

func TestArgParserLongFlags(t *testing.T) {
	p := NewArgParser([]string{"show", "--lines", "50", "--since=2024-01-01", "--json"})

	assert.Equal(t, "show", p.Subcommand())
	assert.Equal(t, "50", p.Flag("lines"))
	assert.Equal(t, "2024-01-01", p.Flag("since"))
	assert.True(t, p.BoolFlag("json"))
	assert.False(t, p.BoolFlag("missing"))
}

func TestArgParserShortFlags(t *testing.T) {
	p := NewArgParser([]string{"-m", "entropy-haiku"})
	assert.Equal(t, "entropy-haiku", p.Flag("m"))
}

func TestArgParserExplicitBoolean(t *testing.T) {
	p := NewArgParser([]string{"--plain=false", "--color=true"})
	assert.False(t, p.BoolFlag("plain"))
	assert.True(t, p.BoolFlag("color"))
}

func TestArgParserPositional(t *testing.T) {
	p := NewArgParser([]string{"show", "conv_123", "--json"})

	assert.Equal(t, "show", p.Positional(0))
	assert.Equal(t, "conv_123", p.Positional(1))
	assert.Equal(t, "", p.Positional(2))
	assert.Equal(t, []string{"conv_123"}, p.PositionalFrom(1))
}

func TestArgParserDefaults(t *testing.T) {
	p := NewArgParser(nil)
	assert.Equal(t, "", p.Subcommand())
	assert.Equal(t, "fallback", p.FlagOrDefault("model", "fallback"))
	assert.Equal(t, 7, p.FlagIntOrDefault("retries", 7))
}

func TestArgParserFlagIntOrDefault(t *testing.T) {
	p := NewArgParser([]string{"--retries", "3", "--bad", "xyz"})
	assert.Equal(t, 3, p.FlagIntOrDefault("retries", 9))
	assert.Equal(t, 9, p.FlagIntOrDefault("bad", 9))
}

func TestArgParserHasFlag(t *testing.T) {
	p := NewArgParser([]string{"--model", "entropy-turbo", "--plain"})
	assert.True(t, p.HasFlag("model"))
	assert.True(t, p.HasFlag("plain"))
	assert.False(t, p.HasFlag("quiet"))
}

// =============================================================================
// MODEL RESOLUTION
// =============================================================================

func TestResolveModelFromFlag(t *testing.T) {
	cfg := config.Default()

	p := NewArgParser([]string{"--model", "entropy-haiku"})
	id, err := resolveModel(p, cfg)
	require.NoError(t, err)
	assert.Equal(t, personality.ModelHaiku, id)

	p = NewArgParser([]string{"-m", "entropy-turbo"})
	id, err = resolveModel(p, cfg)
	require.NoError(t, err)
	assert.Equal(t, personality.ModelTurbo, id)
}

func TestResolveModelFallsBackToConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultModel = "entropy-haiku"

	id, err := resolveModel(NewArgParser(nil), cfg)
	require.NoError(t, err)
	assert.Equal(t, personality.ModelHaiku, id)
}

func TestResolveModelRejectsUnknown(t *testing.T) {
	cfg := config.Default()
	_, err := resolveModel(NewArgParser([]string{"--model", "gpt-5"}), cfg)
	assert.Error(t, err)
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

func TestRenderMarkdownPlain(t *testing.T) {
	// forcePlain must bypass glamour entirely.
	out := renderMarkdown("# heading\nbody", true)
	assert.Equal(t, "# heading\nbody", out)
}
