// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeranaias/entropy-tui/internal/cloud"
	"github.com/jeranaias/entropy-tui/internal/config"
	"github.com/jeranaias/entropy-tui/internal/personality"
	"github.com/jeranaias/entropy-tui/internal/storage"
	"github.com/jeranaias/entropy-tui/internal/store"
)

// =============================================================================
// SHARED WIRING HELPERS
// =============================================================================

// BuildClient constructs the upstream client from config plus the
// ANTHROPIC_API_KEY environment variable. The key never passes through
// the config file.
func BuildClient(cfg *config.Config) *cloud.AnthropicClient {
	client := cloud.NewAnthropicClient(os.Getenv("ANTHROPIC_API_KEY")).
		WithMaxRetries(cfg.API.MaxRetries).
		WithArtificialDelay(cfg.API.ArtificialDelay)

	if cfg.API.BaseURL != "" {
		client = client.WithBaseURL(cfg.API.BaseURL)
	}
	return client
}

// BuildSlots constructs the persistence backend named by the config.
func BuildSlots(cfg *config.Config) (storage.Slots, error) {
	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	var slots storage.Slots
	switch cfg.Storage.Backend {
	case "sqlite":
		slots, err = storage.NewSQLiteSlots(filepath.Join(dataDir, "entropy.db"))
	default:
		slots, err = storage.NewFileSlotsWithDir(dataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	if cfg.Storage.Encrypt {
		passphrase := os.Getenv("ENTROPY_PASSPHRASE")
		if passphrase == "" {
			return nil, fmt.Errorf("storage.encrypt is set but ENTROPY_PASSPHRASE is empty")
		}
		slots, err = storage.NewEncryptedSlots(slots, passphrase)
		if err != nil {
			return nil, fmt.Errorf("init encryption: %w", err)
		}
	}

	return slots, nil
}

// BuildStore opens storage and loads the conversation store from it.
func BuildStore(cfg *config.Config) (*store.Store, error) {
	slots, err := BuildSlots(cfg)
	if err != nil {
		return nil, err
	}

	st := store.New(slots)
	st.LoadFromStorage()
	return st, nil
}

// resolveModel picks the model for a command: the -m/--model flag wins,
// then the config default, then the catalog default.
func resolveModel(parser *ArgParser, cfg *config.Config) (personality.ModelID, error) {
	name := parser.Flag("model")
	if name == "" {
		name = parser.Flag("m")
	}
	if name == "" {
		name = cfg.DefaultModel
	}

	id := personality.ModelID(name)
	if !personality.IsValid(id) {
		return "", fmt.Errorf("unknown model %q (want entropy-haiku, entropy-standard, or entropy-turbo)", name)
	}
	return id, nil
}
