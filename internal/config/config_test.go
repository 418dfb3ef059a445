// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "entropy-standard", cfg.DefaultModel)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.True(t, cfg.API.ArtificialDelay)
}

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().DefaultModel, cfg.DefaultModel)
}

func TestLoadFromPathPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
default_model = "entropy-haiku"

[ui]
theme = "light"
`), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "entropy-haiku", cfg.DefaultModel)
	assert.Equal(t, "light", cfg.UI.Theme)
	// Untouched sections keep defaults.
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, 3, cfg.API.MaxRetries)
}

func TestLoadFromPathRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`default_model = "gpt-9"`), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_model")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ENTROPY_DEFAULT_MODEL", "entropy-turbo")
	t.Setenv("ENTROPY_STORAGE_BACKEND", "sqlite")
	t.Setenv("ENTROPY_THEME", "auto")
	t.Setenv("ENTROPY_ENCRYPT", "true")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "entropy-turbo", cfg.DefaultModel)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.True(t, cfg.Storage.Encrypt)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.DefaultModel = "entropy-haiku"
	cfg.UI.CompactMode = true
	require.NoError(t, SaveTOML(cfg, path))

	// SECURITY: saved config must be owner-only.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "entropy-haiku", loaded.DefaultModel)
	assert.True(t, loaded.UI.CompactMode)
}

func TestValidateRejectsBadBackend(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "redis"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadRetries(t *testing.T) {
	cfg := Default()
	cfg.API.MaxRetries = 0
	cfg.fillDefaults()
	require.NoError(t, cfg.Validate())

	cfg.API.MaxRetries = 99
	assert.Error(t, cfg.Validate())
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	cfg := Default()
	cfg.DefaultModel = "entropy-turbo"
	require.NoError(t, SaveTOML(cfg, path))

	select {
	case got := <-reloaded:
		assert.Equal(t, "entropy-turbo", got.DefaultModel)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never reloaded")
	}
}
