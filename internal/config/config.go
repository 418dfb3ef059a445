// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/entropy-tui/internal/personality"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete entropy configuration.
type Config struct {
	// General settings
	Version      string `toml:"version"`
	DefaultModel string `toml:"default_model"`

	// Storage configuration
	Storage StorageConfig `toml:"storage"`

	// API configuration
	API APIConfig `toml:"api"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// StorageConfig controls the persistence backend.
type StorageConfig struct {
	// Backend selects the slot store: "file" or "sqlite".
	Backend string `toml:"backend"`
	// DataDir is the directory holding persisted state (empty = ~/.entropy).
	DataDir string `toml:"data_dir"`
	// Encrypt wraps the backend in AES-256-GCM encryption at rest.
	// The passphrase comes from ENTROPY_PASSPHRASE, never from this file.
	Encrypt bool `toml:"encrypt"`
}

// APIConfig controls the completion boundary.
type APIConfig struct {
	// BaseURL overrides the Anthropic API base URL (empty = production).
	BaseURL string `toml:"base_url"`
	// MaxRetries caps transient-error retries per completion call.
	MaxRetries int `toml:"max_retries"`
	// ArtificialDelay toggles each personality's fixed pre-response delay.
	ArtificialDelay bool `toml:"artificial_delay"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// CompactMode uses a more compact layout
	CompactMode bool `toml:"compact_mode"`
	// ShowWelcome displays the welcome screen on empty conversations
	ShowWelcome bool `toml:"show_welcome"`
	// ShowSidebar displays the conversation list sidebar
	ShowSidebar bool `toml:"show_sidebar"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version:      "1.0.0",
		DefaultModel: personality.Default().String(),

		Storage: StorageConfig{
			Backend: "file",
			DataDir: "",
			Encrypt: false,
		},

		API: APIConfig{
			BaseURL:         "",
			MaxRetries:      3,
			ArtificialDelay: true,
		},

		UI: UIConfig{
			Theme:       "dark",
			CompactMode: false,
			ShowWelcome: true,
			ShowSidebar: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the entropy configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".entropy"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// DataDir resolves the storage directory, falling back to the config dir.
func (c *Config) DataDir() (string, error) {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir, nil
	}
	return ConfigDir()
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file with full
// validation. A missing file is not an error; defaults apply.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies ENTROPY_* environment variables over the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("ENTROPY_DEFAULT_MODEL"); v != "" {
		c.DefaultModel = v
	}
	if v := os.Getenv("ENTROPY_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("ENTROPY_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("ENTROPY_API_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("ENTROPY_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("ENTROPY_ENCRYPT"); v != "" {
		c.Storage.Encrypt = v == "1" || strings.EqualFold(v, "true")
	}
}

// fillDefaults fills in any missing values with defaults.
func (c *Config) fillDefaults() {
	defaults := Default()
	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.DefaultModel == "" {
		c.DefaultModel = defaults.DefaultModel
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = defaults.API.MaxRetries
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# entropy configuration file")
	fmt.Fprintln(file, "# Generated by entropy - edit with care")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	if !personality.IsValid(personality.ModelID(c.DefaultModel)) {
		return ValidationError{
			Field:   "default_model",
			Message: fmt.Sprintf("unknown model '%s'", c.DefaultModel),
		}
	}

	switch strings.ToLower(c.Storage.Backend) {
	case "file", "sqlite":
	default:
		return ValidationError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: file, sqlite", c.Storage.Backend),
		}
	}

	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light", "auto":
	default:
		return ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		}
	}

	if c.API.MaxRetries < 1 || c.API.MaxRetries > 10 {
		return ValidationError{
			Field:   "api.max_retries",
			Message: "must be between 1 and 10",
		}
	}

	return nil
}
