// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for entropy.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation.
//
// Locations (in order of precedence):
//   - ENTROPY_* environment variables
//   - ~/.entropy/config.toml
//   - Built-in defaults
//
// The Anthropic API key is deliberately NOT part of the config file; it
// is read from ANTHROPIC_API_KEY at the completion boundary so it never
// lands on disk.
package config
