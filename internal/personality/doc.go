// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package personality holds the static catalog of Entropy models.
//
// Each fictitious model maps to a system-prompt template, a fixed artificial
// pre-response delay, and a short human-readable thinking label. The catalog
// is pure configuration data with no mutation; it is consumed by the remote
// completion boundary to select which prompt accompanies the user's text,
// and by the UI for display names and thinking indicators.
package personality
