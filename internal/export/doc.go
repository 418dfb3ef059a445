// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes saved conversations out as shareable files.
//
// Two formats are supported: Markdown with a YAML frontmatter header for
// humans, and indented JSON that round-trips the stored conversation
// exactly. Exporters implement the Exporter interface so the sessions
// command can pick one by name.
package export
