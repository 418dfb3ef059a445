// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements argument parsing and the non-TUI command
// handlers for entropy.
//
// Commands:
//
//	entropy                 Start the TUI (default)
//	entropy ask "question"  One-shot question, markdown-rendered answer
//	entropy chat            Line-based REPL for dumb terminals
//	entropy sessions        List and inspect saved conversations
//	entropy config          Show or edit configuration
//	entropy version         Print version information
//
// The package keeps its own lightweight flag parser rather than pulling
// in a framework; the command surface is small and the parser is shared
// by every handler.
package cli
