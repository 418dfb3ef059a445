// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdSessions
	CmdConfig
	CmdVersion
	CmdHelp
)

const usageText = `entropy - the AI chat client that keeps expectations low

Entropy is a terminal chat client for the Entropy AI models. Three
personalities are available: entropy-haiku answers only in haiku,
entropy-standard answers reluctantly, and entropy-turbo answers slowly
but with great confidence.

Usage:
  entropy                      Start the TUI (default)
  entropy ask "question"       Ask a single question
    -m, --model NAME           Use a specific model for this question
    --plain                    Skip markdown rendering
  entropy chat                 Interactive line-based chat
    -m, --model NAME           Use a specific model
  entropy sessions [subcommand] Saved conversation management
    entropy sessions list      List saved conversations
    entropy sessions show <id> Print a conversation transcript
    entropy sessions export <id> Export a conversation (md or json)
  entropy config [show]        Show configuration
  entropy version              Print version information
  entropy help                 Show this help

Models:
  entropy-haiku      Minimalist wisdom in 5-7-5 format
  entropy-standard   Standard unhelpfulness (default)
  entropy-turbo      Maximum confidence, minimum speed

Environment:
  ANTHROPIC_API_KEY    Upstream API key (required for real responses)
  ENTROPY_DATA_DIR     Override the data directory
  NO_COLOR             Disable colored output
`

// Parse parses os.Args and returns the command plus its remaining args.
func Parse() (Command, []string) {
	args := os.Args[1:]
	if len(args) == 0 {
		return CmdTUI, nil
	}

	switch strings.ToLower(args[0]) {
	case "ask":
		return CmdAsk, args[1:]
	case "chat":
		return CmdChat, args[1:]
	case "session", "sessions":
		return CmdSessions, args[1:]
	case "config":
		return CmdConfig, args[1:]
	case "version", "-v", "--version":
		return CmdVersion, args[1:]
	case "help", "-h", "--help":
		return CmdHelp, args[1:]
	case "tui":
		return CmdTUI, args[1:]
	default:
		// Unknown word: treat the whole line as an ask query so that
		// `entropy why is my code broken` still works.
		return CmdAsk, args
	}
}

// HandleHelp prints usage information.
func HandleHelp() {
	fmt.Print(usageText)
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("entropy %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
