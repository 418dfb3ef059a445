// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// sessions.go - Saved conversation management.
//
// Command: sessions
// Short:   List, inspect, and export saved conversations
//
// Examples:
//
//	entropy sessions list
//	entropy sessions show conv_abc123
//	entropy sessions export conv_abc123 --format json --out ~/exports

package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/jeranaias/entropy-tui/internal/config"
	"github.com/jeranaias/entropy-tui/internal/export"
	"github.com/jeranaias/entropy-tui/internal/store"
)

// HandleSessions handles the sessions command.
func HandleSessions(args []string) {
	if err := runSessions(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSessions(args []string) error {
	parser := NewArgParser(args)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	st, err := BuildStore(cfg)
	if err != nil {
		return err
	}

	switch parser.Subcommand() {
	case "", "list":
		return listSessions(st)
	case "show":
		return showSession(st, parser.Positional(1))
	case "export":
		return exportSession(st, parser)
	default:
		return fmt.Errorf("unknown sessions subcommand %q (want list, show, or export)", parser.Subcommand())
	}
}

func listSessions(st *store.Store) error {
	convs := st.Conversations()
	if len(convs) == 0 {
		fmt.Println(infoStyle.Render("No saved conversations."))
		return nil
	}

	for _, conv := range convs {
		marker := "  "
		if conv.ID == st.CurrentID() {
			marker = "* "
		}
		line := marker + conv.ID + "  " + conv.Title +
			"  (" + strconv.Itoa(conv.MessageCount()) + " messages"
		if !conv.UpdatedAt.IsZero() {
			line += ", " + conv.UpdatedAt.Format("2006-01-02 15:04")
		}
		line += ")"
		fmt.Println(line)
	}
	return nil
}

func showSession(st *store.Store, id string) error {
	if id == "" {
		return errors.New("usage: entropy sessions show <id>")
	}

	conv := st.Find(id)
	if conv == nil {
		return fmt.Errorf("no conversation with id %q", id)
	}

	fmt.Println(welcomeStyle.Render(conv.Title))
	fmt.Println()
	for _, msg := range conv.Messages {
		fmt.Println(promptStyle.Render(msg.Role.DisplayName() + ":"))
		fmt.Println(msg.Content)
		fmt.Println()
	}
	return nil
}

func exportSession(st *store.Store, parser *ArgParser) error {
	id := parser.Positional(1)
	if id == "" {
		return errors.New("usage: entropy sessions export <id> [--format md|json] [--out dir]")
	}

	conv := st.Find(id)
	if conv == nil {
		return fmt.Errorf("no conversation with id %q", id)
	}

	opts := export.DefaultOptions()
	opts.OutputDir = parser.FlagOrDefault("out", ".")

	format := parser.Flag("format")
	if format == "" {
		format = parser.Flag("f")
	}
	exporter, err := export.ForFormat(format, opts)
	if err != nil {
		return err
	}

	path, err := export.ExportToFile(conv, exporter, opts)
	if err != nil {
		return err
	}

	fmt.Println(infoStyle.Render("Exported to " + path))
	return nil
}
