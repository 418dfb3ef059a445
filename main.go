// entropy TUI - a terminal chat client for the Entropy AI models.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/entropy-tui/internal/cli"
	"github.com/jeranaias/entropy-tui/internal/config"
	"github.com/jeranaias/entropy-tui/internal/personality"
	"github.com/jeranaias/entropy-tui/internal/ui/chat"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI()
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdSessions:
		cli.HandleSessions(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		cli.HandleHelp()
		os.Exit(1)
	}
}

// runTUI wires storage, the conversation store, the upstream client, and
// the Bubble Tea program together.
func runTUI() {
	if err := config.EnsureConfigDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st, err := cli.BuildStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if id := personality.ModelID(cfg.DefaultModel); personality.IsValid(id) {
		st.SetSelectedModel(id)
	}
	if st.Current() == nil {
		st.NewConversation()
	}

	client := cli.BuildClient(cfg)
	if !client.IsConfigured() {
		fmt.Fprintln(os.Stderr, "warning: ANTHROPIC_API_KEY is not set; every reply will be the error message")
	}

	m := chat.New(st, client,
		chat.WithVersion(Version),
		chat.WithSidebar(cfg.UI.ShowSidebar),
	)

	// Hot-reload the default model when the config file changes on disk.
	if path, err := config.ConfigPath(); err == nil {
		watcher, err := config.NewWatcher(path, func(next *config.Config) {
			if id := personality.ModelID(next.DefaultModel); personality.IsValid(id) {
				st.SetSelectedModel(id)
			}
		})
		if err == nil {
			if err := watcher.Watch(); err != nil {
				log.Printf("config watch failed: %v", err)
			}
			defer watcher.Close()
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
