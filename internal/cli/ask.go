// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question handler.
//
// Command: ask
// Short:   Ask a single question and print the answer
//
// Examples:
//
//	entropy ask "why is the sky blue"
//	entropy ask -m entropy-haiku "explain recursion"
//	entropy ask --plain "give me json" | jq .

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/entropy-tui/internal/cloud"
	"github.com/jeranaias/entropy-tui/internal/config"
)

// askTimeout bounds a single one-shot question end to end.
const askTimeout = 2 * time.Minute

// HandleAsk handles the ask command.
func HandleAsk(args []string) {
	if err := runAsk(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runAsk(args []string) error {
	parser := NewArgParser(args)

	query := strings.Join(parser.PositionalFrom(0), " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("nothing to ask. Usage: entropy ask \"question\"")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	model, err := resolveModel(parser, cfg)
	if err != nil {
		return err
	}

	client := BuildClient(cfg)
	if !client.IsConfigured() {
		return errors.New("ANTHROPIC_API_KEY is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	resp, err := client.Complete(ctx, cloud.CompletionRequest{
		Message: query,
		Model:   model,
	})
	if err != nil {
		return err
	}

	fmt.Println(renderMarkdown(resp.Response, parser.BoolFlag("plain")))
	return nil
}

// renderMarkdown renders the answer via glamour when the output is an
// interactive terminal; plain text otherwise.
func renderMarkdown(text string, forcePlain bool) string {
	if forcePlain || !ColorEnabled() {
		return text
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()),
	)
	if err != nil {
		return text
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(rendered, "\n")
}
