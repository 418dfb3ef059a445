// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive line-based chat handler.
//
// Command: chat
// Short:   Start an interactive chat session without the full TUI
//
// Examples:
//
//	entropy chat                         Start with the configured model
//	entropy chat -m entropy-turbo        Wait eight seconds per answer
//
// Interactive commands:
//
//	/help            Show available commands
//	/model [name]    Show or switch the model
//	/history         Print the conversation so far
//	/new             Start a fresh conversation
//	/quit            Exit (Ctrl+D also works)

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/entropy-tui/internal/cloud"
	"github.com/jeranaias/entropy-tui/internal/config"
	"github.com/jeranaias/entropy-tui/internal/model"
	"github.com/jeranaias/entropy-tui/internal/personality"
	"github.com/jeranaias/entropy-tui/internal/store"
	"github.com/jeranaias/entropy-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle  = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	welcomeStyle = lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(styles.TextSecondary)
	commandStyle = lipgloss.NewStyle().Foreground(styles.Emerald)
	warnStyle    = lipgloss.NewStyle().Foreground(styles.Amber)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// chatInput wraps liner with persistent input history.
type chatInput struct {
	line        *liner.State
	historyFile string
}

func newChatInput() *chatInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	ci := &chatInput{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	ci.loadHistory()
	return ci
}

func (c *chatInput) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

func (c *chatInput) saveHistory() {
	f, err := os.Create(c.historyFile)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// readInput reads one line with history navigation.
func (c *chatInput) readInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

func (c *chatInput) close() {
	c.saveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// HandleChat handles the chat command.
func HandleChat(args []string) {
	if err := runChat(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runChat(args []string) error {
	if !IsTTY() {
		return errors.New("chat requires an interactive terminal; use `entropy ask` for piped input")
	}

	parser := NewArgParser(args)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	modelID, err := resolveModel(parser, cfg)
	if err != nil {
		return err
	}

	st, err := BuildStore(cfg)
	if err != nil {
		return err
	}
	st.SetSelectedModel(modelID)
	st.NewConversation()

	client := BuildClient(cfg)
	if !client.IsConfigured() {
		fmt.Println(warnStyle.Render("ANTHROPIC_API_KEY is not set; every answer will be the error reply."))
	}

	input := newChatInput()
	defer input.close()

	printChatWelcome(modelID)

	for {
		text, err := input.readInput(promptStyle.Render("you> "))
		if err != nil {
			// Ctrl+C aborts the line, Ctrl+D ends the session.
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			fmt.Println()
			return nil
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, "/") {
			if quit := handleSlashCommand(text, st); quit {
				return nil
			}
			continue
		}

		answer := completeOnce(client, st, text)
		fmt.Println()
		fmt.Println(renderMarkdown(answer, false))
		fmt.Println()
	}
}

// completeOnce runs a single turn against the upstream and records both
// sides in the store. Failures produce the canned error reply, same as
// the TUI.
func completeOnce(client *cloud.AnthropicClient, st *store.Store, text string) string {
	modelID := st.SelectedModel()
	st.AppendMessage(st.CurrentID(), model.NewUserMessage(text, modelID.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	resp, err := client.Complete(ctx, cloud.CompletionRequest{
		Message: text,
		Model:   modelID,
	})

	answer := resp.Response
	if err != nil {
		answer = "Something went wrong. Even I can't mess up this badly. Try again."
	}

	st.AppendMessage(st.CurrentID(), model.NewAssistantMessage(answer, modelID.String()))
	return answer
}

// handleSlashCommand executes an interactive command. Returns true when
// the session should end.
func handleSlashCommand(text string, st *store.Store) bool {
	fields := strings.Fields(text)

	switch fields[0] {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Println(commandStyle.Render("/model [name]") + "  show or switch the model")
		fmt.Println(commandStyle.Render("/history") + "       print the conversation so far")
		fmt.Println(commandStyle.Render("/new") + "           start a fresh conversation")
		fmt.Println(commandStyle.Render("/quit") + "          exit")

	case "/model", "/m":
		if len(fields) < 2 {
			p := personality.MustLookup(st.SelectedModel())
			fmt.Println(infoStyle.Render("Current model: " + p.Name + " - " + p.Description))
			return false
		}
		id := personality.ModelID(fields[1])
		if !personality.IsValid(id) {
			fmt.Println(warnStyle.Render("Unknown model: " + fields[1]))
			return false
		}
		st.SetSelectedModel(id)
		fmt.Println(infoStyle.Render("Switched to " + personality.MustLookup(id).Name))

	case "/history":
		conv := st.Current()
		if conv == nil || conv.IsEmpty() {
			fmt.Println(infoStyle.Render("No messages yet."))
			return false
		}
		for _, msg := range conv.Messages {
			fmt.Println(promptStyle.Render(msg.Role.DisplayName()+": ") + msg.Content)
		}

	case "/new":
		st.NewConversation()
		fmt.Println(infoStyle.Render("Started a new conversation."))

	default:
		fmt.Println(warnStyle.Render("Unknown command. Try /help."))
	}

	return false
}

func printChatWelcome(modelID personality.ModelID) {
	p := personality.MustLookup(modelID)
	fmt.Println(welcomeStyle.Render("entropy chat"))
	fmt.Println(infoStyle.Render("Model: " + p.Name + " - " + p.Description))
	fmt.Println(infoStyle.Render("Type /help for commands, Ctrl+D to exit."))
	fmt.Println()
}
