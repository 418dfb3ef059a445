// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/entropy-tui/internal/cloud"
	"github.com/jeranaias/entropy-tui/internal/model"
	"github.com/jeranaias/entropy-tui/internal/personality"
	"github.com/jeranaias/entropy-tui/internal/store"
	"github.com/jeranaias/entropy-tui/internal/util"
)

// Timing constants for the client-side animations.
const (
	// revealInterval is the fixed per-rune reveal step.
	revealInterval = 15 * time.Millisecond

	// revealBaseDelay is the fixed offset before the reveal starts.
	revealBaseDelay = 300 * time.Millisecond

	// thinkingTickInterval drives the thinking-dots animation.
	thinkingTickInterval = 500 * time.Millisecond

	// maxThinkingDots is the dot count the animation wraps at.
	maxThinkingDots = 3
)

// ErrorMessageText is the fixed assistant reply shown when the remote
// call fails. The failure itself is only logged.
const ErrorMessageText = "Something went wrong. Even I can't mess up this badly. Try again."

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline owns the active turn and its phase. Mutations happen on the
// Bubble Tea update loop; the mutex covers the read accessors the view
// calls while commands settle on other goroutines.
type Pipeline struct {
	mu sync.Mutex

	store     *store.Store
	completer cloud.Completer

	phase  Phase
	active *Turn

	// Reveal state for the active turn.
	responseRunes []rune
	revealed      int

	thinkingDots int
}

// New creates a pipeline over the given store and completion boundary.
func New(st *store.Store, completer cloud.Completer) *Pipeline {
	return &Pipeline{
		store:     st,
		completer: completer,
		phase:     PhaseIdle,
	}
}

// =============================================================================
// SUBMISSION
// =============================================================================

// Submit starts a new turn for the given raw input.
//
// The returned command is nil when the submission is rejected: empty
// trimmed input, a turn already in flight, or no current conversation.
// Rejection changes no state. On acceptance the user message is appended
// to the current conversation (deriving the title if it is the first
// message), the loading guard is set, and the remote call is issued.
func (p *Pipeline) Submit(input string) tea.Cmd {
	p.mu.Lock()
	defer p.mu.Unlock()

	text := util.NormalizeInput(input)
	if text == "" {
		return nil
	}
	if p.store.IsLoading() {
		return nil
	}
	conv := p.store.Current()
	if conv == nil {
		return nil
	}

	turn := newTurn(conv.ID, p.store.SelectedModel(), text)
	p.store.AppendMessage(turn.ConversationID, model.NewUserMessage(text, turn.Model.String()))
	p.store.SetLoading(true)

	p.phase = PhaseAwaitingRemote
	p.active = turn
	p.responseRunes = nil
	p.revealed = 0
	p.thinkingDots = 0

	return tea.Batch(p.remoteCmd(turn), thinkingTickCmd(turn.ID))
}

// remoteCmd issues the completion call for a turn. The call runs on a
// command goroutine with no deadline; a hung remote leaves the turn in
// flight.
func (p *Pipeline) remoteCmd(turn *Turn) tea.Cmd {
	return func() tea.Msg {
		resp, err := p.completer.Complete(context.Background(), cloud.CompletionRequest{
			Message: turn.Prompt,
			Model:   turn.Model,
		})
		if err != nil {
			return TurnFailedMsg{Turn: turn, Err: err}
		}
		return TurnResponseMsg{Turn: turn, Text: resp.Response}
	}
}

// thinkingTickCmd schedules the next thinking-dots frame for a turn.
func thinkingTickCmd(turnID string) tea.Cmd {
	return tea.Tick(thinkingTickInterval, func(t time.Time) tea.Msg {
		return ThinkingTickMsg{TurnID: turnID, Time: t}
	})
}

// revealTickCmd schedules the next reveal step for a turn.
func revealTickCmd(turnID string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return RevealTickMsg{TurnID: turnID}
	})
}

// =============================================================================
// MESSAGE HANDLING
// =============================================================================

// Update advances the pipeline for one of its own messages. Messages it
// does not own, and messages keyed to a superseded turn, return nil with
// no state change.
func (p *Pipeline) Update(msg tea.Msg) tea.Cmd {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch msg := msg.(type) {
	case ThinkingTickMsg:
		return p.handleThinkingTick(msg)
	case TurnResponseMsg:
		return p.handleResponse(msg)
	case TurnFailedMsg:
		return p.handleFailure(msg)
	case RevealTickMsg:
		return p.handleRevealTick(msg)
	}
	return nil
}

func (p *Pipeline) handleThinkingTick(msg ThinkingTickMsg) tea.Cmd {
	if p.active == nil || p.active.ID != msg.TurnID {
		return nil
	}
	if p.phase != PhaseAwaitingRemote && p.phase != PhaseThinking {
		return nil
	}
	p.phase = PhaseThinking
	p.thinkingDots = (p.thinkingDots + 1) % (maxThinkingDots + 1)
	return thinkingTickCmd(msg.TurnID)
}

func (p *Pipeline) handleResponse(msg TurnResponseMsg) tea.Cmd {
	if p.active == nil || p.active.ID != msg.Turn.ID {
		return nil
	}
	p.phase = PhaseRevealing
	p.responseRunes = []rune(msg.Text)
	p.revealed = 0
	return revealTickCmd(msg.Turn.ID, revealBaseDelay)
}

func (p *Pipeline) handleFailure(msg TurnFailedMsg) tea.Cmd {
	if p.active == nil || p.active.ID != msg.Turn.ID {
		return nil
	}
	log.Printf("pipeline: turn %s failed: %v", msg.Turn.ID, msg.Err)

	p.store.AppendMessage(msg.Turn.ConversationID,
		model.NewAssistantMessage(ErrorMessageText, msg.Turn.Model.String()))
	p.store.SetLoading(false)
	p.resetLocked()
	return nil
}

func (p *Pipeline) handleRevealTick(msg RevealTickMsg) tea.Cmd {
	if p.active == nil || p.active.ID != msg.TurnID || p.phase != PhaseRevealing {
		return nil
	}

	if p.revealed < len(p.responseRunes) {
		p.revealed++
	}
	if p.revealed < len(p.responseRunes) {
		return revealTickCmd(msg.TurnID, revealInterval)
	}

	// Reveal complete: commit the full original text to the conversation
	// captured at submit time, even if the user navigated away.
	turn := p.active
	p.store.AppendMessage(turn.ConversationID,
		model.NewAssistantMessage(string(p.responseRunes), turn.Model.String()))
	p.store.SetLoading(false)
	p.resetLocked()
	return func() tea.Msg {
		return TurnCommittedMsg{Turn: turn}
	}
}

// resetLocked returns the pipeline to idle. Caller holds the mutex.
func (p *Pipeline) resetLocked() {
	p.phase = PhaseIdle
	p.active = nil
	p.responseRunes = nil
	p.revealed = 0
	p.thinkingDots = 0
}

// =============================================================================
// VIEW ACCESSORS
// =============================================================================

// Phase returns the current pipeline phase.
func (p *Pipeline) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// ActiveTurn returns the in-flight turn, or nil.
func (p *Pipeline) ActiveTurn() *Turn {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// RevealedText returns the currently visible prefix of the response.
func (p *Pipeline) RevealedText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.phase != PhaseRevealing {
		return ""
	}
	return string(p.responseRunes[:p.revealed])
}

// ThinkingIndicator returns the label plus animated dots for the active
// turn, or "" when nothing is thinking.
func (p *Pipeline) ThinkingIndicator() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil || (p.phase != PhaseAwaitingRemote && p.phase != PhaseThinking) {
		return ""
	}
	label := personality.MustLookup(p.active.Model).ThinkingLabel
	return label + strings.Repeat(".", p.thinkingDots)
}
