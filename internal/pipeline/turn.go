// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/entropy-tui/internal/personality"
)

// =============================================================================
// TURN PHASES
// =============================================================================

// Phase is the position of the active turn in the pipeline.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitted
	PhaseAwaitingRemote
	PhaseThinking
	PhaseRevealing
	PhaseCommitted
	PhaseError
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitted:
		return "submitted"
	case PhaseAwaitingRemote:
		return "awaiting-remote"
	case PhaseThinking:
		return "thinking"
	case PhaseRevealing:
		return "revealing"
	case PhaseCommitted:
		return "committed"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// =============================================================================
// TURN
// =============================================================================

// Turn is one user submission in flight. All fields are captured at
// submit time and never change; in particular ConversationID pins where
// the eventual commit lands, regardless of later navigation.
type Turn struct {
	ID             string
	ConversationID string
	Model          personality.ModelID
	Prompt         string
	StartedAt      time.Time
}

// newTurn captures a turn at submit time.
func newTurn(conversationID string, model personality.ModelID, prompt string) *Turn {
	return &Turn{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Model:          model,
		Prompt:         prompt,
		StartedAt:      time.Now(),
	}
}
