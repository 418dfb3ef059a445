// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines the Bubble Tea message types emitted by the pipeline.
// All message types carry the turn they belong to so handlers can discard
// messages from superseded turns.

package pipeline

import "time"

// =============================================================================
// REMOTE CALL MESSAGES
// =============================================================================

// TurnResponseMsg delivers the complete response text for a turn.
type TurnResponseMsg struct {
	Turn *Turn
	Text string
}

// TurnFailedMsg signals that the remote call for a turn failed.
type TurnFailedMsg struct {
	Turn *Turn
	Err  error
}

// =============================================================================
// ANIMATION MESSAGES
// =============================================================================

// ThinkingTickMsg advances the thinking-dots animation for a turn.
type ThinkingTickMsg struct {
	TurnID string
	Time   time.Time
}

// RevealTickMsg advances the character reveal for a turn by one rune.
type RevealTickMsg struct {
	TurnID string
}

// TurnCommittedMsg signals that a turn's reply was committed to its
// conversation and the pipeline returned to idle.
type TurnCommittedMsg struct {
	Turn *Turn
}
