// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"context"

	"github.com/jeranaias/entropy-tui/internal/personality"
)

// =============================================================================
// COMPLETION BOUNDARY
// =============================================================================

// CompletionRequest carries one user turn to the remote boundary.
type CompletionRequest struct {
	// Message is the user's raw text, already trimmed and normalized.
	Message string

	// Model selects the Entropy personality whose system prompt and
	// artificial delay accompany the call.
	Model personality.ModelID
}

// CompletionResponse carries the textual portion of the model's reply.
// Response is the empty string when the reply had no text segment.
type CompletionResponse struct {
	Response string
}

// Completer is the remote completion boundary consumed by the response
// pipeline. Implementations must be safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}
