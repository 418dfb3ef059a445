// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud implements the remote completion boundary.
//
// The boundary accepts the user's raw text plus an Entropy model
// identifier, attaches that model's system prompt and artificial
// pre-response delay, calls the Anthropic Messages API, and returns only
// the textual portion of the reply (empty string when the reply carries
// no text segment).
//
// # Key Types
//
//   - Completer: the interface the response pipeline depends on
//   - AnthropicClient: production Completer backed by the Messages API
//
// # Usage
//
//	client := cloud.NewAnthropicClient(os.Getenv("ANTHROPIC_API_KEY"))
//	resp, err := client.Complete(ctx, cloud.CompletionRequest{
//	    Message: "What is JavaScript?",
//	    Model:   personality.ModelHaiku,
//	})
//
// CLOUD: Secure logging, retry logic, and rate limiting
package cloud
