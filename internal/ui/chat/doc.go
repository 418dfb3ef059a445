// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main Bubble Tea model for the entropy TUI.
//
// The chat model composes the viewport transcript, the text input, the
// conversation sidebar, the model selector overlay, and the status bar.
// All conversation state lives in the store and all turn state lives in
// the response pipeline; the chat model is a thin view over both and
// never mutates them directly outside their exported methods.
//
// Message flow for one turn:
//
//  1. The user presses enter; the input text goes to pipeline.Submit.
//  2. Pipeline messages (thinking ticks, the remote response, reveal
//     ticks) arrive through Update and are forwarded to the pipeline.
//  3. After every forwarded message the transcript is re-rendered from
//     the store plus the pipeline's revealed prefix.
package chat
