// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pipeline drives one user turn from submission to its committed
// assistant reply.
//
// Each turn moves through a fixed sequence of phases:
//
//	Idle → Submitted → AwaitingRemote → Thinking → Revealing → Committed
//
// with Error reachable from AwaitingRemote. Submission is rejected while
// a turn is in flight, when the trimmed input is empty, or when no
// conversation is current. The Thinking phase is cosmetic; nothing is
// gated on a timer there, only on the remote call settling. The Revealing
// phase replays the already-complete response one rune at a time, and the
// commit always writes the full original text, never the partial reveal.
//
// A turn captures its conversation id at submit time. Scheduled ticks are
// keyed by turn id, so a tick for a superseded turn is ignored, and a
// commit lands in the captured conversation even if the user has since
// navigated elsewhere.
package pipeline
