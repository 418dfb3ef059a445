// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the entropy TUI.
//
// Components are small, self-contained renderers composed by the chat
// model:
//
//   - MessageBubble / MessageList: styled chat transcript bubbles
//   - Sidebar: the conversation list panel
//   - ModelSelector: the personality picker overlay
//   - StatusBar: bottom bar with model badge and shortcuts
//   - Welcome: the start screen shown before the first message
//   - Spinner: loading animation shown while a reply is pending
//   - CodeBlock: chroma-highlighted fenced code rendering
//
// Every component takes its colors from the styles package so the whole
// application adapts to light and dark terminals together.
package components
