// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the entropy TUI.
//
// This package contains common helper functions used throughout the
// application for string handling and file operations.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - PadRight: display-width aware padding for tabular output
//   - NormalizeInput: NFC normalization of user input
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
package util
