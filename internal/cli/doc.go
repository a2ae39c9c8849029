// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments and implements the
// non-interactive commands that run before (or instead of) the TUI:
// status, config, session, cache, doctor, version.
//
// The default invocation with no command starts the TUI; everything
// here prints plain text and exits.
package cli
