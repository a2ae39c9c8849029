// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the deerbank TUI.
//
// It contains no banking logic. The helpers fall into three groups:
//
//   - Atomic file writes (temp file + fsync + rename) used by the config
//     and session persistence layers so a crash never leaves a partially
//     written record on disk.
//   - String helpers that are safe for UTF-8 and terminal display widths.
//   - Numeric conversion helpers used when rendering amounts and counts.
package util
