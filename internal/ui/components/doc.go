// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the DeerBank TUI:
// the dashboard header, balance card, transaction list, quick actions,
// session warning overlay, error toast, spinner, and form field helpers.
package components
