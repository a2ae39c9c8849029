// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
	"github.com/jeranaias/deerbank-tui/internal/util"
)

// toastDuration is how long a toast stays on screen.
const toastDuration = 5 * time.Second

// ErrorToast shows a transient error banner above the status bar.
type ErrorToast struct {
	message string
	visible bool
	width   int
	gen     int
}

// ToastExpiredMsg hides a toast after its display window.
type ToastExpiredMsg struct {
	Gen int
}

// NewErrorToast creates a hidden toast.
func NewErrorToast() ErrorToast {
	return ErrorToast{}
}

// SetWidth sets the render width.
func (t *ErrorToast) SetWidth(width int) {
	t.width = width
}

// Show displays a message and returns the auto-hide command. Showing a
// new message invalidates the previous hide timer.
func (t *ErrorToast) Show(message string) tea.Cmd {
	t.message = message
	t.visible = true
	t.gen++
	gen := t.gen
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{Gen: gen}
	})
}

// Hide dismisses the toast immediately.
func (t *ErrorToast) Hide() {
	t.visible = false
}

// HandleExpired hides the toast when the expiry matches the current
// generation. Stale timers from replaced toasts are ignored.
func (t *ErrorToast) HandleExpired(msg ToastExpiredMsg) {
	if msg.Gen == t.gen {
		t.visible = false
	}
}

// IsVisible reports whether the toast is shown.
func (t *ErrorToast) IsVisible() bool {
	return t.visible
}

// View renders the toast.
func (t ErrorToast) View(theme *styles.Theme) string {
	if !t.visible {
		return ""
	}
	msg := t.message
	if t.width > 8 {
		msg = util.TruncateWidth(msg, t.width-8)
	}
	return theme.ErrorToast.Render(
		theme.ErrorTitle.Render(styles.StatusIndicators.Error) + " " + msg)
}
