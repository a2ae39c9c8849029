// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
)

// =============================================================================
// SESSION WARNING OVERLAY
// =============================================================================

// SessionWarningOverlay warns that the session is about to expire. It
// shows the display countdown and two choices: Log Out (back to the
// landing screen) and Log In Again (straight to the auth screen, since
// the backend issues no refresh tokens).
type SessionWarningOverlay struct {
	visible   bool
	remaining int64
	cursor    int

	width  int
	height int
}

// WarningChoiceLogOut and WarningChoiceLogInAgain identify the overlay
// buttons.
const (
	WarningChoiceLogOut = iota
	WarningChoiceLogInAgain
)

// LogOutChosenMsg signals the user chose Log Out from the warning.
type LogOutChosenMsg struct{}

// LogInAgainChosenMsg signals the user chose to re-authenticate.
type LogInAgainChosenMsg struct{}

// NewSessionWarningOverlay creates a hidden overlay.
func NewSessionWarningOverlay() SessionWarningOverlay {
	return SessionWarningOverlay{cursor: WarningChoiceLogInAgain}
}

// SetSize sets the overlay dimensions.
func (o *SessionWarningOverlay) SetSize(width, height int) {
	o.width = width
	o.height = height
}

// Show displays the overlay with the given countdown.
func (o *SessionWarningOverlay) Show(remaining int64) {
	o.visible = true
	o.remaining = remaining
	o.cursor = WarningChoiceLogInAgain
}

// Hide hides the overlay.
func (o *SessionWarningOverlay) Hide() {
	o.visible = false
}

// SetRemaining updates the countdown display.
func (o *SessionWarningOverlay) SetRemaining(remaining int64) {
	o.remaining = remaining
}

// IsVisible reports whether the overlay is currently shown.
func (o *SessionWarningOverlay) IsVisible() bool {
	return o.visible
}

// Update handles key input while the overlay is visible.
func (o SessionWarningOverlay) Update(msg tea.Msg) (SessionWarningOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.width = msg.Width
		o.height = msg.Height

	case tea.KeyMsg:
		if !o.visible {
			return o, nil
		}
		switch msg.String() {
		case "left", "h", "tab":
			o.cursor = WarningChoiceLogOut
		case "right", "l", "shift+tab":
			o.cursor = WarningChoiceLogInAgain
		case "enter":
			choice := o.cursor
			o.visible = false
			if choice == WarningChoiceLogOut {
				return o, func() tea.Msg { return LogOutChosenMsg{} }
			}
			return o, func() tea.Msg { return LogInAgainChosenMsg{} }
		}
	}
	return o, nil
}

// View renders the overlay centered over the dashboard.
func (o SessionWarningOverlay) View(theme *styles.Theme) string {
	if !o.visible {
		return ""
	}

	width := o.width
	if width == 0 {
		width = 80
	}
	height := o.height
	if height == 0 {
		height = 24
	}

	maxWidth := width - 8
	if maxWidth < 44 {
		maxWidth = 44
	}
	if maxWidth > 60 {
		maxWidth = 60
	}

	var parts []string
	parts = append(parts, theme.WarningTitle.Render(
		styles.StatusIndicators.Warning+" Session Expiring Soon"))
	parts = append(parts, "")

	countdown := theme.WarningCountdown.Render(fmt.Sprintf("%d seconds", o.remaining))
	parts = append(parts, theme.WarningBody.Render(
		"Your session will expire in ")+countdown+theme.WarningBody.Render("."))
	parts = append(parts, theme.WarningBody.Render(
		"Would you like to log in again to continue?"))
	parts = append(parts, "")

	logout := theme.ModalButton.Render("Log Out")
	again := theme.ModalButton.Render("Log In Again")
	if o.cursor == WarningChoiceLogOut {
		logout = theme.ModalButtonActive.Render("Log Out")
	} else {
		again = theme.ModalButtonActive.Render("Log In Again")
	}
	parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, logout, " ", again))

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	box := theme.WarningOverlay.Width(maxWidth).Render(content)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		box,
		lipgloss.WithWhitespaceBackground(styles.SurfaceDim),
	)
}
