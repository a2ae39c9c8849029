// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
)

// Spinner shows progress while a backend call is in flight.
type Spinner struct {
	spinner spinner.Model
	label   string
	active  bool
}

// NewSpinner creates a dot spinner in the theme accent color.
func NewSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Spinner
	return Spinner{spinner: s}
}

// Start activates the spinner with a label and returns its tick command.
func (s *Spinner) Start(label string) tea.Cmd {
	s.label = label
	s.active = true
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.active = false
	s.label = ""
}

// Active reports whether the spinner is running.
func (s *Spinner) Active() bool {
	return s.active
}

// Update advances the animation. Tick messages are dropped when idle so
// the chain dies with the spinner.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner with its label.
func (s Spinner) View(theme *styles.Theme) string {
	if !s.active {
		return ""
	}
	return s.spinner.View() + " " + theme.LoadingText.Render(s.label)
}
