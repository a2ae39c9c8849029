// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
)

// Action identifies a quick action on the dashboard.
type Action int

const (
	ActionTransfer Action = iota
	ActionDeposit
	ActionWithdraw
	ActionAddPayee
	ActionApplyLoan
	ActionLoans
)

// String returns the button label.
func (a Action) String() string {
	switch a {
	case ActionTransfer:
		return "Transfer"
	case ActionDeposit:
		return "Deposit"
	case ActionWithdraw:
		return "Withdraw"
	case ActionAddPayee:
		return "Add Payee"
	case ActionApplyLoan:
		return "Apply Loan"
	case ActionLoans:
		return "My Loans"
	default:
		return "Unknown"
	}
}

// QuickActions is the row of action buttons under the balance card.
type QuickActions struct {
	theme   *styles.Theme
	actions []Action
	cursor  int
	focused bool
}

// NewQuickActions creates the standard customer action row.
func NewQuickActions(theme *styles.Theme) QuickActions {
	return QuickActions{
		theme: theme,
		actions: []Action{
			ActionTransfer, ActionDeposit, ActionWithdraw,
			ActionAddPayee, ActionApplyLoan, ActionLoans,
		},
	}
}

// Focus gives the row keyboard focus.
func (q *QuickActions) Focus() { q.focused = true }

// Blur removes keyboard focus.
func (q *QuickActions) Blur() { q.focused = false }

// Focused reports whether the row has focus.
func (q *QuickActions) Focused() bool { return q.focused }

// Next moves the cursor right, wrapping around.
func (q *QuickActions) Next() {
	q.cursor = (q.cursor + 1) % len(q.actions)
}

// Prev moves the cursor left, wrapping around.
func (q *QuickActions) Prev() {
	q.cursor = (q.cursor - 1 + len(q.actions)) % len(q.actions)
}

// Selected returns the action under the cursor.
func (q *QuickActions) Selected() Action {
	return q.actions[q.cursor]
}

// View renders the button row.
func (q QuickActions) View() string {
	var buttons []string
	for i, a := range q.actions {
		style := q.theme.ActionButton
		if q.focused && i == q.cursor {
			style = q.theme.ActionButtonActive
		}
		buttons = append(buttons, style.Render(a.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}
