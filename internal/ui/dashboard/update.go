// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deerbank-tui/internal/ui/components"
)

// RefreshMsg asks the dashboard to refetch its data, e.g. after the root
// model restores a session.
type RefreshMsg struct{}

// Update handles dashboard input and data messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case RefreshMsg:
		m.syncSession()
		return m, tea.Batch(m.fetchTxs(), m.spinner.Start("Refreshing..."))

	case txLoadedMsg:
		// A stale cache paint never overwrites fresh backend rows; the
		// remote fetch always lands after the cache read in practice, and
		// the cache path marks itself so we can skip the spinner stop.
		m.txs.SetRows(m.accountNo(), msg.rows)
		if !msg.fromCache {
			m.spinner.Stop()
		}
		return m, nil

	case payeesLoadedMsg:
		m.payees = msg.payees
		m.payeeIdx = 0
		return m, nil

	case loansLoadedMsg:
		m.loans = msg.loans
		m.loanIdx = 0
		return m, nil

	case opDoneMsg:
		m.closeModal()
		m.spinner.Stop()
		var cmds []tea.Cmd
		if msg.newBalance != nil {
			// Persist the balance through the controller; it is a no-op
			// if the session was torn down while the call was in flight
			if err := m.ctrl.UpdateBalance(*msg.newBalance); err == nil && m.ctrl.Authenticated() {
				m.syncSession()
			}
		}
		cmds = append(cmds, m.fetchTxs(), m.toast.Show(msg.notice))
		return m, tea.Batch(cmds...)

	case dataErrMsg:
		m.submitting = false
		m.spinner.Stop()
		return m, m.toast.Show(msg.err.Error())

	case components.ToastExpiredMsg:
		m.toast.HandleExpired(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	// Modal has key priority while open
	if m.modal != modalNone {
		return m.handleModalKey(msg)
	}

	switch msg.String() {
	case "left", "h":
		m.actions.Prev()
	case "right", "l":
		m.actions.Next()
	case "up", "k":
		m.txs.CursorUp()
	case "down", "j":
		m.txs.CursorDown()
	case "r":
		return m, tea.Batch(m.fetchTxs(), m.spinner.Start("Refreshing..."))
	case "enter":
		switch m.actions.Selected() {
		case components.ActionTransfer:
			return m, m.openModal(modalTransfer)
		case components.ActionDeposit:
			return m, m.openModal(modalDeposit)
		case components.ActionWithdraw:
			return m, m.openModal(modalWithdraw)
		case components.ActionAddPayee:
			return m, m.openModal(modalPayee)
		case components.ActionApplyLoan:
			return m, m.openModal(modalApplyLoan)
		case components.ActionLoans:
			return m, m.openModal(modalLoans)
		}
	}
	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	}

	// The loans list browses; it has no form fields
	if m.modal == modalLoans {
		switch msg.String() {
		case "up", "k":
			if m.loanIdx > 0 {
				m.loanIdx--
			}
		case "down", "j":
			if m.loanIdx < len(m.loans)-1 {
				m.loanIdx++
			}
		case "p":
			// Jump into a payment against the highlighted loan
			if m.selectedPayableLoan() != nil {
				keep := m.loanIdx
				cmd := m.openModal(modalLoanPayment)
				m.loanIdx = keep
				return m, cmd
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "tab":
		return m, m.form.Next()
	case "shift+tab":
		return m, m.form.Prev()
	case "up", "down":
		// Loan payment modal scrolls its loan picker with arrows
		if m.modal == modalLoanPayment && len(m.loans) > 0 {
			if msg.String() == "up" && m.loanIdx > 0 {
				m.loanIdx--
			}
			if msg.String() == "down" && m.loanIdx < len(m.loans)-1 {
				m.loanIdx++
			}
			return m, nil
		}
	case "enter":
		if m.form.OnLast() {
			if cmd := m.submitModal(); cmd != nil {
				return m, tea.Batch(cmd, m.spinner.Start("Submitting..."))
			}
			return m, nil
		}
		return m, m.form.Next()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}
