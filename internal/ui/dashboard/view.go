// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deerbank-tui/internal/model"
	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
	"github.com/jeranaias/deerbank-tui/internal/util"
)

// View renders the dashboard, with any open modal centered on top.
func (m Model) View() string {
	if m.modal != modalNone {
		return m.viewModal()
	}

	var parts []string
	parts = append(parts, m.header.View())
	parts = append(parts, "")
	parts = append(parts, m.balance.View())
	parts = append(parts, "")
	parts = append(parts, m.actions.View())
	parts = append(parts, "")
	parts = append(parts, m.txs.View())

	if m.spinner.Active() {
		parts = append(parts, m.spinner.View(m.theme))
	}
	if m.toast.IsVisible() {
		parts = append(parts, m.toast.View(m.theme))
	}

	parts = append(parts, m.statusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) statusBar() string {
	keys := []struct{ key, desc string }{
		{"←/→", "actions"},
		{"↑/↓", "transactions"},
		{"enter", "select"},
		{"r", "refresh"},
		{"ctrl+l", "log out"},
		{"q", "quit"},
	}
	var line string
	for _, k := range keys {
		line += m.theme.ShortcutKey.Render(k.key) + m.theme.ShortcutDesc.Render(" "+k.desc+"  ")
	}
	bar := m.theme.StatusBar
	if m.width > 0 {
		bar = bar.Width(m.width)
	}
	return bar.Render(line)
}

// viewModal renders the active modal over a dimmed backdrop.
func (m Model) viewModal() string {
	var title, body string

	switch m.modal {
	case modalTransfer:
		title = "Transfer Money"
		body = m.formBody(m.payeeHint())
	case modalDeposit:
		title = "Deposit"
		body = m.formBody("")
	case modalWithdraw:
		title = "Withdraw"
		body = m.formBody("")
	case modalPayee:
		title = "Add Payee"
		body = m.formBody("")
	case modalApplyLoan:
		title = "Apply for a Loan"
		body = m.formBody("")
	case modalLoanPayment:
		title = "Loan Payment"
		body = m.formBody(m.loanPicker())
	case modalLoans:
		title = "My Loans"
		body = m.loansList()
	}

	var parts []string
	parts = append(parts, m.theme.ModalTitle.Render(title))
	parts = append(parts, "")
	parts = append(parts, body)
	if m.formError != "" {
		parts = append(parts, m.theme.FormError.Render(styles.StatusIndicators.Error+" "+m.formError))
	}
	if m.spinner.Active() {
		parts = append(parts, m.spinner.View(m.theme))
	}
	if m.toast.IsVisible() {
		parts = append(parts, m.toast.View(m.theme))
	}
	parts = append(parts, "")
	parts = append(parts, m.theme.FormHint.Render("enter: submit • tab: next • esc: cancel"))

	box := m.theme.ModalBox.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(styles.SurfaceDim))
}

func (m Model) formBody(extra string) string {
	if extra == "" {
		return m.form.View(m.theme)
	}
	return lipgloss.JoinVertical(lipgloss.Left, extra, "", m.form.View(m.theme))
}

// payeeHint lists known payees to copy an account number from.
func (m Model) payeeHint() string {
	if len(m.payees) == 0 {
		return m.theme.FormHint.Render("No saved payees yet")
	}
	var lines []string
	lines = append(lines, m.theme.FormLabel.Render("Saved payees:"))
	limit := len(m.payees)
	if limit > 5 {
		limit = 5
	}
	for _, p := range m.payees[:limit] {
		lines = append(lines, m.theme.FormHint.Render(
			"  "+util.TruncateWidth(p.Label(), 24)+"  "+p.AccountNo))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// loanPicker shows the loan the payment will apply to.
func (m Model) loanPicker() string {
	if len(m.loans) == 0 {
		return m.theme.FormHint.Render("No loans found")
	}
	var lines []string
	lines = append(lines, m.theme.FormLabel.Render("Pay against (↑/↓ to choose):"))
	for i, l := range m.loans {
		line := fmt.Sprintf("%s  %s  remaining %s",
			l.LoanNo, l.LoanType, util.FloatToString(l.RemainingBalance))
		style := m.theme.TxRow
		if i == m.loanIdx {
			style = m.theme.TxRowSelected
		}
		if !l.IsPayable() {
			line += "  (" + string(l.Status) + ")"
		}
		lines = append(lines, style.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// loansList renders the read-only loans browser.
func (m Model) loansList() string {
	if len(m.loans) == 0 {
		return m.theme.TxEmpty.Render("You have no loans")
	}
	var lines []string
	for i, l := range m.loans {
		status := m.statusStyle(l.Status).Render(string(l.Status))
		line := fmt.Sprintf("%-12s %-10s principal %-12s remaining %-12s ",
			l.LoanNo, l.LoanType,
			util.FloatToString(l.PrincipalAmount),
			util.FloatToString(l.RemainingBalance)) + status
		style := m.theme.TxRow
		if i == m.loanIdx {
			style = m.theme.TxRowSelected
		}
		lines = append(lines, style.Render(line))
	}
	lines = append(lines, "")
	lines = append(lines, m.theme.FormHint.Render("p: make a payment on the selected loan"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) statusStyle(status model.LoanStatus) lipgloss.Style {
	switch status {
	case model.LoanStatusActive, model.LoanStatusApproved:
		return m.theme.SuccessStyle
	case model.LoanStatusPending:
		return m.theme.WarningStyle
	case model.LoanStatusRejected, model.LoanStatusDefaulted:
		return m.theme.ErrorStyle
	default:
		return m.theme.InfoStyle
	}
}
