// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deerbank-tui/internal/model"
	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
)

// BalanceCard shows the current balance with the account type and number.
type BalanceCard struct {
	theme     *styles.Theme
	formatter *model.MoneyFormatter
	width     int

	balance     float64
	accountType string
	accountNo   string
	maskAccount bool
}

// NewBalanceCard creates a balance card using the given locale formatter.
func NewBalanceCard(theme *styles.Theme, formatter *model.MoneyFormatter) BalanceCard {
	return BalanceCard{theme: theme, formatter: formatter, maskAccount: true}
}

// SetWidth sets the render width.
func (b *BalanceCard) SetWidth(width int) {
	b.width = width
}

// SetAccount binds the account snapshot to display.
func (b *BalanceCard) SetAccount(accountType, accountNo string, balance float64) {
	b.accountType = accountType
	b.accountNo = accountNo
	b.balance = balance
}

// SetBalance updates only the displayed balance.
func (b *BalanceCard) SetBalance(balance float64) {
	b.balance = balance
}

// SetMaskAccount controls account number masking.
func (b *BalanceCard) SetMaskAccount(mask bool) {
	b.maskAccount = mask
}

// SetFormatter swaps the locale formatter, e.g. after a config reload.
func (b *BalanceCard) SetFormatter(formatter *model.MoneyFormatter) {
	b.formatter = formatter
}

// View renders the card.
func (b BalanceCard) View() string {
	label := b.theme.BalanceLabel.Render("Available Balance")
	amount := b.theme.BalanceAmount.Render(b.formatter.Format(b.balance))

	no := b.accountNo
	if b.maskAccount {
		no = MaskAccountNo(no)
	}
	meta := b.theme.BalanceMeta.Render(b.accountType + " " + no)

	content := lipgloss.JoinVertical(lipgloss.Left, label, amount, meta)

	card := b.theme.BalanceCard
	if b.width > 0 {
		card = card.Width(b.width - 2)
	}
	return card.Render(content)
}
