// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deerbank-tui/internal/model"
	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
	"github.com/jeranaias/deerbank-tui/internal/util"
)

// amountColWidth right-aligns the amount column so decimal points line
// up across rows.
const amountColWidth = 14

// TransactionList renders recent transactions with credit/debit coloring.
// Navigation is a simple cursor over a visible window; the list stays
// cheap to re-render on every tick.
type TransactionList struct {
	theme     *styles.Theme
	formatter *model.MoneyFormatter

	accountNo string
	rows      []model.TransactionHistory
	cursor    int
	offset    int
	height    int
	width     int
}

// NewTransactionList creates an empty transaction list.
func NewTransactionList(theme *styles.Theme, formatter *model.MoneyFormatter) TransactionList {
	return TransactionList{theme: theme, formatter: formatter, height: 10}
}

// SetFormatter swaps the locale formatter, e.g. after a config reload.
func (l *TransactionList) SetFormatter(formatter *model.MoneyFormatter) {
	l.formatter = formatter
}

// SetSize sets the visible rows and render width.
func (l *TransactionList) SetSize(width, height int) {
	l.width = width
	if height > 0 {
		l.height = height
	}
}

// SetRows replaces the rows. The cursor resets to the newest entry.
func (l *TransactionList) SetRows(accountNo string, rows []model.TransactionHistory) {
	l.accountNo = accountNo
	l.rows = rows
	l.cursor = 0
	l.offset = 0
}

// Rows returns the current rows.
func (l *TransactionList) Rows() []model.TransactionHistory {
	return l.rows
}

// Selected returns the row under the cursor, or nil when empty.
func (l *TransactionList) Selected() *model.TransactionHistory {
	if len(l.rows) == 0 || l.cursor >= len(l.rows) {
		return nil
	}
	return &l.rows[l.cursor]
}

// CursorUp moves the selection up one row.
func (l *TransactionList) CursorUp() {
	if l.cursor > 0 {
		l.cursor--
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
}

// CursorDown moves the selection down one row.
func (l *TransactionList) CursorDown() {
	if l.cursor < len(l.rows)-1 {
		l.cursor++
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
}

// View renders the list.
func (l TransactionList) View() string {
	if len(l.rows) == 0 {
		return l.theme.TxList.Render(l.theme.TxEmpty.Render("No transactions yet"))
	}

	descWidth := l.width - 36
	if descWidth < 12 {
		descWidth = 12
	}

	end := l.offset + l.height
	if end > len(l.rows) {
		end = len(l.rows)
	}

	var lines []string
	for i := l.offset; i < end; i++ {
		row := l.rows[i]
		credit := row.IsCredit(l.accountNo)

		amount := l.formatter.FormatSigned(row.Amount, credit)
		if pad := amountColWidth - util.StringWidth(amount); pad > 0 {
			amount = strings.Repeat(" ", pad) + amount
		}
		amountStyle := l.theme.TxDebit
		if credit {
			amountStyle = l.theme.TxCredit
		}

		date := l.theme.TxDate.Render(util.TruncateRunesNoEllipsis(row.TranDatetime, 10))
		desc := l.theme.TxDescription.Render(
			util.PadRight(util.TruncateWidth(row.Description, descWidth), descWidth))

		line := lipgloss.JoinHorizontal(lipgloss.Top,
			date, " ", desc, " ", amountStyle.Render(amount))

		if i == l.cursor {
			line = l.theme.TxRowSelected.Render(line)
		} else {
			line = l.theme.TxRow.Render(line)
		}
		lines = append(lines, line)
	}

	return l.theme.TxList.Render(strings.Join(lines, "\n"))
}
