// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/deerbank-tui/internal/api"
	"github.com/jeranaias/deerbank-tui/internal/model"
	"github.com/jeranaias/deerbank-tui/internal/session"
	"github.com/jeranaias/deerbank-tui/internal/storage"
	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
)

type fixedClock struct {
	secs int64
}

func (f fixedClock) SecondsUntilExpiry(token string) int64 {
	return f.secs
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	store, err := storage.NewSessionStoreWithDir(t.TempDir())
	require.NoError(t, err)
	creds := session.NewCredentialStore()
	state := session.NewState(store, creds, false)
	clock := fixedClock{secs: 600}
	monitor := session.NewExpiryMonitor(clock, state.Token, 30)
	ctrl := session.NewController(state, monitor, clock, nil, nil)
	client := api.NewClient("http://127.0.0.1:1", creds)
	return New(styles.NewTheme(), client, ctrl)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestPaneSwitch(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, paneLoans, m.pane)

	m, _ = m.Update(keyMsg("ctrl+n"))
	assert.Equal(t, paneCreateAccount, m.pane)

	m, _ = m.Update(keyMsg("ctrl+n"))
	assert.Equal(t, paneLoans, m.pane)
}

func TestLoanCursorBounds(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.Update(loansLoadedMsg{loans: []model.Loan{
		{LoanID: 1, LoanNo: "LN-001"},
		{LoanID: 2, LoanNo: "LN-002"},
	}})

	m, _ = m.Update(keyMsg("up"))
	assert.Equal(t, 0, m.loanIdx, "cursor must not move above the first loan")

	m, _ = m.Update(keyMsg("down"))
	m, _ = m.Update(keyMsg("down"))
	m, _ = m.Update(keyMsg("down"))
	assert.Equal(t, 1, m.loanIdx, "cursor must stop at the last loan")
}

func TestActOnLoanNoSelection(t *testing.T) {
	m := newTestModel(t)
	assert.Nil(t, m.actOnLoan("approve"), "no loans loaded, nothing to act on")
}

func TestSubmitAccountValidation(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.Update(keyMsg("ctrl+n"))
	require.Equal(t, paneCreateAccount, m.pane)

	cmd := m.submitAccount()
	assert.Nil(t, cmd)
	assert.Contains(t, m.formError, "required")
}

func TestSubmitAccountBadBalance(t *testing.T) {
	m := newTestModel(t)
	m.form.Fields[0].SetValue("Jane Deer")
	m.form.Fields[1].SetValue("1990-04-12")
	m.form.Fields[3].SetValue("555-0100")
	m.form.Fields[5].SetValue("not-a-number")

	cmd := m.submitAccount()
	assert.Nil(t, cmd)
	assert.Contains(t, m.formError, "balance")
}

func TestLoanActedReloadsQueue(t *testing.T) {
	m := newTestModel(t)
	m, cmd := m.Update(loanActedMsg{notice: "Loan LN-001 approved"})
	assert.NotNil(t, cmd, "acting on a loan must trigger a queue reload")
	assert.True(t, m.toast.IsVisible())
}
