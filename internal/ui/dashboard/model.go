// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard implements the customer dashboard: balance card,
// recent transactions, quick actions, and the money-movement modals.
package dashboard

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deerbank-tui/internal/api"
	"github.com/jeranaias/deerbank-tui/internal/model"
	"github.com/jeranaias/deerbank-tui/internal/session"
	"github.com/jeranaias/deerbank-tui/internal/storage"
	"github.com/jeranaias/deerbank-tui/internal/ui/components"
	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
)

// fetchTimeout bounds a single dashboard data request.
const fetchTimeout = 30 * time.Second

// modalKind selects the active overlay form.
type modalKind int

const (
	modalNone modalKind = iota
	modalTransfer
	modalDeposit
	modalWithdraw
	modalPayee
	modalApplyLoan
	modalLoanPayment
	modalLoans
)

// Model is the customer dashboard.
type Model struct {
	theme  *styles.Theme
	client *api.Client
	ctrl   *session.Controller
	cache  *storage.TxCache

	header  components.Header
	balance components.BalanceCard
	actions components.QuickActions
	txs     components.TransactionList
	spinner components.Spinner
	toast   components.ErrorToast

	modal      modalKind
	form       components.FieldSet
	formError  string
	submitting bool

	payees     []model.PayeeResponse
	payeeIdx   int
	loans      []model.Loan
	loanIdx    int

	width  int
	height int
}

// New creates the dashboard for the current session. The caller must
// have an authenticated controller; Init fetches the first page of data.
func New(theme *styles.Theme, client *api.Client, ctrl *session.Controller, cache *storage.TxCache, formatter *model.MoneyFormatter, maskAccount bool) Model {
	m := Model{
		theme:   theme,
		client:  client,
		ctrl:    ctrl,
		cache:   cache,
		header:  components.NewHeader(theme),
		balance: components.NewBalanceCard(theme, formatter),
		actions: components.NewQuickActions(theme),
		txs:     components.NewTransactionList(theme, formatter),
		spinner: components.NewSpinner(theme),
		toast:   components.NewErrorToast(),
	}
	m.header.SetMaskAccount(maskAccount)
	m.balance.SetMaskAccount(maskAccount)
	m.actions.Focus()
	m.syncSession()
	return m
}

// SetDisplay applies the display knobs a config reload can change.
func (m *Model) SetDisplay(formatter *model.MoneyFormatter, maskAccount bool) {
	m.balance.SetFormatter(formatter)
	m.txs.SetFormatter(formatter)
	m.header.SetMaskAccount(maskAccount)
	m.balance.SetMaskAccount(maskAccount)
}

// syncSession refreshes header and balance from the session record.
func (m *Model) syncSession() {
	cur := m.ctrl.Current()
	m.header.SetUser(cur)
	if cur == nil || !cur.HasAccount() {
		return
	}
	accountType := ""
	if cur.AccountType != nil {
		accountType = *cur.AccountType
	}
	balance := 0.0
	if cur.Balance != nil {
		balance = *cur.Balance
	}
	m.balance.SetAccount(accountType, *cur.AccountNo, balance)
}

// accountNo returns the session account number, or "" for MASTER users.
func (m *Model) accountNo() string {
	cur := m.ctrl.Current()
	if cur == nil || cur.AccountNo == nil {
		return ""
	}
	return *cur.AccountNo
}

// ModalOpen reports whether an overlay form is capturing input. The
// root model suppresses global single-key shortcuts while one is open.
func (m Model) ModalOpen() bool {
	return m.modal != modalNone
}

// Init paints cached transactions immediately and starts the remote
// fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCachedTxs(), m.fetchTxs(), m.spinner.Start("Loading transactions..."))
}

// SetSize propagates the window size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.header.SetWidth(width)
	m.balance.SetWidth(width / 2)
	m.txs.SetSize(width-4, height-14)
	m.toast.SetWidth(width)
}

// ===== DATA COMMANDS =====

type txLoadedMsg struct {
	rows      []model.TransactionHistory
	fromCache bool
}

type payeesLoadedMsg struct {
	payees []model.PayeeResponse
}

type loansLoadedMsg struct {
	loans []model.Loan
}

// opDoneMsg reports a completed money operation. newBalance is nil when
// the operation does not move the session account's balance.
type opDoneMsg struct {
	notice     string
	newBalance *float64
}

type dataErrMsg struct {
	err error
}

func (m Model) loadCachedTxs() tea.Cmd {
	if m.cache == nil {
		return nil
	}
	cache := m.cache
	accountNo := m.accountNo()
	if accountNo == "" {
		return nil
	}
	return func() tea.Msg {
		rows, err := cache.Get(accountNo, 0)
		if err != nil || len(rows) == 0 {
			return nil
		}
		return txLoadedMsg{rows: rows, fromCache: true}
	}
}

func (m Model) fetchTxs() tea.Cmd {
	cur := m.ctrl.Current()
	if cur == nil || !cur.HasAccount() {
		return nil
	}
	client := m.client
	cache := m.cache
	req := model.GetTransactionsRequest{
		AccountNo:    *cur.AccountNo,
		IsMasterUser: cur.UserType.IsMaster(),
	}
	if cur.Name != nil {
		req.Name = *cur.Name
	}
	if cur.ContactNo != nil {
		req.ContactNo = *cur.ContactNo
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		rows, err := client.Transactions(ctx, req)
		if err != nil {
			return dataErrMsg{err: err}
		}
		if cache != nil {
			// Best effort; a failed cache write never blocks the UI
			_ = cache.Put(req.AccountNo, rows)
		}
		return txLoadedMsg{rows: rows}
	}
}

func (m Model) fetchPayees() tea.Cmd {
	cur := m.ctrl.Current()
	if cur == nil || cur.UserID == nil {
		return nil
	}
	client := m.client
	userID := *cur.UserID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		payees, err := client.Payees(ctx, userID)
		if err != nil {
			return dataErrMsg{err: err}
		}
		return payeesLoadedMsg{payees: payees}
	}
}

func (m Model) fetchLoans() tea.Cmd {
	cur := m.ctrl.Current()
	if cur == nil || cur.UserID == nil {
		return nil
	}
	client := m.client
	userID := *cur.UserID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		loans, err := client.LoansByUser(ctx, userID)
		if err != nil {
			return dataErrMsg{err: err}
		}
		return loansLoadedMsg{loans: loans}
	}
}
