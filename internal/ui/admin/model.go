// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package admin implements the MASTER dashboard: the loan approval queue
// and the account creation form.
package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deerbank-tui/internal/api"
	"github.com/jeranaias/deerbank-tui/internal/model"
	"github.com/jeranaias/deerbank-tui/internal/session"
	"github.com/jeranaias/deerbank-tui/internal/ui/components"
	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
	"github.com/jeranaias/deerbank-tui/internal/util"
)

const fetchTimeout = 30 * time.Second

// pane selects the active admin view.
type pane int

const (
	paneLoans pane = iota
	paneCreateAccount
)

// Model is the MASTER dashboard.
type Model struct {
	theme  *styles.Theme
	client *api.Client
	ctrl   *session.Controller

	header  components.Header
	spinner components.Spinner
	toast   components.ErrorToast

	pane    pane
	loans   []model.Loan
	loanIdx int

	form       components.FieldSet
	formError  string
	submitting bool

	width  int
	height int
}

// New creates the admin dashboard.
func New(theme *styles.Theme, client *api.Client, ctrl *session.Controller) Model {
	m := Model{
		theme:   theme,
		client:  client,
		ctrl:    ctrl,
		header:  components.NewHeader(theme),
		spinner: components.NewSpinner(theme),
		toast:   components.NewErrorToast(),
	}
	m.header.SetUser(ctrl.Current())
	m.form = newAccountForm()
	return m
}

func newAccountForm() components.FieldSet {
	return components.NewFieldSet(
		components.NewField("Full Name", "customer name"),
		components.NewField("Date of Birth", "YYYY-MM-DD"),
		components.NewField("Address", "street, city"),
		components.NewField("Contact Number", "phone"),
		components.NewField("SSN", "last four ok"),
		components.NewField("Initial Balance", "0.00"),
	)
}

// TextEntryActive reports whether a form is capturing keystrokes. The
// root model suppresses global single-key shortcuts while one is open.
func (m Model) TextEntryActive() bool {
	return m.pane == paneCreateAccount
}

// Init loads the loan queue.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchLoans(), m.spinner.Start("Loading loans..."))
}

// SetSize propagates the window size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.header.SetWidth(width)
	m.toast.SetWidth(width)
}

// ===== DATA COMMANDS =====

type loansLoadedMsg struct {
	loans []model.Loan
}

type loanActedMsg struct {
	notice string
}

type accountCreatedMsg struct {
	account *model.AccountResponse
}

type dataErrMsg struct {
	err error
}

func (m Model) fetchLoans() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		loans, err := client.Loans(ctx)
		if err != nil {
			return dataErrMsg{err: err}
		}
		return loansLoadedMsg{loans: loans}
	}
}

// actOnLoan runs approve/reject/disburse against the selected loan.
func (m Model) actOnLoan(verb string) tea.Cmd {
	if len(m.loans) == 0 || m.loanIdx >= len(m.loans) {
		return nil
	}
	loan := m.loans[m.loanIdx]
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		var err error
		switch verb {
		case "approve":
			_, err = client.ApproveLoan(ctx, loan.LoanID)
		case "reject":
			_, err = client.RejectLoan(ctx, loan.LoanID, "Rejected by reviewer")
		case "disburse":
			_, err = client.DisburseLoan(ctx, loan.LoanID)
		}
		if err != nil {
			return dataErrMsg{err: err}
		}
		return loanActedMsg{notice: fmt.Sprintf("Loan %s %sd", loan.LoanNo, verb)}
	}
}

func (m *Model) submitAccount() tea.Cmd {
	name := strings.TrimSpace(m.form.Fields[0].Value())
	dob := strings.TrimSpace(m.form.Fields[1].Value())
	address := strings.TrimSpace(m.form.Fields[2].Value())
	contact := strings.TrimSpace(m.form.Fields[3].Value())
	ssn := strings.TrimSpace(m.form.Fields[4].Value())

	if name == "" || dob == "" || contact == "" {
		m.formError = "Name, date of birth, and contact are required"
		return nil
	}
	balance, ok := util.ParseAmount(m.form.Fields[5].Value())
	if !ok {
		m.formError = "Enter a valid opening balance"
		return nil
	}

	cur := m.ctrl.Current()
	m.submitting = true
	client := m.client
	req := model.CreateAccountRequest{
		Name:           name,
		DOB:            dob,
		Address:        address,
		ContactNo:      contact,
		SSN:            ssn,
		CreatedBy:      cur.Username,
		AccountType:    model.AccountTypeSavings,
		InitialBalance: balance,
	}
	if cur.UserID != nil {
		req.AccountCreatedBy = *cur.UserID
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		account, err := client.CreateAccount(ctx, req)
		if err != nil {
			return dataErrMsg{err: err}
		}
		return accountCreatedMsg{account: account}
	}
}

// ===== UPDATE =====

// Update handles admin input and data messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case loansLoadedMsg:
		m.loans = msg.loans
		m.loanIdx = 0
		m.spinner.Stop()
		return m, nil

	case loanActedMsg:
		m.spinner.Stop()
		return m, tea.Batch(m.fetchLoans(), m.toast.Show(msg.notice))

	case accountCreatedMsg:
		m.submitting = false
		m.spinner.Stop()
		m.form = newAccountForm()
		notice := fmt.Sprintf("Account %s opened for %s",
			msg.account.AccountNo, msg.account.Name)
		return m, tea.Batch(m.form.Init(), m.toast.Show(notice))

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

	// Pane switch works everywhere
	if msg.String() == "ctrl+n" {
		if m.pane == paneLoans {
			m.pane = paneCreateAccount
			return m, m.form.Init()
		}
		m.pane = paneLoans
		return m, nil
	}

	if m.pane == paneCreateAccount {
		switch msg.String() {
		case "tab":
			return m, m.form.Next()
		case "shift+tab":
			return m, m.form.Prev()
		case "enter":
			if m.form.OnLast() {
				if cmd := m.submitAccount(); cmd != nil {
					return m, tea.Batch(cmd, m.spinner.Start("Opening account..."))
				}
				return m, nil
			}
			return m, m.form.Next()
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.loanIdx > 0 {
			m.loanIdx--
		}
	case "down", "j":
		if m.loanIdx < len(m.loans)-1 {
			m.loanIdx++
		}
	case "r":
		return m, tea.Batch(m.fetchLoans(), m.spinner.Start("Refreshing..."))
	case "a":
		return m, tea.Batch(m.actOnLoan("approve"), m.spinner.Start("Approving..."))
	case "x":
		return m, tea.Batch(m.actOnLoan("reject"), m.spinner.Start("Rejecting..."))
	case "d":
		return m, tea.Batch(m.actOnLoan("disburse"), m.spinner.Start("Disbursing..."))
	}
	return m, nil
}

// ===== VIEW =====

// View renders the admin dashboard.
func (m Model) View() string {
	var parts []string
	parts = append(parts, m.header.View())
	parts = append(parts, "")

	if m.pane == paneCreateAccount {
		parts = append(parts, m.theme.FormTitle.Render("Open a New Account"))
		parts = append(parts, m.form.View(m.theme))
		if m.formError != "" {
			parts = append(parts, m.theme.FormError.Render(
				styles.StatusIndicators.Error+" "+m.formError))
		}
	} else {
		parts = append(parts, m.theme.FormTitle.Render("Loan Applications"))
		parts = append(parts, m.loansView())
	}

	if m.spinner.Active() {
		parts = append(parts, m.spinner.View(m.theme))
	}
	if m.toast.IsVisible() {
		parts = append(parts, m.toast.View(m.theme))
	}
	parts = append(parts, m.statusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) loansView() string {
	if len(m.loans) == 0 {
		return m.theme.TxEmpty.Render("No loan applications")
	}
	var lines []string
	for i, l := range m.loans {
		status := string(l.Status)
		line := fmt.Sprintf("%-12s %-16s %-10s %-12s %s",
			l.LoanNo,
			util.TruncateWidth(l.UserName, 16),
			l.LoanType,
			util.FloatToString(l.PrincipalAmount),
			status)
		style := m.theme.TxRow
		if i == m.loanIdx {
			style = m.theme.TxRowSelected
		}
		lines = append(lines, style.Render(line))
	}
	return m.theme.TxList.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) statusBar() string {
	var keys []struct{ key, desc string }
	if m.pane == paneLoans {
		keys = []struct{ key, desc string }{
			{"a", "approve"},
			{"x", "reject"},
			{"d", "disburse"},
			{"r", "refresh"},
			{"ctrl+n", "new account"},
			{"ctrl+l", "log out"},
		}
	} else {
		keys = []struct{ key, desc string }{
			{"enter", "submit"},
			{"tab", "next field"},
			{"ctrl+n", "back to loans"},
			{"ctrl+l", "log out"},
		}
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
