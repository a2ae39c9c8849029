// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deerbank-tui/internal/model"
	"github.com/jeranaias/deerbank-tui/internal/ui/components"
	"github.com/jeranaias/deerbank-tui/internal/util"
)

// openModal builds the form for a quick action and returns its init
// command.
func (m *Model) openModal(kind modalKind) tea.Cmd {
	m.modal = kind
	m.formError = ""
	m.actions.Blur()

	switch kind {
	case modalTransfer:
		m.form = components.NewFieldSet(
			components.NewField("Payee Account", "account number"),
			components.NewField("Amount", "0.00"),
			components.NewField("Description", "what's it for?"),
		)
		return tea.Batch(m.form.Init(), m.fetchPayees())

	case modalDeposit, modalWithdraw:
		m.form = components.NewFieldSet(
			components.NewField("Amount", "0.00"),
		)
		return m.form.Init()

	case modalPayee:
		m.form = components.NewFieldSet(
			components.NewField("Name", "payee name"),
			components.NewField("Account Number", "their account"),
			components.NewField("Nickname", "optional"),
			components.NewField("Email", "optional"),
		)
		return m.form.Init()

	case modalApplyLoan:
		m.form = components.NewFieldSet(
			components.NewField("Amount", "principal, e.g. 10000"),
			components.NewField("Term (months)", "12"),
			components.NewField("Purpose", "what's the loan for?"),
		)
		return m.form.Init()

	case modalLoanPayment:
		m.form = components.NewFieldSet(
			components.NewField("Amount", "0.00"),
		)
		return tea.Batch(m.form.Init(), m.fetchLoans())

	case modalLoans:
		m.loanIdx = 0
		return m.fetchLoans()
	}
	return nil
}

// closeModal dismisses any open modal and restores action focus.
func (m *Model) closeModal() {
	m.modal = modalNone
	m.formError = ""
	m.submitting = false
	m.actions.Focus()
}

// submitModal validates the open form and fires the backend call.
func (m *Model) submitModal() tea.Cmd {
	cur := m.ctrl.Current()
	if cur == nil {
		return nil
	}

	switch m.modal {
	case modalTransfer:
		return m.submitTransfer()
	case modalDeposit:
		return m.submitDeposit()
	case modalWithdraw:
		return m.submitWithdraw()
	case modalPayee:
		return m.submitPayee()
	case modalApplyLoan:
		return m.submitApplyLoan()
	case modalLoanPayment:
		return m.submitLoanPayment()
	}
	return nil
}

func (m *Model) submitTransfer() tea.Cmd {
	payeeAccount := strings.TrimSpace(m.form.Fields[0].Value())
	amount, ok := util.ParseAmount(m.form.Fields[1].Value())
	description := strings.TrimSpace(m.form.Fields[2].Value())

	if payeeAccount == "" {
		m.formError = "Payee account is required"
		return nil
	}
	if !ok {
		m.formError = "Enter a valid amount"
		return nil
	}

	m.submitting = true
	client := m.client
	req := model.BillPaymentRequest{
		CustomerAccount: m.accountNo(),
		PayeeAccount:    payeeAccount,
		PaymentType:     model.PaymentTypeOnce,
		Amount:          amount,
		Description:     description,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		resp, err := client.PayBill(ctx, req)
		if err != nil {
			return dataErrMsg{err: err}
		}
		return opDoneMsg{notice: fmt.Sprintf("Transfer sent (ref %s)", resp.TranNo)}
	}
}

func (m *Model) submitDeposit() tea.Cmd {
	amount, ok := util.ParseAmount(m.form.Fields[0].Value())
	if !ok {
		m.formError = "Enter a valid amount"
		return nil
	}

	cur := m.ctrl.Current()
	m.submitting = true
	client := m.client
	req := model.DepositRequest{
		AccountNo: m.accountNo(),
		Amount:    amount,
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
		resp, err := client.Deposit(ctx, req)
		if err != nil {
			return dataErrMsg{err: err}
		}
		nb := resp.NewBalance
		return opDoneMsg{notice: "Deposit complete", newBalance: &nb}
	}
}

func (m *Model) submitWithdraw() tea.Cmd {
	amount, ok := util.ParseAmount(m.form.Fields[0].Value())
	if !ok {
		m.formError = "Enter a valid amount"
		return nil
	}

	cur := m.ctrl.Current()
	if cur.Balance != nil && amount > *cur.Balance {
		m.formError = "Amount exceeds your available balance"
		return nil
	}

	m.submitting = true
	client := m.client
	req := model.WithdrawalRequest{
		AccountNo: m.accountNo(),
		Amount:    amount,
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
		resp, err := client.Withdraw(ctx, req)
		if err != nil {
			return dataErrMsg{err: err}
		}
		nb := resp.NewBalance
		return opDoneMsg{notice: "Withdrawal complete", newBalance: &nb}
	}
}

func (m *Model) submitPayee() tea.Cmd {
	name := strings.TrimSpace(m.form.Fields[0].Value())
	accountNo := strings.TrimSpace(m.form.Fields[1].Value())
	if name == "" || accountNo == "" {
		m.formError = "Name and account number are required"
		return nil
	}

	cur := m.ctrl.Current()
	if cur.UserID == nil {
		m.formError = "No customer profile on this session"
		return nil
	}

	m.submitting = true
	client := m.client
	req := model.PayeeRequest{
		Name:            name,
		AccountNo:       accountNo,
		Nickname:        strings.TrimSpace(m.form.Fields[2].Value()),
		Email:           strings.TrimSpace(m.form.Fields[3].Value()),
		CustomerAccount: m.accountNo(),
		UserID:          *cur.UserID,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		resp, err := client.CreatePayee(ctx, req)
		if err != nil {
			return dataErrMsg{err: err}
		}
		return opDoneMsg{notice: fmt.Sprintf("Payee %s added", resp.Label())}
	}
}

func (m *Model) submitApplyLoan() tea.Cmd {
	amount, ok := util.ParseAmount(m.form.Fields[0].Value())
	if !ok {
		m.formError = "Enter a valid principal amount"
		return nil
	}
	term, err := util.ParseInt(m.form.Fields[1].Value())
	if err != nil || term <= 0 {
		m.formError = "Enter the term in months"
		return nil
	}
	purpose := strings.TrimSpace(m.form.Fields[2].Value())
	if purpose == "" {
		m.formError = "Purpose is required"
		return nil
	}

	m.submitting = true
	client := m.client
	req := model.LoanRequest{
		AccountNumber:   m.accountNo(),
		LoanType:        model.LoanTypePersonal,
		PrincipalAmount: amount,
		LoanTermMonths:  term,
		Purpose:         purpose,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		loan, err := client.ApplyLoan(ctx, req)
		if err != nil {
			return dataErrMsg{err: err}
		}
		return opDoneMsg{notice: fmt.Sprintf("Loan application %s submitted", loan.LoanNo)}
	}
}

func (m *Model) submitLoanPayment() tea.Cmd {
	amount, ok := util.ParseAmount(m.form.Fields[0].Value())
	if !ok {
		m.formError = "Enter a valid amount"
		return nil
	}

	loan := m.selectedPayableLoan()
	if loan == nil {
		m.formError = "No active loan selected"
		return nil
	}

	m.submitting = true
	client := m.client
	req := model.LoanPaymentRequest{
		LoanID:        loan.LoanID,
		PaymentAmount: amount,
		PaymentMethod: "ACCOUNT",
		AccountNumber: m.accountNo(),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		payment, err := client.PayLoan(ctx, req)
		if err != nil {
			return dataErrMsg{err: err}
		}
		return opDoneMsg{notice: fmt.Sprintf("Payment %s applied", payment.PaymentNo)}
	}
}

// selectedPayableLoan returns the highlighted loan if it accepts
// payments.
func (m *Model) selectedPayableLoan() *model.Loan {
	if len(m.loans) == 0 || m.loanIdx >= len(m.loans) {
		return nil
	}
	loan := &m.loans[m.loanIdx]
	if !loan.IsPayable() {
		return nil
	}
	return loan
}
