// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"strconv"

	"github.com/jeranaias/deerbank-tui/internal/model"
)

// ApplyLoan submits a loan application. The returned loan starts in
// PENDING until a MASTER user approves it.
func (c *Client) ApplyLoan(ctx context.Context, req model.LoanRequest) (*model.Loan, error) {
	return postEnvelope[*model.Loan](ctx, c, "/loans/apply", req)
}

// Loan fetches a single loan by ID.
func (c *Client) Loan(ctx context.Context, loanID int64) (*model.Loan, error) {
	return getEnvelope[*model.Loan](ctx, c, "/loans/"+strconv.FormatInt(loanID, 10))
}

// Loans lists every loan in the system. MASTER only.
func (c *Client) Loans(ctx context.Context) ([]model.Loan, error) {
	return getEnvelope[[]model.Loan](ctx, c, "/loans")
}

// LoansByUser lists a customer's loans.
func (c *Client) LoansByUser(ctx context.Context, userID int64) ([]model.Loan, error) {
	return getEnvelope[[]model.Loan](ctx, c, "/loans/user/"+strconv.FormatInt(userID, 10))
}

// LoanSummary aggregates a customer's active loans.
func (c *Client) LoanSummary(ctx context.Context, userID int64) (*model.LoanSummary, error) {
	return getEnvelope[*model.LoanSummary](ctx, c, "/loans/user/"+strconv.FormatInt(userID, 10)+"/summary")
}

// ApproveLoan approves a pending loan. MASTER only.
func (c *Client) ApproveLoan(ctx context.Context, loanID int64) (*model.Loan, error) {
	return postEnvelope[*model.Loan](ctx, c, "/loans/"+strconv.FormatInt(loanID, 10)+"/approve", nil)
}

// RejectLoan rejects a pending loan with a reason. MASTER only.
func (c *Client) RejectLoan(ctx context.Context, loanID int64, reason string) (*model.Loan, error) {
	body := map[string]string{"reason": reason}
	return postEnvelope[*model.Loan](ctx, c, "/loans/"+strconv.FormatInt(loanID, 10)+"/reject", body)
}

// DisburseLoan pays out an approved loan to the linked account. MASTER
// only.
func (c *Client) DisburseLoan(ctx context.Context, loanID int64) (*model.Loan, error) {
	return postEnvelope[*model.Loan](ctx, c, "/loans/"+strconv.FormatInt(loanID, 10)+"/disburse", nil)
}

// LoanPayments lists the payments made against a loan.
func (c *Client) LoanPayments(ctx context.Context, loanID int64) ([]model.LoanPayment, error) {
	return getEnvelope[[]model.LoanPayment](ctx, c, "/loans/"+strconv.FormatInt(loanID, 10)+"/payments")
}

// PayLoan makes a payment against an active loan.
func (c *Client) PayLoan(ctx context.Context, req model.LoanPaymentRequest) (*model.LoanPayment, error) {
	return postEnvelope[*model.LoanPayment](ctx, c, "/loan-payments/pay", req)
}
