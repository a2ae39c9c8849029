// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"

	"github.com/jeranaias/deerbank-tui/internal/model"
)

// CreateAccount opens a new bank account. MASTER only.
func (c *Client) CreateAccount(ctx context.Context, req model.CreateAccountRequest) (*model.AccountResponse, error) {
	return postEnvelope[*model.AccountResponse](ctx, c, "/accounts/create", req)
}

// Transactions fetches the transaction history for an account. The
// backend verifies name and contact number against the account unless the
// caller is a MASTER user.
func (c *Client) Transactions(ctx context.Context, req model.GetTransactionsRequest) ([]model.TransactionHistory, error) {
	return postEnvelope[[]model.TransactionHistory](ctx, c, "/accounts/transactions", req)
}

// Deposit credits an account and returns the resulting transaction with
// the new balance.
func (c *Client) Deposit(ctx context.Context, req model.DepositRequest) (*model.TransactionResponse, error) {
	return postEnvelope[*model.TransactionResponse](ctx, c, "/accounts/deposit", req)
}

// Withdraw debits an account and returns the resulting transaction with
// the new balance.
func (c *Client) Withdraw(ctx context.Context, req model.WithdrawalRequest) (*model.TransactionResponse, error) {
	return postEnvelope[*model.TransactionResponse](ctx, c, "/accounts/withdraw", req)
}
