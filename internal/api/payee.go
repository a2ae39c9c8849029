// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"strconv"

	"github.com/jeranaias/deerbank-tui/internal/model"
)

// CreatePayee registers a transfer recipient for the given user.
func (c *Client) CreatePayee(ctx context.Context, req model.PayeeRequest) (*model.PayeeResponse, error) {
	return postEnvelope[*model.PayeeResponse](ctx, c, "/payees/create", req)
}

// Payees lists the registered payees for a user.
func (c *Client) Payees(ctx context.Context, userID int64) ([]model.PayeeResponse, error) {
	return getEnvelope[[]model.PayeeResponse](ctx, c, "/payees/user/"+strconv.FormatInt(userID, 10))
}

// PayBill transfers money from the customer account to a payee account.
// Both transfers and bill payments go through this endpoint; the payment
// type distinguishes them on the statement.
func (c *Client) PayBill(ctx context.Context, req model.BillPaymentRequest) (*model.BillPaymentResponse, error) {
	return postEnvelope[*model.BillPaymentResponse](ctx, c, "/bill-payment/pay", req)
}
