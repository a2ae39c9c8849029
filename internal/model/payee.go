// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// PAYEE DTOS
// =============================================================================

// PayeeRequest registers a payee against the customer's account.
// CustomerAccount keeps the backend's lowercase field name on the wire.
type PayeeRequest struct {
	Name            string `json:"name"`
	Nickname        string `json:"nickname,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	AccountNo       string `json:"accountNo"`
	CustomerAccount string `json:"customeraccount"`
	UserID          int64  `json:"userId"`
}

// PayeeResponse is a registered payee.
type PayeeResponse struct {
	PayeeID   int64  `json:"payeeId"`
	Name      string `json:"name"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AccountNo string `json:"accountNo"`
	Status    string `json:"status"`
	UserID    int64  `json:"userId"`
	AccountID int64  `json:"accountId"`
}

// Label returns the payee's nickname when set, otherwise the full name.
func (p *PayeeResponse) Label() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return p.Name
}

// =============================================================================
// BILL PAYMENT DTOS
// =============================================================================

// PaymentType is the bill payment schedule kind.
type PaymentType string

const (
	PaymentTypeOnce      PaymentType = "ONCE"
	PaymentTypeRecurring PaymentType = "RECURRING"
)

// BillPaymentRequest pays a registered payee. The snake_case fields match
// the backend contract exactly.
type BillPaymentRequest struct {
	CustomerAccount string      `json:"customer_account"`
	PayeeAccount    string      `json:"payeeAccount"`
	PaymentType     PaymentType `json:"payment_type"`
	Amount          float64     `json:"amount"`
	Description     string      `json:"description"`
}

// BillPaymentResponse is the bill payment receipt.
type BillPaymentResponse struct {
	BillPaymentNo string  `json:"bill_payment_no"`
	Amount        float64 `json:"amount"`
	TranNo        string  `json:"tran_no"`
}
