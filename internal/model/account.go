// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// ACCOUNT DTOS
// =============================================================================

// AccountType enumerates the account products the backend offers.
type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeBusiness AccountType = "BUSINESS"
)

// CreateAccountRequest opens a new account. Admin-only.
type CreateAccountRequest struct {
	Name             string      `json:"name"`
	DOB              string      `json:"dob"`
	Address          string      `json:"address"`
	ContactNo        string      `json:"contactNo"`
	SSN              string      `json:"ssn"`
	CreatedBy        string      `json:"createdBy"`
	AccountType      AccountType `json:"accountType"`
	InitialBalance   float64     `json:"initialBalance"`
	AccountCreatedBy int64       `json:"accountCreatedBy"`
	InterestRate     float64     `json:"interestRate,omitempty"`
	OverdraftLimit   float64     `json:"overdraftLimit,omitempty"`
}

// AccountResponse is the full account record.
type AccountResponse struct {
	UserID         int64   `json:"userId"`
	Name           string  `json:"name"`
	DOB            string  `json:"dob"`
	Address        string  `json:"address"`
	ContactNo      string  `json:"contactNo"`
	SSN            string  `json:"ssn"`
	CreatedBy      string  `json:"createdBy"`
	AccountID      int64   `json:"accountId"`
	AccountNo      string  `json:"accountNo"`
	AccountType    string  `json:"accountType"`
	Balance        float64 `json:"balance"`
	Status         string  `json:"status"`
	OpenedDate     string  `json:"openedDate"`
	InterestRate   float64 `json:"interestRate"`
	OverdraftLimit float64 `json:"overdraftLimit"`
}

// =============================================================================
// TRANSACTION DTOS
// =============================================================================

// TransferType enumerates transaction history entry kinds.
type TransferType string

const (
	TransferTypeDeposit          TransferType = "DEPOSIT"
	TransferTypeWithdrawal       TransferType = "WITHDRAWAL"
	TransferTypeTransfer         TransferType = "TRANSFER"
	TransferTypeLoanPayment      TransferType = "LOAN_PAYMENT"
	TransferTypeLoanDisbursement TransferType = "LOAN_DISBURSEMENT"
)

// DepositRequest credits an account.
type DepositRequest struct {
	AccountNo string  `json:"accountNo"`
	Name      string  `json:"name"`
	ContactNo string  `json:"contactNo"`
	Amount    float64 `json:"amount"`
}

// WithdrawalRequest debits an account.
type WithdrawalRequest struct {
	AccountNo string  `json:"accountNo"`
	Name      string  `json:"name"`
	ContactNo string  `json:"contactNo"`
	Amount    float64 `json:"amount"`
}

// TransactionResponse is the receipt returned by deposit and withdrawal.
// NewBalance is the authoritative post-transaction balance and feeds the
// session's balance snapshot.
type TransactionResponse struct {
	TransactionNo   string  `json:"transactionNo"`
	AccountNo       string  `json:"accountNo"`
	TransactionType string  `json:"transactionType"`
	Amount          float64 `json:"amount"`
	PreviousBalance float64 `json:"previousBalance"`
	NewBalance      float64 `json:"newBalance"`
	TransactionDate string  `json:"transactionDate"`
	Message         string  `json:"message"`
}

// GetTransactionsRequest fetches the history for an account.
type GetTransactionsRequest struct {
	AccountNo    string `json:"accountNo"`
	Name         string `json:"name,omitempty"`
	ContactNo    string `json:"contactNo,omitempty"`
	IsMasterUser bool   `json:"isMasterUser,omitempty"`
}

// TransactionHistory is a single ledger entry. Debit and Credit carry the
// counterparty account numbers and are null on the side the entry does not
// touch.
type TransactionHistory struct {
	TranID        int64        `json:"tranId"`
	TranNo        string       `json:"tranNo"`
	TranDatetime  string       `json:"tranDatetime"`
	TransferType  TransferType `json:"transferType"`
	Amount        float64      `json:"amount"`
	Debit         *string      `json:"debit"`
	Credit        *string      `json:"credit"`
	Description   string       `json:"description"`
	TransferAccID *int64       `json:"transferAccId"`
	ReceivedAccID *int64       `json:"receivedAccId"`
}

// IsCredit reports whether the entry increases the given account's balance.
func (t *TransactionHistory) IsCredit(accountNo string) bool {
	switch t.TransferType {
	case TransferTypeDeposit, TransferTypeLoanDisbursement:
		return true
	case TransferTypeWithdrawal, TransferTypeLoanPayment:
		return false
	default:
		return t.Credit != nil && *t.Credit == accountNo
	}
}
