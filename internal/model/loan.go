// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// LOAN DTOS
// =============================================================================

// LoanType enumerates the loan products.
type LoanType string

const (
	LoanTypePersonal  LoanType = "PERSONAL"
	LoanTypeHome      LoanType = "HOME"
	LoanTypeAuto      LoanType = "AUTO"
	LoanTypeBusiness  LoanType = "BUSINESS"
	LoanTypeEducation LoanType = "EDUCATION"
)

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanStatusPending   LoanStatus = "PENDING"
	LoanStatusApproved  LoanStatus = "APPROVED"
	LoanStatusActive    LoanStatus = "ACTIVE"
	LoanStatusClosed    LoanStatus = "CLOSED"
	LoanStatusRejected  LoanStatus = "REJECTED"
	LoanStatusDefaulted LoanStatus = "DEFAULTED"
)

// LoanRequest applies for a loan against an account.
type LoanRequest struct {
	AccountNumber   string   `json:"accountNumber"`
	LoanType        LoanType `json:"loanType"`
	PrincipalAmount float64  `json:"principalAmount"`
	InterestRate    float64  `json:"interestRate"`
	LoanTermMonths  int      `json:"loanTermMonths"`
	Purpose         string   `json:"purpose"`
	Collateral      string   `json:"collateral,omitempty"`
}

// Loan is the full loan record. Date fields are null until the lifecycle
// step that sets them happens (approval, disbursement).
type Loan struct {
	LoanID            int64      `json:"loanId"`
	LoanNo            string     `json:"loanNo"`
	LoanType          LoanType   `json:"loanType"`
	PrincipalAmount   float64    `json:"principalAmount"`
	InterestRate      float64    `json:"interestRate"`
	LoanTermMonths    int        `json:"loanTermMonths"`
	MonthlyPayment    float64    `json:"monthlyPayment"`
	RemainingBalance  float64    `json:"remainingBalance"`
	Status            LoanStatus `json:"status"`
	ApplicationDate   string     `json:"applicationDate"`
	ApprovalDate      *string    `json:"approvalDate"`
	DisbursementDate  *string    `json:"disbursementDate"`
	MaturityDate      *string    `json:"maturityDate"`
	NextPaymentDate   *string    `json:"nextPaymentDate"`
	Purpose           string     `json:"purpose"`
	Collateral        *string    `json:"collateral"`
	UserID            int64      `json:"userId"`
	AccountID         int64      `json:"accountId"`
	UserName          string     `json:"userName"`
	AccountNo         string     `json:"accountNo"`
	TotalPaymentsMade int        `json:"totalPaymentsMade"`
	LatePaymentCount  int        `json:"latePaymentCount"`
}

// IsPayable reports whether the loan accepts payments.
func (l *Loan) IsPayable() bool {
	return l.Status == LoanStatusActive && l.RemainingBalance > 0
}

// PaymentStatus is the state of a single loan payment.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusLate      PaymentStatus = "LATE"
)

// LoanPayment is a single payment against a loan.
type LoanPayment struct {
	PaymentID        int64         `json:"paymentId"`
	PaymentNo        string        `json:"paymentNo"`
	LoanID           int64         `json:"loanId"`
	PaymentAmount    float64       `json:"paymentAmount"`
	PrincipalAmount  float64       `json:"principalAmount"`
	InterestAmount   float64       `json:"interestAmount"`
	RemainingBalance float64       `json:"remainingBalance"`
	PaymentDate      string        `json:"paymentDate"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	PaymentMethod    string        `json:"paymentMethod"`
	AccountNumber    string        `json:"accountNumber"`
	LateFee          float64       `json:"lateFee"`
	Notes            *string       `json:"notes"`
	LoanNo           string        `json:"loanNo"`
}

// LoanPaymentRequest pays against an active loan.
type LoanPaymentRequest struct {
	LoanID        int64   `json:"loanId"`
	PaymentAmount float64 `json:"paymentAmount"`
	PaymentMethod string  `json:"paymentMethod"`
	AccountNumber string  `json:"accountNumber"`
	Notes         string  `json:"notes,omitempty"`
}

// LoanSummary aggregates a customer's active loans.
type LoanSummary struct {
	ActiveLoanCount         int     `json:"activeLoanCount"`
	TotalOutstandingBalance float64 `json:"totalOutstandingBalance"`
	ActiveLoans             []Loan  `json:"activeLoans"`
}
