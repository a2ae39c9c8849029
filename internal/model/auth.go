// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// USER TYPES
// =============================================================================

// UserType distinguishes customers from bank staff.
type UserType string

const (
	// UserTypeCustomer is a regular account holder.
	UserTypeCustomer UserType = "CUSTOMER"
	// UserTypeMaster is a bank administrator. Master logins carry no
	// account of their own; all account fields in the login response
	// are null.
	UserTypeMaster UserType = "MASTER"
)

// IsMaster reports whether the user type grants admin privileges.
func (t UserType) IsMaster() bool {
	return t == UserTypeMaster
}

// =============================================================================
// AUTH DTOS
// =============================================================================

// LoginRequest is the credential payload for /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest creates a new credential for /auth/register.
// AccountNumber is required for customers and absent for admins.
type RegisterRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	IsAdmin       bool   `json:"isAdmin"`
	AccountNumber string `json:"accountNumber,omitempty"`
}

// LoginResponse is the authenticated identity returned by login and
// register. The account fields are pointers: a MASTER login has no
// account and the backend sends explicit nulls.
type LoginResponse struct {
	CredentialID int64    `json:"credentialId"`
	Username     string   `json:"username"`
	UserType     UserType `json:"userType"`
	Status       string   `json:"status"`
	UserID       *int64   `json:"userId"`
	Name         *string  `json:"name"`
	DOB          *string  `json:"dob"`
	Address      *string  `json:"address"`
	ContactNo    *string  `json:"contactNo"`
	AccountID    *int64   `json:"accountId"`
	AccountNo    *string  `json:"accountNo"`
	AccountType  *string  `json:"accountType"`
	Balance      *float64 `json:"balance"`
	Token        string   `json:"token"`
}

// DisplayName returns the best available name for the header greeting.
func (r *LoginResponse) DisplayName() string {
	if r.Name != nil && *r.Name != "" {
		return *r.Name
	}
	return r.Username
}

// HasAccount reports whether the identity carries a bank account.
func (r *LoginResponse) HasAccount() bool {
	return r.AccountNo != nil && *r.AccountNo != ""
}

// UpdatePasswordRequest changes the password for an existing credential.
type UpdatePasswordRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdatePasswordResponse confirms a password change.
type UpdatePasswordResponse struct {
	Username    string `json:"username"`
	Message     string `json:"message"`
	UpdatedDate string `json:"updatedDate"`
}
