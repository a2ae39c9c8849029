// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth decodes bearer tokens on the client side.
//
// The decoder never verifies signatures. The backend is the only
// authorization boundary; the client reads claims purely to drive UX
// (expiry countdown, greeting). Anything that fails to decode is treated
// as already expired.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when a token cannot be decoded.
var ErrMalformedToken = errors.New("malformed bearer token")

// TokenClaims are the claims the dashboard cares about.
type TokenClaims struct {
	// IssuedAt and ExpiresAt are seconds since epoch. ExpiresAt of zero
	// means the claim was absent.
	IssuedAt  int64
	ExpiresAt int64
	// Subject is the username the token was issued to.
	Subject string
	// Issuer is optional.
	Issuer string
	// Authorities is the backend's comma-joined role string, optional.
	Authorities string
}

// rawClaims maps the JWT payload. Registered claims come from jwt/v5;
// authorities is the backend's custom claim.
type rawClaims struct {
	Authorities string `json:"authorities,omitempty"`
	jwt.RegisteredClaims
}

// Codec decodes bearer tokens without verification.
type Codec struct {
	parser *jwt.Parser
	now    func() time.Time
}

// NewCodec returns a token codec using the wall clock.
func NewCodec() *Codec {
	return &Codec{
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

// Decode extracts claims from a token without verifying its signature.
// Returns ErrMalformedToken for anything that is not a three-segment
// token with a decodable payload.
func (c *Codec) Decode(token string) (*TokenClaims, error) {
	var raw rawClaims
	if _, _, err := c.parser.ParseUnverified(token, &raw); err != nil {
		return nil, ErrMalformedToken
	}

	claims := &TokenClaims{
		Subject:     raw.Subject,
		Issuer:      raw.Issuer,
		Authorities: raw.Authorities,
	}
	if raw.IssuedAt != nil {
		claims.IssuedAt = raw.IssuedAt.Unix()
	}
	if raw.ExpiresAt != nil {
		claims.ExpiresAt = raw.ExpiresAt.Unix()
	}
	return claims, nil
}

// SecondsUntilExpiry returns max(0, exp-now) for the token.
// Fail-closed: a malformed token or a missing exp claim reads as 0,
// expired, never as "lives forever".
func (c *Codec) SecondsUntilExpiry(token string) int64 {
	claims, err := c.Decode(token)
	if err != nil || claims.ExpiresAt == 0 {
		return 0
	}

	remaining := claims.ExpiresAt - c.now().Unix()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsExpired reports whether the token is expired (or undecodable).
func (c *Codec) IsExpired(token string) bool {
	return c.SecondsUntilExpiry(token) <= 0
}
