// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"

	"github.com/jeranaias/deerbank-tui/internal/model"
)

// Login authenticates and returns the session record. MASTER users come
// back with null profile fields; customers carry identity, account, and
// balance alongside the token.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	return postEnvelope[*model.LoginResponse](ctx, c, "/auth/login", req)
}

// Register creates a credential and logs it in. The response is the same
// shape as Login so the caller can start a session immediately.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.LoginResponse, error) {
	return postEnvelope[*model.LoginResponse](ctx, c, "/auth/register", req)
}

// UpdatePassword changes the caller's password.
func (c *Client) UpdatePassword(ctx context.Context, req model.UpdatePasswordRequest) (*model.UpdatePasswordResponse, error) {
	return postEnvelope[*model.UpdatePasswordResponse](ctx, c, "/auth/update-password", req)
}
