// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "sync"

// =============================================================================
// CREDENTIAL STORE
// =============================================================================

// CredentialStore is the single in-memory slot holding the active bearer
// token. The API layer reads it before every request; nothing else
// consults it. Its token, whenever set, must equal the token in the
// persisted session state - both are written together on login, logout,
// and restore.
//
// The TUI loop is single-threaded, but API calls run in tea.Cmd
// goroutines, so reads are mutex-guarded.
type CredentialStore struct {
	mu    sync.RWMutex
	token string
}

// NewCredentialStore returns an empty credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

// Set stores the active bearer token. An empty string clears the slot.
func (c *CredentialStore) Set(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Clear empties the slot.
func (c *CredentialStore) Clear() {
	c.Set("")
}

// Get returns the current token, or "" when unauthenticated.
func (c *CredentialStore) Get() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Present reports whether a token is held.
func (c *CredentialStore) Present() bool {
	return c.Get() != ""
}
