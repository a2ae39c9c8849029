// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"

	"github.com/jeranaias/deerbank-tui/internal/model"
	"github.com/jeranaias/deerbank-tui/internal/storage"
)

// =============================================================================
// SESSION STATE
// =============================================================================

// State holds the authenticated identity and keeps three places in sync:
// the in-memory record, the credential store, and the durable record on
// disk. It exists iff the user is logged in; callers must treat
// Current() == nil as the only authoritative logged-out signal.
type State struct {
	mu      sync.RWMutex
	current *model.LoginResponse

	store   *storage.SessionStore
	creds   *CredentialStore
	persist bool
}

// NewState wires the session state to its credential store and durable
// store. persist=false keeps everything in memory (DEERBANK_NO_PERSIST).
func NewState(store *storage.SessionStore, creds *CredentialStore, persist bool) *State {
	return &State{
		store:   store,
		creds:   creds,
		persist: persist,
	}
}

// Restore re-hydrates the session from disk at process start. On success
// the credential store receives the embedded token. A missing or corrupt
// record yields (nil, nil): startup lands on the public view.
func (s *State) Restore() (*model.LoginResponse, error) {
	if !s.persist {
		return nil, nil
	}

	rec, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	s.mu.Lock()
	s.current = rec
	s.mu.Unlock()
	s.creds.Set(rec.Token)

	return rec, nil
}

// Set installs a new session record, persists it, and syncs the
// credential store. Called on login and registration.
func (s *State) Set(rec *model.LoginResponse) error {
	s.mu.Lock()
	s.current = rec
	s.mu.Unlock()
	s.creds.Set(rec.Token)

	if !s.persist {
		return nil
	}
	return s.store.Save(rec)
}

// UpdateBalance mutates only the balance snapshot and re-persists the
// record. Token and identity fields are untouched.
func (s *State) UpdateBalance(balance float64) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil
	}
	b := balance
	s.current.Balance = &b
	rec := s.current
	s.mu.Unlock()

	if !s.persist {
		return nil
	}
	return s.store.Save(rec)
}

// Clear destroys the session: in-memory record, credential slot, and the
// durable record. After Clear no trace of the session remains. Safe to
// call repeatedly.
func (s *State) Clear() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.creds.Clear()

	return s.store.Clear()
}

// Current returns the live session record, or nil when logged out.
func (s *State) Current() *model.LoginResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Authenticated reports whether a session exists.
func (s *State) Authenticated() bool {
	return s.Current() != nil
}

// Token returns the session's bearer token, or "" when logged out.
// The ExpiryMonitor reads this every authoritative tick.
func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}
