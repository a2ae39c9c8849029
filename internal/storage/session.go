// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable local state for the deerbank TUI:
// the session record that survives restarts and a SQLite cache of
// transaction history.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jeranaias/deerbank-tui/internal/model"
	"github.com/jeranaias/deerbank-tui/internal/util"
)

// sessionFile is the single durable session record.
const sessionFile = "session.json"

// =============================================================================
// SESSION STORE
// =============================================================================

// SessionStore persists the authenticated session across restarts.
// The record is the full login response including the bearer token, so it
// is written 0600 and lives under the user's dot-directory.
type SessionStore struct {
	// BaseDir is the directory holding the session record.
	// Default: ~/.deerbank/
	BaseDir string
}

// NewSessionStore creates a session store under ~/.deerbank.
func NewSessionStore() (*SessionStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewSessionStoreWithDir(filepath.Join(homeDir, ".deerbank"))
}

// NewSessionStoreWithDir creates a session store with a custom directory.
func NewSessionStoreWithDir(baseDir string) (*SessionStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &SessionStore{BaseDir: baseDir}, nil
}

// Save writes the session record, replacing any previous one.
// RELIABILITY: Atomic write with fsync prevents data loss on crash.
func (s *SessionStore) Save(rec *model.LoginResponse) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(s.path(), data, 0600)
}

// Load reads the persisted session record. A missing record returns
// (nil, nil). A corrupt record is deleted and also returns (nil, nil):
// an unreadable session is indistinguishable from never having logged
// in, and must never crash startup or be retried.
func (s *SessionStore) Load() (*model.LoginResponse, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var rec model.LoginResponse
	if err := json.Unmarshal(data, &rec); err != nil {
		os.Remove(s.path())
		return nil, nil
	}

	// A record without a token cannot authenticate anything; treat it
	// the same as corrupt data.
	if rec.Token == "" {
		os.Remove(s.path())
		return nil, nil
	}

	return &rec, nil
}

// Clear deletes the session record. Safe to call when none exists.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether a session record is present on disk.
func (s *SessionStore) Exists() bool {
	_, err := os.Stat(s.path())
	return err == nil
}

func (s *SessionStore) path() string {
	return filepath.Join(s.BaseDir, sessionFile)
}
