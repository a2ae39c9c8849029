// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jeranaias/deerbank-tui/internal/model"
)

func testRecord() *model.LoginResponse {
	userID := int64(12)
	name := "Jane Doe"
	contact := "555-0100"
	accountID := int64(44)
	accountNo := "ACC1000044"
	accountType := "SAVINGS"
	balance := 2500.75

	return &model.LoginResponse{
		CredentialID: 3,
		Username:     "jdoe",
		UserType:     model.UserTypeCustomer,
		Status:       "ACTIVE",
		UserID:       &userID,
		Name:         &name,
		ContactNo:    &contact,
		AccountID:    &accountID,
		AccountNo:    &accountNo,
		AccountType:  &accountType,
		Balance:      &balance,
		Token:        "aaa.bbb.ccc",
	}
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store, err := NewSessionStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionStoreWithDir: %v", err)
	}

	if err := store.Save(testRecord()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil for saved record")
	}

	if loaded.Username != "jdoe" || loaded.Token != "aaa.bbb.ccc" {
		t.Errorf("record mismatch: %+v", loaded)
	}
	if loaded.Balance == nil || *loaded.Balance != 2500.75 {
		t.Errorf("balance not restored: %v", loaded.Balance)
	}
	if loaded.AccountNo == nil || *loaded.AccountNo != "ACC1000044" {
		t.Errorf("account number not restored: %v", loaded.AccountNo)
	}
}

func TestSessionStore_LoadMissing(t *testing.T) {
	store, err := NewSessionStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionStoreWithDir: %v", err)
	}

	rec, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil record, got %+v", rec)
	}
}

func TestSessionStore_CorruptRecordDeleted(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSessionStoreWithDir(dir)
	if err != nil {
		t.Fatalf("NewSessionStoreWithDir: %v", err)
	}

	path := filepath.Join(dir, "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write corrupt record: %v", err)
	}

	rec, err := store.Load()
	if err != nil {
		t.Fatalf("Load should not fail on corrupt data: %v", err)
	}
	if rec != nil {
		t.Errorf("corrupt record should load as nil, got %+v", rec)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt record should have been deleted")
	}
}

func TestSessionStore_TokenlessRecordDeleted(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSessionStoreWithDir(dir)
	if err != nil {
		t.Fatalf("NewSessionStoreWithDir: %v", err)
	}

	path := filepath.Join(dir, "session.json")
	if err := os.WriteFile(path, []byte(`{"username":"jdoe","token":""}`), 0600); err != nil {
		t.Fatalf("write record: %v", err)
	}

	rec, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec != nil {
		t.Errorf("tokenless record should load as nil, got %+v", rec)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("tokenless record should have been deleted")
	}
}

func TestSessionStore_ClearIdempotent(t *testing.T) {
	store, err := NewSessionStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionStoreWithDir: %v", err)
	}

	if err := store.Save(testRecord()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("first Clear: %v", err)
	}
	if store.Exists() {
		t.Error("record should be gone after Clear")
	}

	// Second clear with nothing on disk is a no-op, not an error
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestSessionStore_Permissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSessionStoreWithDir(dir)
	if err != nil {
		t.Fatalf("NewSessionStoreWithDir: %v", err)
	}

	if err := store.Save(testRecord()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("session record permissions: got %o, want 0600", info.Mode().Perm())
	}
}
