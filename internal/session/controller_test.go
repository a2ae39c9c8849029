// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"testing"

	"github.com/jeranaias/deerbank-tui/internal/model"
	"github.com/jeranaias/deerbank-tui/internal/storage"
)

type fakeCache struct {
	cleared int
}

func (f *fakeCache) Clear() error {
	f.cleared++
	return nil
}

type testHarness struct {
	creds   *CredentialStore
	state   *State
	monitor *ExpiryMonitor
	clock   *fakeClock
	cache   *fakeCache
	ctrl    *Controller
	store   *storage.SessionStore
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	store, err := storage.NewSessionStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("session store: %v", err)
	}

	creds := NewCredentialStore()
	state := NewState(store, creds, true)
	clock := &fakeClock{secs: 3600}
	monitor := NewExpiryMonitor(clock, state.Token, 30)
	cache := &fakeCache{}

	return &testHarness{
		creds:   creds,
		state:   state,
		monitor: monitor,
		clock:   clock,
		cache:   cache,
		ctrl:    NewController(state, monitor, clock, cache, nil),
		store:   store,
	}
}

func customerRecord() *model.LoginResponse {
	name := "Jane Doe"
	contact := "555-0100"
	accountNo := "ACC1000044"
	balance := 1000.0
	userID := int64(12)

	return &model.LoginResponse{
		CredentialID: 3,
		Username:     "jdoe",
		UserType:     model.UserTypeCustomer,
		Status:       "ACTIVE",
		UserID:       &userID,
		Name:         &name,
		ContactNo:    &contact,
		AccountNo:    &accountNo,
		Balance:      &balance,
		Token:        "aaa.bbb.ccc",
	}
}

func TestController_Login(t *testing.T) {
	h := newHarness(t)

	cmd, err := h.ctrl.Login(customerRecord())
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if cmd == nil {
		t.Error("Login should return the initial monitor tick")
	}

	// Credential slot and session token agree
	if h.creds.Get() != "aaa.bbb.ccc" {
		t.Errorf("credential store = %q", h.creds.Get())
	}
	if h.state.Token() != h.creds.Get() {
		t.Error("credential store and session token diverged")
	}
	if h.monitor.State() != MonitorArmed {
		t.Errorf("monitor = %v, want armed", h.monitor.State())
	}

	// Durable record round-trips
	persisted, err := h.store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if persisted == nil || persisted.Username != "jdoe" || persisted.Token != "aaa.bbb.ccc" {
		t.Errorf("persisted record mismatch: %+v", persisted)
	}
}

func TestController_LoginWithoutToken(t *testing.T) {
	h := newHarness(t)

	rec := customerRecord()
	rec.Token = ""

	cmd, err := h.ctrl.Login(rec)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if cmd != nil {
		t.Error("tokenless response should not arm the monitor")
	}
	if h.ctrl.Authenticated() {
		t.Error("tokenless response should not create a session")
	}
	if h.creds.Present() {
		t.Error("credential store should stay empty")
	}
}

func TestController_LogoutIdempotent(t *testing.T) {
	h := newHarness(t)

	if _, err := h.ctrl.Login(customerRecord()); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := h.ctrl.Logout(); err != nil {
		t.Fatalf("first Logout: %v", err)
	}
	if h.creds.Present() {
		t.Error("credentials survive logout")
	}
	if h.store.Exists() {
		t.Error("durable record survives logout")
	}
	if h.monitor.State() != MonitorIdle {
		t.Errorf("monitor = %v, want idle", h.monitor.State())
	}
	if h.cache.cleared != 1 {
		t.Errorf("cache cleared %d times, want 1", h.cache.cleared)
	}

	// Second logout with no session is a clean no-op
	if err := h.ctrl.Logout(); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
	if h.cache.cleared != 1 {
		t.Errorf("redundant logout touched the cache")
	}
}

func TestController_ForceExpireNoticeAtMostOnce(t *testing.T) {
	h := newHarness(t)

	if _, err := h.ctrl.Login(customerRecord()); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Monitor and a failed request both observe the same expiry
	if !h.ctrl.ForceExpire() {
		t.Error("first ForceExpire should surface the notice")
	}
	if h.ctrl.ForceExpire() {
		t.Error("second ForceExpire must stay silent")
	}

	if h.creds.Present() || h.store.Exists() || h.ctrl.Authenticated() {
		t.Error("session traces survive forced expiry")
	}
}

func TestController_ForceExpireWithoutSession(t *testing.T) {
	h := newHarness(t)
	if h.ctrl.ForceExpire() {
		t.Error("ForceExpire with no session should be a silent no-op")
	}
}

func TestController_UpdateBalance(t *testing.T) {
	h := newHarness(t)

	if _, err := h.ctrl.Login(customerRecord()); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := h.ctrl.UpdateBalance(500.00); err != nil {
		t.Fatalf("UpdateBalance: %v", err)
	}

	cur := h.ctrl.Current()
	if cur.Balance == nil || *cur.Balance != 500.00 {
		t.Errorf("balance = %v, want 500", cur.Balance)
	}
	// Only the balance moved
	if cur.Token != "aaa.bbb.ccc" || cur.Username != "jdoe" {
		t.Error("balance update touched identity or token")
	}
	if h.monitor.State() != MonitorArmed {
		t.Error("balance update re-armed or disarmed the monitor")
	}

	persisted, err := h.store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if persisted.Balance == nil || *persisted.Balance != 500.00 {
		t.Errorf("persisted balance = %v", persisted.Balance)
	}
	if persisted.Token != "aaa.bbb.ccc" {
		t.Error("persisted token changed")
	}
}

func TestController_UpdateBalanceAfterTeardown(t *testing.T) {
	h := newHarness(t)

	if _, err := h.ctrl.Login(customerRecord()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := h.ctrl.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	// A deposit response lands after the user already logged out; it must
	// not resurrect any session state
	if err := h.ctrl.UpdateBalance(999); err != nil {
		t.Fatalf("UpdateBalance: %v", err)
	}
	if h.ctrl.Authenticated() || h.store.Exists() || h.creds.Present() {
		t.Error("late response resurrected the session")
	}
}

func TestController_RestoreLiveSession(t *testing.T) {
	h := newHarness(t)

	if err := h.store.Save(customerRecord()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cmd, restored, err := h.ctrl.Restore()
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !restored || cmd == nil {
		t.Fatal("live persisted session should restore and arm")
	}
	if h.creds.Get() != "aaa.bbb.ccc" {
		t.Errorf("credential store = %q after restore", h.creds.Get())
	}
	if h.monitor.State() != MonitorArmed {
		t.Errorf("monitor = %v, want armed", h.monitor.State())
	}
}

func TestController_RestoreExpiredSession(t *testing.T) {
	h := newHarness(t)
	h.clock.secs = 0

	if err := h.store.Save(customerRecord()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cmd, restored, err := h.ctrl.Restore()
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored || cmd != nil {
		t.Error("expired persisted session should be discarded")
	}
	if h.store.Exists() {
		t.Error("expired record should be deleted")
	}
	if h.creds.Present() || h.ctrl.Authenticated() {
		t.Error("expired restore left session traces")
	}
}

func TestController_RestoreNothingPersisted(t *testing.T) {
	h := newHarness(t)

	cmd, restored, err := h.ctrl.Restore()
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored || cmd != nil {
		t.Error("empty store should restore nothing")
	}
}

func TestController_LoginReplacesSession(t *testing.T) {
	h := newHarness(t)

	if _, err := h.ctrl.Login(customerRecord()); err != nil {
		t.Fatalf("first Login: %v", err)
	}
	firstGen := h.monitor.Generation()

	second := customerRecord()
	second.Username = "asmith"
	second.Token = "ddd.eee.fff"
	if _, err := h.ctrl.Login(second); err != nil {
		t.Fatalf("second Login: %v", err)
	}

	if h.creds.Get() != "ddd.eee.fff" {
		t.Errorf("credential store = %q, want replacement token", h.creds.Get())
	}
	// Old timers are stale against the replaced session
	if h.monitor.Generation() <= firstGen {
		t.Error("replacement login did not invalidate old timers")
	}
	if ev := h.monitor.Tick(firstGen); ev != EventNone {
		t.Errorf("old generation tick = %v, want none", ev)
	}
}
