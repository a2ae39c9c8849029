// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "testing"

// fakeClock scripts the authoritative remaining-seconds reading.
type fakeClock struct {
	secs int64
}

func (f *fakeClock) SecondsUntilExpiry(string) int64 {
	return f.secs
}

func newTestMonitor(clock *fakeClock) *ExpiryMonitor {
	return NewExpiryMonitor(clock, func() string { return "aaa.bbb.ccc" }, 30)
}

func TestMonitor_InitialState(t *testing.T) {
	m := newTestMonitor(&fakeClock{secs: 100})
	if m.State() != MonitorIdle {
		t.Errorf("initial state = %v, want idle", m.State())
	}
	// Ticks in Idle do nothing
	if ev := m.Tick(m.Generation()); ev != EventNone {
		t.Errorf("tick while idle = %v", ev)
	}
}

func TestMonitor_ArmedStaysArmedOutsideWindow(t *testing.T) {
	clock := &fakeClock{secs: 100}
	m := newTestMonitor(clock)
	m.Arm()

	if ev := m.Tick(m.Generation()); ev != EventNone {
		t.Errorf("tick = %v, want none", ev)
	}
	if m.State() != MonitorArmed {
		t.Errorf("state = %v, want armed", m.State())
	}
}

func TestMonitor_WarningTransition(t *testing.T) {
	clock := &fakeClock{secs: 100}
	m := newTestMonitor(clock)
	m.Arm()

	m.Tick(m.Generation())

	// Token drops inside the 30s warning window
	clock.secs = 25
	ev := m.Tick(m.Generation())
	if ev != EventWarning {
		t.Fatalf("tick = %v, want warning", ev)
	}
	if m.State() != MonitorWarning {
		t.Errorf("state = %v, want warning", m.State())
	}
	if m.Countdown() != 25 {
		t.Errorf("countdown latched at %d, want 25", m.Countdown())
	}

	// Warning fires once; the next tick inside the window is quiet
	if ev := m.Tick(m.Generation()); ev != EventNone {
		t.Errorf("second tick in window = %v, want none", ev)
	}
}

func TestMonitor_AuthoritativeExpiry(t *testing.T) {
	clock := &fakeClock{secs: 10}
	m := newTestMonitor(clock)
	m.Arm()
	m.Tick(m.Generation()) // enters warning

	clock.secs = 0
	ev := m.Tick(m.Generation())
	if ev != EventExpired {
		t.Fatalf("tick = %v, want expired", ev)
	}
	if m.State() != MonitorExpired {
		t.Errorf("state = %v, want expired", m.State())
	}

	// Expired is terminal until teardown; further ticks are quiet
	if ev := m.Tick(m.Generation()); ev != EventNone {
		t.Errorf("tick after expiry = %v, want none", ev)
	}
}

func TestMonitor_AuthoritativeWinsOverDisplay(t *testing.T) {
	clock := &fakeClock{secs: 20}
	m := newTestMonitor(clock)
	m.Arm()
	m.Tick(m.Generation()) // warning, countdown 20

	// Display still shows 20, but the token says it is over (the machine
	// slept, ticks were dropped). The authoritative clock wins now.
	clock.secs = 0
	if ev := m.Tick(m.Generation()); ev != EventExpired {
		t.Errorf("authoritative expiry did not override display countdown")
	}
}

func TestMonitor_DisplaySnapsDownNotUp(t *testing.T) {
	clock := &fakeClock{secs: 28}
	m := newTestMonitor(clock)
	m.Arm()
	m.Tick(m.Generation()) // warning, countdown 28

	// Authoritative reads lower than display: display snaps down
	clock.secs = 20
	m.Tick(m.Generation())
	if m.Countdown() != 20 {
		t.Errorf("countdown = %d, want snapped down to 20", m.Countdown())
	}

	// Authoritative reads higher (clock skew): display never jumps up
	clock.secs = 27
	m.Tick(m.Generation())
	if m.Countdown() != 20 {
		t.Errorf("countdown = %d, want unchanged 20", m.Countdown())
	}
}

func TestMonitor_CountdownExpiry(t *testing.T) {
	clock := &fakeClock{secs: 3}
	m := newTestMonitor(clock)
	m.Arm()
	m.Tick(m.Generation()) // warning, countdown 3

	gen := m.Generation()
	if ev := m.CountdownTick(gen); ev != EventNone || m.Countdown() != 2 {
		t.Fatalf("first countdown tick: ev=%v countdown=%d", ev, m.Countdown())
	}
	if ev := m.CountdownTick(gen); ev != EventNone || m.Countdown() != 1 {
		t.Fatalf("second countdown tick: ev=%v countdown=%d", ev, m.Countdown())
	}
	if ev := m.CountdownTick(gen); ev != EventExpired {
		t.Fatalf("third countdown tick should expire, got %v", ev)
	}
	if m.State() != MonitorExpired {
		t.Errorf("state = %v, want expired", m.State())
	}
}

// End-to-end: a token with 25 seconds of life enters
// the warning window on the first check and expires after 25 display
// ticks, producing exactly one expiry event.
func TestMonitor_TwentyFiveSecondScenario(t *testing.T) {
	clock := &fakeClock{secs: 25}
	m := newTestMonitor(clock)
	m.Arm()
	gen := m.Generation()

	if ev := m.Tick(gen); ev != EventWarning {
		t.Fatalf("expected immediate warning, got %v", ev)
	}
	if m.Countdown() != 25 {
		t.Fatalf("countdown = %d, want 25", m.Countdown())
	}

	expiries := 0
	for i := 0; i < 25; i++ {
		// Both clocks advance each second
		if clock.secs > 0 {
			clock.secs--
		}
		if m.Tick(gen) == EventExpired {
			expiries++
		}
		if m.CountdownTick(gen) == EventExpired {
			expiries++
		}
	}

	if expiries != 1 {
		t.Errorf("expiry events = %d, want exactly 1", expiries)
	}
	if m.State() != MonitorExpired {
		t.Errorf("state = %v, want expired", m.State())
	}
}

func TestMonitor_StaleGenerationDropped(t *testing.T) {
	clock := &fakeClock{secs: 0}
	m := newTestMonitor(clock)
	m.Arm()
	staleGen := m.Generation()

	// Teardown races the in-flight tick
	m.Disarm()

	if ev := m.Tick(staleGen); ev != EventNone {
		t.Errorf("stale tick = %v, want none", ev)
	}
	if ev := m.CountdownTick(staleGen); ev != EventNone {
		t.Errorf("stale countdown tick = %v, want none", ev)
	}
	if m.State() != MonitorIdle {
		t.Errorf("state = %v, want idle", m.State())
	}
}

func TestMonitor_RearmInvalidatesOldTimers(t *testing.T) {
	clock := &fakeClock{secs: 0}
	m := newTestMonitor(clock)
	m.Arm()
	oldGen := m.Generation()

	// New login replaces the session; old timers must not expire it
	m.Disarm()
	clock.secs = 100
	m.Arm()

	if ev := m.Tick(oldGen); ev != EventNone {
		t.Errorf("old generation tick = %v, want none", ev)
	}
	if m.State() != MonitorArmed {
		t.Errorf("state = %v, want armed", m.State())
	}

	if ev := m.Tick(m.Generation()); ev != EventNone {
		t.Errorf("fresh tick = %v, want none", ev)
	}
}

func TestMonitor_HandleAuthTickStaleReturnsNil(t *testing.T) {
	m := newTestMonitor(&fakeClock{secs: 100})
	m.Arm()
	stale := AuthTickMsg{Gen: m.Generation()}
	m.Disarm()

	if cmd := m.HandleAuthTick(stale); cmd != nil {
		t.Error("stale auth tick should end the timer chain")
	}
	if cmd := m.HandleCountdownTick(CountdownTickMsg{Gen: stale.Gen}); cmd != nil {
		t.Error("stale countdown tick should end the timer chain")
	}
}

func TestMonitor_HandleAuthTickReschedules(t *testing.T) {
	m := newTestMonitor(&fakeClock{secs: 100})
	m.Arm()

	if cmd := m.HandleAuthTick(AuthTickMsg{Gen: m.Generation()}); cmd == nil {
		t.Error("armed monitor should keep ticking")
	}
}

func TestMonitor_HandleAuthTickEmitsExpired(t *testing.T) {
	m := newTestMonitor(&fakeClock{secs: 0})
	m.Arm()

	cmd := m.HandleAuthTick(AuthTickMsg{Gen: m.Generation()})
	if cmd == nil {
		t.Fatal("expected expiry command")
	}
	if _, ok := cmd().(ExpiredMsg); !ok {
		t.Errorf("expected ExpiredMsg, got %T", cmd())
	}
}
