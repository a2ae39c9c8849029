// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// MONITOR STATE MACHINE
// =============================================================================

// MonitorState is the expiry monitor's lifecycle state.
type MonitorState int

const (
	// MonitorIdle means no session is being watched.
	MonitorIdle MonitorState = iota
	// MonitorArmed means a session exists and the token is outside the
	// warning window.
	MonitorArmed
	// MonitorWarning means expiry is within the warning threshold; the
	// countdown overlay is visible.
	MonitorWarning
	// MonitorExpired is terminal; teardown resets the monitor to Idle.
	MonitorExpired
)

// String returns the state name for logs.
func (s MonitorState) String() string {
	switch s {
	case MonitorIdle:
		return "idle"
	case MonitorArmed:
		return "armed"
	case MonitorWarning:
		return "warning"
	case MonitorExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// MonitorEvent is the outcome of feeding a tick to the state machine.
type MonitorEvent int

const (
	// EventNone: nothing happened, keep ticking.
	EventNone MonitorEvent = iota
	// EventWarning: crossed into the warning window this tick.
	EventWarning
	// EventExpired: the session expired this tick.
	EventExpired
)

// TokenClock derives the remaining token lifetime. *auth.Codec satisfies
// it; tests substitute a fake.
type TokenClock interface {
	SecondsUntilExpiry(token string) int64
}

// =============================================================================
// EXPIRY MONITOR
// =============================================================================

// ExpiryMonitor watches the session token with two independent clocks:
// an authoritative one-second tick that re-derives remaining lifetime
// from the token, and a display countdown that decrements a latched
// value once per second during the warning window. The authoritative
// clock always wins; if it reads zero the session expires even when the
// displayed countdown has seconds left.
//
// Every Arm and Disarm bumps a generation counter. Tick messages carry
// the generation they were scheduled under, and stale generations are
// dropped, so a timer orphaned by teardown can never fire against a
// fresh session.
type ExpiryMonitor struct {
	clock            TokenClock
	token            func() string
	warningThreshold int64

	state     MonitorState
	gen       int
	countdown int64
}

// NewExpiryMonitor builds a monitor reading the current token through
// the given func. warningThreshold is in seconds.
func NewExpiryMonitor(clock TokenClock, token func() string, warningThreshold int64) *ExpiryMonitor {
	return &ExpiryMonitor{
		clock:            clock,
		token:            token,
		warningThreshold: warningThreshold,
		state:            MonitorIdle,
	}
}

// Arm transitions Idle -> Armed and invalidates any earlier timers.
// The caller schedules the first tick with TickCmds().
func (m *ExpiryMonitor) Arm() {
	m.gen++
	m.state = MonitorArmed
	m.countdown = 0
}

// Disarm cancels monitoring from any state. Earlier ticks become stale.
func (m *ExpiryMonitor) Disarm() {
	m.gen++
	m.state = MonitorIdle
	m.countdown = 0
}

// State returns the current lifecycle state.
func (m *ExpiryMonitor) State() MonitorState {
	return m.state
}

// Countdown returns the displayed seconds remaining. Only meaningful in
// the Warning state.
func (m *ExpiryMonitor) Countdown() int64 {
	return m.countdown
}

// Generation returns the current timer generation tag.
func (m *ExpiryMonitor) Generation() int {
	return m.gen
}

// Tick is the authoritative check: re-derive remaining lifetime from the
// token. gen must match the monitor's current generation; stale ticks
// return EventNone and must not be rescheduled.
func (m *ExpiryMonitor) Tick(gen int) MonitorEvent {
	if gen != m.gen {
		return EventNone
	}

	switch m.state {
	case MonitorIdle, MonitorExpired:
		return EventNone
	}

	remaining := m.clock.SecondsUntilExpiry(m.token())

	if remaining <= 0 {
		m.state = MonitorExpired
		return EventExpired
	}

	if m.state == MonitorArmed && remaining <= m.warningThreshold {
		// Latch the countdown the UI will decrement
		m.state = MonitorWarning
		m.countdown = remaining
		return EventWarning
	}

	if m.state == MonitorWarning && remaining < m.countdown {
		// Authoritative clock ran ahead of the display (system sleep,
		// dropped ticks); snap the display down, never up
		m.countdown = remaining
	}

	return EventNone
}

// CountdownTick is the display clock: decrement the latched countdown.
// Only active in the Warning state; stale generations are dropped.
func (m *ExpiryMonitor) CountdownTick(gen int) MonitorEvent {
	if gen != m.gen || m.state != MonitorWarning {
		return EventNone
	}

	m.countdown--
	if m.countdown <= 0 {
		m.state = MonitorExpired
		return EventExpired
	}
	return EventNone
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// AuthTickMsg drives the authoritative expiry check.
type AuthTickMsg struct {
	Gen int
}

// CountdownTickMsg drives the visible countdown.
type CountdownTickMsg struct {
	Gen int
}

// WarningMsg announces entry into the warning window.
type WarningMsg struct {
	Remaining int64
}

// ExpiredMsg announces hard expiry. The root model reacts by invoking
// the controller's forced teardown.
type ExpiredMsg struct{}

// AuthTickCmd schedules the next authoritative tick for a generation.
func AuthTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return AuthTickMsg{Gen: gen}
	})
}

// CountdownTickCmd schedules the next display tick for a generation.
func CountdownTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return CountdownTickMsg{Gen: gen}
	})
}

// TickCmds returns the initial tick for a freshly armed monitor.
func (m *ExpiryMonitor) TickCmds() tea.Cmd {
	if m.state != MonitorArmed {
		return nil
	}
	return AuthTickCmd(m.gen)
}

// HandleAuthTick processes an authoritative tick message and returns the
// follow-up commands. Stale ticks return nil, ending that timer chain.
func (m *ExpiryMonitor) HandleAuthTick(msg AuthTickMsg) tea.Cmd {
	if msg.Gen != m.gen {
		return nil
	}

	switch m.Tick(msg.Gen) {
	case EventExpired:
		return func() tea.Msg { return ExpiredMsg{} }
	case EventWarning:
		remaining := m.countdown
		return tea.Batch(
			func() tea.Msg { return WarningMsg{Remaining: remaining} },
			AuthTickCmd(m.gen),
			CountdownTickCmd(m.gen),
		)
	default:
		if m.state == MonitorIdle || m.state == MonitorExpired {
			return nil
		}
		return AuthTickCmd(m.gen)
	}
}

// HandleCountdownTick processes a display tick message.
func (m *ExpiryMonitor) HandleCountdownTick(msg CountdownTickMsg) tea.Cmd {
	if msg.Gen != m.gen {
		return nil
	}

	switch m.CountdownTick(msg.Gen) {
	case EventExpired:
		return func() tea.Msg { return ExpiredMsg{} }
	default:
		if m.state != MonitorWarning {
			return nil
		}
		return CountdownTickCmd(m.gen)
	}
}
