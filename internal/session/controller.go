// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deerbank-tui/internal/model"
)

// =============================================================================
// SESSION CONTROLLER
// =============================================================================

// CacheClearer is the slice of the transaction cache the controller
// needs: teardown wipes cached account data.
type CacheClearer interface {
	Clear() error
}

// Controller orchestrates the session lifecycle. Every path that ends a
// session funnels through teardown(), which is idempotent: the second
// caller of a concurrent double-teardown observes no session and does
// nothing. The "session expired" notice fires at most once per expiry.
type Controller struct {
	state   *State
	monitor *ExpiryMonitor
	clock   TokenClock
	cache   CacheClearer
	logger  *log.Logger
}

// NewController wires the session controller. cache and logger may be nil.
func NewController(state *State, monitor *ExpiryMonitor, clock TokenClock, cache CacheClearer, logger *log.Logger) *Controller {
	return &Controller{
		state:   state,
		monitor: monitor,
		clock:   clock,
		cache:   cache,
		logger:  logger,
	}
}

// Login installs a new session from a login or registration response and
// arms the expiry monitor. A response without a token means no session
// change: the caller shows the backend's message and nothing else
// happens. Returns the initial monitor tick command.
func (c *Controller) Login(rec *model.LoginResponse) (tea.Cmd, error) {
	if rec == nil || rec.Token == "" {
		return nil, nil
	}

	// A login replacing a live session must first cancel its timers
	c.monitor.Disarm()

	if err := c.state.Set(rec); err != nil {
		return nil, err
	}

	c.monitor.Arm()
	c.logf("session: login user=%s type=%s", rec.Username, rec.UserType)
	return c.monitor.TickCmds(), nil
}

// Restore re-hydrates a persisted session at startup. A record whose
// token has already expired is discarded silently; the user simply lands
// unauthenticated. Returns the monitor tick command when a live session
// was restored.
func (c *Controller) Restore() (tea.Cmd, bool, error) {
	rec, err := c.state.Restore()
	if err != nil {
		return nil, false, err
	}
	if rec == nil {
		return nil, false, nil
	}

	if c.clock.SecondsUntilExpiry(rec.Token) <= 0 {
		c.logf("session: discarding expired persisted session user=%s", rec.Username)
		if err := c.state.Clear(); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	c.monitor.Arm()
	c.logf("session: restored user=%s", rec.Username)
	return c.monitor.TickCmds(), true, nil
}

// Logout ends the session at the user's request. Idempotent; calling it
// with no session is a no-op.
func (c *Controller) Logout() error {
	if !c.state.Authenticated() {
		return nil
	}
	c.logf("session: logout user=%s", c.state.Current().Username)
	return c.teardown()
}

// ForceExpire ends the session after local expiry or a backend 401.
// It reports whether the caller should surface the "session expired"
// notice: true exactly once per expiry event. When the monitor and a
// failed request both observe the same expiry, the second teardown finds
// no session and stays silent.
func (c *Controller) ForceExpire() bool {
	if !c.state.Authenticated() {
		return false
	}
	c.logf("session: forced expiry user=%s", c.state.Current().Username)
	if err := c.teardown(); err != nil {
		c.logf("session: teardown error: %v", err)
	}
	return true
}

// UpdateBalance re-persists the session with a new balance snapshot.
// A response arriving after teardown must not resurrect the session, so
// an unauthenticated update is dropped on the floor.
func (c *Controller) UpdateBalance(balance float64) error {
	if !c.state.Authenticated() {
		return nil
	}
	return c.state.UpdateBalance(balance)
}

// Authenticated reports whether a session exists.
func (c *Controller) Authenticated() bool {
	return c.state.Authenticated()
}

// Current returns the live session record, or nil.
func (c *Controller) Current() *model.LoginResponse {
	return c.state.Current()
}

// Monitor exposes the expiry monitor for the UI's countdown rendering.
func (c *Controller) Monitor() *ExpiryMonitor {
	return c.monitor
}

// teardown is the single destruction path: cancel timers, clear state
// and credentials, delete the durable record, drop cached account data.
func (c *Controller) teardown() error {
	c.monitor.Disarm()

	err := c.state.Clear()

	if c.cache != nil {
		if cerr := c.cache.Clear(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (c *Controller) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
