// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package authview

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/deerbank-tui/internal/api"
	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
)

type staticToken string

func (s staticToken) Get() string { return string(s) }

func newTestModel() Model {
	client := api.NewClient("http://127.0.0.1:1", staticToken(""))
	return New(styles.NewTheme(), client)
}

func ctrlKey(s string) tea.KeyMsg {
	switch s {
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestModeToggles(t *testing.T) {
	m := newTestModel()
	require.Equal(t, ModeLogin, m.mode)

	m, _ = m.Update(ctrlKey("ctrl+r"))
	assert.Equal(t, ModeRegister, m.mode)
	m, _ = m.Update(ctrlKey("ctrl+r"))
	assert.Equal(t, ModeLogin, m.mode)

	m, _ = m.Update(ctrlKey("ctrl+p"))
	assert.Equal(t, ModeUpdatePassword, m.mode)
	m, _ = m.Update(ctrlKey("ctrl+p"))
	assert.Equal(t, ModeLogin, m.mode)

	// ctrl+r from the password form falls back to login, not register
	m, _ = m.Update(ctrlKey("ctrl+p"))
	m, _ = m.Update(ctrlKey("ctrl+r"))
	assert.Equal(t, ModeLogin, m.mode)
}

func TestLoginValidation(t *testing.T) {
	m := newTestModel()

	m, _ = m.submit()
	assert.False(t, m.submitting, "empty credentials must not fire a request")
	assert.True(t, m.toast.IsVisible())

	m.login.Fields[0].SetValue("jdoe")
	m.login.Fields[1].SetValue("hunter22")
	m, cmd := m.submit()
	assert.True(t, m.submitting)
	assert.NotNil(t, cmd)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	m := newTestModel()
	m.mode = ModeRegister

	m.register.Fields[0].SetValue("jdoe")
	m.register.Fields[1].SetValue("hunter22")
	m.register.Fields[2].SetValue("hunter23")
	m, _ = m.submit()
	assert.False(t, m.submitting)
	assert.True(t, m.toast.IsVisible())
}

func TestUpdatePasswordValidation(t *testing.T) {
	m := newTestModel()
	m.mode = ModeUpdatePassword

	m, _ = m.submit()
	assert.False(t, m.submitting)

	m.changePw.Fields[0].SetValue("jdoe")
	m.changePw.Fields[1].SetValue("same")
	m.changePw.Fields[2].SetValue("same")
	m, _ = m.submit()
	assert.False(t, m.submitting, "unchanged password must be rejected")

	m.changePw.Fields[2].SetValue("different")
	m, cmd := m.submit()
	assert.True(t, m.submitting)
	assert.NotNil(t, cmd)
}

func TestPasswordChangedReturnsToLogin(t *testing.T) {
	m := newTestModel()
	m.mode = ModeUpdatePassword
	m.submitting = true

	m, _ = m.Update(passwordChangedMsg{username: "jdoe"})
	assert.Equal(t, ModeLogin, m.mode)
	assert.False(t, m.submitting)
	assert.Contains(t, m.notice, "Password updated")
	assert.Equal(t, "jdoe", m.login.Fields[0].Value())
}

func TestKeysIgnoredWhileSubmitting(t *testing.T) {
	m := newTestModel()
	m.submitting = true

	m, _ = m.Update(ctrlKey("ctrl+r"))
	assert.Equal(t, ModeLogin, m.mode, "mode must not change mid-request")
}
