// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package authview implements the login, registration, and
// password-change screens.
package authview

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deerbank-tui/internal/api"
	"github.com/jeranaias/deerbank-tui/internal/model"
	"github.com/jeranaias/deerbank-tui/internal/ui/components"
	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
)

// submitTimeout bounds a single auth request.
const submitTimeout = 30 * time.Second

// Mode selects between the login and registration forms.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
	ModeUpdatePassword
)

// LoginSuccessMsg carries a successful auth response up to the root
// model, which owns the session controller.
type LoginSuccessMsg struct {
	Record *model.LoginResponse
}

// authErrorMsg carries a failed auth attempt back into the view.
type authErrorMsg struct {
	err error
}

// passwordChangedMsg returns the view to login mode after a
// successful password update.
type passwordChangedMsg struct {
	username string
}

// Model is the auth screen.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	mode      Mode
	login     components.FieldSet
	register  components.FieldSet
	changePw  components.FieldSet
	spinner   components.Spinner
	toast     components.ErrorToast
	notice    string
	submitting bool

	width  int
	height int
}

// New creates the auth screen in login mode.
func New(theme *styles.Theme, client *api.Client) Model {
	login := components.NewFieldSet(
		components.NewField("Username", "username"),
		components.NewPasswordField("Password"),
	)
	register := components.NewFieldSet(
		components.NewField("Username", "choose a username"),
		components.NewPasswordField("Password"),
		components.NewPasswordField("Confirm Password"),
		components.NewField("Account Number", "existing account (optional)"),
	)
	changePw := components.NewFieldSet(
		components.NewField("Username", "username"),
		components.NewPasswordField("Current Password"),
		components.NewPasswordField("New Password"),
	)
	return Model{
		theme:    theme,
		client:   client,
		login:    login,
		register: register,
		changePw: changePw,
		spinner:  components.NewSpinner(theme),
		toast:    components.NewErrorToast(),
	}
}

// SetNotice shows an informational line above the form, e.g. the
// re-login prompt after a session expires.
func (m *Model) SetNotice(notice string) {
	m.notice = notice
}

// Init focuses the first field.
func (m Model) Init() tea.Cmd {
	return m.fields().Init()
}

// fields returns the active field set for the current mode.
func (m *Model) fields() *components.FieldSet {
	switch m.mode {
	case ModeRegister:
		return &m.register
	case ModeUpdatePassword:
		return &m.changePw
	default:
		return &m.login
	}
}

// Update handles auth screen input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.toast.SetWidth(msg.Width)
		return m, nil

	case components.ToastExpiredMsg:
		m.toast.HandleExpired(msg)
		return m, nil

	case authErrorMsg:
		m.submitting = false
		m.spinner.Stop()
		return m, m.toast.Show(msg.err.Error())

	case passwordChangedMsg:
		m.submitting = false
		m.spinner.Stop()
		m.mode = ModeLogin
		m.notice = "Password updated. Please sign in with your new password."
		cmd := m.changePw.Reset()
		m.login.Fields[0].SetValue(msg.username)
		return m, tea.Batch(cmd, m.login.Init())

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			return m, m.fields().Next()
		case "shift+tab", "up":
			return m, m.fields().Prev()
		case "ctrl+r":
			if m.mode == ModeLogin {
				m.mode = ModeRegister
			} else {
				m.mode = ModeLogin
			}
			return m, m.fields().Reset()
		case "ctrl+p":
			if m.mode == ModeUpdatePassword {
				m.mode = ModeLogin
			} else {
				m.mode = ModeUpdatePassword
			}
			return m, m.fields().Reset()
		case "enter":
			if m.fields().OnLast() {
				return m.submit()
			}
			return m, m.fields().Next()
		}
	}

	fs, cmd := m.fields().Update(msg)
	*m.fields() = fs

	var spinCmd tea.Cmd
	m.spinner, spinCmd = m.spinner.Update(msg)
	return m, tea.Batch(cmd, spinCmd)
}

// submit validates and fires the auth request.
func (m Model) submit() (Model, tea.Cmd) {
	switch m.mode {
	case ModeRegister:
		return m.submitRegister()
	case ModeUpdatePassword:
		return m.submitUpdatePassword()
	default:
		return m.submitLogin()
	}
}

func (m Model) submitLogin() (Model, tea.Cmd) {
	username := strings.TrimSpace(m.login.Fields[0].Value())
	password := m.login.Fields[1].Value()
	if username == "" || password == "" {
		return m, m.toast.Show("Username and password are required")
	}

	m.submitting = true
	client := m.client
	req := model.LoginRequest{Username: username, Password: password}
	call := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		rec, err := client.Login(ctx, req)
		if err != nil {
			return authErrorMsg{err: err}
		}
		return LoginSuccessMsg{Record: rec}
	}
	return m, tea.Batch(m.spinner.Start("Signing in..."), call)
}

func (m Model) submitRegister() (Model, tea.Cmd) {
	username := strings.TrimSpace(m.register.Fields[0].Value())
	password := m.register.Fields[1].Value()
	confirm := m.register.Fields[2].Value()
	accountNo := strings.TrimSpace(m.register.Fields[3].Value())

	if username == "" || password == "" {
		return m, m.toast.Show("Username and password are required")
	}
	if password != confirm {
		return m, m.toast.Show("Passwords do not match")
	}

	m.submitting = true
	client := m.client
	req := model.RegisterRequest{
		Username:      username,
		Password:      password,
		AccountNumber: accountNo,
	}
	call := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		rec, err := client.Register(ctx, req)
		if err != nil {
			return authErrorMsg{err: err}
		}
		return LoginSuccessMsg{Record: rec}
	}
	return m, tea.Batch(m.spinner.Start("Creating account..."), call)
}

func (m Model) submitUpdatePassword() (Model, tea.Cmd) {
	username := strings.TrimSpace(m.changePw.Fields[0].Value())
	current := m.changePw.Fields[1].Value()
	next := m.changePw.Fields[2].Value()

	if username == "" || current == "" || next == "" {
		return m, m.toast.Show("All fields are required")
	}
	if current == next {
		return m, m.toast.Show("New password must differ from the current one")
	}

	m.submitting = true
	client := m.client
	req := model.UpdatePasswordRequest{
		Username:        username,
		CurrentPassword: current,
		NewPassword:     next,
	}
	call := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		if _, err := client.UpdatePassword(ctx, req); err != nil {
			return authErrorMsg{err: err}
		}
		return passwordChangedMsg{username: username}
	}
	return m, tea.Batch(m.spinner.Start("Updating password..."), call)
}

// View renders the auth screen.
func (m Model) View() string {
	title := "Sign In to DeerBank"
	hint := "enter: submit • tab: next field • ctrl+r: register • ctrl+p: change password"
	switch m.mode {
	case ModeRegister:
		title = "Create Your DeerBank Login"
		hint = "enter: submit • tab: next field • ctrl+r: back to sign in"
	case ModeUpdatePassword:
		title = "Change Your Password"
		hint = "enter: submit • tab: next field • ctrl+p: back to sign in"
	}

	var parts []string
	parts = append(parts, m.theme.FormTitle.Render(title))
	if m.notice != "" {
		parts = append(parts, m.theme.InfoStyle.Render(styles.StatusIndicators.Info+" "+m.notice))
	}
	parts = append(parts, "")
	parts = append(parts, m.fieldsView())
	parts = append(parts, "")
	if m.spinner.Active() {
		parts = append(parts, m.spinner.View(m.theme))
	}
	if m.toast.IsVisible() {
		parts = append(parts, m.toast.View(m.theme))
	}
	parts = append(parts, m.theme.FormHint.Render(hint))

	box := m.theme.FormBox.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m Model) fieldsView() string {
	switch m.mode {
	case ModeRegister:
		return m.register.View(m.theme)
	case ModeUpdatePassword:
		return m.changePw.View(m.theme)
	default:
		return m.login.View(m.theme)
	}
}
