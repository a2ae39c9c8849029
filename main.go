// deerbank TUI - a terminal dashboard for the DeerBank banking backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deerbank-tui/internal/api"
	"github.com/jeranaias/deerbank-tui/internal/auth"
	"github.com/jeranaias/deerbank-tui/internal/cli"
	"github.com/jeranaias/deerbank-tui/internal/config"
	"github.com/jeranaias/deerbank-tui/internal/model"
	"github.com/jeranaias/deerbank-tui/internal/session"
	"github.com/jeranaias/deerbank-tui/internal/storage"
	"github.com/jeranaias/deerbank-tui/internal/ui/admin"
	"github.com/jeranaias/deerbank-tui/internal/ui/authview"
	"github.com/jeranaias/deerbank-tui/internal/ui/components"
	"github.com/jeranaias/deerbank-tui/internal/ui/dashboard"
	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.3.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference so the API client's 401 callback can push a
// message into the running event loop.
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdStatus:
		os.Exit(cli.HandleStatus(args))
	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(args))
	case cli.CmdSession:
		os.Exit(cli.HandleSession(args))
	case cli.CmdCache:
		os.Exit(cli.HandleCache(args))
	case cli.CmdDoctor:
		os.Exit(cli.HandleDoctor(args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

// ===== TUI BOOTSTRAP =====

func runTUI(args cli.Args) {
	if err := cli.RequiresTTY("run the dashboard"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser := openLogger(cfg, args.Verbose)
	if logCloser != nil {
		defer logCloser.Close()
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve data directory: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewSessionStoreWithDir(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session store: %v\n", err)
		os.Exit(1)
	}

	var cache *storage.TxCache
	if cfg.Storage.CacheEnabled {
		cache, err = storage.OpenTxCache(dataDir, cfg.Storage.CacheMaxRows)
		if err != nil {
			// The cache is an optimization; run without it
			if logger != nil {
				logger.Printf("cache disabled: %v", err)
			}
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	codec := auth.NewCodec()
	creds := session.NewCredentialStore()
	state := session.NewState(store, creds, cfg.Session.PersistEnabled)
	monitor := session.NewExpiryMonitor(codec, state.Token, int64(cfg.Session.WarningThresholdSecs))

	var clearer session.CacheClearer
	if cache != nil {
		clearer = cache
	}
	ctrl := session.NewController(state, monitor, codec, clearer, logger)

	client := api.NewClient(cfg.API.BaseURL, creds).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second).
		WithMaxRetries(cfg.API.MaxRetries).
		WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst).
		WithLogger(logger)
	client.OnSessionExpired(func() {
		programMu.Lock()
		p := programRef
		programMu.Unlock()
		if p != nil {
			p.Send(backendExpiredMsg{})
		}
	})

	// Live config reload: edits to the config file land in the event
	// loop as a message so the views can pick up display changes
	watcher, err := config.NewWatcher(func(next *config.Config) {
		programMu.Lock()
		p := programRef
		programMu.Unlock()
		if p != nil {
			p.Send(configReloadedMsg{cfg: next})
		}
	})
	if err == nil {
		if werr := watcher.Watch(); werr != nil {
			if logger != nil {
				logger.Printf("config watch failed: %v", werr)
			}
		} else {
			defer watcher.Close()
		}
	} else if logger != nil {
		logger.Printf("config watch unavailable: %v", err)
	}

	root := newRootModel(cfg, client, ctrl, cache)

	// Restore last session before the program starts so the first frame
	// is already the dashboard when the saved token is still live
	if cfg.Session.RestoreOnStart {
		tickCmd, restored, err := ctrl.Restore()
		if err != nil && logger != nil {
			logger.Printf("session restore failed: %v", err)
		}
		if restored {
			root.enterSession(tickCmd)
		}
	}

	p := tea.NewProgram(root, tea.WithAltScreen())
	programMu.Lock()
	programRef = p
	programMu.Unlock()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openLogger builds the file logger, or nil when logging is off. Logs
// never go to the terminal while the TUI owns the screen.
func openLogger(cfg *config.Config, verbose bool) (*log.Logger, io.Closer) {
	if !cfg.Log.Enabled && !verbose {
		return nil, nil
	}
	path, err := cfg.LogPath()
	if err != nil {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil
	}
	return log.New(f, "", log.LstdFlags), f
}

// ===== ROOT MODEL =====

// appState selects which view owns the screen.
type appState int

const (
	stateLanding appState = iota
	stateAuth
	stateDashboard
	stateAdmin
)

// backendExpiredMsg is injected when the API client sees a 401.
type backendExpiredMsg struct{}

// configReloadedMsg carries a freshly loaded config from the file watcher.
type configReloadedMsg struct {
	cfg *config.Config
}

// rootModel owns the session lifecycle and dispatches to the active view.
type rootModel struct {
	cfg    *config.Config
	theme  *styles.Theme
	client *api.Client
	ctrl   *session.Controller
	cache  *storage.TxCache

	state   appState
	auth    authview.Model
	dash    dashboard.Model
	admin   admin.Model
	overlay components.SessionWarningOverlay

	// initCmds carry the restore tick and view init into Init()
	initCmds []tea.Cmd

	width  int
	height int
}

func newRootModel(cfg *config.Config, client *api.Client, ctrl *session.Controller, cache *storage.TxCache) *rootModel {
	theme := styles.NewTheme()
	return &rootModel{
		cfg:     cfg,
		theme:   theme,
		client:  client,
		ctrl:    ctrl,
		cache:   cache,
		state:   stateLanding,
		auth:    authview.New(theme, client),
		overlay: components.NewSessionWarningOverlay(),
	}
}

// enterSession switches to the view matching the session's user type.
// tickCmd is the monitor's initial tick from Login or Restore.
func (m *rootModel) enterSession(tickCmd tea.Cmd) {
	cur := m.ctrl.Current()
	if cur == nil {
		return
	}

	if cur.UserType.IsMaster() {
		m.admin = admin.New(m.theme, m.client, m.ctrl)
		m.admin.SetSize(m.width, m.height)
		m.state = stateAdmin
		m.initCmds = append(m.initCmds, tickCmd, m.admin.Init())
		return
	}

	formatter := model.NewMoneyFormatter(m.cfg.UI.Locale)
	m.dash = dashboard.New(m.theme, m.client, m.ctrl, m.cache, formatter, m.cfg.UI.MaskAccountNumber)
	m.dash.SetSize(m.width, m.height)
	m.state = stateDashboard
	m.initCmds = append(m.initCmds, tickCmd, m.dash.Init())
}

// leaveSession returns to the landing screen after a deliberate logout,
// or straight to the login form with a notice when the session ended on
// its own.
func (m *rootModel) leaveSession(notice string) {
	m.overlay.Hide()
	m.auth = authview.New(m.theme, m.client)
	if notice == "" {
		m.state = stateLanding
		return
	}
	m.state = stateAuth
	m.auth.SetNotice(notice)
}

func (m *rootModel) Init() tea.Cmd {
	cmds := append([]tea.Cmd{}, m.initCmds...)
	m.initCmds = nil
	if m.state == stateAuth {
		cmds = append(cmds, m.auth.Init())
	}
	return tea.Batch(cmds...)
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.overlay.SetSize(msg.Width, msg.Height)
		return m, m.forward(msg)

	// ----- session lifecycle -----

	case session.AuthTickMsg:
		cmd := m.ctrl.Monitor().HandleAuthTick(msg)
		return m, cmd

	case session.CountdownTickMsg:
		cmd := m.ctrl.Monitor().HandleCountdownTick(msg)
		if m.overlay.IsVisible() {
			m.overlay.SetRemaining(m.ctrl.Monitor().Countdown())
		}
		return m, cmd

	case session.WarningMsg:
		m.overlay.Show(msg.Remaining)
		return m, nil

	case session.ExpiredMsg:
		return m, m.expire()

	case backendExpiredMsg:
		return m, m.expire()

	case configReloadedMsg:
		m.cfg = msg.cfg
		if m.state == stateDashboard {
			m.dash.SetDisplay(model.NewMoneyFormatter(msg.cfg.UI.Locale), msg.cfg.UI.MaskAccountNumber)
		}
		return m, nil

	case components.LogOutChosenMsg:
		if err := m.ctrl.Logout(); err == nil {
			m.leaveSession("")
		}
		return m, nil

	case components.LogInAgainChosenMsg:
		// The backend has no token refresh; "log in again" ends the
		// session and pre-fills the reason on the login form
		if err := m.ctrl.Logout(); err == nil {
			m.leaveSession("Please log in again to continue.")
			return m, m.auth.Init()
		}
		return m, nil

	case authview.LoginSuccessMsg:
		tickCmd, err := m.ctrl.Login(msg.Record)
		if err != nil {
			m.auth.SetNotice("Could not save your session. Please try again.")
			return m, nil
		}
		if !m.ctrl.Authenticated() {
			m.auth.SetNotice("Login succeeded but no session token was issued.")
			return m, nil
		}
		m.enterSession(tickCmd)
		cmds := append([]tea.Cmd{}, m.initCmds...)
		m.initCmds = nil
		return m, tea.Batch(cmds...)

	// ----- input -----

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.forward(msg)
}

func (m *rootModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The warning overlay owns the keyboard while visible
	if m.overlay.IsVisible() {
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "enter":
		if m.state == stateLanding {
			m.state = stateAuth
			return m, m.auth.Init()
		}
	case "ctrl+l":
		if m.state == stateDashboard || m.state == stateAdmin {
			if err := m.ctrl.Logout(); err == nil {
				m.leaveSession("")
				return m, nil
			}
		}
	case "q":
		// Only a shortcut when no text input is capturing keystrokes
		if m.state == stateLanding {
			return m, tea.Quit
		}
		if m.state == stateDashboard && !m.dash.ModalOpen() {
			return m, tea.Quit
		}
		if m.state == stateAdmin && !m.admin.TextEntryActive() {
			return m, tea.Quit
		}
	}

	return m, m.forward(msg)
}

// expire tears the session down and lands on the login form with the
// expiry notice. The notice shows at most once per expiry; a second
// observer of the same expiry finds no session and changes nothing.
func (m *rootModel) expire() tea.Cmd {
	if !m.ctrl.ForceExpire() {
		return nil
	}
	m.leaveSession("Your session has expired. Please log in again.")
	return m.auth.Init()
}

// forward routes a message to the active view.
func (m *rootModel) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.state {
	case stateAuth:
		m.auth, cmd = m.auth.Update(msg)
	case stateDashboard:
		m.dash, cmd = m.dash.Update(msg)
	case stateAdmin:
		m.admin, cmd = m.admin.Update(msg)
	}
	return cmd
}

func (m *rootModel) View() string {
	if m.overlay.IsVisible() {
		return m.overlay.View(m.theme)
	}
	switch m.state {
	case stateDashboard:
		return m.dash.View()
	case stateAdmin:
		return m.admin.View()
	case stateAuth:
		return m.auth.View()
	default:
		return m.landingView()
	}
}

// landingView is the pre-auth welcome screen.
func (m *rootModel) landingView() string {
	parts := []string{
		m.theme.FormTitle.Render("DeerBank"),
		"Banking from your terminal",
		"",
		m.theme.FormHint.Render("enter: sign in • q: quit"),
	}
	box := m.theme.FormBox.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
