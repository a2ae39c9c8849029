// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderBrand    lipgloss.Style
	HeaderUser     lipgloss.Style
	HeaderAccount  lipgloss.Style
	HeaderBadge    lipgloss.Style
	HeaderMasterBadge lipgloss.Style

	// ==========================================================================
	// BALANCE CARD STYLES
	// ==========================================================================

	BalanceCard    lipgloss.Style
	BalanceLabel   lipgloss.Style
	BalanceAmount  lipgloss.Style
	BalanceMeta    lipgloss.Style

	// ==========================================================================
	// TRANSACTION LIST STYLES
	// ==========================================================================

	TxList         lipgloss.Style
	TxRow          lipgloss.Style
	TxRowSelected  lipgloss.Style
	TxCredit       lipgloss.Style
	TxDebit        lipgloss.Style
	TxDate         lipgloss.Style
	TxDescription  lipgloss.Style
	TxEmpty        lipgloss.Style

	// ==========================================================================
	// QUICK ACTION STYLES
	// ==========================================================================

	ActionButton       lipgloss.Style
	ActionButtonActive lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormBox        lipgloss.Style
	FormTitle      lipgloss.Style
	FormLabel      lipgloss.Style
	FormHint       lipgloss.Style
	FormError      lipgloss.Style
	FieldFocused   lipgloss.Style
	FieldBlurred   lipgloss.Style

	// ==========================================================================
	// MODAL STYLES
	// ==========================================================================

	ModalBox    lipgloss.Style
	ModalTitle  lipgloss.Style
	ModalButton lipgloss.Style
	ModalButtonActive lipgloss.Style

	// ==========================================================================
	// SESSION WARNING OVERLAY STYLES
	// ==========================================================================

	WarningOverlay  lipgloss.Style
	WarningTitle    lipgloss.Style
	WarningCountdown lipgloss.Style
	WarningBody     lipgloss.Style

	// ==========================================================================
	// ERROR TOAST AND SPINNER STYLES
	// ==========================================================================

	ErrorToast  lipgloss.Style
	ErrorTitle  lipgloss.Style
	Spinner     lipgloss.Style
	LoadingText lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// STATUS INDICATOR STYLES
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	t.HeaderUser = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.HeaderAccount = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.HeaderBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Teal).
		Padding(0, 1).
		Bold(true)

	t.HeaderMasterBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 1).
		Bold(true)

	// Balance card
	t.BalanceCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Teal).
		Background(SurfaceBright).
		Padding(1, 3)

	t.BalanceLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.BalanceAmount = lipgloss.NewStyle().
		Foreground(Credit).
		Bold(true)

	t.BalanceMeta = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Transaction list
	t.TxList = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.TxRow = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.TxRowSelected = lipgloss.NewStyle().
		Background(SelectionBg).
		Foreground(TextPrimary).
		Bold(true)

	t.TxCredit = lipgloss.NewStyle().
		Foreground(Credit).
		Bold(true)

	t.TxDebit = lipgloss.NewStyle().
		Foreground(Debit).
		Bold(true)

	t.TxDate = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.TxDescription = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.TxEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(1, 2)

	// Quick actions
	t.ActionButton = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 2).
		MarginRight(1)

	t.ActionButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Teal).
		Bold(true).
		Padding(0, 2).
		MarginRight(1)

	// Forms
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 2)

	t.FormTitle = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.FormError = lipgloss.NewStyle().
		Foreground(Debit).
		Bold(true)

	t.FieldFocused = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(FocusRing).
		Padding(0, 1)

	t.FieldBlurred = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	// Modals
	t.ModalBox = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(1, 3)

	t.ModalTitle = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)

	t.ModalButton = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 2).
		MarginRight(1)

	t.ModalButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Bold(true).
		Padding(0, 2).
		MarginRight(1)

	// Session warning overlay
	t.WarningOverlay = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Amber).
		Background(Surface).
		Padding(1, 4).
		Align(lipgloss.Center)

	t.WarningTitle = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.WarningCountdown = lipgloss.NewStyle().
		Foreground(Debit).
		Bold(true)

	t.WarningBody = lipgloss.NewStyle().
		Foreground(TextPrimary)

	// Error toast and spinner
	t.ErrorToast = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Debit).
		Background(DebitDeep).
		Padding(0, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Debit).
		Bold(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Teal)

	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Status indicators
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(Credit).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Debit).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
