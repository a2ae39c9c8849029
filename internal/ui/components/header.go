// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deerbank-tui/internal/model"
	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
	"github.com/jeranaias/deerbank-tui/internal/util"
)

// Header is the dashboard top bar: brand, user identity, masked account
// number, and a role badge.
type Header struct {
	theme *styles.Theme
	width int

	user        *model.LoginResponse
	maskAccount bool
}

// NewHeader creates a header bound to the current theme.
func NewHeader(theme *styles.Theme) Header {
	return Header{theme: theme, maskAccount: true}
}

// SetWidth sets the render width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetUser binds the logged-in user. nil renders the logged-out brand bar.
func (h *Header) SetUser(user *model.LoginResponse) {
	h.user = user
}

// SetMaskAccount controls account number masking.
func (h *Header) SetMaskAccount(mask bool) {
	h.maskAccount = mask
}

// MaskAccountNo hides all but the last four characters of an account
// number.
func MaskAccountNo(accountNo string) string {
	n := util.RuneLen(accountNo)
	if n <= 4 {
		return accountNo
	}
	return strings.Repeat("*", n-4) + util.SafeSubstring(accountNo, n-4, n)
}

// View renders the header bar.
func (h Header) View() string {
	brand := h.theme.HeaderBrand.Render("DeerBank")

	if h.user == nil {
		return h.theme.Header.Width(max(h.width-2, 0)).Render(brand)
	}

	name := h.theme.HeaderUser.Render(h.user.DisplayName())

	badge := h.theme.HeaderBadge.Render("CUSTOMER")
	if h.user.UserType.IsMaster() {
		badge = h.theme.HeaderMasterBadge.Render("MASTER")
	}

	account := ""
	if h.user.AccountNo != nil {
		no := *h.user.AccountNo
		if h.maskAccount {
			no = MaskAccountNo(no)
		}
		account = h.theme.HeaderAccount.Render(" " + no)
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center, brand, "  ", name, account)
	line := lipgloss.JoinHorizontal(lipgloss.Center, left, "  ", badge)

	if h.width > 0 {
		gap := h.width - lipgloss.Width(left) - lipgloss.Width(badge) - 6
		if gap > 0 {
			line = lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", gap), badge)
		}
	}

	return h.theme.Header.Width(max(h.width-2, 0)).Render(line)
}
