// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deerbank-tui/internal/model"
	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
	"github.com/jeranaias/deerbank-tui/internal/util"
)

func TestMaskAccountNo(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ACC1000044", "******0044"},
		{"1234", "1234"},
		{"12345", "*2345"},
		{"", ""},
		// Multi-byte account labels must split on rune boundaries
		{"口座番号一二三四", "****一二三四"},
	}
	for _, tt := range tests {
		if got := MaskAccountNo(tt.in); got != tt.want {
			t.Errorf("MaskAccountNo(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuickActionsNavigation(t *testing.T) {
	q := NewQuickActions(styles.NewTheme())

	if q.Selected() != ActionTransfer {
		t.Errorf("initial selection = %v", q.Selected())
	}

	q.Next()
	if q.Selected() != ActionDeposit {
		t.Errorf("after Next = %v", q.Selected())
	}

	q.Prev()
	q.Prev()
	if q.Selected() != ActionLoans {
		t.Errorf("Prev should wrap, got %v", q.Selected())
	}

	q.Next()
	if q.Selected() != ActionTransfer {
		t.Errorf("Next should wrap, got %v", q.Selected())
	}
}

func TestTransactionListCursor(t *testing.T) {
	theme := styles.NewTheme()
	l := NewTransactionList(theme, model.NewMoneyFormatter("en-US"))
	l.SetSize(80, 2)

	credit := "ACC1"
	rows := []model.TransactionHistory{
		{TranID: 1, Amount: 10, Credit: &credit, Description: "first"},
		{TranID: 2, Amount: 20, Credit: &credit, Description: "second"},
		{TranID: 3, Amount: 30, Credit: &credit, Description: "third"},
	}
	l.SetRows("ACC1", rows)

	if sel := l.Selected(); sel == nil || sel.TranID != 1 {
		t.Fatalf("initial selection = %+v", sel)
	}

	l.CursorUp() // already at top, stays
	if sel := l.Selected(); sel.TranID != 1 {
		t.Errorf("CursorUp at top moved to %d", sel.TranID)
	}

	l.CursorDown()
	l.CursorDown()
	if sel := l.Selected(); sel.TranID != 3 {
		t.Errorf("selection = %d, want 3", sel.TranID)
	}

	l.CursorDown() // at bottom, stays
	if sel := l.Selected(); sel.TranID != 3 {
		t.Errorf("CursorDown at bottom moved to %d", sel.TranID)
	}
}

func TestTransactionListAlignsAmounts(t *testing.T) {
	theme := styles.NewTheme()
	formatter := model.NewMoneyFormatter("en-US")
	l := NewTransactionList(theme, formatter)
	l.SetSize(80, 2)

	credit := "ACC1"
	l.SetRows("ACC1", []model.TransactionHistory{
		{TranID: 1, Amount: 10, Credit: &credit, Description: "small"},
		{TranID: 2, Amount: 1234567.89, Credit: &credit, Description: "large"},
	})

	view := l.View()
	for _, amount := range []float64{10, 1234567.89} {
		s := formatter.FormatSigned(amount, true)
		padded := strings.Repeat(" ", amountColWidth-util.StringWidth(s)) + s
		if !strings.Contains(view, padded) {
			t.Errorf("view missing right-aligned amount %q", padded)
		}
	}
}

func TestTransactionListEmpty(t *testing.T) {
	l := NewTransactionList(styles.NewTheme(), model.NewMoneyFormatter("en-US"))
	if l.Selected() != nil {
		t.Error("empty list should have no selection")
	}
	if !strings.Contains(l.View(), "No transactions") {
		t.Error("empty list should render placeholder")
	}
}

func TestErrorToastGenerations(t *testing.T) {
	toast := NewErrorToast()

	toast.Show("first failure")
	toast.Show("second failure")

	// The hide timer from the first Show is stale
	toast.HandleExpired(ToastExpiredMsg{Gen: 1})
	if !toast.IsVisible() {
		t.Error("stale expiry hid the replacement toast")
	}

	toast.HandleExpired(ToastExpiredMsg{Gen: 2})
	if toast.IsVisible() {
		t.Error("current expiry should hide the toast")
	}
}

func TestSessionWarningOverlayChoices(t *testing.T) {
	o := NewSessionWarningOverlay()
	o.Show(25)

	if !o.IsVisible() {
		t.Fatal("Show should make the overlay visible")
	}

	// Default choice is Log In Again
	o2, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should produce a choice command")
	}
	if _, ok := cmd().(LogInAgainChosenMsg); !ok {
		t.Error("default enter should choose Log In Again")
	}
	if o2.IsVisible() {
		t.Error("choosing should hide the overlay")
	}

	// Move to Log Out and confirm
	o.Show(10)
	o, _ = o.Update(tea.KeyMsg{Type: tea.KeyLeft})
	o, cmd = o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should produce a choice command")
	}
	if _, ok := cmd().(LogOutChosenMsg); !ok {
		t.Error("left+enter should choose Log Out")
	}
}
