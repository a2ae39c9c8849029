// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// =============================================================================
// CURRENCY FORMATTING
// =============================================================================

// MoneyFormatter renders amounts with locale-aware digit grouping.
// All deerbank accounts are USD; the locale only affects separators.
type MoneyFormatter struct {
	printer *message.Printer
}

// NewMoneyFormatter builds a formatter for the given BCP 47 locale tag.
// An unparseable tag falls back to en-US.
func NewMoneyFormatter(locale string) *MoneyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return &MoneyFormatter{printer: message.NewPrinter(tag)}
}

// Format renders an amount as "$1,234.56".
func (f *MoneyFormatter) Format(amount float64) string {
	return f.printer.Sprintf("$%v", number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatSigned renders an amount with an explicit sign, for transaction
// rows where direction matters: "+$50.00", "-$12.34".
func (f *MoneyFormatter) FormatSigned(amount float64, credit bool) string {
	sign := "-"
	if credit {
		sign = "+"
	}
	if amount < 0 {
		amount = -amount
	}
	return sign + f.Format(amount)
}
