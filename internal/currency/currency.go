// Package currency formats decimal amounts with ISO 4217 currency rules.
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Default is used when settings carry no currency.
const Default = money.BRL

// lookup returns the currency definition for code. Unknown codes get
// go-money's generic two-decimal fallback.
func lookup(code string) money.Currency {
	if code == "" {
		code = Default
	}
	// money.New never returns a nil currency.
	return *money.New(0, code).Currency()
}

// Known reports whether code is an ISO 4217 currency.
func Known(code string) bool {
	return money.GetCurrency(code) != nil
}

// Format renders amount using the grapheme, separators and precision of code,
// e.g. R$1.234,56 for BRL.
func Format(amount decimal.Decimal, code string) string {
	cur := lookup(code)
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// FormatSigned is Format with a leading + for positive amounts.
func FormatSigned(amount decimal.Decimal, code string) string {
	if amount.IsPositive() {
		return "+" + Format(amount, code)
	}
	return Format(amount, code)
}

// Round rounds amount to the minor unit of code.
func Round(amount decimal.Decimal, code string) decimal.Decimal {
	return amount.Round(int32(lookup(code).Fraction))
}
