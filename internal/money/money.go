// Package money formats decimal amounts as localized currency strings.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCode is used when a settings-supplied currency code is not a
// recognized ISO 4217 code.
const DefaultCode = "USD"

var printer = message.NewPrinter(language.English)

// Format renders amount with the symbol of the given currency code,
// falling back to DefaultCode on unrecognized codes.
func Format(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.MustParseISO(DefaultCode)
	}
	f, _ := amount.Float64()
	return printer.Sprintf("%v", currency.NarrowSymbol(unit.Amount(f)))
}
