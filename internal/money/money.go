// Package money formats integer minor-unit amounts for display.
// Amounts are stored as minor units everywhere; conversion to a
// decimal display string happens only at render time.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// The catalog is Spanish-named and priced in COP; amounts group the
// same way name collation does.
var printer = message.NewPrinter(language.Spanish)

// Format renders a minor-unit amount with its currency code, e.g.
// Format(125000, "COP") == "COP 1.250,00". An empty currency falls
// back to the store default.
func Format(minor int64, currency string) string {
	if currency == "" {
		currency = "COP"
	}
	return printer.Sprintf("%s %.2f", currency, float64(minor)/100)
}
