package inr

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var enIN = message.NewPrinter(language.MustParse("en-IN"))

// Format renders an amount with the rupee symbol, Indian digit grouping
// and exactly two decimal places, e.g. ₹12,34,567.80. Equal inputs always
// render identically.
func Format(amount float64) string {
	return "₹" + FormatPlain(amount)
}

// FormatPlain is Format without the currency symbol, for surfaces that
// cannot render ₹ (the PDF core fonts are cp1252).
func FormatPlain(amount float64) string {
	return enIN.Sprintf("%v", number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
