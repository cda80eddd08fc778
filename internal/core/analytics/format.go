package analytics

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// All dashboard numbers are rendered en-US regardless of server locale.
var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders a USD amount with cents, e.g. "$1,234.56".
func FormatCurrency(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// FormatWholeCurrency renders a USD amount without cents, e.g. "$1,235".
// Trend cards use this; the revenue summary keeps cents.
func FormatWholeCurrency(v float64) string {
	return printer.Sprintf("$%.0f", v)
}

// FormatCount renders an integer with grouping, e.g. "1,234".
func FormatCount(v float64) string {
	return printer.Sprintf("%d", int64(v))
}
