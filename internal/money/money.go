// Package money formats dollar amounts for user-facing score details.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Format renders an amount as a dollar string with thousands separators,
// e.g. 12500 -> "$12,500". Fractional cents are dropped; the questionnaire
// collects whole-dollar amounts.
func Format(amount float64) string {
	return printer.Sprintf("$%d", int64(amount))
}
