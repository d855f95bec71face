package shared

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var groupedPrinter = message.NewPrinter(language.English)

// Amount converts a backend float to a decimal rounded to paisa.
func Amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// FormatRs renders v as "Rs1500.00".
func FormatRs(v decimal.Decimal) string {
	return "Rs" + v.StringFixed(2)
}

// FormatRsSpaced renders v as "Rs 1500.00", the receipt style.
func FormatRsSpaced(v decimal.Decimal) string {
	return "Rs " + v.StringFixed(2)
}

// FormatGrouped renders v with thousands separators and at most two
// fraction digits, e.g. "Rs1,500" or "Rs12,345.5".
func FormatGrouped(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return "Rs" + groupedPrinter.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}

// FormatCount renders a whole number with thousands separators.
func FormatCount(n int) string {
	return groupedPrinter.Sprintf("%d", n)
}
