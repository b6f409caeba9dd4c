package invoicepdf

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const maxFractionDigits = 3

// FormatNumber renders v with en-US digit grouping and at most three
// fraction digits, rounding half away from zero: 150000 -> "150,000",
// 1234.5 -> "1,234.5", 0.1235 -> "0.124".
func FormatNumber(v float64) string {
	return formatDecimal(decimal.NewFromFloat(v))
}

// FormatAmount is FormatNumber followed by the currency code.
func FormatAmount(v float64, currency string) string {
	return FormatNumber(v) + " " + currency
}

func formatDecimal(d decimal.Decimal) string {
	d = d.Round(maxFractionDigits)
	neg := d.IsNegative()
	intPart, frac, _ := strings.Cut(d.Abs().String(), ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// lineTotal multiplies in decimal so 3 x 0.1 prints as 0.3.
func lineTotal(quantity, unitPrice float64) decimal.Decimal {
	return decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(unitPrice))
}

// formatQuantity prints the shortest representation: 1, 2.5, 0.25.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// ExpandDescription fills the {{month}} and {{year}} placeholders of a
// contract description with the English month name and four-digit year of
// date.
func ExpandDescription(template string, date time.Time) string {
	return strings.NewReplacer(
		"{{month}}", date.Month().String(),
		"{{year}}", strconv.Itoa(date.Year()),
	).Replace(template)
}
