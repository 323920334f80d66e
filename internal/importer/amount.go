package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads an amount in major units. Either "." or "," may be the
// decimal separator; when both appear the later one is.
// Format examples: "12.50", "12,50", "1,234.56", "1.234,56", "-3", "$4.20".
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-', r == '+':
			return r
		default:
			return -1
		}
	}, s)

	dot := strings.LastIndex(clean, ".")
	comma := strings.LastIndex(clean, ",")

	switch {
	case comma > dot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	default:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return decimal.NewFromString(clean)
}
