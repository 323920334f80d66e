package transaction

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// AmountToCents converts an amount in major currency units into cents,
// rounding half away from zero. Format examples: 10.5 -> 1050, 0.015 -> 2.
// Amounts whose cent value does not fit in an int64 are rejected.
func AmountToCents(d decimal.Decimal) (int64, error) {
	cents := d.Mul(hundred).Round(0)
	if cents.Abs().GreaterThan(maxCents) {
		return 0, invalid("amount", ErrAmountOutOfRange)
	}

	return cents.IntPart(), nil
}

// CentsToAmount converts cents back into major currency units.
func CentsToAmount(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	time.DateOnly,
}

// ParseDate accepts the textual date forms clients send: RFC 3339 timestamps,
// local timestamps without a zone (read as UTC) and plain calendar dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
