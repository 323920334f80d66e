package transaction_test

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func TestAmountToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{in: "10.50", want: 1050},
		{in: "5000", want: 500000},
		{in: "12.345", want: 1235},
		{in: "12.344", want: 1234},
		{in: "0.004", want: 0},
		{in: "-3.5", want: -350},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := transaction.AmountToCents(decimal.RequireFromString(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmountToCents_OutOfRange(t *testing.T) {
	tests := []string{
		"-92233720368547759.08",
		"184467440737095520",
		"92233720368547758.08",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := transaction.AmountToCents(decimal.RequireFromString(in))
			require.ErrorIs(t, err, transaction.ErrAmountOutOfRange)

			var verr *transaction.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "amount", verr.Field)
		})
	}

	got, err := transaction.AmountToCents(decimal.RequireFromString("92233720368547758.07"))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got)
}

func TestCentsToAmount(t *testing.T) {
	assert.Equal(t, "10.50", transaction.CentsToAmount(1050).StringFixed(2))
	assert.Equal(t, "0.07", transaction.CentsToAmount(7).StringFixed(2))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "2024-02-29", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{in: "2024-02-29T10:30:00Z", want: time.Date(2024, 2, 29, 10, 30, 0, 0, time.UTC)},
		{in: "2024-02-29T10:30:00.250Z", want: time.Date(2024, 2, 29, 10, 30, 0, 250_000_000, time.UTC)},
		{in: "2024-02-29T10:30:00", want: time.Date(2024, 2, 29, 10, 30, 0, 0, time.UTC)},
		{in: " 2024-02-29 10:30:00 ", want: time.Date(2024, 2, 29, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := transaction.ParseDate(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, err := transaction.ParseDate("yesterday")
	assert.ErrorIs(t, err, transaction.ErrInvalidDate)
}
