package transaction

import (
	"cmp"
	"math"
	"slices"
)

// addCents adds two non-negative amounts, clamping at math.MaxInt64.
func addCents(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}

	return a + b
}

// Summarize folds transactions into income and expense totals.
// Anything that is not income counts as an expense. Totals saturate at
// math.MaxInt64 instead of wrapping.
func Summarize(txs []*Transaction) Summary {
	var s Summary

	for _, tx := range txs {
		if tx.Type == TypeIncome {
			s.TotalIncome = addCents(s.TotalIncome, tx.Amount)
		} else {
			s.TotalExpenses = addCents(s.TotalExpenses, tx.Amount)
		}
	}

	s.Balance = s.TotalIncome - s.TotalExpenses

	return s
}

// Breakdown groups transactions of type t by category, largest total first.
func Breakdown(txs []*Transaction, t Type) []CategoryTotal {
	byCategory := make(map[string]*CategoryTotal)

	for _, tx := range txs {
		if tx.Type != t {
			continue
		}

		ct, ok := byCategory[tx.Category]
		if !ok {
			ct = &CategoryTotal{Category: tx.Category}
			byCategory[tx.Category] = ct
		}

		ct.Total = addCents(ct.Total, tx.Amount)
		ct.Count++
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		totals = append(totals, *ct)
	}

	slices.SortFunc(totals, func(a, b CategoryTotal) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}

		return cmp.Compare(a.Category, b.Category)
	})

	return totals
}
