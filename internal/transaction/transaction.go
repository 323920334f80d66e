package transaction

import (
	"time"
)

// Type represents the direction of a transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single recorded income or expense.
// It is immutable once created; the store owns its lifecycle.
type Transaction struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"` // Amount in cents, never negative
	Type        Type      `json:"type"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
}

// Summary is the derived aggregate over a set of transactions. It is never persisted.
type Summary struct {
	TotalIncome   int64 `json:"totalIncome"`
	TotalExpenses int64 `json:"totalExpenses"`
	Balance       int64 `json:"balance"`
}

// CategoryTotal is the per-category aggregate of one transaction type.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
	Count    int    `json:"count"`
}

var suggestedCategories = map[Type][]string{
	TypeIncome:  {"salary", "freelance", "investment", "other"},
	TypeExpense: {"food", "shopping", "transport", "utilities", "entertainment", "health", "other"},
}

// SuggestedCategories returns the category labels offered to users for the
// given type. They are hints only: any category string is accepted on create.
func SuggestedCategories(t Type) []string {
	return append([]string(nil), suggestedCategories[t]...)
}
