package transaction

import (
	"time"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type transactionResponse struct {
	ID          int64            `json:"id"`
	Description string           `json:"description"`
	Amount      int64            `json:"amount"`
	Type        transaction.Type `json:"type"`
	Category    string           `json:"category"`
	Date        time.Time        `json:"date"`
}

type summaryResponse struct {
	TotalIncome   int64 `json:"totalIncome"`
	TotalExpenses int64 `json:"totalExpenses"`
	Balance       int64 `json:"balance"`
}

type categoryTotalResponse struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
	Count    int    `json:"count"`
}

type categoriesResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        tx.Type,
		Category:    tx.Category,
		Date:        tx.Date,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

func toSummaryResponse(s transaction.Summary) summaryResponse {
	return summaryResponse{
		TotalIncome:   s.TotalIncome,
		TotalExpenses: s.TotalExpenses,
		Balance:       s.Balance,
	}
}

func toBreakdownResponse(totals []transaction.CategoryTotal) []categoryTotalResponse {
	resp := make([]categoryTotalResponse, len(totals))
	for i, ct := range totals {
		resp[i] = categoryTotalResponse{
			Category: ct.Category,
			Total:    ct.Total,
			Count:    ct.Count,
		}
	}

	return resp
}
