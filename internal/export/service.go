package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Header is the column layout of exported files. The importer accepts it as is.
var Header = []string{"id", "date", "description", "category", "type", "amount"}

// Service exports the transaction ledger as CSV.
type Service struct {
	transactions *transaction.Service
}

// NewService creates a new export Service.
func NewService(txService *transaction.Service) *Service {
	return &Service{transactions: txService}
}

// Export writes every transaction, newest first, to w.
// It returns the number of rows written.
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	txs, err := s.transactions.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	if err := WriteCSV(w, txs); err != nil {
		return 0, err
	}

	return len(txs), nil
}

// WriteCSV encodes txs with amounts in major units and two decimals.
func WriteCSV(w io.Writer, txs []*transaction.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		record := []string{
			strconv.FormatInt(tx.ID, 10),
			tx.Date.UTC().Format(time.RFC3339),
			tx.Description,
			tx.Category,
			string(tx.Type),
			transaction.CentsToAmount(tx.Amount).StringFixed(2),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing transaction %d: %w", tx.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// Filename is the suggested download name for an export taken at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("transactions_%s.csv", t.Format("20060102"))
}
