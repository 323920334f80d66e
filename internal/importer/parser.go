package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

var ErrNoRows = errors.New("file contains no transactions")

// Parser reads transaction CSV files. The header row decides the column
// layout and the delimiter (";" when the header contains one, "," otherwise).
type Parser struct {
	now func() time.Time
}

func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// Parse returns one CreateParams per data row. Every row is validated; the
// first invalid row fails the whole file with an error naming its line.
func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.Comma = detectDelimiter(string(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	cols := indexHeader(rows[0])
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("missing %q column", c)
		}
	}

	var params []transaction.CreateParams

	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}

		line := i + 2 // 1-based, after the header

		pr, err := p.parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		if err := pr.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		params = append(params, pr)
	}

	if len(params) == 0 {
		return nil, ErrNoRows
	}

	return params, nil
}

func (p *Parser) parseRow(cols colIndex, row []string) (transaction.CreateParams, error) {
	amount, err := parseAmount(cols.cell(row, colAmount))
	if err != nil {
		return transaction.CreateParams{}, &transaction.ValidationError{
			Field:   "amount",
			Message: "amount is not a number",
			Err:     transaction.ErrInvalidAmount,
		}
	}

	cents, err := transaction.AmountToCents(amount)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	// Without a type column the sign carries the direction; with one the
	// amount must already be positive.
	txType := transaction.Type(strings.ToLower(cols.cell(row, colType)))
	if txType == "" {
		txType = transaction.TypeIncome
		if cents < 0 {
			txType = transaction.TypeExpense
			cents = -cents
		}
	}

	date := p.now()
	if s := cols.cell(row, colDate); s != "" {
		date, err = transaction.ParseDate(s)
		if err != nil {
			return transaction.CreateParams{}, &transaction.ValidationError{
				Field:   "date",
				Message: err.Error(),
				Err:     err,
			}
		}
	}

	return transaction.CreateParams{
		Description: cols.cell(row, colDescription),
		Amount:      cents,
		Type:        txType,
		Category:    cols.cell(row, colCategory),
		Date:        date,
	}, nil
}

func detectDelimiter(content string) rune {
	header, _, _ := strings.Cut(content, "\n")
	if strings.Contains(header, ";") {
		return ';'
	}

	return ','
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
