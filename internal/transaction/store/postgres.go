package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// PostgresStore is the Repository backed by the transactions table.
// Identifiers come from the table's BIGSERIAL sequence.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, description, amount, type, category, date
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	if err := s.Scan(&tx.ID, &tx.Description, &tx.Amount, &typeStr, &tx.Category, &tx.Date); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)

	return &tx, nil
}

const insertTransaction = `
	INSERT INTO transactions (description, amount, type, category, date)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
`

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insert(ctx context.Context, q queryer, tx *transaction.Transaction) error {
	return q.QueryRowContext(ctx, insertTransaction,
		tx.Description,
		tx.Amount,
		tx.Type,
		tx.Category,
		tx.Date,
	).Scan(&tx.ID)
}

func (s *PostgresStore) ListTransactions(ctx context.Context) ([]*transaction.Transaction, error) {
	query := `SELECT id, description, amount, type, category, date FROM transactions`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	txs := []*transaction.Transaction{}

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *PostgresStore) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	if err := insert(ctx, s.db, tx); err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

// CreateTransactions inserts txs inside a single database transaction.
func (s *PostgresStore) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, tx := range txs {
		if err := insert(ctx, dbTx, tx); err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *PostgresStore) DeleteTransaction(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}
