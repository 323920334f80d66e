package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
	"github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

var columns = []string{"id", "description", "amount", "type", "category", "date"}

func TestPostgresStore_ListTransactions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, description, amount, type, category, date FROM transactions").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "Paycheck", 500000, "income", "salary", date).
			AddRow(2, "Lunch", 1200, "expense", "food", date))

	txs, err := store.NewPostgres(db).ListTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, &transaction.Transaction{
		ID:          2,
		Description: "Lunch",
		Amount:      1200,
		Type:        transaction.TypeExpense,
		Category:    "food",
		Date:        date,
	}, txs[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListTransactions_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM transactions").WillReturnRows(sqlmock.NewRows(columns))

	txs, err := store.NewPostgres(db).ListTransactions(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, txs)
	assert.Empty(t, txs)
}

func TestPostgresStore_CreateTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tx := newTx("Lunch", 1200, transaction.TypeExpense, "food")

	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs("Lunch", int64(1200), "expense", "food", tx.Date).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(41))

	require.NoError(t, store.NewPostgres(db).CreateTransaction(context.Background(), tx))
	assert.Equal(t, int64(41), tx.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateTransactions(t *testing.T) {
	t.Run("Commit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		txs := []*transaction.Transaction{
			newTx("A", 100, transaction.TypeExpense, "food"),
			newTx("B", 200, transaction.TypeIncome, "other"),
		}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO transactions").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
		mock.ExpectQuery("INSERT INTO transactions").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))
		mock.ExpectCommit()

		require.NoError(t, store.NewPostgres(db).CreateTransactions(context.Background(), txs))
		assert.Equal(t, int64(5), txs[0].ID)
		assert.Equal(t, int64(6), txs[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO transactions").WillReturnError(errors.New("check violation"))
		mock.ExpectRollback()

		err = store.NewPostgres(db).CreateTransactions(context.Background(), []*transaction.Transaction{
			newTx("A", 100, transaction.TypeExpense, "food"),
		})
		assert.ErrorContains(t, err, "creating transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_DeleteTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM transactions WHERE id = \\$1").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.NewPostgres(db).DeleteTransaction(context.Background(), 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}
