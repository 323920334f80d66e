package importcsv_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type importerFunc func(r io.Reader) ([]transaction.CreateParams, error)

func (f importerFunc) Parse(r io.Reader) ([]transaction.CreateParams, error) { return f(r) }

func upload(t *testing.T, h *importcsv.Handler, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "transactions.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	router := chi.NewRouter()
	h.Routes(router)

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateTransactions(gomock.Any(), gomock.Len(1)).
		DoAndReturn(func(_ context.Context, txs []*transaction.Transaction) error {
			txs[0].ID = 7
			return nil
		})

	parse := importerFunc(func(r io.Reader) ([]transaction.CreateParams, error) {
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "raw file", string(data))

		return []transaction.CreateParams{{
			Description: "Lunch",
			Amount:      1200,
			Type:        transaction.TypeExpense,
			Category:    "food",
			Date:        time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		}}, nil
	})

	rec := upload(t, importcsv.NewHandler(parse, transaction.NewService(repo)), "raw file")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Imported     int `json:"imported"`
		Transactions []struct {
			ID     int64 `json:"id"`
			Amount int64 `json:"amount"`
		} `json:"transactions"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.Equal(t, 1, body.Imported)
	require.Len(t, body.Transactions, 1)
	assert.Equal(t, int64(7), body.Transactions[0].ID)
	assert.Equal(t, int64(1200), body.Transactions[0].Amount)
}

func TestHandler_ImportErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
	}{
		{
			name:      "ValidationError",
			err:       &transaction.ValidationError{Field: "amount", Message: "amount is too large", Err: transaction.ErrAmountOutOfRange},
			wantField: "amount",
		},
		{
			name:      "UnreadableFile",
			err:       errors.New("read csv: bare quote"),
			wantField: "file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			parse := importerFunc(func(io.Reader) ([]transaction.CreateParams, error) {
				return nil, tt.err
			})

			svc := transaction.NewService(transaction.NewMockRepository(ctrl))
			rec := upload(t, importcsv.NewHandler(parse, svc), "anything")
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body struct {
				Field string `json:"field"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantField, body.Field)
		})
	}
}
