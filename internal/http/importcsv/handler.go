package importcsv

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const maxUploadSize = 10 << 20

type Handler struct {
	parser importer.Importer
	txSvc  *transaction.Service
}

func NewHandler(parser importer.Importer, txSvc *transaction.Service) *Handler {
	return &Handler{
		parser: parser,
		txSvc:  txSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type transactionResponse struct {
	ID          int64            `json:"id"`
	Description string           `json:"description"`
	Amount      int64            `json:"amount"`
	Type        transaction.Type `json:"type"`
	Category    string           `json:"category"`
	Date        time.Time        `json:"date"`
}

type importResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error(), "")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "file field is required", "file")
		return
	}
	defer file.Close()

	params, err := h.parser.Parse(file)
	if err != nil {
		var verr *transaction.ValidationError
		if errors.As(err, &verr) {
			respond.Error(w, http.StatusBadRequest, err.Error(), verr.Field)
			return
		}

		respond.Error(w, http.StatusBadRequest, err.Error(), "file")

		return
	}

	txs, err := h.txSvc.CreateBatch(r.Context(), params)
	if err != nil {
		var verr *transaction.ValidationError
		if errors.As(err, &verr) {
			respond.Error(w, http.StatusBadRequest, err.Error(), verr.Field)
			return
		}

		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toImportResponse(txs))
}

func toImportResponse(txs []*transaction.Transaction) importResponse {
	responses := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, transactionResponse{
			ID:          tx.ID,
			Description: tx.Description,
			Amount:      tx.Amount,
			Type:        tx.Type,
			Category:    tx.Category,
			Date:        tx.Date,
		})
	}

	return importResponse{
		Imported:     len(txs),
		Transactions: responses,
	}
}
