package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Handler struct {
	svc      *transaction.Service
	validate *validator.Validate
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc, validate: newValidator()}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/summary", h.summary)
	r.Get("/breakdown", h.breakdown)
	r.Get("/categories", h.categories)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.List(r.Context())
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, fieldError(err))
		return
	}

	params, err := req.params()
	if err != nil {
		writeValidationError(w, r, err)
		return
	}

	tx, err := h.svc.Create(r.Context(), params)
	if err != nil {
		writeValidationError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid ID", "id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Internal(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSummaryResponse(s))
}

func (h *Handler) breakdown(w http.ResponseWriter, r *http.Request) {
	txType := transaction.TypeExpense
	if s := r.URL.Query().Get("type"); s != "" {
		txType = transaction.Type(s)
	}

	totals, err := h.svc.Breakdown(r.Context(), txType)
	if err != nil {
		writeValidationError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toBreakdownResponse(totals))
}

func (h *Handler) categories(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, categoriesResponse{
		Income:  transaction.SuggestedCategories(transaction.TypeIncome),
		Expense: transaction.SuggestedCategories(transaction.TypeExpense),
	})
}

// writeValidationError answers 400 for validation failures and 500 otherwise.
func writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *transaction.ValidationError
	if errors.As(err, &verr) {
		respond.Error(w, http.StatusBadRequest, verr.Message, verr.Field)
		return
	}

	respond.Internal(w, r, err)
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var verr *transaction.ValidationError
	if errors.As(err, &verr) {
		respond.Error(w, http.StatusBadRequest, verr.Message, verr.Field)
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		respond.Error(w, http.StatusBadRequest, "invalid value for "+typeErr.Field, typeErr.Field)
		return
	}

	respond.Error(w, http.StatusBadRequest, "invalid request body", "")
}
