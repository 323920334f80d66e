package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
)

type Handler struct {
	svc *export.Service
	now func() time.Time
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

// download buffers the whole file so a failure can still produce a clean 500.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer

	n, err := h.svc.Export(r.Context(), &buf)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(h.now())))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "rows", n, "error", err)
	}
}
