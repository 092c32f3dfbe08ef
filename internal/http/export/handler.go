package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Handler struct {
	svc          *export.Service
	transactions *transaction.Service
}

func NewHandler(svc *export.Service, transactions *transaction.Service) *Handler {
	return &Handler{svc: svc, transactions: transactions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
	r.Get("/summary", h.summary)
}

func parseFilter(w http.ResponseWriter, r *http.Request) (transaction.ListFilter, bool) {
	from, to, err := respond.DateRange(r)
	if err != nil {
		respond.BadRequest(w, r, err.Error())
		return transaction.ListFilter{}, false
	}

	return transaction.ListFilter{From: from, To: to, Sort: transaction.SortDateAsc}, true
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if _, err := h.svc.WriteCSV(r.Context(), filter, &buf); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.svc.FileName(filter)))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}

	txs, err := h.transactions.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(export.Summary(txs))); err != nil {
		slog.Error("failed to write summary", "error", err)
	}
}
