package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/totals", h.totals)
	r.Get("/categories", h.categories)
	r.Get("/periods", h.periods)
	r.Get("/dashboard", h.dashboard)
}

type totalsResponse struct {
	report.Totals
	SavingsRate string `json:"savingsRate"`
}

func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	from, to, err := respond.DateRange(r)
	if err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	totals, err := h.svc.Totals(r.Context(), from, to)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, totalsResponse{
		Totals:      totals,
		SavingsRate: report.SavingsRate(totals).StringFixed(2),
	})
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	from, to, err := respond.DateRange(r)
	if err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	groups, err := h.svc.Categories(r.Context(), from, to)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, groups)
}

func (h *Handler) periods(w http.ResponseWriter, r *http.Request) {
	period, err := report.ParsePeriod(r.URL.Query().Get("by"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	from, to, err := respond.DateRange(r)
	if err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	groups, err := h.svc.Periods(r.Context(), period, from, to)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, groups)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	from, to, err := respond.DateRange(r)
	if err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	summary, err := h.svc.Dashboard(r.Context(), from, to)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, summary)
}
