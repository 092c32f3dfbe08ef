package goal

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/goal"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

type Handler struct {
	goals   *goal.Service
	reports *report.Service
	now     func() time.Time
}

func NewHandler(goals *goal.Service, reports *report.Service) *Handler {
	return &Handler{goals: goals, reports: reports, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/contributions", h.contribute)
}

type goalResponse struct {
	*goal.Goal
	Progress report.Progress `json:"progress"`
	Notices  []notify.Notice `json:"notices,omitempty"`
}

func (h *Handler) toResponse(r *http.Request, g *goal.Goal) goalResponse {
	return goalResponse{Goal: g, Progress: report.GoalProgress(g, h.now()), Notices: respond.Notices(r)}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	goals, err := h.reports.GoalProgress(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, goals)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req goal.Params
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	g, err := h.goals.Create(r.Context(), req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, h.toResponse(r, g))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	g, err := h.goals.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, h.toResponse(r, g))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req goal.Params
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	g, err := h.goals.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, h.toResponse(r, g))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.goals.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type contributionResponse struct {
	*goal.Contribution
	Progress report.Progress `json:"progress"`
	Notices  []notify.Notice `json:"notices,omitempty"`
}

type overfundResponse struct {
	Error  string          `json:"error"`
	Amount decimal.Decimal `json:"amount"`
	Excess decimal.Decimal `json:"excess"`
}

func (h *Handler) contribute(w http.ResponseWriter, r *http.Request) {
	var req goal.ContributeParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	c, err := h.goals.Contribute(r.Context(), chi.URLParam(r, "id"), req)

	var exceeds *goal.ExceedsTargetError
	if errors.As(err, &exceeds) {
		respond.JSON(w, http.StatusConflict, overfundResponse{
			Error:  exceeds.Error(),
			Amount: exceeds.Amount,
			Excess: exceeds.Excess,
		})

		return
	}

	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, contributionResponse{
		Contribution: c,
		Progress:     report.GoalProgress(c.Goal, h.now()),
		Notices:      respond.Notices(r),
	})
}
