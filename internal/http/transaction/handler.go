package transaction

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req transaction.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	tx, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := toResponse(tx)
	resp.Notices = respond.Notices(r)

	respond.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req transaction.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	tx, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := toResponse(tx)
	resp.Notices = respond.Notices(r)

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseFilter(r *http.Request) (transaction.ListFilter, error) {
	q := r.URL.Query()

	var filter transaction.ListFilter

	if s := strings.TrimSpace(q.Get("category")); s != "" {
		c := transaction.Category(strings.ToLower(s))
		if !c.Valid() {
			return filter, fmt.Errorf("unknown category: %s", s)
		}

		filter.Category = &c
	}

	from, to, err := respond.DateRange(r)
	if err != nil {
		return filter, err
	}

	filter.From, filter.To = from, to

	if filter.MinAmount, err = queryAmount(q.Get("min"), "min"); err != nil {
		return filter, err
	}

	if filter.MaxAmount, err = queryAmount(q.Get("max"), "max"); err != nil {
		return filter, err
	}

	filter.Sort = transaction.SortOrder(q.Get("sort"))
	if !filter.Sort.Valid() {
		return filter, fmt.Errorf("unknown sort order: %s", filter.Sort)
	}

	return filter, nil
}

func queryAmount(s, name string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s amount: %s", name, s)
	}

	return &d, nil
}
