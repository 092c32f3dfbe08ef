package session

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/session"
)

type Handler struct {
	svc *session.Service
}

func NewHandler(svc *session.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.login)
	r.Get("/", h.current)
	r.Delete("/", h.logout)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req session.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	token, err := h.svc.Login(r.Context(), req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, token)
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Current(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, sess)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Require rejects requests without a valid bearer token.
func (h *Handler) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			return
		}

		if _, err := h.svc.Verify(strings.TrimSpace(raw)); err != nil {
			respond.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
