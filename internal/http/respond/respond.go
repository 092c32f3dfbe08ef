// Package respond holds the JSON plumbing shared by the API handlers.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/MrJamesThe3rd/tally/internal/goal"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/parse"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/session"
	"github.com/MrJamesThe3rd/tally/internal/storage"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error   string          `json:"error"`
	Notices []notify.Notice `json:"notices,omitempty"`
}

// Error writes err with the status code for its kind. Unknown errors are
// logged and reported as a bare 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal error"
	}

	JSON(w, status, errorResponse{Error: msg, Notices: Notices(r)})
}

func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: msg, Notices: Notices(r)})
}

func Status(err error) int {
	var fileErr *importer.FileError

	switch {
	case errors.As(err, &fileErr) && fileErr.TooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, importer.ErrInvalidFile):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, transaction.ErrNotFound),
		errors.Is(err, goal.ErrNotFound),
		errors.Is(err, storage.ErrNotFound),
		errors.Is(err, session.ErrNoSession):
		return http.StatusNotFound
	case errors.Is(err, goal.ErrExceedsTarget):
		return http.StatusConflict
	case errors.Is(err, transaction.ErrValidation),
		errors.Is(err, goal.ErrValidation),
		errors.Is(err, session.ErrValidation),
		errors.Is(err, importer.ErrEmptyInput),
		errors.Is(err, importer.ErrNoValidRows):
		return http.StatusUnprocessableEntity
	case errors.Is(err, importer.ErrInvalidMapping),
		errors.Is(err, importer.ErrReadFailure),
		errors.Is(err, report.ErrUnknownPeriod):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// WithNotices attaches a fresh notify.Recorder to every request.
func WithNotices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := notify.WithRecorder(r.Context(), &notify.Recorder{})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Notices returns what services reported while handling r.
func Notices(r *http.Request) []notify.Notice {
	rec, ok := notify.RecorderFrom(r.Context())
	if !ok {
		return nil
	}

	return rec.Notices()
}

// DateRange reads the optional from and to query parameters.
func DateRange(r *http.Request) (from, to *civil.Date, err error) {
	if from, err = queryDate(r, "from"); err != nil {
		return nil, nil, err
	}

	if to, err = queryDate(r, "to"); err != nil {
		return nil, nil, err
	}

	return from, to, nil
}

func queryDate(r *http.Request, name string) (*civil.Date, error) {
	s := strings.TrimSpace(r.URL.Query().Get(name))
	if s == "" {
		return nil, nil
	}

	d, err := parse.Date(s)
	if err != nil {
		return nil, errors.New("invalid " + name + " date: " + s)
	}

	return &d, nil
}
