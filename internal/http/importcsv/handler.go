package importcsv

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/notify"
)

const (
	maxMemory   = 32 << 20
	previewRows = 5
)

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/preview", h.preview)
}

type importResponse struct {
	Imported int             `json:"imported"`
	Skipped  int             `json:"skipped"`
	Notices  []notify.Notice `json:"notices"`
}

type previewResponse struct {
	*importer.Preview
	Notices []notify.Notice `json:"notices,omitempty"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		respond.BadRequest(w, r, "failed to parse form: "+err.Error())
		return
	}

	mapping, err := parseMapping(r)
	if err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, r, "file field is required")
		return
	}
	defer file.Close()

	result, err := h.svc.Import(r.Context(), describe(header), file, mapping)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Imported: len(result.Imported),
		Skipped:  result.Skipped,
		Notices:  respond.Notices(r),
	})
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		respond.BadRequest(w, r, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, r, "file field is required")
		return
	}
	defer file.Close()

	p, err := h.svc.Preview(r.Context(), describe(header), file, previewRows)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, previewResponse{Preview: p, Notices: respond.Notices(r)})
}

func describe(h *multipart.FileHeader) importer.File {
	return importer.File{
		Name:        h.Filename,
		ContentType: h.Header.Get("Content-Type"),
		Size:        h.Size,
	}
}

// parseMapping reads the zero-based *_col form fields. Missing fields keep
// the default Date, Description, Amount, Category order.
func parseMapping(r *http.Request) (importer.Mapping, error) {
	m := importer.DefaultMapping(4)

	fields := []struct {
		name string
		dst  *int
	}{
		{"date_col", &m.Date},
		{"description_col", &m.Description},
		{"amount_col", &m.Amount},
		{"category_col", &m.Category},
	}

	for _, f := range fields {
		s := strings.TrimSpace(r.FormValue(f.name))
		if s == "" {
			continue
		}

		n, err := strconv.Atoi(s)
		if err != nil {
			return m, fmt.Errorf("%s must be a column number, got %q", f.name, s)
		}

		*f.dst = n
	}

	return m, nil
}
