package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/goal"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/session"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func TestStatus(t *testing.T) {
	type args struct {
		err error
	}

	type testCase struct {
		name string
		args args
		want int
	}

	tests := []testCase{
		{
			name: "transaction not found",
			args: args{err: fmt.Errorf("loading: %w", transaction.ErrNotFound)},
			want: http.StatusNotFound,
		},
		{
			name: "goal not found",
			args: args{err: goal.ErrNotFound},
			want: http.StatusNotFound,
		},
		{
			name: "validation",
			args: args{err: fmt.Errorf("%w: name is required", goal.ErrValidation)},
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "overfund",
			args: args{err: &goal.ExceedsTargetError{Goal: &goal.Goal{Name: "Car"}}},
			want: http.StatusConflict,
		},
		{
			name: "file too large",
			args: args{err: &importer.FileError{Reason: "too big", TooLarge: true}},
			want: http.StatusRequestEntityTooLarge,
		},
		{
			name: "not a csv",
			args: args{err: &importer.FileError{Reason: "Please upload a valid CSV file."}},
			want: http.StatusUnsupportedMediaType,
		},
		{
			name: "no valid rows",
			args: args{err: importer.ErrNoValidRows},
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown period",
			args: args{err: fmt.Errorf("%w: %q", report.ErrUnknownPeriod, "decade")},
			want: http.StatusBadRequest,
		},
		{
			name: "bad token",
			args: args{err: session.ErrInvalidToken},
			want: http.StatusUnauthorized,
		},
		{
			name: "anything else",
			args: args{err: errors.New("disk on fire")},
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, respond.Status(tt.args.err))
		})
	}
}

func TestError_HidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(w, r, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
}

func TestWithNotices(t *testing.T) {
	var got []notify.Notice

	h := respond.WithNotices(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		notify.Scoped{}.Notify(r.Context(), notify.Notice{Message: "saved", Severity: notify.SeveritySuccess})
		got = respond.Notices(r)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, got, 1)
	assert.Equal(t, "saved", got[0].Message)
}

func TestDateRange(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?from=2024-01-01&to=1/31/2024", nil)

	from, to, err := respond.DateRange(r)
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 1}, *from)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 31}, *to)

	r = httptest.NewRequest(http.MethodGet, "/?from=2024-13-45", nil)
	_, _, err = respond.DateRange(r)
	assert.Error(t, err)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	from, to, err = respond.DateRange(r)
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)
}
