package notify_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/notify"
)

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	rec := &notify.Recorder{}

	_, ok := rec.Last()
	assert.False(t, ok)

	notify.Success(ctx, rec, "saved")
	notify.Error(ctx, rec, "failed")

	assert.Equal(t, []notify.Notice{
		{Message: "saved", Severity: notify.SeveritySuccess},
		{Message: "failed", Severity: notify.SeverityError},
	}, rec.Notices())

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "failed", last.Message)
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer

	l := notify.Log{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	notify.Error(context.Background(), l, "bad file")

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), `msg="bad file"`)
	assert.Contains(t, buf.String(), "severity=error")
}

func TestMulti(t *testing.T) {
	a, b := &notify.Recorder{}, &notify.Recorder{}

	notify.Info(context.Background(), notify.Multi{a, b, notify.Discard}, "hello")

	assert.Len(t, a.Notices(), 1)
	assert.Len(t, b.Notices(), 1)
}

func TestScoped(t *testing.T) {
	rec := &notify.Recorder{}
	ctx := notify.WithRecorder(context.Background(), rec)

	notify.Success(ctx, notify.Scoped{}, "attached")
	notify.Success(context.Background(), notify.Scoped{}, "dropped")

	assert.Equal(t, []notify.Notice{{Message: "attached", Severity: notify.SeveritySuccess}}, rec.Notices())
}
