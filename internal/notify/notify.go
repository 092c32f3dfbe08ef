// Package notify carries user-facing outcome messages from services to whichever surface shows them.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

type Notice struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

//go:generate mockgen -source=notify.go -destination=notifier_mock.go -package=notify
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, n Notice)

func (f Func) Notify(ctx context.Context, n Notice) { f(ctx, n) }

func Info(ctx context.Context, to Notifier, msg string) {
	to.Notify(ctx, Notice{Message: msg, Severity: SeverityInfo})
}

func Success(ctx context.Context, to Notifier, msg string) {
	to.Notify(ctx, Notice{Message: msg, Severity: SeveritySuccess})
}

func Error(ctx context.Context, to Notifier, msg string) {
	to.Notify(ctx, Notice{Message: msg, Severity: SeverityError})
}

// Discard drops every notice.
var Discard Notifier = Func(func(context.Context, Notice) {})

// Log writes notices to a slog logger. Errors are logged at warn level since
// they describe rejected user input, not faults.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Notify(ctx context.Context, n Notice) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	level := slog.LevelInfo
	if n.Severity == SeverityError {
		level = slog.LevelWarn
	}

	logger.Log(ctx, level, n.Message, "severity", n.Severity)
}

// Recorder keeps every notice in order. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notices = append(r.notices, n)
}

func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice, if any.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.notices) == 0 {
		return Notice{}, false
	}

	return r.notices[len(r.notices)-1], true
}

// Multi fans a notice out to every notifier.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notice) {
	for _, to := range m {
		to.Notify(ctx, n)
	}
}

type recorderKey struct{}

// WithRecorder attaches r to ctx so Scoped can deliver notices raised while serving one request.
func WithRecorder(ctx context.Context, r *Recorder) context.Context {
	return context.WithValue(ctx, recorderKey{}, r)
}

// Scoped forwards notices to the Recorder attached to ctx and drops them otherwise.
type Scoped struct{}

func (Scoped) Notify(ctx context.Context, n Notice) {
	if r, ok := RecorderFrom(ctx); ok {
		r.Notify(ctx, n)
	}
}

func RecorderFrom(ctx context.Context) (*Recorder, bool) {
	r, ok := ctx.Value(recorderKey{}).(*Recorder)
	return r, ok
}
