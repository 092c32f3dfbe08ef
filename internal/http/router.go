package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/http/export"
	"github.com/MrJamesThe3rd/tally/internal/http/goal"
	"github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	"github.com/MrJamesThe3rd/tally/internal/http/report"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/http/session"
	"github.com/MrJamesThe3rd/tally/internal/http/transaction"
)

type Options struct {
	Timeout        time.Duration
	AllowedOrigins []string
}

// New mounts the v1 API. Everything except /session requires a bearer token.
func New(a *app.App, opts Options) http.Handler {
	var (
		sessionV1      = session.NewHandler(a.Sessions)
		transactionsV1 = transaction.NewHandler(a.Transactions)
		importV1       = importcsv.NewHandler(a.Imports)
		goalsV1        = goal.NewHandler(a.Goals, a.Reports)
		reportsV1      = report.NewHandler(a.Reports)
		exportV1       = export.NewHandler(a.Exports, a.Transactions)
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))
	router.Use(respond.WithNotices)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			sessionV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(sessionV1.Require)

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				transactionsV1.Routes(r)
			})

			r.Route("/import", importV1.Routes)

			r.Route("/goals", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				goalsV1.Routes(r)
			})

			r.Route("/reports", reportsV1.Routes)
			r.Route("/export", exportV1.Routes)
		})
	})

	return router
}
