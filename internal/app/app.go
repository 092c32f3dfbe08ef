// Package app opens storage and wires the services shared by the API and the TUI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/goal"
	goalStore "github.com/MrJamesThe3rd/tally/internal/goal/store"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/sample"
	"github.com/MrJamesThe3rd/tally/internal/session"
	"github.com/MrJamesThe3rd/tally/internal/storage"
	"github.com/MrJamesThe3rd/tally/internal/storage/memory"
	"github.com/MrJamesThe3rd/tally/internal/storage/postgres"
	"github.com/MrJamesThe3rd/tally/internal/storage/sqlite"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	txStore "github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

type App struct {
	Storage      storage.Storage
	Transactions *transaction.Service
	Goals        *goal.Service
	Imports      *importer.Service
	Reports      *report.Service
	Exports      *export.Service
	Sessions     *session.Service

	close func() error
}

// New opens the configured storage and builds every service on top of it.
// Notices are logged and also delivered to any recorder attached to the request context.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	kv, closeFn, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Storage.SeedSample {
		if err := sample.Seed(ctx, kv); err != nil {
			closeFn()
			return nil, fmt.Errorf("seeding sample data: %w", err)
		}
	}

	a := Wire(kv, cfg)
	a.close = closeFn

	return a, nil
}

// Wire builds the services over an already opened store.
func Wire(kv storage.Storage, cfg *config.Config) *App {
	notifier := notify.Multi{notify.Log{}, notify.Scoped{}}

	var (
		transactionService = transaction.NewService(txStore.New(kv), notifier)
		goalService        = goal.NewService(goalStore.New(kv), transactionService, notifier)
	)

	return &App{
		Storage:      kv,
		Transactions: transactionService,
		Goals:        goalService,
		Imports:      importer.NewService(transactionService, notifier, cfg.Import.MaxBytes),
		Reports:      report.NewService(transactionService, goalService),
		Exports:      export.NewService(transactionService),
		Sessions:     session.NewService(kv, cfg.Session.Secret, cfg.Session.TTL),
		close:        func() error { return nil },
	}
}

func (a *App) Close() error {
	return a.close()
}

// OpenStorage returns the key-value store selected by STORAGE_DRIVER and a func that releases it.
func OpenStorage(ctx context.Context, cfg *config.Config) (storage.Storage, func() error, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return memory.New(), func() error { return nil }, nil

	case "sqlite":
		s, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}

		slog.Info("using sqlite storage", "path", cfg.Storage.SQLitePath)

		return s, s.Close, nil

	case "postgres":
		db, err := database.New(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		s, err := postgres.New(ctx, db)
		if err != nil {
			return nil, nil, errors.Join(err, db.Close())
		}

		slog.Info("using postgres storage", "host", cfg.DB.Host, "database", cfg.DB.Name)

		return s, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
