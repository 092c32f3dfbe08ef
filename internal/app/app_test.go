package app_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()

	var cfg config.Config
	cfg.Storage.Driver = driver
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "tally.db")
	cfg.Storage.SeedSample = true
	cfg.Session.Secret = "secret"

	return &cfg
}

func TestNew_SeedsSampleData(t *testing.T) {
	for _, driver := range []string{"memory", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()

			a, err := app.New(ctx, testConfig(t, driver))
			require.NoError(t, err)
			t.Cleanup(func() { a.Close() })

			txs, err := a.Transactions.List(ctx, transaction.ListFilter{})
			require.NoError(t, err)
			assert.Len(t, txs, 4)

			summary, err := a.Reports.Dashboard(ctx, nil, nil)
			require.NoError(t, err)
			assert.Len(t, summary.Goals, 3)
		})
	}
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, _, err := app.OpenStorage(context.Background(), testConfig(t, "redis"))
	assert.Error(t, err)
}
