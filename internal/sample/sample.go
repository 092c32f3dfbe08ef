// Package sample seeds a fresh store with example data so a first run has something to show.
package sample

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/goal"
	"github.com/MrJamesThe3rd/tally/internal/storage"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func Transactions() []*transaction.Transaction {
	return []*transaction.Transaction{
		{
			ID:          "1",
			Date:        civil.Date{Year: 2023, Month: time.April, Day: 15},
			Description: "Grocery Shopping",
			Amount:      decimal.RequireFromString("-328.45"),
			Category:    transaction.CategoryFood,
		},
		{
			ID:          "2",
			Date:        civil.Date{Year: 2023, Month: time.April, Day: 14},
			Description: "Monthly Salary",
			Amount:      decimal.RequireFromString("8230.00"),
			Category:    transaction.CategoryIncome,
		},
		{
			ID:          "3",
			Date:        civil.Date{Year: 2023, Month: time.April, Day: 13},
			Description: "Electric Bill",
			Amount:      decimal.RequireFromString("-156.78"),
			Category:    transaction.CategoryUtilities,
		},
		{
			ID:          "4",
			Date:        civil.Date{Year: 2023, Month: time.April, Day: 10},
			Description: "Transportation",
			Amount:      decimal.RequireFromString("-45.00"),
			Category:    transaction.CategoryTransport,
		},
	}
}

func Goals() []*goal.Goal {
	return []*goal.Goal{
		{
			ID:           "goal1",
			Name:         "New Laptop",
			TargetAmount: decimal.NewFromInt(10000),
			TargetDate:   &civil.Date{Year: 2023, Month: time.December, Day: 31},
			SavedAmount:  decimal.NewFromInt(6500),
			CreatedAt:    time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "goal2",
			Name:         "Vacation Trip",
			TargetAmount: decimal.NewFromInt(10000),
			TargetDate:   &civil.Date{Year: 2023, Month: time.July, Day: 15},
			SavedAmount:  decimal.NewFromInt(3000),
			CreatedAt:    time.Date(2023, time.February, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "goal3",
			Name:         "Emergency Fund",
			TargetAmount: decimal.NewFromInt(50000),
			SavedAmount:  decimal.NewFromInt(42500),
			CreatedAt:    time.Date(2022, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

// Seed writes the sample lists for every key that has never been written.
// A key holding an empty list counts as written.
func Seed(ctx context.Context, kv storage.Storage) error {
	if err := seedKey(ctx, kv, storage.KeyTransactions, Transactions(), func(tx *transaction.Transaction) string { return tx.ID }); err != nil {
		return err
	}

	return seedKey(ctx, kv, storage.KeyGoals, Goals(), func(g *goal.Goal) string { return g.ID })
}

func seedKey[T any](ctx context.Context, kv storage.Storage, key string, items []T, id func(T) string) error {
	_, err := kv.Get(ctx, key)
	if err == nil {
		return nil
	}

	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("checking %s: %w", key, err)
	}

	if err := storage.NewRecords(kv, key, id).Append(ctx, items...); err != nil {
		return fmt.Errorf("seeding %s: %w", key, err)
	}

	slog.Info("seeded sample data", "key", key, "count", len(items))

	return nil
}
