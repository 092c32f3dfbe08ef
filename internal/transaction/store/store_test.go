package store_test

import (
	"context"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/storage"
	"github.com/MrJamesThe3rd/tally/internal/storage/memory"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	"github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

func tx(id string, date civil.Date, amount string, cat transaction.Category) *transaction.Transaction {
	return &transaction.Transaction{
		ID:          id,
		Date:        date,
		Description: "tx " + id,
		Amount:      decimal.RequireFromString(amount),
		Category:    cat,
	}
}

func seeded(t *testing.T) (*store.Store, storage.Storage) {
	t.Helper()

	kv := memory.New()
	s := store.New(kv)

	require.NoError(t, s.Append(context.Background(), []*transaction.Transaction{
		tx("a", civil.Date{Year: 2023, Month: 4, Day: 15}, "-328.45", transaction.CategoryFood),
		tx("b", civil.Date{Year: 2023, Month: 4, Day: 14}, "8230.00", transaction.CategoryIncome),
		tx("c", civil.Date{Year: 2023, Month: 4, Day: 13}, "-156.78", transaction.CategoryUtilities),
		tx("d", civil.Date{Year: 2023, Month: 4, Day: 10}, "-45.00", transaction.CategoryTransport),
	}))

	return s, kv
}

func ids(txs []*transaction.Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}

	return out
}

func TestStore_List(t *testing.T) {
	food := transaction.CategoryFood
	from := civil.Date{Year: 2023, Month: 4, Day: 13}
	to := civil.Date{Year: 2023, Month: 4, Day: 14}
	min := decimal.RequireFromString("100")
	max := decimal.RequireFromString("400")

	type testCase struct {
		name    string
		filter  transaction.ListFilter
		wantIDs []string
	}

	tests := []testCase{
		{
			name:    "DefaultNewestFirst",
			filter:  transaction.ListFilter{},
			wantIDs: []string{"a", "b", "c", "d"},
		},
		{
			name:    "DateAscending",
			filter:  transaction.ListFilter{Sort: transaction.SortDateAsc},
			wantIDs: []string{"d", "c", "b", "a"},
		},
		{
			name:    "ByCategory",
			filter:  transaction.ListFilter{Category: &food},
			wantIDs: []string{"a"},
		},
		{
			name:    "InclusiveDateRange",
			filter:  transaction.ListFilter{From: &from, To: &to},
			wantIDs: []string{"b", "c"},
		},
		{
			name:    "AbsoluteAmountRange",
			filter:  transaction.ListFilter{MinAmount: &min, MaxAmount: &max, Sort: transaction.SortAmountDesc},
			wantIDs: []string{"a", "c"},
		},
		{
			name:    "AmountAscending",
			filter:  transaction.ListFilter{Sort: transaction.SortAmountAsc},
			wantIDs: []string{"d", "c", "a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := seeded(t)

			got, err := s.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, ids(got))
		})
	}
}

func TestStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s, kv := seeded(t)

	updated := tx("b", civil.Date{Year: 2023, Month: 4, Day: 14}, "9000.00", transaction.CategoryIncome)
	require.NoError(t, s.Update(ctx, updated))

	got, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("9000")))

	require.NoError(t, s.Delete(ctx, "a"))

	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, transaction.ErrNotFound)

	before, err := kv.Get(ctx, storage.KeyTransactions)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(ctx, "missing"), transaction.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, tx("missing", civil.Date{Year: 2023, Month: 1, Day: 1}, "1", transaction.CategoryOther)), transaction.ErrNotFound)

	after, err := kv.Get(ctx, storage.KeyTransactions)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_DecodesStoredShape(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()

	raw := `[
		{"id":"1","date":"2023-04-15","description":"Grocery Shopping","amount":-328.45,"category":"food"},
		{"id":"2","date":"2023-04-14","description":"Monthly Salary","amount":"8230.00","category":"income","notes":"April"}
	]`
	require.NoError(t, kv.Set(ctx, storage.KeyTransactions, []byte(raw)))

	got, err := store.New(kv).List(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Grocery Shopping", got[0].Description)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("-328.45")))
	assert.Empty(t, got[0].Notes)
	assert.Equal(t, "April", got[1].Notes)
}
