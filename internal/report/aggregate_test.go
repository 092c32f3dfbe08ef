package report_test

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleTransactions() []*transaction.Transaction {
	return []*transaction.Transaction{
		{ID: "1", Date: civil.Date{Year: 2023, Month: 4, Day: 15}, Description: "Grocery Shopping", Amount: dec("-328.45"), Category: transaction.CategoryFood},
		{ID: "2", Date: civil.Date{Year: 2023, Month: 4, Day: 14}, Description: "Monthly Salary", Amount: dec("8230.00"), Category: transaction.CategoryIncome},
		{ID: "3", Date: civil.Date{Year: 2023, Month: 4, Day: 13}, Description: "Electric Bill", Amount: dec("-156.78"), Category: transaction.CategoryUtilities},
		{ID: "4", Date: civil.Date{Year: 2023, Month: 4, Day: 10}, Description: "Transportation", Amount: dec("-45.00"), Category: transaction.CategoryTransport},
	}
}

func TestCalculateTotals(t *testing.T) {
	got := report.CalculateTotals(sampleTransactions())

	assert.True(t, got.Income.Equal(dec("8230.00")), "income %s", got.Income)
	assert.True(t, got.Expenses.Equal(dec("530.23")), "expenses %s", got.Expenses)
	assert.True(t, got.Balance.Equal(dec("7699.77")), "balance %s", got.Balance)
}

func TestSavingsRate(t *testing.T) {
	type testCase struct {
		name   string
		totals report.Totals
		want   string
	}

	tests := []testCase{
		{name: "Sample", totals: report.CalculateTotals(sampleTransactions()), want: "93.56"},
		{name: "NoIncome", totals: report.Totals{Expenses: dec("10")}, want: "0"},
		{name: "Overspent", totals: report.Totals{Income: dec("100"), Expenses: dec("150")}, want: "0"},
		{name: "Half", totals: report.Totals{Income: dec("100"), Expenses: dec("50")}, want: "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.SavingsRate(tt.totals)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}
}

func TestGroupByPeriod_MonthSumsToBalance(t *testing.T) {
	txs := sampleTransactions()

	groups := report.GroupByPeriod(txs, report.PeriodMonth)
	require.Len(t, groups, 1)

	assert.Equal(t, "2023-04", groups[0].Key)
	assert.Equal(t, 4, groups[0].Count)
	assert.True(t, groups[0].Total.Equal(dec("7699.77")))
	assert.True(t, groups[0].Total.Equal(report.CalculateTotals(txs).Balance))
}

func TestGroupByPeriod_Keys(t *testing.T) {
	txs := sampleTransactions()

	type testCase struct {
		period   report.Period
		wantKeys []string
	}

	tests := []testCase{
		{period: report.PeriodDay, wantKeys: []string{"2023-04-10", "2023-04-13", "2023-04-14", "2023-04-15"}},
		// 2023-04-10 is a Monday; the 15th is a Saturday in the same week.
		{period: report.PeriodWeek, wantKeys: []string{"2023-04-10"}},
		{period: report.PeriodYear, wantKeys: []string{"2023"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			groups := report.GroupByPeriod(txs, tt.period)

			keys := make([]string, len(groups))
			count := 0

			for i, g := range groups {
				keys[i] = g.Key
				count += g.Count
			}

			assert.Equal(t, tt.wantKeys, keys)
			assert.Equal(t, len(txs), count)
		})
	}
}

func TestPeriodKey_SundayBelongsToPreviousMonday(t *testing.T) {
	sunday := civil.Date{Year: 2023, Month: 4, Day: 16}
	assert.Equal(t, "2023-04-10", report.PeriodKey(sunday, report.PeriodWeek))

	monday := civil.Date{Year: 2023, Month: 1, Day: 2}
	newYearsDay := civil.Date{Year: 2023, Month: 1, Day: 1}
	assert.Equal(t, "2023-01-02", report.PeriodKey(monday, report.PeriodWeek))
	assert.Equal(t, "2022-12-26", report.PeriodKey(newYearsDay, report.PeriodWeek))
}

func TestGroupByCategory(t *testing.T) {
	txs := append(sampleTransactions(), &transaction.Transaction{
		ID: "5", Date: civil.Date{Year: 2023, Month: 4, Day: 16}, Amount: dec("-20"), Category: transaction.CategoryFood,
	})

	groups := report.GroupByCategory(txs)

	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}

	assert.Equal(t, []string{"food", "income", "transport", "utilities"}, keys)
	assert.Equal(t, 2, groups[0].Count)
	assert.True(t, groups[0].Total.Equal(dec("-348.45")))
}

func TestParsePeriod(t *testing.T) {
	p, err := report.ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, report.PeriodMonth, p)

	_, err = report.ParsePeriod("fortnight")
	assert.ErrorIs(t, err, report.ErrUnknownPeriod)
}

func TestFilterByDateRange(t *testing.T) {
	from := civil.Date{Year: 2023, Month: 4, Day: 13}
	to := civil.Date{Year: 2023, Month: 4, Day: 14}

	type testCase struct {
		name    string
		from    *civil.Date
		to      *civil.Date
		wantIDs []string
	}

	tests := []testCase{
		{name: "Unbounded", wantIDs: []string{"1", "2", "3", "4"}},
		{name: "Inclusive", from: &from, to: &to, wantIDs: []string{"2", "3"}},
		{name: "FromOnly", from: &from, wantIDs: []string{"1", "2", "3"}},
		{name: "ToOnly", to: &to, wantIDs: []string{"2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.FilterByDateRange(sampleTransactions(), tt.from, tt.to)

			ids := make([]string, len(got))
			for i, tx := range got {
				ids[i] = tx.ID
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
