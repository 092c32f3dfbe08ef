// Package report computes totals, groupings and goal progress from snapshots of stored data.
package report

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

var hundred = decimal.NewFromInt(100)

type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// CalculateTotals sums positive amounts into income and the magnitude of negative ones into expenses.
func CalculateTotals(txs []*transaction.Transaction) Totals {
	var t Totals

	for _, tx := range txs {
		if tx.Amount.IsPositive() {
			t.Income = t.Income.Add(tx.Amount)
		} else {
			t.Expenses = t.Expenses.Add(tx.Amount.Abs())
		}
	}

	t.Balance = t.Income.Sub(t.Expenses)

	return t
}

// SavingsRate is the share of income left after expenses, as a percentage
// rounded to two places. It never goes below zero.
func SavingsRate(t Totals) decimal.Decimal {
	if !t.Income.IsPositive() {
		return decimal.Zero
	}

	rate := t.Income.Sub(t.Expenses).Div(t.Income).Mul(hundred)
	if rate.IsNegative() {
		return decimal.Zero
	}

	return rate.Round(2)
}

type Group struct {
	Key          string                     `json:"key"`
	Total        decimal.Decimal            `json:"total"`
	Count        int                        `json:"count"`
	Transactions []*transaction.Transaction `json:"transactions,omitempty"`
}

type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

var ErrUnknownPeriod = errors.New("unknown period")

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	case "":
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
	}
}

// PeriodKey returns the bucket a date falls in. Weeks are keyed by their Monday.
func PeriodKey(d civil.Date, p Period) string {
	switch p {
	case PeriodWeek:
		offset := (int(d.In(time.UTC).Weekday()) + 6) % 7
		return d.AddDays(-offset).String()
	case PeriodMonth:
		return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
	case PeriodYear:
		return fmt.Sprintf("%04d", d.Year)
	default:
		return d.String()
	}
}

func GroupByCategory(txs []*transaction.Transaction) []Group {
	return groupBy(txs, func(tx *transaction.Transaction) string { return string(tx.Category) })
}

func GroupByPeriod(txs []*transaction.Transaction, p Period) []Group {
	return groupBy(txs, func(tx *transaction.Transaction) string { return PeriodKey(tx.Date, p) })
}

func groupBy(txs []*transaction.Transaction, key func(*transaction.Transaction) string) []Group {
	index := make(map[string]int)

	var groups []Group

	for _, tx := range txs {
		k := key(tx)

		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}

		g := &groups[i]
		g.Total = g.Total.Add(tx.Amount)
		g.Count++
		g.Transactions = append(g.Transactions, tx)
	}

	slices.SortFunc(groups, func(a, b Group) int {
		return strings.Compare(a.Key, b.Key)
	})

	return groups
}

// FilterByDateRange keeps transactions within [from, to]. A nil bound is open.
func FilterByDateRange(txs []*transaction.Transaction, from, to *civil.Date) []*transaction.Transaction {
	if from == nil && to == nil {
		return txs
	}

	out := make([]*transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if from != nil && tx.Date.Before(*from) {
			continue
		}

		if to != nil && tx.Date.After(*to) {
			continue
		}

		out = append(out, tx)
	}

	return out
}
