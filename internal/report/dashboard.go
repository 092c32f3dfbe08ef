package report

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/goal"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const recentLimit = 5

type GoalSummary struct {
	Goal     *goal.Goal `json:"goal"`
	Progress Progress   `json:"progress"`
}

type Summary struct {
	Totals      Totals                     `json:"totals"`
	SavingsRate decimal.Decimal            `json:"savingsRate"`
	Expenses    []Group                    `json:"expenses"`
	Recent      []*transaction.Transaction `json:"recent"`
	Goals       []GoalSummary              `json:"goals"`
}

// Dashboard builds the overview screen from one snapshot of transactions and goals.
func Dashboard(txs []*transaction.Transaction, goals []*goal.Goal, now time.Time) Summary {
	totals := CalculateTotals(txs)

	recent := transaction.ListFilter{Sort: transaction.SortDateDesc}.Apply(txs)
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return Summary{
		Totals:      totals,
		SavingsRate: SavingsRate(totals),
		Expenses:    ExpenseBreakdown(txs),
		Recent:      recent,
		Goals:       Goals(goals, now),
	}
}

// ExpenseBreakdown groups expenses by category with positive totals, largest first.
func ExpenseBreakdown(txs []*transaction.Transaction) []Group {
	expenses := make([]*transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if tx.IsExpense() {
			expenses = append(expenses, tx)
		}
	}

	groups := GroupByCategory(expenses)
	for i := range groups {
		groups[i].Total = groups[i].Total.Abs()
		groups[i].Transactions = nil
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		return b.Total.Cmp(a.Total)
	})

	return groups
}

func Goals(goals []*goal.Goal, now time.Time) []GoalSummary {
	out := make([]GoalSummary, 0, len(goals))

	for _, g := range goals {
		out = append(out, GoalSummary{Goal: g, Progress: GoalProgress(g, now)})
	}

	return out
}
