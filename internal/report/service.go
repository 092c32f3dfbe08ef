package report

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/MrJamesThe3rd/tally/internal/goal"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type GoalLister interface {
	List(ctx context.Context) ([]*goal.Goal, error)
}

// Service loads snapshots and runs the aggregations over them.
type Service struct {
	txs   TransactionLister
	goals GoalLister
	now   func() time.Time
}

func NewService(txs TransactionLister, goals GoalLister) *Service {
	return &Service{txs: txs, goals: goals, now: time.Now}
}

// WithClock returns a copy of s that reads the time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	c := *s
	c.now = now

	return &c
}

func (s *Service) transactions(ctx context.Context, from, to *civil.Date) ([]*transaction.Transaction, error) {
	txs, err := s.txs.List(ctx, transaction.ListFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	return txs, nil
}

func (s *Service) Totals(ctx context.Context, from, to *civil.Date) (Totals, error) {
	txs, err := s.transactions(ctx, from, to)
	if err != nil {
		return Totals{}, err
	}

	return CalculateTotals(txs), nil
}

func (s *Service) Categories(ctx context.Context, from, to *civil.Date) ([]Group, error) {
	txs, err := s.transactions(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return GroupByCategory(txs), nil
}

func (s *Service) Periods(ctx context.Context, p Period, from, to *civil.Date) ([]Group, error) {
	txs, err := s.transactions(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return GroupByPeriod(txs, p), nil
}

func (s *Service) GoalProgress(ctx context.Context) ([]GoalSummary, error) {
	goals, err := s.goals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}

	return Goals(goals, s.now()), nil
}

// Dashboard summarises transactions in [from, to] alongside every goal.
func (s *Service) Dashboard(ctx context.Context, from, to *civil.Date) (*Summary, error) {
	txs, err := s.transactions(ctx, from, to)
	if err != nil {
		return nil, err
	}

	goals, err := s.goals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}

	summary := Dashboard(txs, goals, s.now())

	return &summary, nil
}
