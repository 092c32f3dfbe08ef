package goal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/form"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/storage"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	"github.com/MrJamesThe3rd/tally/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	Append(ctx context.Context, g *Goal) error
	Get(ctx context.Context, id string) (*Goal, error)
	Update(ctx context.Context, g *Goal) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Goal, error)
}

// Ledger records the transaction that mirrors a contribution.
type Ledger interface {
	AppendBatch(ctx context.Context, txs []*transaction.Transaction) error
}

type Service struct {
	repo     Repository
	ledger   Ledger
	notifier notify.Notifier
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides time.Now for creation stamps and contribution dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, ledger Ledger, notifier notify.Notifier, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		ledger:   ledger,
		notifier: notifier,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type Params struct {
	Name         string          `json:"name" validate:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount" validate:"gt=0"`
	TargetDate   *civil.Date     `json:"targetDate"`
	SavedAmount  decimal.Decimal `json:"savedAmount" validate:"gte=0"`
	Notes        string          `json:"notes"`
}

func (p *Params) check() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Notes = strings.TrimSpace(p.Notes)

	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if p.TargetDate != nil && !p.TargetDate.IsValid() {
		return fmt.Errorf("%w: targetDate is invalid", ErrValidation)
	}

	if p.SavedAmount.GreaterThan(p.TargetAmount) {
		return fmt.Errorf("%w: initial contribution cannot be greater than the target amount", ErrValidation)
	}

	return nil
}

// ParamsFrom fills an edit form with the goal's current values.
func ParamsFrom(g *Goal) Params {
	return Params{
		Name:         g.Name,
		TargetAmount: g.TargetAmount,
		TargetDate:   g.TargetDate,
		SavedAmount:  g.SavedAmount,
		Notes:        g.Notes,
	}
}

func (s *Service) Create(ctx context.Context, p Params) (*Goal, error) {
	if err := p.check(); err != nil {
		return nil, err
	}

	g := &Goal{
		ID:           storage.NewID(),
		Name:         p.Name,
		TargetAmount: p.TargetAmount,
		TargetDate:   p.TargetDate,
		SavedAmount:  p.SavedAmount,
		Notes:        p.Notes,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Append(ctx, g); err != nil {
		return nil, fmt.Errorf("creating goal: %w", err)
	}

	notify.Success(ctx, s.notifier, "Savings goal created successfully!")

	return g, nil
}

// Update replaces the mutable fields of goal id. ID and CreatedAt are kept.
func (s *Service) Update(ctx context.Context, id string, p Params) (*Goal, error) {
	if err := p.check(); err != nil {
		return nil, err
	}

	g, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	g.Name = p.Name
	g.TargetAmount = p.TargetAmount
	g.TargetDate = p.TargetDate
	g.SavedAmount = p.SavedAmount
	g.Notes = p.Notes

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, fmt.Errorf("updating goal %s: %w", id, err)
	}

	notify.Success(ctx, s.notifier, "Savings goal updated successfully!")

	return g, nil
}

func (s *Service) Submit(ctx context.Context, mode form.Mode, p Params) (*Goal, error) {
	if mode.IsEditing() {
		return s.Update(ctx, mode.ID(), p)
	}

	return s.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id string) (*Goal, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting goal %s: %w", id, err)
	}

	notify.Success(ctx, s.notifier, "Savings goal deleted successfully!")

	return nil
}

func (s *Service) List(ctx context.Context) ([]*Goal, error) {
	return s.repo.List(ctx)
}

type ContributeParams struct {
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	AllowOverfund bool            `json:"allow_overfund"`
}

type Contribution struct {
	Goal        *Goal                    `json:"goal"`
	Transaction *transaction.Transaction `json:"transaction"`
	Completed   bool                     `json:"completed"`
}

// Contribute adds funds to a goal and records the matching savings expense.
// Overshooting the target fails with *ExceedsTargetError unless p.AllowOverfund is set.
func (s *Service) Contribute(ctx context.Context, id string, p ContributeParams) (*Contribution, error) {
	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	g, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := *g
	total := g.SavedAmount.Add(p.Amount)

	if total.GreaterThan(g.TargetAmount) && !p.AllowOverfund {
		return nil, &ExceedsTargetError{Goal: g, Amount: p.Amount, Excess: total.Sub(g.TargetAmount)}
	}

	g.SavedAmount = total
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, fmt.Errorf("updating goal %s: %w", id, err)
	}

	tx := &transaction.Transaction{
		ID:          storage.NewID(),
		Date:        civil.DateOf(s.now()),
		Description: "Contribution to " + g.Name,
		Amount:      p.Amount.Neg(),
		Category:    transaction.CategorySavings,
		Notes:       "Savings goal contribution",
	}

	if err := s.ledger.AppendBatch(ctx, []*transaction.Transaction{tx}); err != nil {
		if rerr := s.repo.Update(ctx, &previous); rerr != nil {
			slog.Error("failed to restore goal after contribution", "goal_id", id, "error", rerr)
		}

		return nil, fmt.Errorf("recording contribution: %w", err)
	}

	notify.Success(ctx, s.notifier, fmt.Sprintf("Added %s to your %q goal!", p.Amount.StringFixed(2), g.Name))

	c := &Contribution{Goal: g, Transaction: tx, Completed: g.Reached()}
	if c.Completed {
		notify.Success(ctx, s.notifier, fmt.Sprintf("Congratulations! You've reached your %q savings goal!", g.Name))
	}

	return c, nil
}
