package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/form"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/storage"
	"github.com/MrJamesThe3rd/tally/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	Append(ctx context.Context, txs []*Transaction) error
	Get(ctx context.Context, id string) (*Transaction, error)
	Update(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*Transaction, error)
}

type Service struct {
	repo     Repository
	notifier notify.Notifier
}

func NewService(repo Repository, notifier notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// CreateParams is what a user enters by hand. Amount is a magnitude; Type decides the sign.
type CreateParams struct {
	Date        civil.Date      `json:"date" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Type        Type            `json:"type" validate:"oneof=income expense"`
	Category    Category        `json:"category" validate:"oneof=food transport utilities entertainment income savings other"`
	Notes       string          `json:"notes"`
}

func (p CreateParams) build(id string) (*Transaction, error) {
	p.Description = strings.TrimSpace(p.Description)
	p.Notes = strings.TrimSpace(p.Notes)

	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	amount := p.Amount
	if p.Type == TypeExpense {
		amount = amount.Neg()
	}

	return &Transaction{
		ID:          id,
		Date:        p.Date,
		Description: p.Description,
		Amount:      amount,
		Category:    p.Category,
		Notes:       p.Notes,
	}, nil
}

// ParamsFrom fills a form with an existing transaction, splitting the sign back into a type.
func ParamsFrom(tx *Transaction) CreateParams {
	return CreateParams{
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      tx.Amount.Abs(),
		Type:        tx.Type(),
		Category:    tx.Category,
		Notes:       tx.Notes,
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx, err := params.build(storage.NewID())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Append(ctx, []*Transaction{tx}); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	notify.Success(ctx, s.notifier, "Transaction saved successfully!")

	return tx, nil
}

// Update replaces every mutable field of the transaction with id.
func (s *Service) Update(ctx context.Context, id string, params CreateParams) (*Transaction, error) {
	tx, err := params.build(id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, tx); err != nil {
		s.notFound(ctx, err)
		return nil, fmt.Errorf("updating transaction %s: %w", id, err)
	}

	notify.Success(ctx, s.notifier, "Transaction updated successfully!")

	return tx, nil
}

func (s *Service) Submit(ctx context.Context, mode form.Mode, params CreateParams) (*Transaction, error) {
	if mode.IsEditing() {
		return s.Update(ctx, mode.ID(), params)
	}

	return s.Create(ctx, params)
}

func (s *Service) Get(ctx context.Context, id string) (*Transaction, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.notFound(ctx, err)
		return fmt.Errorf("deleting transaction %s: %w", id, err)
	}

	notify.Success(ctx, s.notifier, "Transaction deleted successfully!")

	return nil
}

func (s *Service) notFound(ctx context.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		notify.Error(ctx, s.notifier, "Transaction not found.")
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.List(ctx, filter)
}

// AppendBatch stores already built transactions in a single write.
func (s *Service) AppendBatch(ctx context.Context, txs []*Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	if err := s.repo.Append(ctx, txs); err != nil {
		return fmt.Errorf("appending %d transactions: %w", len(txs), err)
	}

	return nil
}
