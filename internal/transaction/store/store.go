package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/tally/internal/storage"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Store persists every transaction as one JSON list under storage.KeyTransactions.
type Store struct {
	records *storage.Records[*transaction.Transaction]
}

func New(kv storage.Storage) *Store {
	return &Store{
		records: storage.NewRecords(kv, storage.KeyTransactions, func(tx *transaction.Transaction) string {
			return tx.ID
		}),
	}
}

func (s *Store) Append(ctx context.Context, txs []*transaction.Transaction) error {
	if err := s.records.Append(ctx, txs...); err != nil {
		return fmt.Errorf("appending transactions: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*transaction.Transaction, error) {
	tx, err := s.records.Find(ctx, id)
	if err != nil {
		return nil, mapErr(err, "getting transaction")
	}

	return tx, nil
}

func (s *Store) Update(ctx context.Context, tx *transaction.Transaction) error {
	return mapErr(s.records.Replace(ctx, tx), "updating transaction")
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return mapErr(s.records.Remove(ctx, id), "deleting transaction")
}

func (s *Store) List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	txs, err := s.records.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return filter.Apply(txs), nil
}

func mapErr(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, storage.ErrNotFound) {
		return transaction.ErrNotFound
	}

	return fmt.Errorf("%s: %w", op, err)
}
