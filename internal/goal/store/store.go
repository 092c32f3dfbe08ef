package store

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/MrJamesThe3rd/tally/internal/goal"
	"github.com/MrJamesThe3rd/tally/internal/storage"
)

type Store struct {
	records *storage.Records[*goal.Goal]
}

func New(kv storage.Storage) *Store {
	return &Store{
		records: storage.NewRecords(kv, storage.KeyGoals, func(g *goal.Goal) string { return g.ID }),
	}
}

func (s *Store) Append(ctx context.Context, g *goal.Goal) error {
	if err := s.records.Append(ctx, g); err != nil {
		return fmt.Errorf("appending goal: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*goal.Goal, error) {
	g, err := s.records.Find(ctx, id)
	if err != nil {
		return nil, mapErr(err, "getting goal")
	}

	return g, nil
}

func (s *Store) Update(ctx context.Context, g *goal.Goal) error {
	return mapErr(s.records.Replace(ctx, g), "updating goal")
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return mapErr(s.records.Remove(ctx, id), "deleting goal")
}

// List returns goals newest first.
func (s *Store) List(ctx context.Context) ([]*goal.Goal, error) {
	goals, err := s.records.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}

	slices.SortStableFunc(goals, func(a, b *goal.Goal) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return goals, nil
}

func mapErr(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, storage.ErrNotFound) {
		return goal.ErrNotFound
	}

	return fmt.Errorf("%s: %w", op, err)
}
