package storage

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
)

// Fixed keys for the persisted lists.
const (
	KeyTransactions = "transactions"
	KeyGoals        = "goals"
	KeySession      = "session"
)

var ErrNotFound = errors.New("not found")

// Storage is a flat key-value store holding one serialized document per key.
// Get returns ErrNotFound when the key is absent.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// NewID returns a time-ordered, random-suffixed identifier for a new record.
func NewID() string {
	return ulid.Make().String()
}
