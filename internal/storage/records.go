package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Records keeps an ordered list of T serialized as a single JSON array under one key.
// Every mutation reads the whole list, changes it in memory and writes it back.
type Records[T any] struct {
	kv  Storage
	key string
	id  func(T) string

	mu sync.Mutex
}

func NewRecords[T any](kv Storage, key string, id func(T) string) *Records[T] {
	return &Records[T]{kv: kv, key: key, id: id}
}

// Load returns a freshly decoded copy of the list. A missing key is an empty list.
func (r *Records[T]) Load(ctx context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

func (r *Records[T]) Find(ctx context.Context, id string) (T, error) {
	var zero T

	items, err := r.Load(ctx)
	if err != nil {
		return zero, err
	}

	for _, item := range items {
		if r.id(item) == id {
			return item, nil
		}
	}

	return zero, ErrNotFound
}

// Append adds items to the end of the list in a single write.
func (r *Records[T]) Append(ctx context.Context, items ...T) error {
	if len(items) == 0 {
		return nil
	}

	return r.mutate(ctx, func(list []T) ([]T, error) {
		return append(list, items...), nil
	})
}

// Replace swaps the stored record that has the same id as item.
func (r *Records[T]) Replace(ctx context.Context, item T) error {
	id := r.id(item)

	return r.mutate(ctx, func(list []T) ([]T, error) {
		for i := range list {
			if r.id(list[i]) == id {
				list[i] = item
				return list, nil
			}
		}

		return nil, ErrNotFound
	})
}

func (r *Records[T]) Remove(ctx context.Context, id string) error {
	return r.mutate(ctx, func(list []T) ([]T, error) {
		for i := range list {
			if r.id(list[i]) == id {
				return append(list[:i], list[i+1:]...), nil
			}
		}

		return nil, ErrNotFound
	})
}

func (r *Records[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}

	list, err = fn(list)
	if err != nil {
		return err
	}

	return r.save(ctx, list)
}

func (r *Records[T]) load(ctx context.Context) ([]T, error) {
	data, err := r.kv.Get(ctx, r.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.key, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", r.key, err)
	}

	return items, nil
}

func (r *Records[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", r.key, err)
	}

	if err := r.kv.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("writing %s: %w", r.key, err)
	}

	return nil
}
