package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/storage"
	"github.com/MrJamesThe3rd/tally/internal/storage/sqlite"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.Get(ctx, storage.KeyGoals)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, storage.KeyGoals, []byte(`[{"id":"a"}]`)))
	require.NoError(t, s.Set(ctx, storage.KeyGoals, []byte(`[{"id":"b"}]`)))

	got, err := s.Get(ctx, storage.KeyGoals)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"b"}]`, string(got))

	require.NoError(t, s.Delete(ctx, storage.KeyGoals))

	_, err = s.Get(ctx, storage.KeyGoals)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tally.db")

	s, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, storage.KeySession, []byte(`{"username":"ana"}`)))
	require.NoError(t, s.Close())

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	got, err := reopened.Get(ctx, storage.KeySession)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"ana"}`, string(got))
}
