package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github/chapool/wallet-core/internal/storage"
)

func newTestStore(t *testing.T) *storage.BadgerStore {
	t.Helper()

	store, err := storage.NewInMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestGetMissingKey(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, "a", []byte("value")))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, []byte("value"), got)
}

func TestSetBatchWritesAllKeys(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.SetBatch(ctx, map[string][]byte{
		"one": []byte("1"),
		"two": []byte("2"),
	})
	require.NoError(t, err)

	one, err := store.Get(ctx, "one")
	require.NoError(t, err)
	require.Equal(t, []byte("1"), one)

	two, err := store.Get(ctx, "two")
	require.NoError(t, err)
	require.Equal(t, []byte("2"), two)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, "a", []byte("value")))
	require.NoError(t, store.Delete(ctx, "a", "never-existed"))

	_, err := store.Get(ctx, "a")
	require.ErrorIs(t, err, storage.ErrKeyNotFound)

	// Deleting again must not fail.
	require.NoError(t, store.Delete(ctx, "a"))
}
