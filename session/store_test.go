package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/librosearch/core"
)

// storeUnderTest builds each driver that runs without external services.
func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()

	memory, err := NewStore(DriverMemory)
	require.NoError(t, err)

	embedded, err := NewStore(DriverBadger, WithTTL(time.Hour))
	require.NoError(t, err)

	return map[string]Store{
		"memory": memory,
		"badger": embedded,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()
			ctx := context.Background()

			data := &Context{
				ID:         NewID(),
				Query:      "libri su Luigi Ghirri",
				SearchType: "nome",
				Name:       "Luigi Ghirri",
				Filters:    core.FilterSet{Language: "IT"},
				ResultIDs:  []core.BookID{12, 7, 99},
			}
			require.NoError(t, store.Put(ctx, data))

			got, err := store.Get(ctx, data.ID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, data.Name, got.Name)
			assert.Equal(t, data.SearchType, got.SearchType)
			assert.Equal(t, data.Filters, got.Filters)
			assert.Equal(t, data.ResultIDs, got.ResultIDs)
			assert.False(t, got.UpdatedAt.IsZero())
		})
	}
}

func TestStoreMissingSession(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			got, err := store.Get(context.Background(), "no-such-session")
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestStorePutOverwrites(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()
			ctx := context.Background()

			id := NewID()
			require.NoError(t, store.Put(ctx, &Context{ID: id, SearchType: "nome", Name: "Bruce Nauman"}))
			require.NoError(t, store.Put(ctx, &Context{ID: id, SearchType: "tematica", Theme: "fotografia"}))

			got, err := store.Get(ctx, id)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "tematica", got.SearchType)
			assert.Equal(t, "fotografia", got.Theme)
			assert.Empty(t, got.Name)
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()
			ctx := context.Background()

			id := NewID()
			require.NoError(t, store.Put(ctx, &Context{ID: id, SearchType: "nome"}))
			require.NoError(t, store.Delete(ctx, id))

			got, err := store.Get(ctx, id)
			require.NoError(t, err)
			assert.Nil(t, got)

			// Deleting again is a no-op.
			assert.NoError(t, store.Delete(ctx, id))
		})
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	store := newMemoryStore()
	require.NoError(t, store.Close())

	_, err := store.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, store.Put(context.Background(), &Context{ID: "x"}), ErrStoreClosed)
}

func TestNewStoreValidation(t *testing.T) {
	t.Run("redis requires client", func(t *testing.T) {
		_, err := NewStore(DriverRedis)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewStore(Driver("etcd"))
		assert.ErrorIs(t, err, ErrUnknownDriver)
	})
}

func TestContextEmpty(t *testing.T) {
	var nilCtx *Context
	assert.True(t, nilCtx.Empty())
	assert.True(t, (&Context{ID: "x"}).Empty())
	assert.False(t, (&Context{SearchType: "nome"}).Empty())
}
