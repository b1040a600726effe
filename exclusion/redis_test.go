package exclusion

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dszilagyiques/CloneCoCo/coco"
	"github.com/dszilagyiques/CloneCoCo/ident"
)

// setupTestStore creates a miniredis instance and returns a connected
// RedisStore.
func setupTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStore(RedisOptions{
		URL:            fmt.Sprintf("redis://%s", mr.Addr()),
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
		mr.Close()
	})

	return store, mr
}

func TestNewRedisStore(t *testing.T) {
	t.Run("successful connection", func(t *testing.T) {
		mr := miniredis.RunT(t)
		defer mr.Close()

		store, err := NewRedisStore(RedisOptions{
			URL: fmt.Sprintf("redis://%s", mr.Addr()),
		})
		require.NoError(t, err)
		require.NotNil(t, store)
		defer store.Close()

		assert.Equal(t, DefaultKey, store.key)
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := NewRedisStore(RedisOptions{URL: "not-a-url"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse Redis URL")
	})

	t.Run("custom key", func(t *testing.T) {
		mr := miniredis.RunT(t)
		defer mr.Close()

		store, err := NewRedisStore(RedisOptions{
			URL: fmt.Sprintf("redis://%s", mr.Addr()),
			Key: "project-267:module-ids",
		})
		require.NoError(t, err)
		defer store.Close()

		assert.Equal(t, "project-267:module-ids", store.key)
	})
}

func TestRedisStore_FetchAndReserve(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	set, err := store.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())

	err = store.Reserve(ctx, 100001, 100002, 100003)
	require.NoError(t, err)

	set, err = store.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Has(100001))
	assert.True(t, set.Has(100002))
	assert.True(t, set.Has(100003))

	// Reserving an identifier twice is a no-op.
	err = store.Reserve(ctx, 100002)
	require.NoError(t, err)
	set, err = store.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
}

func TestRedisStore_Reserve_empty(t *testing.T) {
	store, _ := setupTestStore(t)
	require.NoError(t, store.Reserve(context.Background()))
}

func TestRedisStore_Fetch_nonNumericMember(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.client.SAdd(ctx, store.key, "garbage").Err())

	_, err := store.Fetch(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-numeric identifier")
}

func TestStatic_Fetch(t *testing.T) {
	src := Static(ident.NewSet(1, 2))

	set, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, set.Has(1))

	// The returned set is a copy.
	set.Add(coco.ModuleID(3))
	assert.False(t, ident.Set(src).Has(3))
}
