package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gemvault/storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedisStore returns a store backed by STOREFRONT_TEST_REDIS_URL, skipping when unset
func newTestRedisStore(t *testing.T) *RedisPageStore {
	t.Helper()

	redisURL := os.Getenv("STOREFRONT_TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("STOREFRONT_TEST_REDIS_URL not set")
	}

	store, err := NewRedisPageStore(redisURL)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, store.Ping(ctx))

	return store
}

func TestNewRedisPageStore_InvalidURL(t *testing.T) {
	store, err := NewRedisPageStore("not-a-redis-url")

	assert.Nil(t, store)
	assert.Error(t, err)
}

func TestRedisPageStore_RoundTrip(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()
	id := uuid.NewString()

	require.NoError(t, store.Save(ctx, testSnapshot(id), time.Minute))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Gold Ring", got.Products[0].Name)
	assert.Equal(t, domain.DefaultFilterState(), got.Filters)

	require.NoError(t, store.Delete(ctx, id))

	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestRedisPageStore_Expiration(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()
	id := uuid.NewString()

	require.NoError(t, store.Save(ctx, testSnapshot(id), 50*time.Millisecond))
	time.Sleep(150 * time.Millisecond)

	_, err := store.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestRedisPageStore_SaveInvalid(t *testing.T) {
	store := newTestRedisStore(t)

	err := store.Save(context.Background(), &domain.PageSnapshot{}, time.Minute)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
