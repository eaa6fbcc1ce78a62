package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreCreateGetDelete(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	sess := &Session{UserID: "abc", Role: "admin", CreatedAt: time.Now()}
	require.NoError(t, store.Create(ctx, "token-1", sess))

	got, err := store.Get(ctx, "token-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc", got.UserID)
	assert.Equal(t, "admin", got.Role)

	require.NoError(t, store.Delete(ctx, "token-1"))

	got, err = store.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreTTLExpiresSessions(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "token-1", &Session{UserID: "abc", Role: "customer"}))

	mr.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.Nil(t, got, "session should expire with the key TTL")
}

func TestRedisStoreTokensAreStoredHashed(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "token-1", &Session{UserID: "abc", Role: "customer"}))

	for _, key := range mr.Keys() {
		assert.NotContains(t, key, "token-1", "raw token must never appear as a key")
	}
}
