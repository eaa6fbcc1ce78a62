package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateGetDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour, time.Hour)
	defer store.Close()

	ctx := context.Background()
	sess := &Session{UserID: "abc", Role: "customer", CreatedAt: time.Now()}

	require.NoError(t, store.Create(ctx, "token-1", sess))

	got, err := store.Get(ctx, "token-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc", got.UserID)
	assert.Equal(t, "customer", got.Role)

	require.NoError(t, store.Delete(ctx, "token-1"))

	got, err = store.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreUnknownTokenReturnsNil(t *testing.T) {
	store := NewMemoryStore(time.Hour, time.Hour)
	defer store.Close()

	got, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(20*time.Millisecond, 5*time.Millisecond)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Create(ctx, "token-1", &Session{UserID: "abc", Role: "staff"}))

	time.Sleep(50 * time.Millisecond)

	got, err := store.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.Nil(t, got, "expired session should be gone")
}

func TestNewTokenIsUniqueAndHexEncoded(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
