package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct {
	calls int
}

func (s *brokenStore) Create(context.Context, string, *Session) error {
	s.calls++
	return errors.New("connection refused")
}

func (s *brokenStore) Get(context.Context, string) (*Session, error) {
	s.calls++
	return nil, errors.New("connection refused")
}

func (s *brokenStore) Delete(context.Context, string) error {
	s.calls++
	return errors.New("connection refused")
}

func newFailover(t *testing.T, primary Store) (*FailoverStore, *MemoryStore) {
	t.Helper()
	fallback := NewMemoryStore(time.Hour, time.Hour)
	t.Cleanup(fallback.Close)
	logger := zerolog.Nop()
	return NewFailoverStore(primary, fallback, &logger), fallback
}

func TestFailoverFallsBackWhenPrimaryDies(t *testing.T) {
	primary := &brokenStore{}
	store, _ := newFailover(t, primary)
	ctx := context.Background()

	sess := &Session{UserID: "abc", Role: "customer", CreatedAt: time.Now()}
	require.NoError(t, store.Create(ctx, "token-1", sess))

	got, err := store.Get(ctx, "token-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc", got.UserID)
}

func TestFailoverStopsHittingDownPrimary(t *testing.T) {
	primary := &brokenStore{}
	store, _ := newFailover(t, primary)
	ctx := context.Background()

	_ = store.Create(ctx, "token-1", &Session{UserID: "abc"})
	callsAfterFirst := primary.calls

	// Degraded now; further calls inside the probe window skip the primary.
	_, _ = store.Get(ctx, "token-1")
	_, _ = store.Get(ctx, "token-1")

	assert.Equal(t, callsAfterFirst, primary.calls)
}

func TestFailoverUsesHealthyPrimary(t *testing.T) {
	primary := NewMemoryStore(time.Hour, time.Hour)
	defer primary.Close()
	store, fallback := newFailover(t, primary)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "token-1", &Session{UserID: "abc", Role: "staff"}))

	// Session landed in the primary, not the fallback.
	got, err := primary.Get(ctx, "token-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = fallback.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
