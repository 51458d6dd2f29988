package usage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_UnknownUserIsFreshFreeTier(t *testing.T) {
	store, _ := newTestRedisStore(t)

	state, err := store.GetUsage(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, PlanFree, state.Plan)
	assert.Equal(t, 0, state.FreeUsage)
}

func TestRedisStore_IncrementAndRead(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		n, err := store.IncrementFreeUsage(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	state, err := store.GetUsage(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, state.FreeUsage)
}

func TestRedisStore_SetPlan(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetPlan(ctx, "user-1", PlanPremium))

	state, err := store.GetUsage(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, PlanPremium, state.Plan)
}

func TestRedisStore_ReserveStopsAtLimit(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := store.ReserveFreeUsage(ctx, "user-1", 3)
		require.NoError(t, err)
		assert.True(t, ok, "reservation %d should succeed", i+1)
	}

	ok, err := store.ReserveFreeUsage(ctx, "user-1", 3)
	require.NoError(t, err)
	assert.False(t, ok)

	state, err := store.GetUsage(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, state.FreeUsage)
}

func TestRedisStore_ReleaseFloorsAtZero(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.IncrementFreeUsage(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, store.ReleaseFreeUsage(ctx, "user-1"))
	require.NoError(t, store.ReleaseFreeUsage(ctx, "user-1"))

	state, err := store.GetUsage(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, state.FreeUsage)
}

func TestRedisStore_CorruptCounter(t *testing.T) {
	store, mr := newTestRedisStore(t)
	require.NoError(t, mr.Set("usage:user-1:free", "many"))

	_, err := store.GetUsage(context.Background(), "user-1")
	assert.Error(t, err)
}

func TestRedisStore_Unavailable(t *testing.T) {
	store, mr := newTestRedisStore(t)
	mr.Close()

	_, err := store.GetUsage(context.Background(), "user-1")
	assert.Error(t, err)
}

func TestRedisStore_WithGate(t *testing.T) {
	store, _ := newTestRedisStore(t)
	g := NewGate(store, WithFreeLimit(2))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		state, err := g.Load(ctx, "user-1")
		require.NoError(t, err)

		ticket, err := g.Admit(ctx, "user-1", state)
		require.NoError(t, err)
		require.NoError(t, ticket.Commit(ctx))
	}

	state, err := g.Load(ctx, "user-1")
	require.NoError(t, err)

	_, err = g.Admit(ctx, "user-1", state)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}
