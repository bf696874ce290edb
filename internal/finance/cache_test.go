package finance

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, PeriodThisMonth)
	require.NoError(t, err)
	assert.False(t, ok)

	view := SnapshotView{Period: PeriodThisMonth, Base: Snapshot{Revenue: 42}}
	require.NoError(t, cache.Set(ctx, PeriodThisMonth, view))

	got, ok, err := cache.Get(ctx, PeriodThisMonth)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 42.0, got.Base.Revenue)
}

func TestCacheBumpInvalidatesAllPeriods(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, PeriodThisMonth, SnapshotView{Period: PeriodThisMonth}))
	require.NoError(t, cache.Set(ctx, PeriodAllTime, SnapshotView{Period: PeriodAllTime}))

	require.NoError(t, cache.Bump(ctx))

	for _, token := range []PeriodToken{PeriodThisMonth, PeriodAllTime} {
		_, ok, err := cache.Get(ctx, token)
		require.NoError(t, err)
		assert.False(t, ok, "period %s should be invalidated", token)
	}
}

func TestCacheNilClientIsNoop(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, PeriodAllTime)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, cache.Set(ctx, PeriodAllTime, SnapshotView{}))
	assert.NoError(t, cache.Bump(ctx))
}
