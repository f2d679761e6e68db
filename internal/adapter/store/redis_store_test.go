package store

import (
	"context"
	"sphere-core/internal/domain/entity"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb), mr
}

func counter(t *testing.T, mr *miniredis.Miniredis, key string) int64 {
	t.Helper()
	if !mr.Exists(key) {
		return 0
	}
	v, err := mr.Get(key)
	require.NoError(t, err)
	n, err := strconv.ParseInt(v, 10, 64)
	require.NoError(t, err)
	return n
}

func TestRedisStoreUsageCounters(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	assert.Zero(t, counter(t, mr, "usage:calls:market_research"))

	require.NoError(t, s.RecordUsage(ctx, entity.UsageEvent{Tool: "market_research", TokenCount: 100}))
	require.NoError(t, s.RecordUsage(ctx, entity.UsageEvent{Tool: "market_research", TokenCount: 50}))
	require.NoError(t, s.RecordUsage(ctx, entity.UsageEvent{Tool: "pitch_deck_creator", TokenCount: 7}))

	assert.Equal(t, int64(2), counter(t, mr, "usage:calls:market_research"))
	assert.Equal(t, int64(150), counter(t, mr, "usage:tokens:market_research"))
	assert.Equal(t, int64(1), counter(t, mr, "usage:calls:pitch_deck_creator"))
}

func TestRedisStoreFirstDelivery(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	first, err := s.FirstDelivery(ctx, "stripe", "evt_1")
	require.NoError(t, err)
	assert.True(t, first)

	first, err = s.FirstDelivery(ctx, "stripe", "evt_1")
	require.NoError(t, err)
	assert.False(t, first)

	assert.Equal(t, eventTTL, mr.TTL("webhook:stripe:evt_1"))

	mr.FastForward(eventTTL)
	first, err = s.FirstDelivery(ctx, "stripe", "evt_1")
	require.NoError(t, err)
	assert.True(t, first)
}

func TestRedisStoreForgetReleasesEvent(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	first, err := s.FirstDelivery(ctx, "stripe", "evt_1")
	require.NoError(t, err)
	require.True(t, first)

	require.NoError(t, s.Forget(ctx, "stripe", "evt_1"))
	assert.False(t, mr.Exists("webhook:stripe:evt_1"))

	first, err = s.FirstDelivery(ctx, "stripe", "evt_1")
	require.NoError(t, err)
	assert.True(t, first)

	require.NoError(t, s.Forget(ctx, "stripe", "evt_unknown"))
}

func TestRedisStorePing(t *testing.T) {
	s, mr := newTestRedisStore(t)
	require.NoError(t, s.Ping(context.Background()))

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}
