package store

import (
	"context"
	"sphere-core/internal/domain/entity"
	"time"

	"github.com/redis/go-redis/v9"
)

// eventTTL outlives Stripe's redelivery window (three days).
const eventTTL = 72 * time.Hour

// RedisStore keeps cheap process-independent counters: per-tool usage and
// the set of webhook events already dispatched.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) RecordUsage(ctx context.Context, ev entity.UsageEvent) error {
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, usageKey("calls", ev.Tool))
	pipe.IncrBy(ctx, usageKey("tokens", ev.Tool), int64(ev.TokenCount))
	_, err := pipe.Exec(ctx)
	return err
}

// FirstDelivery claims eventID; false means it was claimed before.
func (r *RedisStore) FirstDelivery(ctx context.Context, gateway, eventID string) (bool, error) {
	return r.client.SetNX(ctx, webhookKey(gateway, eventID), time.Now().Unix(), eventTTL).Result()
}

func (r *RedisStore) Forget(ctx context.Context, gateway, eventID string) error {
	return r.client.Del(ctx, webhookKey(gateway, eventID)).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func usageKey(kind, tool string) string { return "usage:" + kind + ":" + tool }

func webhookKey(gateway, id string) string { return "webhook:" + gateway + ":" + id }
