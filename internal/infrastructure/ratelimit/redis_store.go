// Package ratelimit provides the Redis-backed counter store used by the
// rate limiting middleware.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "accounthub:"

// RedisStore is a Redis-backed sliding-window counter. Counters live under
// a shared prefix so they can be inspected and flushed independently of
// other application keys.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisStoreConfig contains configuration for RedisStore.
type RedisStoreConfig struct {
	Client    *redis.Client
	KeyPrefix string
}

// NewRedisStore creates a new Redis-based rate limit store.
func NewRedisStore(cfg RedisStoreConfig) *RedisStore {
	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}

	return &RedisStore{
		client:    cfg.Client,
		keyPrefix: keyPrefix,
	}
}

// Increment increments the counter for the given key and returns the new
// count. The expiration is set atomically with the first increment so a
// counter can never leak without a TTL.
func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := s.keyPrefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.ExpireNX(ctx, fullKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	return incr.Val(), nil
}

// GetTTL returns the remaining TTL for the given key. A key with no TTL or
// a missing key reports zero.
func (s *RedisStore) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	fullKey := s.keyPrefix + key

	ttl, err := s.client.TTL(ctx, fullKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get rate limit TTL: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}

	return ttl, nil
}
