package ratelimiter

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces rate limit counters in the shared Redis keyspace.
const keyPrefix = "ratelimit:"

// RedisStore implements Store on a shared Redis instance so that multiple
// server processes see a consistent count. INCR is atomic on the server,
// which satisfies the no-double-count requirement without client locks.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a Redis-backed counter store.
func NewRedisStore(client redis.UniversalClient) (*RedisStore, error) {
	if client == nil {
		return nil, ErrStoreRequired
	}
	return &RedisStore{client: client}, nil
}

// Increment advances the counter for key. The first increment of a window
// arms the key TTL; subsequent increments inherit the remaining TTL, which
// doubles as the window reset time.
func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	redisKey := keyPrefix + key
	now := time.Now()

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}

	count := incr.Val()
	ttl := pttl.Val()

	// A negative TTL means the key has no expiry yet (fresh window) or was
	// created between pipeline commands; arm it.
	if ttl < 0 {
		if err := s.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
		}
		ttl = window
	}

	return count, now.Add(ttl), nil
}

// Reset clears the counter for key.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
