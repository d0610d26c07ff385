package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix namespaces session keys in Redis.
const sessionKeyPrefix = "session:"

// RedisStore keeps sessions in Redis as JSON values with a TTL equal to
// the remaining session lifetime. It is the fast backend: reads are cheap
// and expiration is native, but data does not survive a flush.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a Redis-backed session store. The client is owned
// by the caller; Close does not shut it down.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

// Store persists a session with TTL set to its remaining lifetime.
// Already-expired sessions are rejected with ErrExpired.
func (s *RedisStore) Store(ctx context.Context, sess Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}

	data, err := Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sess.ID), data, ttl).Err()
}

// Retrieve loads a session by ID. Keys evicted by TTL read as ErrNotFound.
func (s *RedisStore) Retrieve(ctx context.Context, id uuid.UUID) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return Unmarshal(data)
}

// Update applies a partial update via read-modify-write. The TTL is
// recomputed from the (possibly extended) expiration.
func (s *RedisStore) Update(ctx context.Context, id uuid.UUID, upd Update) error {
	sess, err := s.Retrieve(ctx, id)
	if err != nil {
		return err
	}

	upd.apply(sess)
	return s.Store(ctx, *sess)
}

// Delete removes a session key.
func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// Cleanup is a no-op: Redis expires session keys natively via TTL.
func (s *RedisStore) Cleanup(ctx context.Context) (int64, error) {
	return 0, nil
}

// Close is a no-op; the client lifecycle belongs to the caller.
func (s *RedisStore) Close() error {
	return nil
}
