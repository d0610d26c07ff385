// Package redis provides Redis client initialization with connection
// validation and health checking.
//
// Connect parses the connection URL, dials with exponential-backoff
// retries, and verifies connectivity with a ping before returning the
// client. The resulting client backs the fast session store and the
// Redis rate-limiter store.
//
//	cfg := redis.Config{ConnectionURL: os.Getenv("REDIS_URL"), RetryAttempts: 3,
//		RetryInterval: 5 * time.Second, ConnectTimeout: 30 * time.Second}
//	client, err := redis.Connect(ctx, cfg)
//
// Both redis:// and rediss:// (TLS) URL schemes are supported.
package redis
