// Package ratelimiter provides sliding-window rate limiting with pluggable
// counter stores.
//
// A Limiter counts requests per identifier (user id, IP, API key) over a
// fixed window and reports, for each check, whether the request is allowed
// together with the remaining budget and the window reset time. Counting is
// delegated to a Store whose Increment operation is atomic, so concurrent
// checks observe a consistent count, including checks from different
// processes when backed by Redis.
//
// # Usage
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.New(store, ratelimiter.Config{
//		Limit:  100,
//		Window: 15 * time.Minute,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := limiter.Check(ctx, "user:123")
//	if err != nil {
//		// store failure: fail open or closed per caller policy
//	}
//	if !result.Allowed {
//		retryAfter := result.RetryAfter()
//		// surface retry-after hint to the client
//	}
//
// For multi-process deployments use NewRedisStore with a shared Redis
// client; the server-side INCR keeps counts consistent across processes.
package ratelimiter
