package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saaskit/gatekit/pkg/ratelimiter"
)

func TestLimiter_BasicWindow(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()
	limiter, err := ratelimiter.New(store, ratelimiter.Config{Limit: 2, Window: time.Minute})
	require.NoError(t, err)

	ctx := context.Background()

	first, err := limiter.Check(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	second, err := limiter.Check(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, err := limiter.Check(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, third.Allowed)
	assert.Equal(t, 0, third.Remaining)
	assert.True(t, third.ResetAt.After(time.Now()), "reset must be strictly in the future")
	assert.Greater(t, third.RetryAfter(), time.Duration(0))
}

func TestLimiter_IdentifiersAreIndependent(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()
	limiter, err := ratelimiter.New(store, ratelimiter.Config{Limit: 1, Window: time.Minute})
	require.NoError(t, err)

	ctx := context.Background()

	r1, err := limiter.Check(ctx, "a")
	require.NoError(t, err)
	assert.True(t, r1.Allowed)

	r2, err := limiter.Check(ctx, "b")
	require.NoError(t, err)
	assert.True(t, r2.Allowed)

	r3, err := limiter.Check(ctx, "a")
	require.NoError(t, err)
	assert.False(t, r3.Allowed)
}

func TestLimiter_WindowExpiry(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()
	limiter, err := ratelimiter.New(store, ratelimiter.Config{Limit: 1, Window: 30 * time.Millisecond})
	require.NoError(t, err)

	ctx := context.Background()

	r, err := limiter.Check(ctx, "u")
	require.NoError(t, err)
	assert.True(t, r.Allowed)

	r, err = limiter.Check(ctx, "u")
	require.NoError(t, err)
	assert.False(t, r.Allowed)

	time.Sleep(40 * time.Millisecond)

	r, err = limiter.Check(ctx, "u")
	require.NoError(t, err)
	assert.True(t, r.Allowed, "counter must reset after the window elapses")
}

func TestLimiter_ConcurrentChecksDoNotDoubleCount(t *testing.T) {
	t.Parallel()

	const limit = 50
	const attempts = 100

	store := ratelimiter.NewMemoryStore()
	limiter, err := ratelimiter.New(store, ratelimiter.Config{Limit: limit, Window: time.Minute})
	require.NoError(t, err)

	var wg sync.WaitGroup
	allowed := make(chan bool, attempts)

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := limiter.Check(context.Background(), "shared")
			assert.NoError(t, err)
			allowed <- r.Allowed
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	assert.Equal(t, limit, count, "exactly the limit must be allowed under concurrency")
}

func TestLimiter_Reset(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()
	limiter, err := ratelimiter.New(store, ratelimiter.Config{Limit: 1, Window: time.Hour})
	require.NoError(t, err)

	ctx := context.Background()

	_, err = limiter.Check(ctx, "u")
	require.NoError(t, err)

	r, err := limiter.Check(ctx, "u")
	require.NoError(t, err)
	assert.False(t, r.Allowed)

	require.NoError(t, limiter.Reset(ctx, "u"))

	r, err = limiter.Check(ctx, "u")
	require.NoError(t, err)
	assert.True(t, r.Allowed)
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := ratelimiter.New(nil, ratelimiter.DefaultConfig())
	assert.ErrorIs(t, err, ratelimiter.ErrStoreRequired)

	_, err = ratelimiter.New(ratelimiter.NewMemoryStore(), ratelimiter.Config{Limit: 0, Window: time.Minute})
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)

	_, err = ratelimiter.New(ratelimiter.NewMemoryStore(), ratelimiter.Config{Limit: 10})
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestMemoryStore_StartStop(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(10 * time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- store.Start(ctx) }()

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, store.Stop())

	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
}
