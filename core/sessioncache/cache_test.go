package sessioncache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saaskit/gatekit/core/session"
	"github.com/saaskit/gatekit/core/sessioncache"
)

type fakeFetcher struct {
	mu           sync.Mutex
	fetchCalls   int
	refreshCalls int
	signOutCalls int

	fetchFn   func(ctx context.Context) (*session.Session, error)
	refreshFn func(ctx context.Context) (*session.Session, error)
	signOutFn func(ctx context.Context) error
}

func (f *fakeFetcher) FetchSession(ctx context.Context) (*session.Session, error) {
	f.mu.Lock()
	f.fetchCalls++
	fn := f.fetchFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}

func (f *fakeFetcher) RefreshSession(ctx context.Context) (*session.Session, error) {
	f.mu.Lock()
	f.refreshCalls++
	fn := f.refreshFn
	f.mu.Unlock()
	if fn == nil {
		return nil, errors.New("refresh not configured")
	}
	return fn(ctx)
}

func (f *fakeFetcher) SignOut(ctx context.Context) error {
	f.mu.Lock()
	f.signOutCalls++
	fn := f.signOutFn
	f.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (f *fakeFetcher) calls() (fetch, refresh, signOut int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls, f.refreshCalls, f.signOutCalls
}

func liveSession(t *testing.T, ttl time.Duration) *session.Session {
	t.Helper()
	sess, err := session.New(uuid.New(), ttl)
	require.NoError(t, err)
	return &sess
}

func TestCache_Get(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("fetches then serves from cache", func(t *testing.T) {
		t.Parallel()

		sess := liveSession(t, time.Hour)
		fetcher := &fakeFetcher{
			fetchFn: func(context.Context) (*session.Session, error) { return sess, nil },
		}
		cache := sessioncache.New(fetcher)
		defer cache.Close()

		got, err := cache.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, sess.ID, got.ID)

		_, err = cache.Get(ctx)
		require.NoError(t, err)

		fetches, _, _ := fetcher.calls()
		assert.Equal(t, 1, fetches)
	})

	t.Run("concurrent callers share one fetch", func(t *testing.T) {
		t.Parallel()

		sess := liveSession(t, time.Hour)
		release := make(chan struct{})
		fetcher := &fakeFetcher{
			fetchFn: func(context.Context) (*session.Session, error) {
				<-release
				return sess, nil
			},
		}
		cache := sessioncache.New(fetcher)
		defer cache.Close()

		const callers = 10
		results := make(chan *session.Session, callers)
		var wg sync.WaitGroup
		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := cache.Get(ctx)
				assert.NoError(t, err)
				results <- got
			}()
		}

		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()
		close(results)

		for got := range results {
			require.NotNil(t, got)
			assert.Equal(t, sess.ID, got.ID)
		}
		fetches, _, _ := fetcher.calls()
		assert.Equal(t, 1, fetches)
	})

	t.Run("expired on arrival reads as signed out", func(t *testing.T) {
		t.Parallel()

		dead := liveSession(t, time.Hour)
		dead.ExpiresAt = time.Now().Add(-time.Millisecond)
		fetcher := &fakeFetcher{
			fetchFn: func(context.Context) (*session.Session, error) { return dead, nil },
		}
		cache := sessioncache.New(fetcher)
		defer cache.Close()

		got, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Nil(t, cache.Current().Session)
	})

	t.Run("fetch error clears state", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{
			fetchFn: func(context.Context) (*session.Session, error) {
				return nil, errors.New("backend down")
			},
		}
		cache := sessioncache.New(fetcher)
		defer cache.Close()

		_, err := cache.Get(ctx)
		require.Error(t, err)
		state := cache.Current()
		assert.Nil(t, state.Session)
		assert.False(t, state.Loading)
	})
}

func TestCache_Subscribe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sess := liveSession(t, time.Hour)
	fetcher := &fakeFetcher{
		fetchFn: func(context.Context) (*session.Session, error) { return sess, nil },
	}
	cache := sessioncache.New(fetcher)
	defer cache.Close()

	var mu sync.Mutex
	var states []sessioncache.State
	unsubscribe := cache.Subscribe(func(s sessioncache.State) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})

	mu.Lock()
	require.Len(t, states, 1, "current state replays immediately")
	assert.Nil(t, states[0].Session)
	mu.Unlock()

	_, err := cache.Get(ctx)
	require.NoError(t, err)

	mu.Lock()
	require.NotEmpty(t, states)
	last := states[len(states)-1]
	require.NotNil(t, last.Session)
	assert.Equal(t, sess.ID, last.Session.ID)
	assert.False(t, last.Loading)
	seen := len(states)
	mu.Unlock()

	unsubscribe()
	require.NoError(t, cache.SignOut(ctx))

	mu.Lock()
	assert.Len(t, states, seen, "no notifications after unsubscribe")
	mu.Unlock()
}

func TestCache_SignOut(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sess := liveSession(t, time.Hour)

	var cache *sessioncache.Cache
	var sessionAtSignOut *session.Session
	fetcher := &fakeFetcher{
		fetchFn: func(context.Context) (*session.Session, error) { return sess, nil },
		signOutFn: func(context.Context) error {
			// Local state must already be cleared when the backend call runs.
			sessionAtSignOut = cache.Current().Session
			return nil
		},
	}
	cache = sessioncache.New(fetcher)
	defer cache.Close()

	_, err := cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, cache.Current().Session)

	require.NoError(t, cache.SignOut(ctx))
	assert.Nil(t, sessionAtSignOut)
	assert.Nil(t, cache.Current().Session)

	_, _, signOuts := fetcher.calls()
	assert.Equal(t, 1, signOuts)
}

func TestCache_ProactiveRefresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	shortLived := liveSession(t, 150*time.Millisecond)
	renewed := liveSession(t, time.Hour)

	fetcher := &fakeFetcher{
		fetchFn:   func(context.Context) (*session.Session, error) { return shortLived, nil },
		refreshFn: func(context.Context) (*session.Session, error) { return renewed, nil },
	}
	cache := sessioncache.New(fetcher,
		sessioncache.WithRefreshThreshold(100*time.Millisecond),
		sessioncache.WithCheckInterval(10*time.Millisecond),
	)
	defer cache.Close()

	_, err := cache.Get(ctx)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		current := cache.Current().Session
		return current != nil && current.ID == renewed.ID
	}, time.Second, 10*time.Millisecond)

	_, refreshes, _ := fetcher.calls()
	assert.GreaterOrEqual(t, refreshes, 1)
}

func TestCache_RefreshFailureClearsSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	shortLived := liveSession(t, 150*time.Millisecond)

	fetcher := &fakeFetcher{
		fetchFn:   func(context.Context) (*session.Session, error) { return shortLived, nil },
		refreshFn: func(context.Context) (*session.Session, error) { return nil, errors.New("refresh rejected") },
	}
	cache := sessioncache.New(fetcher,
		sessioncache.WithRefreshThreshold(100*time.Millisecond),
		sessioncache.WithCheckInterval(10*time.Millisecond),
	)
	defer cache.Close()

	_, err := cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, cache.Current().Session)

	var mu sync.Mutex
	var sawSignOut bool
	cache.Subscribe(func(s sessioncache.State) {
		mu.Lock()
		if s.Session == nil && !s.Loading {
			sawSignOut = true
		}
		mu.Unlock()
	})

	require.Eventually(t, func() bool {
		return cache.Current().Session == nil
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.True(t, sawSignOut)
	mu.Unlock()
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	cache := sessioncache.New(&fakeFetcher{})
	cache.Close()
	cache.Close()
}
