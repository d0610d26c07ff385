package sessioncache

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/saaskit/gatekit/core/logger"
	"github.com/saaskit/gatekit/core/session"
)

const (
	// DefaultRefreshThreshold is how close to expiry a session gets
	// before a proactive refresh is scheduled.
	DefaultRefreshThreshold = 15 * time.Minute
	// DefaultCheckInterval is the period of the liveness check that
	// re-evaluates the refresh threshold.
	DefaultCheckInterval = time.Minute
)

// Fetcher is the backend the cache delegates to. Implementations talk to
// the auth API or the session store directly.
type Fetcher interface {
	// FetchSession returns the current session, or nil when signed out.
	FetchSession(ctx context.Context) (*session.Session, error)
	// RefreshSession extends the current session and returns the new state.
	RefreshSession(ctx context.Context) (*session.Session, error)
	// SignOut terminates the current session server-side.
	SignOut(ctx context.Context) error
}

// State is a snapshot of the cached session, delivered to subscribers.
type State struct {
	// Session is nil when signed out or while the first fetch is running.
	Session *session.Session
	// Loading is true while a fetch is in flight.
	Loading bool
}

// Listener receives state snapshots. Called outside the cache lock; it is
// safe to call back into the cache.
type Listener func(State)

// Cache holds one process-wide session with deduplicated fetching,
// change notification, and proactive refresh ahead of expiry.
type Cache struct {
	fetcher   Fetcher
	log       *slog.Logger
	threshold time.Duration
	interval  time.Duration

	group singleflight.Group

	mu        sync.Mutex
	sess      *session.Session
	loading   bool
	listeners map[int]Listener
	nextID    int
	timer     *time.Timer
	closed    bool

	done chan struct{}
	wg   sync.WaitGroup
}

// New creates a session cache around the fetcher and starts the periodic
// liveness check. Call Close to release it.
func New(fetcher Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher:   fetcher,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		threshold: DefaultRefreshThreshold,
		interval:  DefaultCheckInterval,
		listeners: make(map[int]Listener),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.wg.Add(1)
	go c.run()
	return c
}

// Get returns the cached session, fetching it when the cache is empty or
// stale. Concurrent callers share a single in-flight fetch. A session that
// arrives already expired reads as nil without error.
func (c *Cache) Get(ctx context.Context) (*session.Session, error) {
	c.mu.Lock()
	if c.sess != nil && !c.sess.IsExpired() {
		sess := c.sess
		c.mu.Unlock()
		return sess, nil
	}
	c.mu.Unlock()

	// The fetch outlives any single caller, so detach cancellation.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do("fetch", func() (any, error) {
		c.setLoading(true)
		sess, err := c.fetcher.FetchSession(fetchCtx)
		if err != nil {
			c.setSession(nil)
			return nil, err
		}
		if sess != nil && sess.IsExpired() {
			sess = nil
		}
		c.setSession(sess)
		return sess, nil
	})
	if err != nil {
		return nil, err
	}
	sess, _ := v.(*session.Session)
	return sess, nil
}

// Current returns the cached state without triggering a fetch.
func (c *Cache) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Session: c.sess, Loading: c.loading}
}

// Subscribe registers a listener and immediately replays the current
// state to it. The returned function unsubscribes.
func (c *Cache) Subscribe(fn Listener) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	state := State{Session: c.sess, Loading: c.loading}
	c.mu.Unlock()

	fn(state)

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// SignOut clears the cached session and notifies subscribers before
// terminating the session server-side, so the local state drops even if
// the backend call fails.
func (c *Cache) SignOut(ctx context.Context) error {
	c.setSession(nil)
	return c.fetcher.SignOut(ctx)
}

// Close stops the refresh timer and the liveness check. The cache must
// not be used afterwards.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopTimerLocked()
	c.mu.Unlock()

	close(c.done)
	c.wg.Wait()
}

// run periodically re-evaluates the refresh threshold. This catches
// sessions whose expiry moved underneath the armed timer, for example
// after the session was refreshed by another consumer.
func (c *Cache) run() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			sess := c.sess
			c.mu.Unlock()
			if sess != nil && time.Until(sess.ExpiresAt) <= c.threshold {
				c.refresh()
			}
		}
	}
}

// refresh extends the session via the fetcher. Failure means the session
// could not be kept alive: the cache clears it and notifies subscribers,
// which amounts to a local sign-out.
func (c *Cache) refresh() {
	v, err, _ := c.group.Do("refresh", func() (any, error) {
		return c.fetcher.RefreshSession(context.Background())
	})
	if err != nil {
		c.log.Warn("session refresh failed, clearing local session", logger.Error(err))
		c.setSession(nil)
		return
	}

	sess, _ := v.(*session.Session)
	if sess != nil && sess.IsExpired() {
		sess = nil
	}
	c.setSession(sess)
}

// setLoading flips the loading flag and notifies subscribers, keeping the
// current session visible during the fetch.
func (c *Cache) setLoading(loading bool) {
	c.mu.Lock()
	c.loading = loading
	state := State{Session: c.sess, Loading: loading}
	listeners := c.snapshotListenersLocked()
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// setSession installs a new session state, re-arms or stops the refresh
// timer, and notifies subscribers.
func (c *Cache) setSession(sess *session.Session) {
	c.mu.Lock()
	c.sess = sess
	c.loading = false
	if sess != nil {
		c.armTimerLocked(sess)
	} else {
		c.stopTimerLocked()
	}
	state := State{Session: sess, Loading: false}
	listeners := c.snapshotListenersLocked()
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

func (c *Cache) snapshotListenersLocked() []Listener {
	listeners := make([]Listener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	return listeners
}

func (c *Cache) armTimerLocked(sess *session.Session) {
	c.stopTimerLocked()
	if c.closed {
		return
	}
	delay := time.Until(sess.ExpiresAt) - c.threshold
	if delay < 0 {
		delay = 0
	}
	c.timer = time.AfterFunc(delay, c.refresh)
}

func (c *Cache) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
