package ratelimiter

import (
	"context"
	"time"
)

// Config holds the sliding-window parameters.
type Config struct {
	// Limit is the maximum number of requests allowed per window.
	Limit int `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	// Window is the sliding window size.
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
}

// DefaultConfig returns the default limits: 100 requests per 15 minutes.
func DefaultConfig() Config {
	return Config{
		Limit:  100,
		Window: 15 * time.Minute,
	}
}

// Validate checks configuration sanity.
func (c Config) Validate() error {
	if c.Limit <= 0 || c.Window <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Result reports the outcome of a rate-limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns how long the caller should wait before retrying.
// Zero when the request was allowed or the window has already cleared.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Store is the shared counter backend. Increment must be atomic so that
// concurrent checks across processes observe a consistent count.
type Store interface {
	// Increment advances the counter for key within the current window and
	// returns the post-increment count together with the window reset time.
	Increment(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
	// Reset clears the counter for key.
	Reset(ctx context.Context, key string) error
}

// Limiter counts requests per identifier over a sliding window backed by a
// shared atomic counter store.
type Limiter struct {
	store Store
	cfg   Config
}

// New creates a limiter over the given store.
func New(store Store, cfg Config) (*Limiter, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Limiter{store: store, cfg: cfg}, nil
}

// Check records one request for the identifier and reports whether it is
// within the limit. When denied, Result.ResetAt tells the caller when the
// window clears.
func (l *Limiter) Check(ctx context.Context, identifier string) (Result, error) {
	count, resetAt, err := l.store.Increment(ctx, identifier, l.cfg.Window)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Allowed:   count <= int64(l.cfg.Limit),
		Limit:     l.cfg.Limit,
		Remaining: max(0, l.cfg.Limit-int(count)),
		ResetAt:   resetAt,
	}, nil
}

// Reset clears the counter for an identifier, e.g. for administrative
// overrides.
func (l *Limiter) Reset(ctx context.Context, identifier string) error {
	return l.store.Reset(ctx, identifier)
}
