package sessioncache

import (
	"log/slog"
	"time"
)

// Option configures a Cache.
type Option func(*Cache)

// WithRefreshThreshold sets how close to expiry a session gets before a
// proactive refresh runs. Non-positive values are ignored.
func WithRefreshThreshold(threshold time.Duration) Option {
	return func(c *Cache) {
		if threshold > 0 {
			c.threshold = threshold
		}
	}
}

// WithCheckInterval sets the period of the liveness check.
// Non-positive values are ignored.
func WithCheckInterval(interval time.Duration) Option {
	return func(c *Cache) {
		if interval > 0 {
			c.interval = interval
		}
	}
}

// WithLogger sets the logger for refresh failures.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}
