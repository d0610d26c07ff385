package session

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Storage backend selectors for Config.Storage.
const (
	StorageDatabase = "database"
	StorageRedis    = "redis"
	StorageHybrid   = "hybrid"
)

// Config holds session storage configuration.
type Config struct {
	// TTL is the session time-to-live (default 7 days).
	TTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	// Storage selects the backend: database, redis, or hybrid.
	Storage string `env:"SESSION_STORAGE" envDefault:"database"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		TTL:     168 * time.Hour,
		Storage: StorageDatabase,
	}
}

// NewStore builds the configured store from the available connections.
// The hybrid backend uses Redis as the fast tier and PostgreSQL as the
// durable tier.
func NewStore(cfg Config, pool *pgxpool.Pool, client redis.UniversalClient, opts ...HybridOption) (Store, error) {
	switch cfg.Storage {
	case StorageDatabase:
		if pool == nil {
			return nil, fmt.Errorf("%w: database storage requires a pg pool", ErrInvalidConfig)
		}
		return NewPGStore(pool), nil
	case StorageRedis:
		if client == nil {
			return nil, fmt.Errorf("%w: redis storage requires a redis client", ErrInvalidConfig)
		}
		return NewRedisStore(client), nil
	case StorageHybrid:
		if pool == nil || client == nil {
			return nil, fmt.Errorf("%w: hybrid storage requires both pg and redis", ErrInvalidConfig)
		}
		return NewHybridStore(NewRedisStore(client), NewPGStore(pool), opts...), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage type %q", ErrInvalidConfig, cfg.Storage)
	}
}
