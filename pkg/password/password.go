package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrEmptyPassword is returned when hashing an empty password.
	ErrEmptyPassword = errors.New("password must not be empty")
	// ErrInvalidHash is returned when the hash string cannot be parsed.
	ErrInvalidHash = errors.New("invalid password hash format")
	// ErrIncompatibleVersion is returned when the hash was produced by an unsupported argon2 version.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// specialChars is the accepted special-character set for strength validation.
const specialChars = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"

// Config holds Argon2id cost parameters.
// The defaults follow OWASP recommendations for interactive logins.
type Config struct {
	MemoryCost  uint32 `env:"PASSWORD_MEMORY_COST" envDefault:"65536"` // KiB, 64 MiB
	TimeCost    uint32 `env:"PASSWORD_TIME_COST" envDefault:"3"`
	Parallelism uint8  `env:"PASSWORD_PARALLELISM" envDefault:"4"`
	SaltLength  uint32 `env:"PASSWORD_SALT_LENGTH" envDefault:"16"`
	KeyLength   uint32 `env:"PASSWORD_KEY_LENGTH" envDefault:"32"`
}

// DefaultConfig returns the default Argon2id parameters.
func DefaultConfig() Config {
	return Config{
		MemoryCost:  64 * 1024,
		TimeCost:    3,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hasher hashes and verifies passwords using Argon2id.
// The produced hash string is self-describing: it embeds the algorithm,
// its parameters and the salt, so verification needs no external config.
type Hasher struct {
	cfg Config
}

// Option configures a Hasher.
type Option func(*Config)

// WithMemoryCost sets the memory cost in KiB.
func WithMemoryCost(kib uint32) Option {
	return func(c *Config) {
		if kib > 0 {
			c.MemoryCost = kib
		}
	}
}

// WithTimeCost sets the number of iterations.
func WithTimeCost(iterations uint32) Option {
	return func(c *Config) {
		if iterations > 0 {
			c.TimeCost = iterations
		}
	}
}

// WithParallelism sets the number of lanes.
func WithParallelism(lanes uint8) Option {
	return func(c *Config) {
		if lanes > 0 {
			c.Parallelism = lanes
		}
	}
}

// New creates a Hasher with default parameters, optionally adjusted.
func New(opts ...Option) *Hasher {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Hasher{cfg: cfg}
}

// NewFromConfig creates a Hasher from configuration.
// Zero values fall back to defaults to avoid degenerate parameters.
func NewFromConfig(cfg Config) *Hasher {
	def := DefaultConfig()
	if cfg.MemoryCost == 0 {
		cfg.MemoryCost = def.MemoryCost
	}
	if cfg.TimeCost == 0 {
		cfg.TimeCost = def.TimeCost
	}
	if cfg.Parallelism == 0 {
		cfg.Parallelism = def.Parallelism
	}
	if cfg.SaltLength == 0 {
		cfg.SaltLength = def.SaltLength
	}
	if cfg.KeyLength == 0 {
		cfg.KeyLength = def.KeyLength
	}
	return &Hasher{cfg: cfg}
}

// Hash derives an Argon2id hash of the password in PHC string format:
// $argon2id$v=19$m=65536,t=3,p=4$<base64 salt>$<base64 key>
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, h.cfg.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.cfg.TimeCost, h.cfg.MemoryCost, h.cfg.Parallelism, h.cfg.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.cfg.MemoryCost,
		h.cfg.TimeCost,
		h.cfg.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches the given hash.
// The parameters embedded in the hash are used for re-derivation, and the
// final comparison is constant-time regardless of where the hashes differ.
func (h *Hasher) Verify(hash, password string) (bool, error) {
	salt, key, params, err := decodeHash(hash)
	if err != nil {
		return false, err
	}

	derived := argon2.IDKey([]byte(password), salt, params.TimeCost, params.MemoryCost, params.Parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, derived) == 1, nil
}

// ValidateStrength reports whether the password satisfies all strength rules:
// at least 8 characters, one uppercase, one lowercase, one digit and one
// special character. Every rule is evaluated; failing any one fails the check.
func ValidateStrength(password string) bool {
	minLength := len(password) >= 8

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	return minLength && hasUpper && hasLower && hasDigit && hasSpecial
}

// decodeHash parses a PHC-formatted Argon2id hash string.
func decodeHash(hash string) (salt, key []byte, cfg Config, err error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, cfg, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, cfg, ErrInvalidHash
	}
	if version != argon2.Version {
		return nil, nil, cfg, ErrIncompatibleVersion
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &cfg.MemoryCost, &cfg.TimeCost, &cfg.Parallelism); err != nil {
		return nil, nil, cfg, ErrInvalidHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, cfg, ErrInvalidHash
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, cfg, ErrInvalidHash
	}

	return salt, key, cfg, nil
}
