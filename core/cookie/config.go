package cookie

import (
	"net/http"
	"strings"
)

// Config provides environment-based configuration for the cookie manager.
type Config struct {
	Secrets     string        `env:"COOKIE_SECRETS" envDefault:""`
	Environment string        `env:"APP_ENV" envDefault:"development"`
	Name        string        `env:"SESSION_COOKIE_NAME" envDefault:"gatekit_session"`
	Domain      string        `env:"COOKIE_DOMAIN" envDefault:""`
	Path        string        `env:"COOKIE_PATH" envDefault:"/"`
	MaxAge      int           `env:"COOKIE_MAX_AGE" envDefault:"604800"` // 7 days
	SameSite    http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"3"`    // SameSiteStrictMode
}

// DefaultConfig returns a Config with secure defaults.
func DefaultConfig() Config {
	return Config{
		Environment: "development",
		Name:        DefaultSessionCookieName,
		Path:        "/",
		MaxAge:      int(DefaultMaxAge.Seconds()),
		SameSite:    http.SameSiteStrictMode,
	}
}

// parseSecrets splits comma-separated secrets for key rotation support.
func (c Config) parseSecrets() []string {
	if c.Secrets == "" {
		return nil
	}

	parts := strings.Split(c.Secrets, ",")
	secrets := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}

// NewFromConfig creates a Manager from configuration. The environment
// drives the Secure/Domain defaults via SecureOptions.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	base := SecureOptions(cfg.Environment, cfg.Domain)

	configOpts := []Option{
		WithSecure(base.Secure),
		WithDomain(base.Domain),
		WithHTTPOnly(true),
	}
	if cfg.Path != "" {
		configOpts = append(configOpts, WithPath(cfg.Path))
	}
	if cfg.MaxAge != 0 {
		configOpts = append(configOpts, WithMaxAge(cfg.MaxAge))
	}
	if cfg.SameSite != 0 {
		configOpts = append(configOpts, WithSameSite(cfg.SameSite))
	}

	configOpts = append(configOpts, opts...)

	return New(cfg.parseSecrets(), configOpts...)
}
