// Package config provides type-safe environment variable loading with
// per-type caching.
//
// A .env file is loaded automatically on first use; parsing is done by
// the caarlos0/env library against struct tags:
//
//	type SecurityConfig struct {
//		JWTSecret  string `env:"JWT_SECRET,required"`
//		SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`
//	}
//
//	var cfg SecurityConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Each configuration type is parsed once per process; subsequent Load
// calls for the same type return the cached value.
package config
