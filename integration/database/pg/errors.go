package pg

import "errors"

// Domain-specific PostgreSQL errors for consistent error handling.
var (
	ErrEmptyConnectionURL      = errors.New("empty database connection URL")
	ErrFailedToParseConnString = errors.New("failed to parse database connection string")
	ErrFailedToCreatePool      = errors.New("failed to create connection pool")
	ErrNotReady                = errors.New("database did not become ready within the given time period")
	ErrHealthcheckFailed       = errors.New("database healthcheck failed")
)
