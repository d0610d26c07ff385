package sessiontransport

import "errors"

var (
	// ErrNoCredentials is returned when the request carries no session
	// cookie or bearer token.
	ErrNoCredentials = errors.New("no session credentials in request")
	// ErrInvalidCredentials is returned when the carried credentials fail
	// signature or format validation.
	ErrInvalidCredentials = errors.New("invalid session credentials")
)
