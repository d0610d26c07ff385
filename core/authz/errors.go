package authz

import "net/http"

// Error represents a structured authorization failure that implements the
// error interface. Status and Code give transports a stable mapping;
// Details carries machine-readable context such as retry timing.
type Error struct {
	Status  int            `json:"-"`                 // HTTP status code (not in JSON)
	Code    string         `json:"code"`              // Machine-readable error code
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Optional context
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error with a custom message.
func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e Error) WithDetails(details map[string]any) Error {
	e.Details = details
	return e
}

// Is matches errors by Code so customized copies still compare equal to
// their base value with errors.Is.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && e.Code == t.Code
}

// Denial taxonomy for the middleware chain. Every middleware failure is
// one of these values, possibly with a customized message or details.
var (
	// ErrUnauthenticated means no valid session or user was present.
	ErrUnauthenticated = Error{Status: http.StatusUnauthorized, Code: "UNAUTHENTICATED", Message: "Authentication required"}
	// ErrForbidden means the authenticated identity lacks the required
	// role, scope, or ownership.
	ErrForbidden = Error{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: "Insufficient permissions"}
	// ErrTooManyRequests means the rate limit was exceeded. Details carry
	// retry_after_seconds and reset_time.
	ErrTooManyRequests = Error{Status: http.StatusTooManyRequests, Code: "TOO_MANY_REQUESTS", Message: "Too many requests"}
)
