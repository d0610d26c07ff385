package sessiontransport

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/saaskit/gatekit/core/authz"
	"github.com/saaskit/gatekit/pkg/jwt"
)

// JWT transports sessions over an Authorization bearer token. The
// verified claims are the identity source; no store lookup happens,
// which keeps API requests stateless.
type JWT struct {
	service *jwt.Service
}

// NewJWT creates a bearer-token session transport.
func NewJWT(service *jwt.Service) *JWT {
	return &JWT{service: service}
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoCredentials
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", ErrInvalidCredentials
	}
	return token, nil
}

// Resolve verifies the request's bearer token and returns the identity
// carried in its claims.
func (t *JWT) Resolve(r *http.Request) (*authz.SessionInfo, error) {
	token, err := BearerToken(r)
	if err != nil {
		return nil, err
	}

	payload, err := t.service.Verify(token)
	if err != nil {
		return nil, errors.Join(ErrInvalidCredentials, err)
	}
	return ClaimsInfo(payload), nil
}

// Context resolves the request into an authorization context. Requests
// without a valid token get an anonymous context.
func (t *JWT) Context(ctx context.Context, r *http.Request) authz.Context {
	info, err := t.Resolve(r)
	if err != nil {
		return authz.NewContext(ctx, nil)
	}
	return authz.NewContext(ctx, info)
}
