package sessiontransport

import (
	"github.com/saaskit/gatekit/core/authz"
	"github.com/saaskit/gatekit/core/session"
	"github.com/saaskit/gatekit/pkg/jwt"
)

// SessionInfo converts a stored session to its authorization projection.
// The first role becomes the coarse role; permissions become scopes.
func SessionInfo(sess session.Session) *authz.SessionInfo {
	info := &authz.SessionInfo{
		ID:        sess.ID.String(),
		ExpiresAt: sess.ExpiresAt,
		User:      authz.User{ID: sess.UserID.String()},
	}
	if u := sess.User; u != nil {
		info.User.Email = u.Email
		if len(u.Roles) > 0 {
			info.User.Role = u.Roles[0]
		}
		info.User.Scopes = u.Permissions
		info.User.Extra = u.Metadata
	}
	return info
}

// ClaimsInfo builds the authorization projection from verified token
// claims, without a store lookup.
func ClaimsInfo(payload jwt.Payload) *authz.SessionInfo {
	info := &authz.SessionInfo{
		ID: payload.SessionID,
		User: authz.User{
			ID:     payload.UserID,
			Scopes: payload.Permissions,
		},
	}
	if len(payload.Roles) > 0 {
		info.User.Role = payload.Roles[0]
	}
	if payload.TenantID != "" {
		info.User.Extra = map[string]any{"tenantId": payload.TenantID}
	}
	if payload.ExpiresAt != nil {
		info.ExpiresAt = payload.ExpiresAt.Time
	}
	return info
}
