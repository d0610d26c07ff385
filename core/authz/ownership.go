package authz

// OwnershipChecker decides whether the requesting user may act on the
// resource described by the input. The ownership logic lives with the
// caller; the middleware only enforces the gate.
type OwnershipChecker func(ctx Context, input any) (bool, error)

// RequireOwnership admits the request only when the checker approves it.
// The checker never runs for anonymous requests.
func RequireOwnership(check OwnershipChecker) Middleware {
	return func(next Handler) Handler {
		return func(ctx Context, input any) (any, error) {
			if !ctx.Authenticated() {
				return nil, ErrUnauthenticated
			}
			ok, err := check(ctx, input)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrForbidden.WithMessage("You do not have access to this resource")
			}
			return next(ctx, input)
		}
	}
}

// CheckUserOwnership reports whether the authenticated user is the
// resource owner.
func CheckUserOwnership(ctx Context, ownerID string) bool {
	return ctx.Session != nil && ownerID != "" && ctx.Session.User.ID == ownerID
}

// CheckOwnershipWithAdminOverride is CheckUserOwnership with an automatic
// pass for admins regardless of actual ownership.
func CheckOwnershipWithAdminOverride(ctx Context, ownerID string) bool {
	if ctx.Session != nil && ctx.Session.User.Role == "admin" {
		return true
	}
	return CheckUserOwnership(ctx, ownerID)
}
