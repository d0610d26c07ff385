package authz_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saaskit/gatekit/core/authz"
)

func authedCtx(user authz.User) authz.Context {
	return authz.NewContext(context.Background(), &authz.SessionInfo{
		ID:        "sess-1",
		User:      user,
		ExpiresAt: time.Now().Add(time.Hour),
	})
}

func anonCtx() authz.Context {
	return authz.NewContext(context.Background(), nil)
}

func okHandler(result any) authz.Handler {
	return func(ctx authz.Context, input any) (any, error) {
		return result, nil
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	handler := authz.RequireRole("admin")(okHandler("deleted"))

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		t.Parallel()

		_, err := handler(anonCtx(), nil)
		assert.ErrorIs(t, err, authz.ErrUnauthenticated)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		t.Parallel()

		_, err := handler(authedCtx(authz.User{ID: "u1", Role: "user"}), nil)
		require.ErrorIs(t, err, authz.ErrForbidden)

		var authzErr authz.Error
		require.ErrorAs(t, err, &authzErr)
		assert.Equal(t, 403, authzErr.Status)
		assert.Equal(t, "FORBIDDEN", authzErr.Code)
	})

	t.Run("matching role passes the result through unchanged", func(t *testing.T) {
		t.Parallel()

		out, err := handler(authedCtx(authz.User{ID: "u1", Role: "admin"}), nil)
		require.NoError(t, err)
		assert.Equal(t, "deleted", out)
	})

	t.Run("expired session is unauthenticated", func(t *testing.T) {
		t.Parallel()

		ctx := authz.NewContext(context.Background(), &authz.SessionInfo{
			User:      authz.User{ID: "u1", Role: "admin"},
			ExpiresAt: time.Now().Add(-time.Millisecond),
		})
		_, err := handler(ctx, nil)
		assert.ErrorIs(t, err, authz.ErrUnauthenticated)
	})
}

func TestRoleConveniences(t *testing.T) {
	t.Parallel()

	admin := authz.RequireAdmin(okHandler("ok"))
	_, err := admin(authedCtx(authz.User{Role: "manager"}), nil)
	assert.ErrorIs(t, err, authz.ErrForbidden)
	_, err = admin(authedCtx(authz.User{Role: "admin"}), nil)
	assert.NoError(t, err)

	managerial := authz.RequireManagerOrAdmin(okHandler("ok"))
	for _, role := range []string{"admin", "manager"} {
		_, err := managerial(authedCtx(authz.User{Role: role}), nil)
		assert.NoError(t, err, "role %q", role)
	}
	_, err = managerial(authedCtx(authz.User{Role: "user"}), nil)
	assert.ErrorIs(t, err, authz.ErrForbidden)
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) authz.Middleware {
		return func(next authz.Handler) authz.Handler {
			return func(ctx authz.Context, input any) (any, error) {
				order = append(order, name)
				return next(ctx, input)
			}
		}
	}

	handler := authz.Chain(tag("first"), tag("second"), tag("third"))(okHandler("done"))
	out, err := handler(anonCtx(), nil)
	require.NoError(t, err)
	assert.Equal(t, "done", out)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestChain_ShortCircuits(t *testing.T) {
	t.Parallel()

	var handlerRan bool
	handler := authz.Chain(
		authz.RequireRole("admin"),
		authz.RequireScope("notes:delete"),
	)(func(ctx authz.Context, input any) (any, error) {
		handlerRan = true
		return nil, nil
	})

	_, err := handler(authedCtx(authz.User{Role: "user"}), nil)
	assert.ErrorIs(t, err, authz.ErrForbidden)
	assert.False(t, handlerRan, "handler must not run after a denial")
}

func TestConditional(t *testing.T) {
	t.Parallel()

	adminOnly := authz.Conditional(
		func(ctx authz.Context, input any) bool {
			destructive, _ := input.(bool)
			return destructive
		},
		authz.RequireRole("admin"),
	)(okHandler("ok"))

	// Predicate false: passes straight through, no policy applied.
	_, err := adminOnly(authedCtx(authz.User{Role: "user"}), false)
	assert.NoError(t, err)

	// Predicate true: the guarded middleware applies.
	_, err = adminOnly(authedCtx(authz.User{Role: "user"}), true)
	assert.ErrorIs(t, err, authz.ErrForbidden)
}

func TestError_Taxonomy(t *testing.T) {
	t.Parallel()

	customized := authz.ErrForbidden.WithMessage("no").WithDetails(map[string]any{"k": "v"})
	assert.ErrorIs(t, customized, authz.ErrForbidden)
	assert.Equal(t, "no", customized.Error())
	assert.NotErrorIs(t, customized, authz.ErrUnauthenticated)

	// The base values stay untouched by customization.
	assert.Equal(t, "Insufficient permissions", authz.ErrForbidden.Message)
	assert.Nil(t, authz.ErrForbidden.Details)
}
