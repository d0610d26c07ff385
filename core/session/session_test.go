package session_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saaskit/gatekit/core/session"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("generates identifiers and timestamps", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		sess, err := session.New(userID, time.Hour)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, sess.ID)
		assert.Equal(t, userID, sess.UserID)
		// 32 bytes base64url without padding.
		assert.Len(t, sess.Token, 43)
		assert.False(t, sess.CreatedAt.IsZero())
		assert.Equal(t, sess.CreatedAt, sess.UpdatedAt)
		assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Second)
		assert.Nil(t, sess.User)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]bool)
		for range 100 {
			sess, err := session.New(uuid.New(), time.Hour)
			require.NoError(t, err)
			require.False(t, seen[sess.Token], "duplicate token generated")
			seen[sess.Token] = true
		}
	})

	t.Run("options", func(t *testing.T) {
		t.Parallel()

		user := &session.UserInfo{Email: "jane@example.com", Roles: []string{"admin"}}
		sess, err := session.New(uuid.New(), time.Hour,
			session.WithIPAddress("203.0.113.7"),
			session.WithUserAgent("Mozilla/5.0"),
			session.WithUser(user),
		)
		require.NoError(t, err)

		assert.Equal(t, "203.0.113.7", sess.IPAddress)
		assert.Equal(t, "Mozilla/5.0", sess.UserAgent)
		assert.Equal(t, user, sess.User)
	})
}

func TestSession_IsExpired(t *testing.T) {
	t.Parallel()

	sess, err := session.New(uuid.New(), time.Hour)
	require.NoError(t, err)
	assert.False(t, sess.IsExpired())
	assert.Positive(t, sess.RemainingLifetime())

	// Even a millisecond past the deadline is dead.
	sess.ExpiresAt = time.Now().Add(-time.Millisecond)
	assert.True(t, sess.IsExpired())
	assert.Negative(t, sess.RemainingLifetime())
}
