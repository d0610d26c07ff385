package session_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saaskit/gatekit/core/session"
)

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	sess, err := session.New(uuid.New(), time.Hour,
		session.WithIPAddress("198.51.100.2"),
		session.WithUser(&session.UserInfo{
			Email:       "jane@example.com",
			Name:        "Jane",
			Roles:       []string{"manager"},
			Permissions: []string{"reports:read"},
			Metadata:    map[string]any{"plan": "pro"},
		}),
	)
	require.NoError(t, err)

	data, err := session.Marshal(sess)
	require.NoError(t, err)

	got, err := session.Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, sess.Token, got.Token)
	assert.Equal(t, sess.IPAddress, got.IPAddress)
	require.NotNil(t, got.User)
	assert.Equal(t, "jane@example.com", got.User.Email)
	assert.Equal(t, []string{"manager"}, got.User.Roles)
	assert.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))
}

func TestMarshal_TimestampFormat(t *testing.T) {
	t.Parallel()

	sess, err := session.New(uuid.New(), time.Hour)
	require.NoError(t, err)

	data, err := session.Marshal(sess)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	expiresAt, ok := raw["expiresAt"].(string)
	require.True(t, ok, "expiresAt must serialize as a string")
	_, err = time.Parse(time.RFC3339Nano, expiresAt)
	assert.NoError(t, err)
}

func TestMarshal_CircularMetadata(t *testing.T) {
	t.Parallel()

	t.Run("self-referencing map", func(t *testing.T) {
		t.Parallel()

		meta := map[string]any{}
		meta["self"] = meta

		sess, err := session.New(uuid.New(), time.Hour,
			session.WithUser(&session.UserInfo{Metadata: meta}))
		require.NoError(t, err)

		_, err = session.Marshal(sess)
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrCircularReference)
		assert.ErrorIs(t, err, session.ErrSerialization)
	})

	t.Run("cycle through a slice", func(t *testing.T) {
		t.Parallel()

		meta := map[string]any{}
		meta["items"] = []any{1, meta}

		sess, err := session.New(uuid.New(), time.Hour,
			session.WithUser(&session.UserInfo{Metadata: meta}))
		require.NoError(t, err)

		_, err = session.Marshal(sess)
		assert.ErrorIs(t, err, session.ErrCircularReference)
	})

	t.Run("shared but acyclic reference is fine", func(t *testing.T) {
		t.Parallel()

		shared := map[string]any{"k": "v"}
		meta := map[string]any{"a": shared, "b": shared}

		sess, err := session.New(uuid.New(), time.Hour,
			session.WithUser(&session.UserInfo{Metadata: meta}))
		require.NoError(t, err)

		_, err = session.Marshal(sess)
		assert.NoError(t, err)
	})
}

func TestUnmarshal_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := session.Unmarshal([]byte("{not json"))
	assert.ErrorIs(t, err, session.ErrSerialization)
}
