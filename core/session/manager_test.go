package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saaskit/gatekit/core/session"
)

func TestManager_CreateAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMockStore()
	m := session.NewManager(store, time.Hour)

	userID := uuid.New()
	sess, err := m.Create(ctx, userID, session.WithIPAddress("203.0.113.7"))
	require.NoError(t, err)
	assert.Equal(t, userID, sess.UserID)

	got, err := m.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, got.Token)
	assert.Equal(t, "203.0.113.7", got.IPAddress)
}

func TestManager_GetExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMockStore()
	m := session.NewManager(store, time.Hour)

	sess, err := m.Create(ctx, uuid.New())
	require.NoError(t, err)

	// Stored but just past its deadline: must read as expired even though
	// no backend has cleaned it up.
	expired := sess
	expired.ExpiresAt = time.Now().Add(-time.Millisecond)
	require.NoError(t, store.Store(ctx, expired))

	_, err = m.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrExpired)

	_, err = m.Refresh(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrExpired)
}

func TestManager_Refresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMockStore()
	m := session.NewManager(store, time.Hour)

	sess, err := m.Create(ctx, uuid.New())
	require.NoError(t, err)

	refreshed, err := m.Refresh(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, refreshed.ExpiresAt.Before(sess.ExpiresAt))
	assert.Equal(t, sess.Token, refreshed.Token)

	got, err := store.Retrieve(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, got.ExpiresAt.Equal(refreshed.ExpiresAt))
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMockStore()
	m := session.NewManager(store, time.Hour)

	sess, err := m.Create(ctx, uuid.New())
	require.NoError(t, err)
	require.NoError(t, m.Delete(ctx, sess.ID))

	_, err = m.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestManager_CleanupExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMockStore()
	m := session.NewManager(store, time.Hour)

	live, err := m.Create(ctx, uuid.New())
	require.NoError(t, err)

	dead := newTestSession(t)
	dead.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, store.Store(ctx, dead))

	removed, err := m.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
	assert.True(t, store.has(live.ID))
	assert.False(t, store.has(dead.ID))
}

func TestNewStore_Config(t *testing.T) {
	t.Parallel()

	_, err := session.NewStore(session.Config{Storage: "database"}, nil, nil)
	assert.ErrorIs(t, err, session.ErrInvalidConfig)

	_, err = session.NewStore(session.Config{Storage: "carrier-pigeon"}, nil, nil)
	assert.ErrorIs(t, err, session.ErrInvalidConfig)
}
