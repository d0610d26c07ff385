package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists sessions in PostgreSQL via pgx. It is the durable
// backend: sessions survive restarts and expired rows are removed by
// Cleanup rather than by TTL.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a PostgreSQL-backed session store. The pool is owned
// by the caller; Close does not shut it down.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

const upsertSessionQuery = `
INSERT INTO sessions (id, user_id, token, user_info, ip_address, user_agent, expires_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
    token = EXCLUDED.token,
    user_info = EXCLUDED.user_info,
    ip_address = EXCLUDED.ip_address,
    user_agent = EXCLUDED.user_agent,
    expires_at = EXCLUDED.expires_at,
    updated_at = EXCLUDED.updated_at`

// Store persists a session, overwriting any existing row with the same ID.
func (s *PGStore) Store(ctx context.Context, sess Session) error {
	userInfo, err := marshalUserInfo(sess.User)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, upsertSessionQuery,
		sess.ID, sess.UserID, sess.Token, userInfo,
		sess.IPAddress, sess.UserAgent,
		sess.ExpiresAt, sess.CreatedAt, sess.UpdatedAt,
	)
	return err
}

const selectSessionQuery = `
SELECT id, user_id, token, user_info, ip_address, user_agent, expires_at, created_at, updated_at
FROM sessions
WHERE id = $1`

// Retrieve loads a session by ID.
func (s *PGStore) Retrieve(ctx context.Context, id uuid.UUID) (*Session, error) {
	var (
		sess     Session
		userInfo []byte
	)
	err := s.pool.QueryRow(ctx, selectSessionQuery, id).Scan(
		&sess.ID, &sess.UserID, &sess.Token, &userInfo,
		&sess.IPAddress, &sess.UserAgent,
		&sess.ExpiresAt, &sess.CreatedAt, &sess.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if len(userInfo) > 0 {
		var info UserInfo
		if err := json.Unmarshal(userInfo, &info); err != nil {
			return nil, errors.Join(ErrSerialization, err)
		}
		sess.User = &info
	}
	return &sess, nil
}

// Update applies a partial update to a stored session.
func (s *PGStore) Update(ctx context.Context, id uuid.UUID, upd Update) error {
	if upd.isZero() {
		// Still verify the session exists so callers get a consistent answer.
		_, err := s.Retrieve(ctx, id)
		return err
	}

	sets := make([]string, 0, 6)
	args := []any{id}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Token != nil {
		set("token", *upd.Token)
	}
	if upd.ExpiresAt != nil {
		set("expires_at", *upd.ExpiresAt)
	}
	if upd.IPAddress != nil {
		set("ip_address", *upd.IPAddress)
	}
	if upd.UserAgent != nil {
		set("user_agent", *upd.UserAgent)
	}
	if upd.User != nil {
		userInfo, err := marshalUserInfo(upd.User)
		if err != nil {
			return err
		}
		set("user_info", userInfo)
	}
	sets = append(sets, "updated_at = now()")

	query := "UPDATE sessions SET " + strings.Join(sets, ", ") + " WHERE id = $1"
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a session row.
func (s *PGStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Cleanup deletes all expired session rows and returns the count removed.
func (s *PGStore) Cleanup(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Close is a no-op; the connection pool lifecycle belongs to the caller.
func (s *PGStore) Close() error {
	return nil
}

func marshalUserInfo(info *UserInfo) ([]byte, error) {
	if info == nil {
		return nil, nil
	}
	if hasCycle(reflect.ValueOf(info.Metadata), make(map[uintptr]struct{})) {
		return nil, errors.Join(ErrSerialization, ErrCircularReference)
	}
	data, err := json.Marshal(info)
	if err != nil {
		return nil, errors.Join(ErrSerialization, err)
	}
	return data, nil
}
