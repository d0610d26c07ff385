package session

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/saaskit/gatekit/core/logger"
)

// DualWriteResult reports the per-backend outcome of a hybrid write.
type DualWriteResult struct {
	// Fast is the error from the fast backend, nil on success.
	Fast error
	// Durable is the error from the durable backend, nil on success.
	Durable error
}

// OK reports whether at least one backend accepted the write.
func (r DualWriteResult) OK() bool {
	return r.Fast == nil || r.Durable == nil
}

// Partial reports whether exactly one backend failed.
func (r DualWriteResult) Partial() bool {
	return (r.Fast == nil) != (r.Durable == nil)
}

// HybridStore combines a fast backend (Redis) with a durable backend
// (PostgreSQL). Writes go to both concurrently and succeed if either
// backend accepts them; reads prefer the fast backend and fall back to
// the durable one. Partial failures are logged, not returned.
type HybridStore struct {
	fast    Store
	durable Store
	log     *slog.Logger
}

// HybridOption configures a HybridStore.
type HybridOption func(*HybridStore)

// WithLogger sets the logger for partial-failure and fallback events.
func WithLogger(log *slog.Logger) HybridOption {
	return func(h *HybridStore) {
		if log != nil {
			h.log = log
		}
	}
}

// NewHybridStore creates a dual-backend session store.
func NewHybridStore(fast, durable Store, opts ...HybridOption) *HybridStore {
	h := &HybridStore{
		fast:    fast,
		durable: durable,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Store writes the session to both backends.
func (h *HybridStore) Store(ctx context.Context, sess Session) error {
	_, err := h.StoreWithResult(ctx, sess)
	return err
}

// StoreWithResult writes the session to both backends and reports the
// per-backend outcome. The error is non-nil only when both backends fail.
func (h *HybridStore) StoreWithResult(ctx context.Context, sess Session) (DualWriteResult, error) {
	return h.dualWrite(ctx, "store", sess.ID, func(s Store) error {
		return s.Store(ctx, sess)
	})
}

// Update applies a partial update to both backends.
func (h *HybridStore) Update(ctx context.Context, id uuid.UUID, upd Update) error {
	_, err := h.UpdateWithResult(ctx, id, upd)
	return err
}

// UpdateWithResult applies a partial update to both backends and reports
// the per-backend outcome.
func (h *HybridStore) UpdateWithResult(ctx context.Context, id uuid.UUID, upd Update) (DualWriteResult, error) {
	return h.dualWrite(ctx, "update", id, func(s Store) error {
		return s.Update(ctx, id, upd)
	})
}

// Delete removes the session from both backends.
func (h *HybridStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := h.DeleteWithResult(ctx, id)
	return err
}

// DeleteWithResult removes the session from both backends and reports the
// per-backend outcome.
func (h *HybridStore) DeleteWithResult(ctx context.Context, id uuid.UUID) (DualWriteResult, error) {
	return h.dualWrite(ctx, "delete", id, func(s Store) error {
		return s.Delete(ctx, id)
	})
}

// dualWrite runs the operation against both backends concurrently.
// Best-effort semantics: one healthy backend is enough.
func (h *HybridStore) dualWrite(ctx context.Context, op string, id uuid.UUID, fn func(Store) error) (DualWriteResult, error) {
	var res DualWriteResult

	var g errgroup.Group
	g.Go(func() error {
		res.Fast = fn(h.fast)
		return nil
	})
	g.Go(func() error {
		res.Durable = fn(h.durable)
		return nil
	})
	_ = g.Wait()

	if res.Fast != nil && res.Durable != nil {
		if errors.Is(res.Fast, ErrNotFound) && errors.Is(res.Durable, ErrNotFound) {
			return res, ErrNotFound
		}
		return res, errors.Join(ErrStorageFailure, res.Fast, res.Durable)
	}

	if res.Fast != nil {
		h.log.WarnContext(ctx, "fast session write failed",
			logger.Backend("fast"),
			logger.Operation(op),
			logger.SessionID(id),
			logger.Error(res.Fast),
		)
	}
	if res.Durable != nil {
		h.log.WarnContext(ctx, "durable session write failed",
			logger.Backend("durable"),
			logger.Operation(op),
			logger.SessionID(id),
			logger.Error(res.Durable),
		)
	}
	return res, nil
}

// Retrieve reads from the fast backend first and falls back to the
// durable backend on a miss or fast-backend failure.
func (h *HybridStore) Retrieve(ctx context.Context, id uuid.UUID) (*Session, error) {
	sess, fastErr := h.fast.Retrieve(ctx, id)
	switch {
	case fastErr == nil:
		return sess, nil
	case errors.Is(fastErr, ErrNotFound):
		// Miss is the normal path after a TTL eviction, no logging.
	default:
		h.log.WarnContext(ctx, "fast session read failed, falling back",
			logger.Backend("fast"),
			logger.SessionID(id),
			logger.Error(fastErr),
		)
	}

	sess, durableErr := h.durable.Retrieve(ctx, id)
	if durableErr != nil {
		if errors.Is(durableErr, ErrNotFound) {
			return nil, ErrNotFound
		}
		if fastErr != nil && !errors.Is(fastErr, ErrNotFound) {
			return nil, errors.Join(ErrStorageFailure, fastErr, durableErr)
		}
		return nil, durableErr
	}
	return sess, nil
}

// Cleanup removes expired rows from the durable backend. The fast backend
// expires keys natively.
func (h *HybridStore) Cleanup(ctx context.Context) (int64, error) {
	return h.durable.Cleanup(ctx)
}

// Close closes both backends.
func (h *HybridStore) Close() error {
	return errors.Join(h.fast.Close(), h.durable.Close())
}
