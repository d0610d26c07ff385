// Package session provides server-side session persistence with
// interchangeable storage backends.
//
// A Session carries a stable ID, a 256-bit random token, the owning
// user ID, and an optional denormalized UserInfo projection so that
// authorization checks do not need a user lookup.
//
// # Backends
//
// Three Store implementations cover the common deployment shapes:
//
//   - PGStore: durable rows in PostgreSQL, cleaned up by Cleanup.
//   - RedisStore: JSON values with TTL equal to the remaining session
//     lifetime, expired natively by Redis.
//   - HybridStore: both at once. Writes go to both backends
//     concurrently and succeed if either accepts them; reads prefer
//     Redis and fall back to PostgreSQL. Partial failures are logged,
//     not surfaced.
//
// The backend is usually selected from the environment:
//
//	cfg := session.DefaultConfig() // or env.Parse into session.Config
//	store, err := session.NewStore(cfg, pool, redisClient)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManager(store, cfg.TTL)
//
// # Lifecycle
//
// Manager covers the full lifecycle:
//
//	sess, err := manager.Create(ctx, userID,
//		session.WithIPAddress(ip),
//		session.WithUserAgent(ua),
//	)
//	sess, err = manager.Get(ctx, sess.ID)     // ErrExpired once past ExpiresAt
//	sess, err = manager.Refresh(ctx, sess.ID) // extends by the manager TTL
//	err = manager.Delete(ctx, sess.ID)        // sign-out
//
// Expiration is enforced on read: a session whose ExpiresAt has passed is
// invalid immediately, whether or not a backend has deleted it yet.
//
// # Schema
//
// Migrate applies the embedded goose migrations that create the sessions
// table used by PGStore.
package session
