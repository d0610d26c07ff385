// Package sessioncache keeps one process-wide session in memory so that
// every consumer shares a single source of truth instead of hitting the
// auth backend independently.
//
// The cache deduplicates concurrent fetches (one network call regardless
// of how many callers ask at once), notifies subscribers on every state
// change, and refreshes the session proactively before it expires:
//
//	cache := sessioncache.New(fetcher)
//	defer cache.Close()
//
//	unsubscribe := cache.Subscribe(func(s sessioncache.State) {
//		// replayed immediately, then on every change
//	})
//	defer unsubscribe()
//
//	sess, err := cache.Get(ctx)
//
// A refresh timer fires at ExpiresAt minus the refresh threshold
// (15 minutes by default). A successful refresh re-arms the timer; a
// failed one clears the session and notifies subscribers, which is a
// local sign-out. A periodic liveness check re-evaluates the threshold
// in case the session state changed underneath the armed timer.
package sessioncache
