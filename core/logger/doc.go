// Package logger provides slog attribute helpers with consistent keys for
// authentication and session events.
//
// Helpers return an empty slog.Attr for nil/zero inputs, so they can be
// passed unconditionally:
//
//	log.Warn("fast session write failed",
//		logger.SessionID(sess.ID),
//		logger.Backend("redis"),
//		logger.Error(err),
//	)
package logger
