// Package pg provides PostgreSQL connection pool initialization with
// connection validation and health checking.
//
// Connect parses the connection URL into a pgxpool configuration, dials
// with exponential-backoff retries, and verifies connectivity with a
// ping before returning the pool. The pool backs the durable session
// store; session.Migrate applies its schema.
//
//	cfg := pg.Config{ConnectionURL: os.Getenv("DATABASE_URL"), MaxConns: 10,
//		RetryAttempts: 3, RetryInterval: 5 * time.Second, ConnectTimeout: 30 * time.Second}
//	pool, err := pg.Connect(ctx, cfg)
package pg
