// Package db provides PostgreSQL storage for users, jobs and applications.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTimeout bounds every store call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// Connect establishes a connection pool to the database. Every subsequent
// call made through the returned DB is bounded by timeout.
func Connect(ctx context.Context, databaseURL string, timeout time.Duration) (*DB, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{pool: pool, timeout: timeout}

	// Verify connection
	if err := db.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	if err := db.pool.Ping(ctx); err != nil {
		return classify("ping", err)
	}
	return nil
}

// withTimeout derives the per-call deadline.
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.timeout)
}
