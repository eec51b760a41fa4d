package db

import (
	"context"
	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the users, jobs and applications tables when they are
// missing. It is idempotent and safe to run on every startup.
func (db *DB) EnsureSchema(ctx context.Context) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return classify("ensure schema", err)
	}
	return nil
}
