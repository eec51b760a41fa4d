package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// User Methods
// -----------------------------------------------------------------------------

const userColumns = `id, name, email, phone, password_hash, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new account. A duplicate email yields a *ConflictError
// on UsersEmailKey.
func (db *DB) CreateUser(ctx context.Context, input *UserCreateInput) (*User, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	u, err := scanUser(db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, phone, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		input.Name, input.Email, input.Phone, input.PasswordHash,
	))
	if err != nil {
		return nil, classify("create user", err)
	}
	return u, nil
}

// GetUser retrieves a user by ID, or nil if it does not exist
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get user", err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by exact (case-sensitive) email, or nil if none matches
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, nil
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get user by email", err)
	}
	return u, nil
}

// CheckEmailExists reports whether an account already uses email
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, classify("check email", err)
	}
	return exists, nil
}

// CountUsers returns the number of accounts
func (db *DB) CountUsers(ctx context.Context) (int64, error) {
	return db.count(ctx, "count users", `SELECT COUNT(*) FROM users`)
}
