package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account row
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
}

// UserCreateInput holds the fields for a new account. PasswordHash must already be hashed.
type UserCreateInput struct {
	Name         string
	Email        string
	Phone        string
	PasswordHash string
}
