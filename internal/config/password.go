package config

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is bcrypt's input limit. It covers the password and the pepper together.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned when a password plus the pepper exceeds MaxPasswordBytes.
var ErrPasswordTooLong = errors.New("password too long")

// PasswordConfig holds configuration for password hashing and verification.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional global secret for additional security

	dummyOnce sync.Once
	dummyHash []byte
}

// NewPasswordConfig creates a new password configuration from environment variables.
// It reads BCRYPT_COST (default: 12) and optionally PASSWORD_PEPPER.
func NewPasswordConfig() (*PasswordConfig, error) {
	return newPasswordConfig(newViper())
}

func newPasswordConfig(v *viper.Viper) (*PasswordConfig, error) {
	cost, err := strconv.Atoi(v.GetString("bcrypt_cost"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}

	config := &PasswordConfig{
		BcryptCost: cost,
		Pepper:     v.GetString("password_pepper"), // empty if not set
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}
	config.dummyOnce.Do(config.initDummy)

	return config, nil
}

// normalize validates the configuration.
func (c *PasswordConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

func (c *PasswordConfig) peppered(pw string) []byte {
	if c.Pepper != "" {
		return []byte(pw + c.Pepper)
	}
	return []byte(pw)
}

// CheckLength reports ErrPasswordTooLong when pw plus the pepper would exceed
// bcrypt's input limit. Lengths are in bytes, not characters.
func (c *PasswordConfig) CheckLength(pw string) error {
	if len(pw)+len(c.Pepper) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// HashPassword hashes a password using bcrypt (with optional pepper).
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	if err := c.CheckLength(pw); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword(c.peppered(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword verifies a password against a stored hash (with optional pepper).
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), c.peppered(pw))
	return err == nil
}

func (c *PasswordConfig) initDummy() {
	c.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("jobboard-dummy-password"), c.BcryptCost)
}

// BurnVerify runs a full bcrypt comparison against a throwaway hash of the
// configured cost and always reports false. Login calls it for unknown emails
// so both failure paths cost the same. Configs built by NewPasswordConfig have
// the hash ready; struct literals build it on first use.
func (c *PasswordConfig) BurnVerify(pw string) bool {
	c.dummyOnce.Do(c.initDummy)
	_ = bcrypt.CompareHashAndPassword(c.dummyHash, c.peppered(pw))
	return false
}
