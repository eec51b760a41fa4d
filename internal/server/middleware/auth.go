// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// identityKey is the context key for storing the authenticated identity.
const identityKey ContextKey = "identity"

// AdminKeyHeader carries the operator key for admin routes.
const AdminKeyHeader = "X-Admin-Key"

// TokenValidator is an interface for validating bearer tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

// Identity is the verified caller extracted from a token.
type Identity interface {
	GetUserID() uuid.UUID
	GetEmail() string
}

// AuthMiddleware creates middleware that validates bearer tokens and adds the
// caller identity to the request context. A missing token and an invalid one
// are logged differently but get the same 401 body.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, present := bearerToken(r)
			if !present {
				logrus.WithField("path", r.URL.Path).Debug("auth: token missing")
				unauthorized(w)
				return
			}
			if tokenString == "" {
				logrus.WithField("path", r.URL.Path).Info("auth: malformed authorization header")
				unauthorized(w)
				return
			}

			identity, err := validator.ValidateToken(tokenString)
			if err != nil {
				logrus.WithField("path", r.URL.Path).WithError(err).Info("auth: token rejected")
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header. present is
// false only when no credentials were supplied at all.
func bearerToken(r *http.Request) (token string, present bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	// Handle case-insensitive "Bearer" prefix
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true
	}
	return parts[1], true
}

// AdminMiddleware admits requests whose X-Admin-Key matches key. An empty key
// disables the protected routes entirely.
func AdminMiddleware(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(AdminKeyHeader)
			if key == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(key)) != 1 {
				logrus.WithField("path", r.URL.Path).Info("auth: admin key rejected")
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIdentity extracts the authenticated identity from the request context.
func GetIdentity(r *http.Request) (Identity, error) {
	identity, ok := r.Context().Value(identityKey).(Identity)
	if !ok {
		return nil, fmt.Errorf("identity not found in request context")
	}
	return identity, nil
}

// GetUserID extracts the authenticated user ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, error) {
	identity, err := GetIdentity(r)
	if err != nil {
		return uuid.Nil, err
	}
	return identity.GetUserID(), nil
}

// IdentityKey returns the context key for the identity (for testing purposes).
func IdentityKey() ContextKey {
	return identityKey
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "unauthorized")
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
