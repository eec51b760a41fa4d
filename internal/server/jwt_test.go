package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()

	token, err := service.GenerateToken(userID, "ann@example.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	assert.Len(t, parts, 3, "JWT should have 3 parts separated by dots")

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_ValidateToken_Missing(t *testing.T) {
	service := setupTestJWTService(t, 24)

	_, err := service.ValidateToken("")
	var missing *ErrTokenMissing
	assert.ErrorAs(t, err, &missing)
}

func TestJWTService_ValidateToken_Invalid(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()
	valid, err := service.GenerateToken(userID, "a@example.com")
	require.NoError(t, err)

	foreign := setupTestJWTService(t, 24)
	foreign.config.Secret = "a-completely-different-secret-value-32b"
	foreignToken, err := foreign.GenerateToken(userID, "a@example.com")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: userID}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"tampered signature", valid[:len(valid)-2] + "xx"},
		{"foreign secret", foreignToken},
		{"alg none", noneToken},
		{"wrong hmac algorithm", hs512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token)
			var invalid *ErrTokenInvalid
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	service := setupTestJWTService(t, 24)
	issued := time.Now().Add(-25 * time.Hour)
	service.now = func() time.Time { return issued }

	token, err := service.GenerateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	service.now = time.Now
	_, err = service.ValidateToken(token)
	var invalid *ErrTokenInvalid
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "expired", invalid.Reason)
}

func TestJWTService_ValidateToken_JustBeforeExpiry(t *testing.T) {
	service := setupTestJWTService(t, 24)
	issued := time.Now().Add(-23*time.Hour - 59*time.Minute)
	service.now = func() time.Time { return issued }

	token, err := service.GenerateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	service.now = time.Now
	_, err = service.ValidateToken(token)
	assert.NoError(t, err)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 1)
	userID := uuid.New()
	token, err := service.GenerateToken(userID, "a@example.com")
	require.NoError(t, err)

	identity, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.GetUserID())
	assert.Equal(t, "a@example.com", identity.GetEmail())

	_, err = service.AsTokenValidator().ValidateToken("bogus")
	assert.Error(t, err)
}
