//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request CreateUserRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			request: CreateUserRequest{
				Name:     "John Doe",
				Email:    "john@example.com",
				Password: "password123",
				Phone:    "555-0100",
			},
		},
		{
			name: "valid request without phone",
			request: CreateUserRequest{
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Password: "password123",
			},
		},
		{
			name:    "missing name",
			request: CreateUserRequest{Email: "john@example.com", Password: "password123"},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "invalid email",
			request: CreateUserRequest{Name: "John", Email: "not-an-email", Password: "password123"},
			wantErr: true,
			errMsg:  "email",
		},
		{
			name:    "short password",
			request: CreateUserRequest{Name: "John", Email: "john@example.com", Password: "short"},
			wantErr: true,
			errMsg:  "min",
		},
		{
			name: "phone too long",
			request: CreateUserRequest{
				Name:     "John",
				Email:    "john@example.com",
				Password: "password123",
				Phone:    "123456789012345678901",
			},
			wantErr: true,
			errMsg:  "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateUserRequest_Normalize(t *testing.T) {
	req := CreateUserRequest{Name: "  John  ", Email: " John@Example.com", Phone: " 555 "}
	req.Normalize()

	assert.Equal(t, "John", req.Name)
	assert.Equal(t, "555", req.Phone)
	assert.Equal(t, " John@Example.com", req.Email, "email is stored exactly as given")
}

func TestLoginRequest_Validation(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "a@b.com", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "a@b.com"}).Validate())
	assert.Error(t, (&LoginRequest{Password: "x"}).Validate())
}

func TestUser_JSONOmitsNothingSensitive(t *testing.T) {
	user := User{
		ID:        uuid.New(),
		Name:      "John Doe",
		Email:     "john@example.com",
		CreatedAt: time.Now(),
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "password_hash")
	assert.NotContains(t, fields, "phone", "empty phone is omitted")
	assert.Equal(t, "john@example.com", fields["email"])
}
