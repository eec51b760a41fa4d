package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/db/memdb"
	"github.com/jonathan/jobboard/internal/server/middleware"
	"github.com/jonathan/jobboard/internal/server/ratelimit"
	"github.com/jonathan/jobboard/internal/types"
)

const (
	testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"
	testAdminKey  = "test-admin-key"
)

func testPasswordConfig() *config.PasswordConfig {
	return &config.PasswordConfig{BcryptCost: bcrypt.MinCost}
}

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          testJWTSecret,
		ExpirationHours: expirationHours,
	})
}

// recordingNotifier captures events handed to it.
type recordingNotifier struct {
	mu     sync.Mutex
	events []types.ApplicationEvent
}

func (n *recordingNotifier) ApplicationSubmitted(_ context.Context, event types.ApplicationEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []types.ApplicationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]types.ApplicationEvent(nil), n.events...)
}

type testServer struct {
	*Server
	store    *memdb.Store
	notifier *recordingNotifier
}

// setupTestServer builds a server over an in-memory store with rate limiting disabled.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memdb.New()
	notifier := &recordingNotifier{}
	srv := New(Config{
		Port:        0,
		AdminAPIKey: testAdminKey,
		JWT:         &config.JWTConfig{Secret: testJWTSecret, ExpirationHours: 24},
		Password:    testPasswordConfig(),
		RateLimit:   &ratelimit.Config{Enabled: false},
	}, store, notifier)
	t.Cleanup(srv.rateLimiter.Stop)
	return &testServer{Server: srv, store: store, notifier: notifier}
}

type requestOption func(*http.Request)

func withToken(token string) requestOption {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withAdminKey(key string) requestOption {
	return func(r *http.Request) { r.Header.Set(middleware.AdminKeyHeader, key) }
}

func (ts *testServer) do(t *testing.T, method, path string, body any, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its token and id.
func (ts *testServer) register(t *testing.T, name, email string) (string, uuid.UUID) {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/auth/register", types.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: "password123",
		Phone:    "555-0101",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}

// createJob posts a job through the API and returns it.
func (ts *testServer) createJob(t *testing.T, token, title string) types.Job {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/jobs", validJobRequest(title), withToken(token))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp types.CreateJobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return *resp.Job
}

func validJobRequest(title string) types.CreateJobRequest {
	return types.CreateJobRequest{
		Title:        title,
		Company:      "TechCorp Solutions",
		Location:     "San Francisco, CA",
		Type:         types.JobTypeFullTime,
		Salary:       "$120,000 - $160,000",
		Description:  "Build and ship product features.",
		Requirements: "5+ years of Go",
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body["error"]
}
