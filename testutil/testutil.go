// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/voteup/auth"
	"github.com/danielhkuo/voteup/cliparse"
	"github.com/danielhkuo/voteup/db"
	"github.com/danielhkuo/voteup/middleware"
	"github.com/danielhkuo/voteup/models"
	"github.com/danielhkuo/voteup/store"
)

// TestJWTSecret signs tokens in tests
const TestJWTSecret = "test-jwt-secret"

// SetupTestStore returns an empty in-memory store
func SetupTestStore(t *testing.T) store.Store {
	t.Helper()
	s := store.NewMemoryStore()
	t.Cleanup(func() { s.Close() })
	return s
}

// SetupSQLiteStore returns an empty SQL store on a SQLite file that is
// removed with the test
func SetupSQLiteStore(t *testing.T) store.Store {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "voteup.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return store.NewSQLStore(conn)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		DatabaseType:      "memory",
		JWTSecret:         TestJWTSecret,
		TokenTTL:          time.Hour,
		IPHashSalt:        "test-ip-salt",
		PaymentMode:       cliparse.PaymentFake,
		PaystackPublicKey: "pk_test",
		CacheTTL:          time.Minute,
	}
}

// GetTestAuth returns an identity service over s using the test secret
func GetTestAuth(s store.Store) *auth.Service {
	return auth.NewService(s, auth.NewTokens(TestJWTSecret, time.Hour), nil)
}

// CreateTestUser stores a user with the given role and purchased credits
// and an open free slot
func CreateTestUser(t *testing.T, s store.Store, role string, votes int) models.User {
	t.Helper()

	id := uuid.NewString()
	u := models.User{
		ID:             id,
		Email:          id[:8] + "@example.com",
		Name:           "Tester " + id[:4],
		Role:           role,
		VotesRemaining: votes,
		PasswordHash:   "not-a-real-hash",
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return u
}

// CreateTestContest stores a contest whose window matches status
// ("upcoming", "active" or "ended") with one participant per name
func CreateTestContest(t *testing.T, s store.Store, status string, names ...string) models.Contest {
	t.Helper()

	now := time.Now().UTC()
	start, end := now.Add(-time.Hour), now.Add(24*time.Hour)
	switch status {
	case models.StatusUpcoming:
		start, end = now.Add(time.Hour), now.Add(48*time.Hour)
	case models.StatusEnded:
		start, end = now.Add(-48*time.Hour), now.Add(-time.Hour)
	}

	c := models.Contest{
		ID:        uuid.NewString(),
		Title:     "Test Contest",
		StartDate: start,
		EndDate:   end,
		Status:    status,
		CreatedAt: now,
	}
	for _, name := range names {
		c.Participants = append(c.Participants, models.Participant{
			ID:   uuid.NewString(),
			Name: name,
		})
	}

	if err := s.CreateContest(context.Background(), c); err != nil {
		t.Fatalf("Failed to create test contest: %v", err)
	}

	stored, err := s.GetContest(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("Failed to reload test contest: %v", err)
	}
	return stored
}

// AuthHeader returns an Authorization header carrying a token for u
func AuthHeader(t *testing.T, u models.User) map[string]string {
	t.Helper()

	token, _, err := auth.NewTokens(TestJWTSecret, time.Hour).Issue(u, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// AsUser attaches u to the request context the way RequireAuth does, for
// calling handlers directly
func AsUser(req *http.Request, u models.User) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), u))
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
