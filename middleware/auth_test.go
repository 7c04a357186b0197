// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/voteup/auth"
	"github.com/danielhkuo/voteup/models"
)

// stubAuthenticator maps tokens to users
type stubAuthenticator struct {
	users map[string]models.User
	err   error
}

func (s stubAuthenticator) CurrentUser(ctx context.Context, token string) (models.User, error) {
	if s.err != nil {
		return models.User{}, s.err
	}
	u, ok := s.users[token]
	if !ok {
		return models.User{}, auth.ErrInvalidToken
	}
	return u, nil
}

func TestBearerToken(t *testing.T) {
	testCases := []struct {
		header   string
		expected string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc", "abc"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest("GET", "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		if got := BearerToken(req); got != tc.expected {
			t.Errorf("BearerToken(%q) = %q, want %q", tc.header, got, tc.expected)
		}
	}
}

func TestRequireAuth(t *testing.T) {
	authn := stubAuthenticator{users: map[string]models.User{
		"good": {ID: "u1", Name: "Ama", Role: models.RoleUser},
	}}

	var seen models.User

	testCases := []struct {
		name       string
		header     string
		authn      Authenticator
		statusCode int
	}{
		{"valid token", "Bearer good", authn, http.StatusNoContent},
		{"missing header", "", authn, http.StatusUnauthorized},
		{"unknown token", "Bearer nope", authn, http.StatusUnauthorized},
		{"store down", "Bearer good", stubAuthenticator{err: fmt.Errorf("%w: dial", auth.ErrUnavailable)}, http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seen = models.User{}
			h := RequireAuth(tc.authn)(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest("GET", "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			h(w, req)

			if w.Code != tc.statusCode {
				t.Fatalf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if tc.statusCode == http.StatusNoContent && seen.ID != "u1" {
				t.Errorf("Expected user u1 in context, got %+v", seen)
			}
			if tc.statusCode != http.StatusNoContent {
				var resp models.ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode error: %v", err)
				}
				if resp.Code == "" {
					t.Error("Expected an error code")
				}
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	authn := stubAuthenticator{users: map[string]models.User{
		"admin": {ID: "a1", Role: models.RoleAdmin},
		"user":  {ID: "u1", Role: models.RoleUser},
	}}

	handler := RequireAdmin(authn)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	testCases := []struct {
		token      string
		statusCode int
	}{
		{"admin", http.StatusOK},
		{"user", http.StatusForbidden},
		{"", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest("GET", "/admin/stats", nil)
		if tc.token != "" {
			req.Header.Set("Authorization", "Bearer "+tc.token)
		}
		w := httptest.NewRecorder()
		handler(w, req)

		if w.Code != tc.statusCode {
			t.Errorf("token %q: expected status %d, got %d", tc.token, tc.statusCode, w.Code)
		}
	}
}
