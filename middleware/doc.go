// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote, request_id) and completion
(status, duration_ms, request_id).

# Request IDs

RequestID keeps an incoming X-Request-ID or mints a UUID, stores it in the
context and echoes it on the response. Wrap the whole mux with it so every
log line for one request shares the id.

# Authentication

	requireAuth := middleware.RequireAuth(authService)
	mux.HandleFunc("POST /contests/{id}/votes", middleware.WithLogging(requireAuth(h.CastVote)))

RequireAuth reads "Authorization: Bearer <jwt>", resolves the user through
the Authenticator and stores it in the context:

	user, _ := middleware.UserFromContext(r.Context())

RequireAdmin additionally demands the admin role (403 otherwise). A store
outage while resolving the user is a 503, not a 401.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(middleware.RequestID(mux)),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.CodedErrorResponse(w, http.StatusForbidden, "VOTE_NOT_ALLOWED", "message")

# Client IP Extraction

	ip := middleware.GetClientIP(r)

The IP is hashed before it is stored with a vote.
*/
package middleware
