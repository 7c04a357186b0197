// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the VoteUp API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(s, c, verifier, authService, cfg)

Every route is wrapped in middleware.WithLogging. User routes add
middleware.RequireAuth and admin routes add middleware.RequireAdmin.

# Endpoints

Health:

	GET /health

Accounts:

	POST /auth/register  - Create account, returns token
	POST /auth/login     - Returns token
	POST /auth/logout    - User
	GET  /me             - User
	GET  /me/eligibility - User, free vote countdown

Contests:

	GET  /contests                     - List, optional ?status=
	GET  /contests/{id}                - Contest with participants
	GET  /contests/{id}/leaderboard    - Ranked standings (cached)
	POST /contests                     - Admin
	POST /contests/{id}/participants   - Admin
	POST /contests/{id}/votes          - User

Vote packs:

	GET  /vote-packs                     - Catalog
	POST /purchases                      - User, begin checkout
	POST /purchases/{reference}/confirm  - User
	POST /purchases/{reference}/cancel   - User

Comments:

	GET    /contests/{id}/comments - List, optional ?participant_id=
	POST   /contests/{id}/comments - User
	POST   /comments/{id}/like     - User, toggle
	DELETE /comments/{id}          - User, own comments only

Dashboard:

	GET /admin/stats - Admin
*/
package router
