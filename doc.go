// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the VoteUp API server.

VoteUp runs public voting contests. Every account gets one free vote every
10 minutes and can buy vote packs for more. Contests rank participants by
votes, and visitors can comment and like.

# Starting the Server

The server reads a .env file, the environment, and CLI flags, in that
order of increasing precedence:

	JWT_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -payment fake

# Configuration

Required settings:

  - JWT_SECRET (-jwt-secret): Session token signing secret
  - PAYSTACK_SECRET_KEY: Required unless PAYMENT_MODE=fake

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or memory (default: sqlite)
  - DATABASE_URL (-d): Connection string or SQLite path (default: voteup.db)
  - REDIS_ADDR (-redis): Leaderboard cache; in-process cache when empty
  - ADMIN_EMAILS: Comma-separated addresses that register as admins
  - RECONCILE_INTERVAL: Contest status sync period, 0 disables (default: 1m)

# Architecture

  - handlers: HTTP request handlers (auth, contests, voting, purchases, comments, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, request IDs, logging, bearer auth, JSON helpers
  - voting: Entitlement, ledger, pack catalog, and leaderboard rules
  - store: SQL and in-memory persistence with race-free counters
  - cache: Redis or in-process leaderboard cache
  - payment: Paystack verification
  - reconcile: Background contest status sync
  - auth: Passwords, JWT sessions, IP hashing
  - db: Connections and schema
  - models: Request/response and domain types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
