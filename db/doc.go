// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the SQL database and manages its schema.

# Opening

	conn, err := db.Open(db.TypeSQLite, "voteup.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

Open pings the server and runs CreateSchema before returning. SQLite
connections get foreign keys, a busy timeout, and WAL journaling, and the
pool is limited to one connection.

# Schema

CreateSchema is idempotent (IF NOT EXISTS everywhere):

	err := db.CreateSchema(conn.DB)

# Tables

  - users: identity and vote entitlement (votes_remaining, last_free_vote)
  - contests: contest metadata, status, and total_votes
  - participants: entrants with votes and insertion position
  - votes: audit log of every cast vote (source, ip_hash)
  - comments: contest/participant comments with a likes counter
  - comment_likes: (comment_id, user_id) like set
  - transactions: vote pack purchases (pending, completed, failed)

# Constraints

  - users.email is UNIQUE
  - votes_remaining, votes, total_votes have CHECK (>= 0)
  - transactions.reference is UNIQUE
  - comment_likes has a composite primary key, so a user likes once

All timestamps are BIGINT epoch milliseconds so the same DDL works on both
PostgreSQL and SQLite.
*/
package db
