// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to types both PostgreSQL and SQLite accept; timestamps are
// stored as epoch milliseconds.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
    password_hash TEXT NOT NULL,
    votes_remaining INTEGER NOT NULL DEFAULT 0 CHECK (votes_remaining >= 0),
    last_free_vote BIGINT NOT NULL DEFAULT 0,
    created_at BIGINT NOT NULL
);

-- Contests
CREATE TABLE IF NOT EXISTS contests (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    image_url TEXT NOT NULL DEFAULT '',
    prize TEXT NOT NULL DEFAULT '',
    start_date BIGINT NOT NULL,
    end_date BIGINT NOT NULL,
    organizer_id TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'upcoming' CHECK (status IN ('upcoming', 'active', 'ended')),
    total_votes INTEGER NOT NULL DEFAULT 0 CHECK (total_votes >= 0),
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contests_status ON contests(status);

-- Participants
CREATE TABLE IF NOT EXISTS participants (
    id TEXT PRIMARY KEY,
    contest_id TEXT NOT NULL REFERENCES contests(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    bio TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL DEFAULT '',
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0),
    position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_participants_contest_id ON participants(contest_id);

-- Vote audit log
CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    contest_id TEXT NOT NULL REFERENCES contests(id) ON DELETE CASCADE,
    participant_id TEXT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    source TEXT NOT NULL CHECK (source IN ('credit', 'free')),
    ip_hash TEXT NOT NULL DEFAULT '',
    cast_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_votes_contest_id ON votes(contest_id);
CREATE INDEX IF NOT EXISTS idx_votes_user_id ON votes(user_id);

-- Comments
CREATE TABLE IF NOT EXISTS comments (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    user_name TEXT NOT NULL,
    contest_id TEXT NOT NULL REFERENCES contests(id) ON DELETE CASCADE,
    participant_id TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL,
    likes INTEGER NOT NULL DEFAULT 0,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_contest_id ON comments(contest_id);

CREATE TABLE IF NOT EXISTS comment_likes (
    comment_id TEXT NOT NULL REFERENCES comments(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    PRIMARY KEY (comment_id, user_id)
);

-- Vote pack purchases
CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    pack_id TEXT NOT NULL,
    reference TEXT NOT NULL UNIQUE,
    amount BIGINT NOT NULL,
    currency TEXT NOT NULL,
    votes_received INTEGER NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'completed', 'failed')),
    provider_ref TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL,
    completed_at BIGINT
);

CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id);
`
