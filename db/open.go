// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeMemory   = "memory"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

func init() {
	// modernc registers as "sqlite", which sqlx does not know by default
	sqlx.BindDriver(TypeSQLite, sqlx.QUESTION)
}

// Open connects to a SQL database, verifies the connection, and creates the
// schema. dbType is TypeSQLite or TypePostgres.
func Open(dbType, url string) (*sqlx.DB, error) {
	var (
		conn *sqlx.DB
		err  error
	)

	switch dbType {
	case TypePostgres:
		conn, err = sqlx.Open("postgres", url)
	case TypeSQLite:
		conn, err = sqlx.Open("sqlite", SQLiteDSN(url))
		if err == nil {
			// SQLite allows one writer; serializing in the pool avoids SQLITE_BUSY
			conn.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbType, err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dbType, err)
	}

	if err := CreateSchema(conn.DB); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// SQLiteDSN appends the connection pragmas to a path or file: URL
func SQLiteDSN(url string) string {
	if strings.Contains(url, "_pragma=") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + sqlitePragmas
}
