// Package cache keeps a local SQLite copy of the last fetched feed and
// notifications so the shell can still render after losing the backend.
package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    user_id INTEGER NOT NULL,
    username TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    likes INTEGER NOT NULL DEFAULT 0,
    liked BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS notifications (
    id INTEGER PRIMARY KEY,
    message TEXT NOT NULL,
    type TEXT NOT NULL,
    related_id INTEGER NOT NULL,
    read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at INTEGER NOT NULL
);
`

// Open opens (or creates) the cache database at path and ensures the schema.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping cache: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
