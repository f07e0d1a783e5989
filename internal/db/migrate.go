package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// The session table holds at most one row: the signed-in user and
	// their bearer token. Signing in replaces it, signing out deletes it.
	`CREATE TABLE IF NOT EXISTS session (
		id         INTEGER PRIMARY KEY CHECK(id = 1),
		token      TEXT NOT NULL,
		user_id    INTEGER NOT NULL,
		email      TEXT NOT NULL,
		full_name  TEXT NOT NULL,
		role       TEXT NOT NULL,
		branch_id  INTEGER,
		saved_at   TEXT NOT NULL
	)`,

	// Per-user view preferences, keyed by name (last branch filter,
	// last report date and the like).
	`CREATE TABLE IF NOT EXISTS preferences (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}
