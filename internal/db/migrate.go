package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// whole list re-runs on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// The commit log is append-only: one row per successful mutation, keyed by
// a strictly increasing version. Snapshots of both documents are stored
// with each entry so any version can be restored byte-for-byte.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS commits (
		version           INTEGER PRIMARY KEY CHECK(version > 0),
		id                TEXT NOT NULL UNIQUE,
		committed_at      TEXT NOT NULL,
		author            TEXT NOT NULL,
		message           TEXT NOT NULL,
		diff_summary      TEXT NOT NULL DEFAULT ''
		                  CHECK(diff_summary IN ('schedule','overlay','schedule,overlay','')),
		schedule_version  INTEGER NOT NULL DEFAULT 0,
		overlay_version   INTEGER NOT NULL DEFAULT 0,
		schedule_hash     TEXT NOT NULL,
		overlay_hash      TEXT NOT NULL,
		schedule_snapshot BLOB NOT NULL,
		overlay_snapshot  BLOB NOT NULL,
		rollback_of       INTEGER REFERENCES commits(version)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_commits_committed_at ON commits(committed_at)`,
}
