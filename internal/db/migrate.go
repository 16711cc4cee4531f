package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// SchemaVersion is stored in PRAGMA user_version after migrating.
const SchemaVersion = 1

// ErrNewerSchema means the file was written by a newer qcreview.
var ErrNewerSchema = errors.New("snapshot database schema is newer than supported")

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id             TEXT PRIMARY KEY,
		reviewer       TEXT NOT NULL,
		saved_at       TEXT NOT NULL,
		format_version INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS snapshot_cursors (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		ord         INTEGER NOT NULL,
		metric      TEXT NOT NULL,
		position    INTEGER NOT NULL CHECK(position >= 0),
		PRIMARY KEY (snapshot_id, ord)
	)`,

	`CREATE TABLE IF NOT EXISTS snapshot_entries (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		metric      TEXT NOT NULL,
		subject_id  TEXT NOT NULL,
		status      TEXT NOT NULL
		            CHECK(status IN ('Pending','Pass','Warning','Fail')),
		comment     TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (snapshot_id, position)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_snapshots_saved_at ON snapshots(saved_at)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshot_entries_subject ON snapshot_entries(subject_id)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshot_entries_status ON snapshot_entries(snapshot_id, status)`,
}

// Migrate creates the snapshot tables. It is safe to run repeatedly.
func Migrate(db *sql.DB) error {
	var current int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if current > SchemaVersion {
		return fmt.Errorf("%w: file has %d, supported %d", ErrNewerSchema, current, SchemaVersion)
	}

	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	if _, err := db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, SchemaVersion)); err != nil {
		return fmt.Errorf("writing schema version: %w", err)
	}
	return nil
}
