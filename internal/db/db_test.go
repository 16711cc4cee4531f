package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestMigrate_Idempotent(t *testing.T) {
	database := openTestDB(t)
	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestMigrate_CreatesTables(t *testing.T) {
	database := openTestDB(t)
	for _, table := range []string{"snapshots", "snapshot_cursors", "snapshot_entries"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	var version int
	require.NoError(t, database.QueryRow(`PRAGMA user_version`).Scan(&version))
	assert.Equal(t, SchemaVersion, version)
}

func TestMigrate_RejectsNewerSchema(t *testing.T) {
	database := openTestDB(t)
	_, err := database.Exec(`PRAGMA user_version = 99`)
	require.NoError(t, err)
	assert.ErrorIs(t, Migrate(database), ErrNewerSchema)
}

func TestOpenDB_ForeignKeysAndStatusCheck(t *testing.T) {
	database := openTestDB(t)

	var fk int
	require.NoError(t, database.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)

	_, err := database.Exec(`INSERT INTO snapshot_entries (snapshot_id, position, metric, subject_id, status) VALUES ('missing', 0, 'DTI', 'a', 'Pass')`)
	assert.Error(t, err, "entry without snapshot violates the foreign key")

	_, err = database.Exec(`INSERT INTO snapshots (id, reviewer, saved_at, format_version) VALUES ('s1', 'alice', '2025-06-15T10:00:00Z', 2)`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO snapshot_entries (snapshot_id, position, metric, subject_id, status) VALUES ('s1', 0, 'DTI', 'a', 'Maybe')`)
	assert.Error(t, err, "unknown status violates the check")
}

func TestOpenDB_FileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "qc.sqlite")
	database, err := OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	var mode string
	require.NoError(t, database.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "delete", mode)
}

func TestWithinTx_CommitAndRollback(t *testing.T) {
	database := openTestDB(t)
	uow := NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	insert := func(id string) func(ctx context.Context, tx DBTX) error {
		return func(ctx context.Context, tx DBTX) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO snapshots (id, reviewer, saved_at, format_version) VALUES (?, 'alice', '', 2)`, id)
			return err
		}
	}

	require.NoError(t, uow.WithinTx(ctx, insert("kept")))

	boom := errors.New("deliberate failure")
	err := uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		if err := insert("dropped")(ctx, tx); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database := openTestDB(t)
	uow := NewSQLiteUnitOfWork(database)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
			_, _ = tx.ExecContext(ctx, `INSERT INTO snapshots (id, reviewer, saved_at, format_version) VALUES ('p', 'a', '', 2)`)
			panic("boom")
		})
	})

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&n))
	assert.Zero(t, n)
}
