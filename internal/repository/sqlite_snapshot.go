package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/qcreview/internal/db"
	"github.com/alexanderramin/qcreview/internal/report"
	"github.com/google/uuid"
)

// SQLiteSnapshotRepo implements SnapshotRepo. Save issues several writes;
// run it through a db.UnitOfWork so a snapshot is stored whole or not at
// all.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

// NewSQLiteSnapshotRepo creates a repo on a database or transaction.
func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

// Save stores snap. An empty ID is filled with a new UUID and a zero
// SavedAt with the current time.
func (r *SQLiteSnapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	if snap.Document == nil {
		return fmt.Errorf("saving snapshot: document is nil")
	}
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now().UTC()
	}

	doc := snap.Document
	reviewer := ""
	if doc.Settings != nil {
		reviewer = doc.Settings.Reviewer
	}
	version := doc.Version
	if version == 0 {
		version = report.CurrentVersion
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, reviewer, saved_at, format_version) VALUES (?, ?, ?, ?)`,
		snap.ID, reviewer, formatTime(snap.SavedAt), version,
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	if doc.Settings != nil {
		for i, c := range doc.Settings.Cursors {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO snapshot_cursors (snapshot_id, ord, metric, position) VALUES (?, ?, ?, ?)`,
				snap.ID, i, c.Metric, c.Index,
			)
			if err != nil {
				return fmt.Errorf("inserting cursor for %s: %w", c.Metric, err)
			}
		}
	}

	for i, e := range doc.Entries {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO snapshot_entries (snapshot_id, position, metric, subject_id, status, comment)
			VALUES (?, ?, ?, ?, ?, ?)`,
			snap.ID, i, e.Metric, e.SubjectID, e.Status, e.Comment,
		)
		if err != nil {
			return fmt.Errorf("inserting entry %s: %w", e.SubjectID, err)
		}
	}
	return nil
}

func (r *SQLiteSnapshotRepo) GetByID(ctx context.Context, id string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, reviewer, saved_at, format_version FROM snapshots WHERE id = ?`, id)
	return r.load(ctx, row)
}

// Latest returns the most recently saved snapshot.
func (r *SQLiteSnapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, reviewer, saved_at, format_version FROM snapshots
		ORDER BY saved_at DESC, rowid DESC LIMIT 1`)
	return r.load(ctx, row)
}

// List returns snapshot headers, newest first.
func (r *SQLiteSnapshotRepo) List(ctx context.Context) ([]SnapshotInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.reviewer, s.saved_at, s.format_version,
			(SELECT COUNT(*) FROM snapshot_entries e WHERE e.snapshot_id = s.id)
		FROM snapshots s
		ORDER BY s.saved_at DESC, s.rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var out []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		var savedAt string
		if err := rows.Scan(&info.ID, &info.Reviewer, &savedAt, &info.FormatVersion, &info.Entries); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		info.SavedAt = parseTime(savedAt)
		out = append(out, info)
	}
	return out, rows.Err()
}

func (r *SQLiteSnapshotRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
	}
	return nil
}

// load scans a snapshot header and reads its cursors and entries.
func (r *SQLiteSnapshotRepo) load(ctx context.Context, row *sql.Row) (*Snapshot, error) {
	var snap Snapshot
	var reviewer, savedAt string
	var version int
	if err := row.Scan(&snap.ID, &reviewer, &savedAt, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	snap.SavedAt = parseTime(savedAt)

	doc := &report.Document{
		Format:  report.FormatModern,
		Version: version,
		Settings: &report.Settings{
			Reviewer: reviewer,
			Date:     snap.SavedAt.UTC().Format(time.RFC3339),
		},
	}

	cursors, err := r.cursors(ctx, snap.ID)
	if err != nil {
		return nil, err
	}
	doc.Settings.Cursors = cursors

	entries, err := r.entries(ctx, snap.ID)
	if err != nil {
		return nil, err
	}
	doc.Entries = entries

	snap.Document = doc
	return &snap, nil
}

func (r *SQLiteSnapshotRepo) cursors(ctx context.Context, id string) ([]report.TabCursor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT metric, position FROM snapshot_cursors WHERE snapshot_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("listing cursors: %w", err)
	}
	defer rows.Close()

	var out []report.TabCursor
	for rows.Next() {
		var c report.TabCursor
		if err := rows.Scan(&c.Metric, &c.Index); err != nil {
			return nil, fmt.Errorf("scanning cursor: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteSnapshotRepo) entries(ctx context.Context, id string) ([]report.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT metric, subject_id, status, comment FROM snapshot_entries
		WHERE snapshot_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var out []report.Entry
	for rows.Next() {
		var e report.Entry
		if err := rows.Scan(&e.Metric, &e.SubjectID, &e.Status, &e.Comment); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
