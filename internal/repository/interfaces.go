package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/qcreview/internal/report"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

// Snapshot is one saved review: the sidecar document plus its storage id.
type Snapshot struct {
	ID       string
	SavedAt  time.Time
	Document *report.Document
}

// SnapshotInfo is a snapshot's header row, without entries.
type SnapshotInfo struct {
	ID            string
	Reviewer      string
	SavedAt       time.Time
	FormatVersion int
	Entries       int
}

type SnapshotRepo interface {
	Save(ctx context.Context, snap *Snapshot) error
	GetByID(ctx context.Context, id string) (*Snapshot, error)
	Latest(ctx context.Context) (*Snapshot, error)
	List(ctx context.Context) ([]SnapshotInfo, error)
	Delete(ctx context.Context, id string) error
}
