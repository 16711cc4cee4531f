package service

import (
	"context"
	"time"

	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/alexanderramin/qcreview/internal/report"
	"github.com/alexanderramin/qcreview/internal/repository"
)

// ReviewService owns a review session and moves it to and from sidecar
// files.
//
// The session is not safe for concurrent use. Methods that read or change
// it (Export*, Import*, PrepareExport, CommitExport, ApplyImport) must run
// on the goroutine that owns the session. WriteExport and ReadImport only
// touch the filesystem and may run anywhere.
type ReviewService interface {
	Session() *domain.Session

	// Export writes the session in format, or in the format the path's
	// extension implies when format is empty. The session is marked saved
	// only after the write succeeded.
	Export(ctx context.Context, path, reviewer string, format Format) error
	ExportFile(ctx context.Context, path, reviewer string) error
	ExportSnapshot(ctx context.Context, dbPath, reviewer string) (*repository.Snapshot, error)

	// PrepareExport captures the session for a later WriteExport.
	PrepareExport(path, reviewer string, format Format) (*ExportJob, error)
	WriteExport(ctx context.Context, job *ExportJob) error
	// CommitExport marks the session saved as of the job's capture.
	CommitExport(job *ExportJob)

	// Import reads a JSON sidecar or a snapshot database, detected from
	// the file contents. A failed import leaves the session untouched.
	Import(ctx context.Context, path string) (report.ApplyResult, error)
	ImportFile(ctx context.Context, path string) (report.ApplyResult, error)
	ImportSnapshot(ctx context.Context, dbPath string) (report.ApplyResult, error)

	// ReadImport loads and decodes a sidecar without touching the session.
	ReadImport(ctx context.Context, path string) (*report.Document, error)
	ApplyImport(doc *report.Document) report.ApplyResult
}

// ExportJob is a session captured for export.
type ExportJob struct {
	Path     string
	Format   Format
	Reviewer string
	SavedAt  time.Time
	Revision uint64
	Entries  int

	// Snapshot is set by WriteExport for FormatSQLite.
	Snapshot *repository.Snapshot

	doc  *report.Document
	data []byte
}

// SnapshotService inspects and prunes snapshot databases. It never
// creates one.
type SnapshotService interface {
	List(ctx context.Context, dbPath string) ([]repository.SnapshotInfo, error)
	Get(ctx context.Context, dbPath, id string) (*repository.Snapshot, error)
	Delete(ctx context.Context, dbPath, id string) error
}
