package service

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/qcreview/internal/db"
	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/alexanderramin/qcreview/internal/report"
	"github.com/alexanderramin/qcreview/internal/repository"
)

type reviewService struct {
	session  *domain.Session
	observer UseCaseObserver
	now      func() time.Time
}

// Option configures the review service.
type Option func(*reviewService)

// WithClock replaces time.Now for save timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *reviewService) { s.now = now }
}

// WithObserver reports every use case to obs.
func WithObserver(obs UseCaseObserver) Option {
	return func(s *reviewService) { s.observer = useCaseObserverOrNoop([]UseCaseObserver{obs}) }
}

func NewReviewService(session *domain.Session, opts ...Option) ReviewService {
	s := &reviewService{
		session:  session,
		observer: NoopUseCaseObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *reviewService) Session() *domain.Session { return s.session }

func (s *reviewService) Export(ctx context.Context, path, reviewer string, format Format) error {
	_, err := s.export(ctx, path, reviewer, format)
	return err
}

func (s *reviewService) ExportFile(ctx context.Context, path, reviewer string) error {
	_, err := s.export(ctx, path, reviewer, FormatJSON)
	return err
}

func (s *reviewService) ExportSnapshot(ctx context.Context, dbPath, reviewer string) (*repository.Snapshot, error) {
	job, err := s.export(ctx, dbPath, reviewer, FormatSQLite)
	if err != nil {
		return nil, err
	}
	return job.Snapshot, nil
}

func (s *reviewService) export(ctx context.Context, path, reviewer string, format Format) (*ExportJob, error) {
	job, err := s.PrepareExport(path, reviewer, format)
	if err != nil {
		observe(ctx, s.observer, exportUseCase(format), map[string]any{"path": path})(err)
		return nil, err
	}
	if err := s.WriteExport(ctx, job); err != nil {
		return nil, err
	}
	s.CommitExport(job)
	return job, nil
}

func (s *reviewService) PrepareExport(path, reviewer string, format Format) (*ExportJob, error) {
	if format == "" {
		format = FormatForPath(path)
	}
	if format != FormatJSON && format != FormatSQLite {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	now := s.now().UTC()
	doc, err := report.Build(s.session, reviewer, now)
	if err != nil {
		return nil, err
	}
	job := &ExportJob{
		Path:     path,
		Format:   format,
		Reviewer: doc.Settings.Reviewer,
		SavedAt:  now,
		Revision: s.session.Revision(),
		Entries:  len(doc.Entries),
		doc:      doc,
	}
	if format == FormatJSON {
		if job.data, err = report.Encode(doc); err != nil {
			return nil, err
		}
	}
	return job, nil
}

func (s *reviewService) WriteExport(ctx context.Context, job *ExportJob) (err error) {
	fields := map[string]any{"path": job.Path, "format": string(job.Format)}
	done := observe(ctx, s.observer, exportUseCase(job.Format), fields)
	defer func() { done(err) }()

	if err = ctx.Err(); err != nil {
		return err
	}
	switch job.Format {
	case FormatJSON:
		if err = writeFileAtomic(job.Path, job.data); err != nil {
			return err
		}
		fields["subjects"] = job.Entries
	case FormatSQLite:
		if job.Snapshot, err = writeSnapshot(ctx, job); err != nil {
			return err
		}
		fields["snapshot_id"] = job.Snapshot.ID
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, job.Format)
	}
	return err
}

func (s *reviewService) CommitExport(job *ExportJob) {
	s.session.MarkSavedAsOf(job.Reviewer, job.SavedAt, job.Revision)
}

func writeSnapshot(ctx context.Context, job *ExportJob) (*repository.Snapshot, error) {
	database, err := db.OpenDB(job.Path)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	snap := &repository.Snapshot{SavedAt: job.SavedAt, Document: job.doc}
	uow := db.NewSQLiteUnitOfWork(database)
	err = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSnapshotRepo(tx).Save(ctx, snap)
	})
	if err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}
	return snap, nil
}

func exportUseCase(format Format) string {
	if format == FormatSQLite {
		return "export-snapshot"
	}
	return "export-file"
}

func (s *reviewService) Import(ctx context.Context, path string) (report.ApplyResult, error) {
	doc, err := s.ReadImport(ctx, path)
	if err != nil {
		return report.ApplyResult{}, err
	}
	return s.ApplyImport(doc), nil
}

func (s *reviewService) ImportFile(ctx context.Context, path string) (report.ApplyResult, error) {
	doc, err := s.readFile(ctx, path)
	if err != nil {
		return report.ApplyResult{}, err
	}
	return s.ApplyImport(doc), nil
}

func (s *reviewService) ImportSnapshot(ctx context.Context, dbPath string) (report.ApplyResult, error) {
	doc, err := s.readSnapshot(ctx, dbPath)
	if err != nil {
		return report.ApplyResult{}, err
	}
	return s.ApplyImport(doc), nil
}

func (s *reviewService) ReadImport(ctx context.Context, path string) (*report.Document, error) {
	format, err := sniffFormat(path)
	if err != nil {
		return nil, err
	}
	if format == FormatSQLite {
		return s.readSnapshot(ctx, path)
	}
	return s.readFile(ctx, path)
}

func (s *reviewService) ApplyImport(doc *report.Document) report.ApplyResult {
	return report.Apply(s.session, doc)
}

func (s *reviewService) readFile(ctx context.Context, path string) (doc *report.Document, err error) {
	fields := map[string]any{"path": path}
	done := observe(ctx, s.observer, "import-file", fields)
	defer func() { done(err) }()

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sidecar: %w", err)
	}
	doc, err = report.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", filepath.Base(path), err)
	}
	fields["layout"] = doc.Format.String()
	fields["entries"] = len(doc.Entries)
	return doc, nil
}

func (s *reviewService) readSnapshot(ctx context.Context, dbPath string) (doc *report.Document, err error) {
	fields := map[string]any{"path": dbPath}
	done := observe(ctx, s.observer, "import-snapshot", fields)
	defer func() { done(err) }()

	database, err := openExistingDB(dbPath)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	snap, err := repository.NewSQLiteSnapshotRepo(database).Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading latest snapshot: %w", err)
	}
	fields["snapshot_id"] = snap.ID
	fields["entries"] = len(snap.Document.Entries)
	return snap.Document, nil
}

// openExistingDB opens a snapshot database that must already exist.
// OpenDB creates missing files; reads must not.
func openExistingDB(dbPath string) (*sql.DB, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}
	return db.OpenDB(dbPath)
}

// writeFileAtomic writes data next to path and renames it into place, so
// a failed write never leaves a truncated sidecar.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating sidecar directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".qcreview-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing sidecar: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing sidecar: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing sidecar: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting sidecar permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing sidecar: %w", err)
	}
	return nil
}
