package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/qcreview/internal/db"
	"github.com/alexanderramin/qcreview/internal/repository"
)

type snapshotService struct {
	observer UseCaseObserver
}

func NewSnapshotService(observers ...UseCaseObserver) SnapshotService {
	return &snapshotService{observer: useCaseObserverOrNoop(observers)}
}

func (s *snapshotService) List(ctx context.Context, dbPath string) (infos []repository.SnapshotInfo, err error) {
	fields := map[string]any{"path": dbPath}
	done := observe(ctx, s.observer, "list-snapshots", fields)
	defer func() { done(err) }()

	database, err := openExistingDB(dbPath)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	infos, err = repository.NewSQLiteSnapshotRepo(database).List(ctx)
	if err != nil {
		return nil, err
	}
	fields["snapshots"] = len(infos)
	return infos, nil
}

func (s *snapshotService) Get(ctx context.Context, dbPath, id string) (snap *repository.Snapshot, err error) {
	done := observe(ctx, s.observer, "get-snapshot", map[string]any{"path": dbPath, "snapshot_id": id})
	defer func() { done(err) }()

	database, err := openExistingDB(dbPath)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	snap, err = repository.NewSQLiteSnapshotRepo(database).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %s: %w", id, err)
	}
	return snap, nil
}

func (s *snapshotService) Delete(ctx context.Context, dbPath, id string) (err error) {
	done := observe(ctx, s.observer, "delete-snapshot", map[string]any{"path": dbPath, "snapshot_id": id})
	defer func() { done(err) }()

	database, err := openExistingDB(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSnapshotRepo(tx).Delete(ctx, id)
	})
}
