package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/qcreview/internal/db"
	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/alexanderramin/qcreview/internal/report"
	"github.com/alexanderramin/qcreview/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func testDocument(t *testing.T, reviewer string) *report.Document {
	t.Helper()
	s := testutil.NewTestSession(t, nil,
		testutil.WithStatus("dti_sub-02", domain.StatusFail),
		testutil.WithComment("dti_sub-02", "signal dropout"),
		testutil.WithCursor("DTI", 1),
	)
	doc, err := report.Build(s, reviewer, testNow)
	require.NoError(t, err)
	return doc
}

func TestSnapshotRepo_SaveAndGetByID(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	snap := &Snapshot{SavedAt: testNow, Document: testDocument(t, "alice")}
	require.NoError(t, repo.Save(ctx, snap))
	assert.NotEmpty(t, snap.ID)

	got, err := repo.GetByID(ctx, snap.ID)
	require.NoError(t, err)
	assert.True(t, testNow.Equal(got.SavedAt))
	assert.Equal(t, report.CurrentVersion, got.Document.Version)
	assert.Equal(t, "alice", got.Document.Settings.Reviewer)
	assert.Equal(t, snap.Document.Settings.Cursors, got.Document.Settings.Cursors)
	assert.Equal(t, snap.Document.Entries, got.Document.Entries)
}

func TestSnapshotRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotRepo_Latest(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Latest(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	older := &Snapshot{SavedAt: testNow, Document: testDocument(t, "alice")}
	newer := &Snapshot{SavedAt: testNow.Add(time.Hour), Document: testDocument(t, "bob")}
	require.NoError(t, repo.Save(ctx, newer))
	require.NoError(t, repo.Save(ctx, older))

	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.Equal(t, "bob", got.Document.Settings.Reviewer)
}

func TestSnapshotRepo_LatestOrdersSubSecondTimes(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	// Stored as text, a whole second must not sort after its own half second.
	newer := &Snapshot{SavedAt: testNow.Add(500 * time.Millisecond), Document: testDocument(t, "bob")}
	older := &Snapshot{SavedAt: testNow, Document: testDocument(t, "alice")}
	require.NoError(t, repo.Save(ctx, newer))
	require.NoError(t, repo.Save(ctx, older))

	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.True(t, newer.SavedAt.Equal(got.SavedAt))

	infos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, newer.ID, infos[0].ID)
	assert.Equal(t, older.ID, infos[1].ID)
}

func TestFormatTime_FixedWidth(t *testing.T) {
	whole := formatTime(testNow)
	half := formatTime(testNow.Add(500 * time.Millisecond))
	assert.Equal(t, "2025-06-15T10:30:00.000000000Z", whole)
	assert.Len(t, half, len(whole))
	assert.Less(t, whole, half)

	assert.True(t, testNow.Equal(parseTime("2025-06-15T10:30:00Z")))
	assert.True(t, testNow.Add(500*time.Millisecond).Equal(parseTime("2025-06-15T10:30:00.5Z")))
	assert.True(t, parseTime("yesterday").IsZero())
}

func TestSnapshotRepo_LatestRoundTripsIntoSession(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &Snapshot{SavedAt: testNow, Document: testDocument(t, "alice")}))

	got, err := repo.Latest(ctx)
	require.NoError(t, err)

	fresh := testutil.NewTestSession(t, nil)
	res := report.Apply(fresh, got.Document)
	assert.Equal(t, 3, res.Applied)

	subj, _ := fresh.Subject("dti_sub-02")
	assert.Equal(t, domain.StatusFail, subj.Status)
	assert.Equal(t, "signal dropout", subj.Comment)
	assert.Equal(t, 1, fresh.Cursor("DTI"))
	assert.Equal(t, "alice", fresh.Reviewer)
}

func TestSnapshotRepo_ListAndDelete(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := &Snapshot{SavedAt: testNow, Document: testDocument(t, "alice")}
	b := &Snapshot{SavedAt: testNow.Add(time.Minute), Document: testDocument(t, "bob")}
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	infos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "bob", infos[0].Reviewer)
	assert.Equal(t, 3, infos[0].Entries)

	require.NoError(t, repo.Delete(ctx, b.ID))
	infos, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, a.ID, infos[0].ID)

	assert.ErrorIs(t, repo.Delete(ctx, b.ID), ErrNotFound)
}

func TestSnapshotRepo_SaveNilDocument(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	assert.Error(t, repo.Save(context.Background(), &Snapshot{}))
}

func TestSnapshotRepo_SaveRollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 4, Err: boom}

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteSnapshotRepo(tx).Save(ctx, &Snapshot{SavedAt: testNow, Document: testDocument(t, "alice")})
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), uow.Rollbacks.Load())

	_, err = NewSQLiteSnapshotRepo(database).Latest(ctx)
	assert.ErrorIs(t, err, ErrNotFound, "a failed save leaves no partial snapshot")
}
