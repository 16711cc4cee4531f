package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/alexanderramin/qcreview/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func scenarioSpecs() []testutil.MetricSpec {
	return []testutil.MetricSpec{
		testutil.Metric("DTI", "sub-01", "sub-02"),
		testutil.Metric("T1", "sub-01"),
	}
}

func TestExport_Shape(t *testing.T) {
	s := testutil.NewTestSession(t, nil,
		testutil.WithStatus("dti_sub-02", domain.StatusWarning),
		testutil.WithComment("dti_sub-02", "ghosting"),
		testutil.WithCursor("DTI", 1),
	)

	data, err := Export(s, "  alice ", testNow)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)

	settings := records[0]
	assert.Equal(t, "settings", settings["type"])
	assert.Equal(t, "alice", settings["username"])
	assert.Equal(t, "2025-06-15T10:30:00Z", settings["date"])
	assert.EqualValues(t, CurrentVersion, settings["version"])
	assert.Equal(t, []any{
		map[string]any{"tab_name": "DTI", "tab_index": float64(1)},
		map[string]any{"tab_name": "T1", "tab_index": float64(0)},
	}, settings["data"])

	rep := records[1]
	assert.Equal(t, "report", rep["type"])
	entries := rep["data"].([]any)
	require.Len(t, entries, 3)
	assert.Equal(t, map[string]any{
		"qc": "DTI", "filename": "dti_sub-02", "status": "Warning", "comments": "ghosting",
	}, entries[1])
	assert.Equal(t, "t1_sub-01", entries[2].(map[string]any)["filename"])
}

func TestExport_RequiresReviewer(t *testing.T) {
	s := testutil.NewTestSession(t, nil, testutil.WithStatus("t1_sub-01", domain.StatusFail))

	_, err := Export(s, "   ", testNow)
	assert.ErrorIs(t, err, ErrReviewerRequired)
	assert.True(t, s.Dirty(), "a declined export keeps the session dirty")
}

func TestRoundTrip(t *testing.T) {
	src := testutil.NewTestSession(t, nil,
		testutil.WithStatus("dti_sub-01", domain.StatusPass),
		testutil.WithStatus("t1_sub-01", domain.StatusFail),
		testutil.WithComment("t1_sub-01", "motion\nrepeat scan"),
		testutil.WithCursor("DTI", 1),
	)
	data, err := Export(src, "alice", testNow)
	require.NoError(t, err)

	dst := testutil.NewTestSession(t, nil)
	res, err := Import(dst, data)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Applied)
	assert.Zero(t, res.Skipped)
	assert.Equal(t, FormatModern, res.Format)

	for _, metric := range src.Metrics() {
		assert.Equal(t, src.Cursor(metric), dst.Cursor(metric), metric)
		for _, want := range src.Subjects(metric) {
			got, ok := dst.SubjectIn(metric, want.ID)
			require.True(t, ok)
			assert.Equal(t, want.Status, got.Status, want.ID)
			assert.Equal(t, want.Comment, got.Comment, want.ID)
		}
	}
	assert.Equal(t, "alice", dst.Reviewer)
	require.NotNil(t, dst.SavedAt)
	assert.True(t, testNow.Equal(*dst.SavedAt))
	assert.False(t, dst.Dirty())
}

func TestScenario_StatusCommentCursorSurviveRoundTrip(t *testing.T) {
	s := testutil.NewTestSession(t, scenarioSpecs())
	require.NoError(t, s.SetStatus("sub-01", domain.StatusFail))
	require.NoError(t, s.SetComment("sub-01", "artifact"))
	require.Equal(t, "DTI", s.CurrentMetric())
	require.True(t, s.Step(1))

	data, err := Export(s, "alice", testNow)
	require.NoError(t, err)

	fresh := testutil.NewTestSession(t, scenarioSpecs())
	_, err = Import(fresh, data)
	require.NoError(t, err)

	subj, ok := fresh.Subject("sub-01")
	require.True(t, ok)
	assert.Equal(t, domain.StatusFail, subj.Status)
	assert.Equal(t, "artifact", subj.Comment)
	assert.Equal(t, 1, fresh.Cursor("DTI"))

	other, _ := fresh.SubjectIn("T1", "sub-01")
	assert.Equal(t, domain.StatusPending, other.Status, "same id under another metric is untouched")
}

func TestImport_LegacyMatchesModern(t *testing.T) {
	legacy := []byte(`{
		"dti_sub-01": {"status": "Fail", "comments": "artifact"},
		"t1_sub-01": {"status": "Pass", "comments": ""},
		"ghost": {"status": "Warning", "comments": "not in report"}
	}`)
	modern := []byte(`[
		{"type": "report", "data": [
			{"qc": "DTI", "filename": "dti_sub-01", "status": "Fail", "comments": "artifact"},
			{"qc": "T1", "filename": "t1_sub-01", "status": "Pass", "comments": ""},
			{"qc": "T1", "filename": "ghost", "status": "Warning", "comments": "not in report"}
		]}
	]`)

	a := testutil.NewTestSession(t, nil)
	resA, err := Import(a, legacy)
	require.NoError(t, err)
	b := testutil.NewTestSession(t, nil)
	resB, err := Import(b, modern)
	require.NoError(t, err)

	assert.Equal(t, FormatLegacy, resA.Format)
	assert.Equal(t, resA.Applied, resB.Applied)
	assert.Equal(t, []string{"ghost"}, resA.SkippedIDs)
	assert.Equal(t, []string{"ghost"}, resB.SkippedIDs)

	for _, metric := range a.Metrics() {
		for _, sa := range a.Subjects(metric) {
			sb, _ := b.SubjectIn(metric, sa.ID)
			assert.Equal(t, sa.Status, sb.Status, sa.ID)
			assert.Equal(t, sa.Comment, sb.Comment, sa.ID)
		}
	}
}

func TestImport_LegacyIDSharedAcrossMetrics(t *testing.T) {
	legacy := []byte(`{"sub-01": {"status": "Fail", "comments": "motion"}}`)
	modern := []byte(`[
		{"type": "report", "data": [
			{"qc": "DTI", "filename": "sub-01", "status": "Fail", "comments": "motion"},
			{"qc": "T1", "filename": "sub-01", "status": "Fail", "comments": "motion"}
		]}
	]`)

	a := testutil.NewTestSession(t, scenarioSpecs())
	res, err := Import(a, legacy)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Applied)
	b := testutil.NewTestSession(t, scenarioSpecs())
	_, err = Import(b, modern)
	require.NoError(t, err)

	for _, metric := range []string{"DTI", "T1"} {
		sa, _ := a.SubjectIn(metric, "sub-01")
		sb, _ := b.SubjectIn(metric, "sub-01")
		assert.Equal(t, domain.StatusFail, sa.Status, metric)
		assert.Equal(t, sb.Status, sa.Status, metric)
		assert.Equal(t, sb.Comment, sa.Comment, metric)
	}
	other, _ := a.SubjectIn("DTI", "sub-02")
	assert.Equal(t, domain.StatusPending, other.Status)
}

func TestImport_LegacyLeavesCursors(t *testing.T) {
	s := testutil.NewTestSession(t, nil, testutil.WithCursor("DTI", 1))
	_, err := Import(s, []byte(`{"dti_sub-01": {"status": "Pass", "comments": ""}}`))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Cursor("DTI"))
	assert.Empty(t, s.Reviewer)
}

func TestImport_MalformedLeavesSessionUntouched(t *testing.T) {
	cases := map[string]string{
		"syntax":        `[{"type": "report", "data": [}`,
		"empty":         "   ",
		"scalar":        `"hello"`,
		"untyped":       `[{"data": []}]`,
		"bad legacy":    `{"sub": 4}`,
		"bad report":    `[{"type": "report", "data": {"x": 1}}]`,
		"future layout": `[{"type": "settings", "version": 99, "data": []}]`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			s := testutil.NewTestSession(t, nil,
				testutil.WithStatus("dti_sub-01", domain.StatusWarning),
				testutil.WithComment("dti_sub-01", "keep me"),
			)
			_, err := Import(s, []byte(input))
			require.Error(t, err)

			subj, _ := s.Subject("dti_sub-01")
			assert.Equal(t, domain.StatusWarning, subj.Status)
			assert.Equal(t, "keep me", subj.Comment)
			assert.True(t, s.Dirty(), "dirty flag is unchanged by a failed import")
		})
	}
}

func TestDecode_ErrorKinds(t *testing.T) {
	_, err := Decode([]byte(`[1,`))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode([]byte(`42`))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Decode([]byte(`[{"type": "settings", "version": 3}]`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecode_SingleTypedRecordObject(t *testing.T) {
	doc, err := Decode([]byte(`{"type": "report", "data": [{"qc": "T1", "filename": "t1_sub-01", "status": "Fail"}]}`))
	require.NoError(t, err)
	assert.Equal(t, FormatModern, doc.Format)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, "t1_sub-01", doc.Entries[0].SubjectID)
}

func TestDecode_SkipsUnknownRecordTypes(t *testing.T) {
	doc, err := Decode([]byte(`[{"type": "theme", "dark": true}, {"type": "report", "data": []}]`))
	require.NoError(t, err)
	assert.Nil(t, doc.Settings)
	assert.Empty(t, doc.Entries)
}

func TestDecode_BOMAndVersionDefault(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`[{"type": "settings", "username": "bob", "date": "", "data": []}]`)...)
	doc, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, doc.Version)
	require.NotNil(t, doc.Settings)
	assert.Equal(t, "bob", doc.Settings.Reviewer)
}

func TestApply_MissingFieldsDefault(t *testing.T) {
	s := testutil.NewTestSession(t, nil,
		testutil.WithStatus("dti_sub-01", domain.StatusFail),
		testutil.WithComment("dti_sub-01", "old"),
		testutil.WithCursor("DTI", 1),
	)
	_, err := Import(s, []byte(`[
		{"type": "settings", "username": "carol", "date": "not a date", "data": [{"tab_name": "T1"}]},
		{"type": "report", "data": [{"qc": "DTI", "filename": "dti_sub-01"}]}
	]`))
	require.NoError(t, err)

	subj, _ := s.Subject("dti_sub-01")
	assert.Equal(t, domain.StatusPending, subj.Status)
	assert.Empty(t, subj.Comment)
	assert.Equal(t, 0, s.Cursor("DTI"), "metric absent from settings resets to 0")
	assert.Nil(t, s.SavedAt)
	assert.Equal(t, "carol", s.Reviewer)
}

func TestApply_ClampsCursorAndNormalizesTabNames(t *testing.T) {
	s := testutil.NewTestSession(t, []testutil.MetricSpec{testutil.Metric("B0 resample", "a", "b", "c")})
	_, err := Import(s, []byte(`[{"type": "settings", "data": [{"tab_name": "B0 resample", "tab_index": 7}]}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Cursor("B0_resample"))
}

func TestParseDate(t *testing.T) {
	assert.Nil(t, parseDate(""))
	assert.Nil(t, parseDate("yesterday"))
	got := parseDate("2025-06-15 10:30:00")
	require.NotNil(t, got)
	assert.True(t, testNow.Equal(*got))
}
