package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_Bounds(t *testing.T) {
	s := newTestSession(t)

	assert.False(t, s.CanStep(-1), "previous disabled at first subject")
	assert.False(t, s.Step(-1))
	assert.Equal(t, 0, s.Cursor("DTI"))

	assert.True(t, s.Step(1))
	assert.Equal(t, 1, s.Cursor("DTI"))
	assert.Equal(t, "sub-02", s.Current().ID)

	assert.False(t, s.CanStep(1), "next disabled at last subject")
	assert.False(t, s.Step(1))
	assert.Equal(t, 1, s.Cursor("DTI"))

	assert.False(t, s.Step(5))
	assert.False(t, s.Dirty(), "navigation never marks the session dirty")
}

func TestStep_EmptyMetric(t *testing.T) {
	s, err := NewSession([]Metric{{Name: "Dashboard"}})
	require.NoError(t, err)
	assert.False(t, s.Step(1))
	assert.False(t, s.Step(-1))
}

func TestSelectMetric_KeepsCursor(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.Step(1))

	assert.True(t, s.SelectMetric("T1"))
	assert.Equal(t, "T1", s.CurrentMetric())
	assert.Equal(t, "sub-03", s.Current().ID)

	assert.True(t, s.SelectMetric("DTI"))
	assert.Equal(t, 1, s.Cursor("DTI"), "returning to a metric resumes its cursor")

	assert.False(t, s.SelectMetric("FA"))
	assert.Equal(t, "DTI", s.CurrentMetric())
}

func TestStepMetric(t *testing.T) {
	s := newTestSession(t)
	assert.False(t, s.StepMetric(-1))
	assert.True(t, s.StepMetric(1))
	assert.Equal(t, "T1", s.CurrentMetric())
	assert.Equal(t, 1, s.CurrentMetricIndex())
	assert.False(t, s.StepMetric(1))
}

func TestJumpTo(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.JumpTo("DTI", 1))
	assert.Equal(t, "sub-02", s.Current().ID)

	err := s.JumpTo("T1", 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, "DTI", s.CurrentMetric(), "failed jump leaves state unchanged")

	err = s.JumpTo("FA", 0)
	assert.ErrorIs(t, err, ErrUnknownMetric)

	err = s.JumpTo("T1", -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRestoreCursor_Clamps(t *testing.T) {
	s := newTestSession(t)

	assert.True(t, s.RestoreCursor("DTI", 9))
	assert.Equal(t, 1, s.Cursor("DTI"))
	assert.True(t, s.RestoreCursor("DTI", -4))
	assert.Equal(t, 0, s.Cursor("DTI"))
	assert.False(t, s.RestoreCursor("FA", 1))
}

func TestPosition(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.Step(1))
	idx, total := s.Position()
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, total)
}
