package wheel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time           { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestNormalizer() (*Normalizer, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	return NewNormalizer(WithClock(clock.now)), clock
}

func TestNormalize_ZeroEventIgnored(t *testing.T) {
	n, _ := newTestNormalizer()
	_, ok := n.Normalize(Event{})
	assert.False(t, ok)
	assert.Zero(t, n.Baseline())
}

func TestNormalize_TrackpadSteps(t *testing.T) {
	n, clock := newTestNormalizer()

	d, ok := n.Normalize(Event{DeltaY: 3})
	require.True(t, ok)
	assert.Equal(t, 1, d.Value)
	assert.Equal(t, 1, d.Y)
	assert.Equal(t, 3.0, d.Factor)

	clock.advance(10 * time.Millisecond)
	d, _ = n.Normalize(Event{DeltaY: -9})
	assert.Equal(t, -3, d.Value)

	clock.advance(10 * time.Millisecond)
	d, _ = n.Normalize(Event{DeltaY: 7})
	assert.Equal(t, 2, d.Value, "floor for positive")
}

func TestNormalize_LegacyNotchesDividedBy40(t *testing.T) {
	n, _ := newTestNormalizer()
	d, ok := n.Normalize(Event{DeltaY: 120, Legacy: true})
	require.True(t, ok)
	assert.Equal(t, 1, d.Value)
	assert.Equal(t, 3.0, d.Factor)

	d, _ = n.Normalize(Event{DeltaY: -240, Legacy: true})
	assert.Equal(t, -2, d.Value)
}

func TestNormalize_ModernMultipleOf120NotAdjusted(t *testing.T) {
	n, _ := newTestNormalizer()
	d, _ := n.Normalize(Event{DeltaY: 120})
	assert.Equal(t, 1, d.Value)
	assert.Equal(t, 120.0, d.Factor)
}

func TestNormalize_LineAndPageModes(t *testing.T) {
	n, clock := newTestNormalizer()
	d, _ := n.Normalize(Event{DeltaY: 1, Mode: DeltaLine})
	assert.Equal(t, 16.0, d.Factor)
	assert.Equal(t, 1, d.Value)

	clock.advance(time.Millisecond)
	d, _ = n.Normalize(Event{DeltaY: 1, Mode: DeltaPage})
	assert.Equal(t, 50, d.Value)
}

func TestNormalize_HorizontalOnly(t *testing.T) {
	n, _ := newTestNormalizer()
	d, ok := n.Normalize(Event{DeltaX: 4})
	require.True(t, ok)
	assert.Equal(t, 1, d.X)
	assert.Equal(t, 0, d.Y)
	assert.Equal(t, -1, d.Value)
}

func TestNormalize_BaselineResetsAfterIdle(t *testing.T) {
	n, clock := newTestNormalizer()
	n.Normalize(Event{DeltaY: 3})
	assert.Equal(t, 3.0, n.Baseline())

	clock.advance(150 * time.Millisecond)
	d, _ := n.Normalize(Event{DeltaY: 120})
	assert.Equal(t, 40, d.Value, "baseline is still the trackpad's")

	clock.advance(DefaultReset)
	assert.Zero(t, n.Baseline())
	d, _ = n.Normalize(Event{DeltaY: 120})
	assert.Equal(t, 1, d.Value)
	assert.Equal(t, 120.0, d.Factor)
}

func TestNormalize_SmallFractionsRoundTowardZero(t *testing.T) {
	n, clock := newTestNormalizer()
	n.Normalize(Event{DeltaY: 10})
	clock.advance(time.Millisecond)
	d, _ := n.Normalize(Event{DeltaY: -15})
	assert.Equal(t, -1, d.Value)
}

func TestZoom(t *testing.T) {
	z := NewZoom(0)
	assert.Equal(t, ZoomInitial, z.Level())

	assert.False(t, z.Apply(-1), "1 is outside the open range")
	assert.Equal(t, 2, z.Level())

	assert.True(t, z.Apply(4))
	assert.Equal(t, 6, z.Level())
	assert.False(t, z.Apply(1))
	assert.False(t, z.Apply(0))
	assert.True(t, z.Apply(-3))
	assert.Equal(t, 3, z.Level())

	assert.Equal(t, 5, NewZoom(5).Level())
	assert.Equal(t, ZoomInitial, NewZoom(7).Level())

	var zero Zoom
	assert.Equal(t, ZoomInitial, zero.Level())
}
