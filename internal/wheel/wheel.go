// Package wheel normalizes raw scroll-wheel deltas into whole steps, so a
// trackpad reporting 3px increments and a mouse reporting 120-unit notches
// both move the magnifier one zoom level per notch.
package wheel

import (
	"math"
	"time"
)

// DefaultReset is the idle time after which the smallest-delta baseline
// is forgotten.
const DefaultReset = 200 * time.Millisecond

// legacyNotch is the delta a legacy wheel event reports per notch.
const legacyNotch = 120

// DeltaMode is the unit of a raw delta.
type DeltaMode int

const (
	DeltaPixel DeltaMode = iota
	DeltaLine
	DeltaPage
)

// Event is one raw wheel event. Positive Y scrolls up (away from the user),
// positive X scrolls right. Legacy marks events from devices that report
// in 120-unit notches.
type Event struct {
	DeltaX float64
	DeltaY float64
	Mode   DeltaMode
	Legacy bool
}

// Delta is a normalized event. Value is Y, or the inverted X when Y is zero.
// Factor is the divisor that produced the whole steps.
type Delta struct {
	Value  int
	X      int
	Y      int
	Factor float64
}

// Normalizer keeps the smallest absolute delta seen recently and divides
// incoming deltas by it. It is not safe for concurrent use.
type Normalizer struct {
	LineHeight float64
	PageHeight float64
	Reset      time.Duration

	now    func() time.Time
	lowest float64
	last   time.Time
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

// WithSizes sets the pixel sizes used to convert line and page deltas.
func WithSizes(lineHeight, pageHeight float64) Option {
	return func(n *Normalizer) {
		n.LineHeight = lineHeight
		n.PageHeight = pageHeight
	}
}

// NewNormalizer returns a Normalizer with a 16px line, 800px page and the
// default reset interval.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		LineHeight: 16,
		PageHeight: 800,
		Reset:      DefaultReset,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts ev. It returns false for an event that moves nothing.
func (n *Normalizer) Normalize(ev Event) (Delta, bool) {
	x, y := ev.DeltaX, ev.DeltaY
	if x == 0 && y == 0 {
		return Delta{}, false
	}
	value := y
	if y == 0 {
		value = -x
	}

	var scale float64 = 1
	switch ev.Mode {
	case DeltaLine:
		scale = n.LineHeight
	case DeltaPage:
		scale = n.PageHeight
	}
	value, x, y = value*scale, x*scale, y*scale

	now := n.now()
	if !n.last.IsZero() && now.Sub(n.last) >= n.Reset {
		n.lowest = 0
	}
	n.last = now

	abs := math.Max(math.Abs(x), math.Abs(y))
	adjust := ev.Legacy && math.Mod(abs, legacyNotch) == 0

	if n.lowest == 0 || abs < n.lowest {
		n.lowest = abs
		if adjust {
			n.lowest /= 40
		}
	}
	if adjust {
		value, x, y = value/40, x/40, y/40
	}

	return Delta{
		Value:  whole(value / n.lowest),
		X:      whole(x / n.lowest),
		Y:      whole(y / n.lowest),
		Factor: n.lowest,
	}, true
}

// Baseline returns the current divisor, zero when none is held.
func (n *Normalizer) Baseline() float64 {
	if !n.last.IsZero() && n.now().Sub(n.last) >= n.Reset {
		return 0
	}
	return n.lowest
}

// whole floors values of at least one and ceils the rest, so small
// negative deltas round towards zero.
func whole(v float64) int {
	if v >= 1 {
		return int(math.Floor(v))
	}
	return int(math.Ceil(v))
}
