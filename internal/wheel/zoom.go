package wheel

// Zoom bounds for the magnifier. Valid levels lie strictly between
// ZoomMin and ZoomMax.
const (
	ZoomMin     = 1
	ZoomMax     = 7
	ZoomInitial = 2
)

// Zoom is the magnifier level.
type Zoom struct {
	level int
}

// NewZoom starts at initial, or ZoomInitial when initial is out of range.
func NewZoom(initial int) Zoom {
	if !zoomValid(initial) {
		initial = ZoomInitial
	}
	return Zoom{level: initial}
}

// Level returns the current magnification.
func (z Zoom) Level() int {
	if z.level == 0 {
		return ZoomInitial
	}
	return z.level
}

// Apply moves the level by steps. A move that would leave the valid range
// is refused as a whole.
func (z *Zoom) Apply(steps int) bool {
	next := z.Level() + steps
	if steps == 0 || !zoomValid(next) {
		return false
	}
	z.level = next
	return true
}

func zoomValid(level int) bool {
	return level > ZoomMin && level < ZoomMax
}
