package domain

import "fmt"

// CurrentMetric returns the active metric name.
func (s *Session) CurrentMetric() string {
	return s.metrics[s.current].Name
}

// CurrentMetricIndex returns the position of the active metric in display order.
func (s *Session) CurrentMetricIndex() int {
	return s.current
}

// Cursor returns the displayed index within metric (0 for unknown metrics).
func (s *Session) Cursor(metric string) int {
	return s.cursor[metric]
}

// Current returns the displayed subject, or nil when the active metric is empty.
func (s *Session) Current() *Subject {
	subjects := s.metrics[s.current].Subjects
	if len(subjects) == 0 {
		return nil
	}
	return subjects[s.cursor[s.CurrentMetric()]]
}

// Position returns the 0-based cursor and the subject count of the active metric.
func (s *Session) Position() (int, int) {
	name := s.CurrentMetric()
	return s.cursor[name], len(s.metrics[s.current].Subjects)
}

// SelectMetric activates a metric without touching its cursor.
// Unknown names are ignored.
func (s *Session) SelectMetric(name string) bool {
	i, ok := s.byName[name]
	if !ok {
		return false
	}
	s.current = i
	return true
}

// CanStep reports whether Step(delta) would move.
func (s *Session) CanStep(delta int) bool {
	idx, total := s.Position()
	target := idx + delta
	return total > 0 && target >= 0 && target < total
}

// Step moves the cursor of the active metric. It refuses when the target
// would leave the sequence, which disables "previous" at the first subject
// and "next" at the last.
func (s *Session) Step(delta int) bool {
	if !s.CanStep(delta) {
		return false
	}
	s.cursor[s.CurrentMetric()] += delta
	return true
}

// StepMetric activates the previous (delta<0) or next (delta>0) metric.
func (s *Session) StepMetric(delta int) bool {
	target := s.current + delta
	if target < 0 || target >= len(s.metrics) {
		return false
	}
	s.current = target
	return true
}

// JumpTo activates metric and places its cursor at index.
func (s *Session) JumpTo(metric string, index int) error {
	i, ok := s.byName[metric]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
	}
	if index < 0 || index >= len(s.metrics[i].Subjects) {
		return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, metric, index)
	}
	s.current = i
	s.cursor[metric] = index
	return nil
}

// RestoreCursor sets a metric cursor from persisted settings, clamping it
// into the valid range. Unknown metrics are ignored.
func (s *Session) RestoreCursor(metric string, index int) bool {
	i, ok := s.byName[metric]
	if !ok {
		return false
	}
	n := len(s.metrics[i].Subjects)
	switch {
	case n == 0 || index < 0:
		index = 0
	case index >= n:
		index = n - 1
	}
	s.cursor[metric] = index
	return true
}
