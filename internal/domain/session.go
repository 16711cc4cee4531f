package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoMetrics        = errors.New("session has no metrics")
	ErrEmptyMetricName  = errors.New("metric name is empty")
	ErrDuplicateMetric  = errors.New("duplicate metric")
	ErrDuplicateSubject = errors.New("duplicate subject id")
	ErrEmptySubjectID   = errors.New("subject id is empty")
	ErrUnknownMetric    = errors.New("unknown metric")
	ErrUnknownSubject   = errors.New("unknown subject")
	ErrIndexOutOfRange  = errors.New("subject index out of range")
	ErrInvalidStatus    = errors.New("invalid status")
)

// Session is the in-memory model of one reviewer's QC judgments.
// It is the single source of truth; views render from it and never the
// other way round.
type Session struct {
	metrics []*Metric
	byName  map[string]int
	byID    map[string][]*Subject
	count   int

	current int
	cursor  map[string]int

	Reviewer string
	SavedAt  *time.Time

	dirty bool
	rev   uint64
}

// NewSession builds a session from the metric/subject set a report declares.
// Every subject starts Pending with an empty comment and every cursor at 0.
// Subject ids must be unique within a metric; the same id may appear under
// several metrics when a report shows one subject per tab.
func NewSession(metrics []Metric) (*Session, error) {
	if len(metrics) == 0 {
		return nil, ErrNoMetrics
	}

	s := &Session{
		byName: make(map[string]int, len(metrics)),
		byID:   make(map[string][]*Subject),
		cursor: make(map[string]int, len(metrics)),
	}

	for _, m := range metrics {
		name := NormalizeMetricName(m.Name)
		if name == "" {
			return nil, ErrEmptyMetricName
		}
		if _, dup := s.byName[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMetric, name)
		}

		metric := &Metric{Name: name, Subjects: make([]*Subject, 0, len(m.Subjects))}
		seen := make(map[string]bool, len(m.Subjects))
		for _, src := range m.Subjects {
			if src == nil {
				continue
			}
			if src.ID == "" {
				return nil, fmt.Errorf("metric %s: %w", name, ErrEmptySubjectID)
			}
			if seen[src.ID] {
				return nil, fmt.Errorf("%w: %s in %s", ErrDuplicateSubject, src.ID, name)
			}
			seen[src.ID] = true
			subj := &Subject{
				ID:     src.ID,
				Metric: name,
				Media:  src.Media,
				Status: StatusPending,
			}
			metric.Subjects = append(metric.Subjects, subj)
			s.byID[subj.ID] = append(s.byID[subj.ID], subj)
			s.count++
		}

		s.byName[name] = len(s.metrics)
		s.metrics = append(s.metrics, metric)
		s.cursor[name] = 0
	}

	return s, nil
}

// Metrics returns metric names in display order.
func (s *Session) Metrics() []string {
	names := make([]string, len(s.metrics))
	for i, m := range s.metrics {
		names[i] = m.Name
	}
	return names
}

// HasMetric reports whether name is a known metric.
func (s *Session) HasMetric(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Subjects returns the ordered subjects of a metric, or nil if unknown.
func (s *Session) Subjects(metric string) []*Subject {
	i, ok := s.byName[metric]
	if !ok {
		return nil
	}
	return s.metrics[i].Subjects
}

// Subject looks a subject up by id. When several metrics share the id, the
// one in the active metric wins, then the first in display order.
func (s *Session) Subject(id string) (*Subject, bool) {
	matches := s.byID[id]
	if len(matches) == 0 {
		return nil, false
	}
	current := s.CurrentMetric()
	for _, subj := range matches {
		if subj.Metric == current {
			return subj, true
		}
	}
	return matches[0], true
}

// SubjectIn looks a subject up within one metric.
func (s *Session) SubjectIn(metric, id string) (*Subject, bool) {
	for _, subj := range s.byID[id] {
		if subj.Metric == metric {
			return subj, true
		}
	}
	return nil, false
}

// IndexOf returns the position of id within metric, or -1.
func (s *Session) IndexOf(metric, id string) int {
	for i, subj := range s.Subjects(metric) {
		if subj.ID == id {
			return i
		}
	}
	return -1
}

// SubjectCount is the number of subjects across all metrics.
func (s *Session) SubjectCount() int {
	return s.count
}

// Dirty reports whether anything changed since the last load or save.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Revision counts changes to verdicts and comments. An export captured at
// one revision only covers the state of that revision.
func (s *Session) Revision() uint64 {
	return s.rev
}

// MarkSavedAsOf records a successful export of the state at rev. Edits made
// after rev are not in the file, so they keep the session dirty.
func (s *Session) MarkSavedAsOf(reviewer string, at time.Time, rev uint64) {
	s.Reviewer = reviewer
	t := at
	s.SavedAt = &t
	if rev == s.rev {
		s.dirty = false
	}
}

// MarkLoaded records a successful import. The loaded state replaces
// whatever an export still in flight captured.
func (s *Session) MarkLoaded() {
	s.rev++
	s.dirty = false
}

func (s *Session) touch() {
	s.rev++
	s.dirty = true
}
