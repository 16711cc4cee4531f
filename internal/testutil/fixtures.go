package testutil

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/qcreview/internal/domain"
)

// MetricSpec declares one metric of a test report.
type MetricSpec struct {
	Name     string
	Subjects []string
}

// Metric is shorthand for a MetricSpec.
func Metric(name string, subjects ...string) MetricSpec {
	return MetricSpec{Name: name, Subjects: subjects}
}

// SessionOption mutates a freshly built session.
type SessionOption func(t *testing.T, s *domain.Session)

// WithStatus sets a verdict on a subject.
func WithStatus(id string, status domain.Status) SessionOption {
	return func(t *testing.T, s *domain.Session) {
		t.Helper()
		if err := s.SetStatus(id, status); err != nil {
			t.Fatalf("setting status on %s: %v", id, err)
		}
	}
}

// WithComment sets a comment on a subject.
func WithComment(id, text string) SessionOption {
	return func(t *testing.T, s *domain.Session) {
		t.Helper()
		if err := s.SetComment(id, text); err != nil {
			t.Fatalf("setting comment on %s: %v", id, err)
		}
	}
}

// WithCursor jumps to a metric position.
func WithCursor(metric string, index int) SessionOption {
	return func(t *testing.T, s *domain.Session) {
		t.Helper()
		if err := s.JumpTo(metric, index); err != nil {
			t.Fatalf("jumping to %s[%d]: %v", metric, index, err)
		}
	}
}

// NewTestMetrics turns specs into domain metrics with one PNG per subject.
func NewTestMetrics(specs ...MetricSpec) []domain.Metric {
	metrics := make([]domain.Metric, 0, len(specs))
	for _, spec := range specs {
		m := domain.Metric{Name: spec.Name}
		for _, id := range spec.Subjects {
			m.Subjects = append(m.Subjects, &domain.Subject{
				ID:    id,
				Media: fmt.Sprintf("data/%s/%s.png", spec.Name, id),
			})
		}
		metrics = append(metrics, m)
	}
	return metrics
}

// NewTestSession builds a session from specs and applies opts.
// Without specs it uses the two-metric DTI/T1 layout.
func NewTestSession(t *testing.T, specs []MetricSpec, opts ...SessionOption) *domain.Session {
	t.Helper()
	if len(specs) == 0 {
		specs = DefaultSpecs()
	}
	s, err := domain.NewSession(NewTestMetrics(specs...))
	if err != nil {
		t.Fatalf("building test session: %v", err)
	}
	for _, opt := range opts {
		opt(t, s)
	}
	return s
}

// DefaultSpecs is a small report with distinct subject ids per metric.
func DefaultSpecs() []MetricSpec {
	return []MetricSpec{
		Metric("DTI", "dti_sub-01", "dti_sub-02"),
		Metric("T1", "t1_sub-01"),
	}
}
