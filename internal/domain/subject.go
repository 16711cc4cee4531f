package domain

import "strings"

// Subject is one reviewable image or video belonging to a metric.
type Subject struct {
	ID      string
	Metric  string
	Media   string
	Status  Status
	Comment string
}

// MediaKind reports whether the subject shows an image, a video or nothing.
func (s *Subject) MediaKind() MediaKind {
	return MediaKindOf(s.Media)
}

// Metric is a named tab grouping subjects in display order.
type Metric struct {
	Name     string
	Subjects []*Subject
}

// NormalizeMetricName derives the metric identity from its display label.
// Report tabs are addressed by their label with spaces replaced by underscores.
func NormalizeMetricName(label string) string {
	return strings.ReplaceAll(strings.TrimSpace(label), " ", "_")
}

// MetricLabel is the inverse of NormalizeMetricName for display.
func MetricLabel(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
