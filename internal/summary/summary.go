// Package summary flattens a review session into the cross-reference table
// shown by the summary view and the summary command.
package summary

import (
	"strings"

	"github.com/alexanderramin/qcreview/internal/domain"
)

// pseudoMetrics are report tabs that hold no subjects of their own.
var pseudoMetrics = map[string]bool{
	"dashboard": true,
	"summary":   true,
}

// Row is one subject in the summary table.
type Row struct {
	Metric    string
	SubjectID string
	Status    domain.Status
	Comment   string
	// Index is the subject's position within its metric, usable with
	// Session.JumpTo.
	Index int
}

// Counts tallies rows per status.
type Counts struct {
	Total    int
	ByStatus map[domain.Status]int
}

// Of returns the tally for status.
func (c Counts) Of(status domain.Status) int {
	return c.ByStatus[status]
}

// Reviewed is the number of rows with a verdict other than Pending.
func (c Counts) Reviewed() int {
	return c.Total - c.ByStatus[domain.StatusPending]
}

// IsPseudoMetric reports whether a tab name is excluded from the summary.
func IsPseudoMetric(name string) bool {
	return pseudoMetrics[strings.ToLower(strings.TrimSpace(name))]
}

// Build lists every subject in metric-then-sequence order. It reads the
// session as it is now; callers rebuild after edits.
func Build(s *domain.Session) []Row {
	var rows []Row
	for _, metric := range s.Metrics() {
		if IsPseudoMetric(metric) {
			continue
		}
		for i, subj := range s.Subjects(metric) {
			rows = append(rows, Row{
				Metric:    metric,
				SubjectID: subj.ID,
				Status:    subj.Status,
				Comment:   subj.Comment,
				Index:     i,
			})
		}
	}
	return rows
}

// Count tallies rows per status. Every status is present in the map.
func Count(rows []Row) Counts {
	c := Counts{Total: len(rows), ByStatus: make(map[domain.Status]int, len(domain.Statuses))}
	for _, st := range domain.Statuses {
		c.ByStatus[st] = 0
	}
	for _, r := range rows {
		c.ByStatus[r.Status]++
	}
	return c
}

// CountByMetric tallies rows per metric, in first-seen order.
func CountByMetric(rows []Row) ([]string, map[string]Counts) {
	var order []string
	grouped := make(map[string][]Row)
	for _, r := range rows {
		if _, ok := grouped[r.Metric]; !ok {
			order = append(order, r.Metric)
		}
		grouped[r.Metric] = append(grouped[r.Metric], r)
	}
	out := make(map[string]Counts, len(grouped))
	for m, rs := range grouped {
		out[m] = Count(rs)
	}
	return order, out
}

// Filter keeps rows whose status is one of statuses. No statuses keeps all.
func Filter(rows []Row, statuses ...domain.Status) []Row {
	if len(statuses) == 0 {
		return rows
	}
	want := make(map[domain.Status]bool, len(statuses))
	for _, st := range statuses {
		want[st] = true
	}
	var out []Row
	for _, r := range rows {
		if want[r.Status] {
			out = append(out, r)
		}
	}
	return out
}

// ParseStatuses reads a comma-separated status list such as "Fail,warning".
// Unknown names are returned separately.
func ParseStatuses(raw string) ([]domain.Status, []string) {
	var statuses []domain.Status
	var unknown []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		st, ok := domain.ParseStatus(part)
		if !ok {
			unknown = append(unknown, part)
			continue
		}
		statuses = append(statuses, st)
	}
	return statuses, unknown
}
