package report

import (
	"time"

	"github.com/alexanderramin/qcreview/internal/domain"
)

// ApplyResult summarizes what an import changed.
type ApplyResult struct {
	Format     Format
	Applied    int
	Skipped    int
	SkippedIDs []string
}

// dateLayouts are tried in order when restoring the saved-at timestamp.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Apply rehydrates the session from a decoded document. Entries whose
// subject is not part of the session are skipped. The session is clean
// afterwards.
func Apply(s *domain.Session, doc *Document) ApplyResult {
	res := ApplyResult{Format: doc.Format}

	for _, e := range doc.Entries {
		status, _ := domain.ParseStatus(e.Status)
		if s.RestoreVerdict(domain.NormalizeMetricName(e.Metric), e.SubjectID, status, e.Comment) {
			res.Applied++
			continue
		}
		res.Skipped++
		res.SkippedIDs = append(res.SkippedIDs, e.SubjectID)
	}

	if doc.Settings != nil {
		cursors := make(map[string]int, len(doc.Settings.Cursors))
		for _, c := range doc.Settings.Cursors {
			cursors[domain.NormalizeMetricName(c.Metric)] = c.Index
		}
		s.RestoreSettings(doc.Settings.Reviewer, parseDate(doc.Settings.Date), cursors)
	}

	s.MarkLoaded()
	return res
}

// Import decodes data and applies it. A decode failure leaves the session
// untouched, dirty flag included.
func Import(s *domain.Session, data []byte) (ApplyResult, error) {
	doc, err := Decode(data)
	if err != nil {
		return ApplyResult{}, err
	}
	return Apply(s, doc), nil
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
