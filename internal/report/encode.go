package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/qcreview/internal/domain"
)

// Build captures the session as a modern document. The reviewer name is
// mandatory; an empty name is a cancelled export, not a partial one.
func Build(s *domain.Session, reviewer string, now time.Time) (*Document, error) {
	reviewer = strings.TrimSpace(reviewer)
	if reviewer == "" {
		return nil, ErrReviewerRequired
	}

	doc := &Document{
		Format:  FormatModern,
		Version: CurrentVersion,
		Settings: &Settings{
			Reviewer: reviewer,
			Date:     now.UTC().Format(time.RFC3339),
		},
	}

	for _, metric := range s.Metrics() {
		doc.Settings.Cursors = append(doc.Settings.Cursors, TabCursor{
			Metric: metric,
			Index:  s.Cursor(metric),
		})
		for _, subj := range s.Subjects(metric) {
			doc.Entries = append(doc.Entries, Entry{
				Metric:    metric,
				SubjectID: subj.ID,
				Status:    subj.Status.String(),
				Comment:   subj.Comment,
			})
		}
	}
	return doc, nil
}

// Encode writes a document in the modern two-record layout.
func Encode(doc *Document) ([]byte, error) {
	settings := settingsRecord{
		Type:    recordSettings,
		Version: CurrentVersion,
		Data:    []TabCursor{},
	}
	if doc.Settings != nil {
		settings.Username = doc.Settings.Reviewer
		settings.Date = doc.Settings.Date
		if doc.Settings.Cursors != nil {
			settings.Data = doc.Settings.Cursors
		}
	}
	entries := doc.Entries
	if entries == nil {
		entries = []Entry{}
	}

	out, err := json.MarshalIndent([]any{
		settings,
		reportRecord{Type: recordReport, Data: entries},
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding sidecar: %w", err)
	}
	return append(out, '\n'), nil
}

// Export serializes the session. It does not mark the session saved; the
// caller does that once the bytes are safely written.
func Export(s *domain.Session, reviewer string, now time.Time) ([]byte, error) {
	doc, err := Build(s, reviewer, now)
	if err != nil {
		return nil, err
	}
	return Encode(doc)
}
