package domain

import (
	"fmt"
	"time"
)

// SetStatus records a verdict. Any verdict may follow any other.
func (s *Session) SetStatus(id string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(status))
	}
	subj, err := s.lookup(id)
	if err != nil {
		return err
	}
	subj.Status = status
	s.touch()
	return nil
}

// SetComment replaces the comment verbatim, including with an empty string.
func (s *Session) SetComment(id, text string) error {
	subj, err := s.lookup(id)
	if err != nil {
		return err
	}
	subj.Comment = text
	s.touch()
	return nil
}

// AppendComment adds a snippet, separated by a newline only when the
// existing comment is non-empty.
func (s *Session) AppendComment(id, snippet string) error {
	subj, err := s.lookup(id)
	if err != nil {
		return err
	}
	if subj.Comment != "" {
		subj.Comment += "\n"
	}
	subj.Comment += snippet
	s.touch()
	return nil
}

// RestoreVerdict overwrites a subject's status and comment from a loaded
// sidecar without marking the session dirty. The subject is matched within
// metric when that pairing exists. An empty metric comes from the legacy
// layout, which keys verdicts by id alone: it applies to every subject with
// that id. Any other unmatched metric falls back to the first subject with
// the id in display order. Unknown ids return false.
func (s *Session) RestoreVerdict(metric, id string, status Status, comment string) bool {
	if !status.Valid() {
		status = StatusPending
	}
	targets := s.byID[id]
	if subj, ok := s.SubjectIn(metric, id); ok {
		targets = []*Subject{subj}
	} else if metric != "" && len(targets) > 0 {
		targets = targets[:1]
	}
	for _, subj := range targets {
		subj.Status = status
		subj.Comment = comment
	}
	return len(targets) > 0
}

// RestoreSettings applies the reviewer, save time and per-metric cursors of
// a loaded sidecar. Metrics absent from cursors go back to index 0.
func (s *Session) RestoreSettings(reviewer string, savedAt *time.Time, cursors map[string]int) {
	s.Reviewer = reviewer
	s.SavedAt = savedAt
	for _, m := range s.metrics {
		s.RestoreCursor(m.Name, cursors[m.Name])
	}
}

func (s *Session) lookup(id string) (*Subject, error) {
	subj, ok := s.Subject(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSubject, id)
	}
	return subj, nil
}
