package cli

import (
	"github.com/alexanderramin/qcreview/internal/cli/formatter"
	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/alexanderramin/qcreview/internal/keymap"
	"github.com/alexanderramin/qcreview/internal/manifest"
	"github.com/alexanderramin/qcreview/internal/service"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App    *App
	Review service.ReviewService
	Report *manifest.Report
	Keys   *keymap.Dispatcher

	// Reviewer is offered as the default name on export.
	Reviewer string
	// Sidecar is the default export and import path.
	Sidecar string
	Dark    bool
	// CannedComments feed the canned-comment picker.
	CannedComments []string
	// ZoomInitial is the magnifier level a fresh subject starts at.
	ZoomInitial int

	// Terminal dimensions
	Width  int
	Height int
}

// Session is the review session all views render.
func (s *SharedState) Session() *domain.Session {
	return s.Review.Session()
}

// Theme returns the active light or dark theme.
func (s *SharedState) Theme() formatter.Theme {
	return formatter.NewTheme(s.Dark)
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
