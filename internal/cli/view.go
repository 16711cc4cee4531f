package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewReviewer ViewID = iota
	ViewComment
	ViewSearch
	ViewSummary
	ViewHelp
	ViewForm
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// viewCapturesInput returns true if the active view owns a text field and
// should receive all key events, bypassing global keys like esc.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewComment, ViewSearch, ViewForm:
		return true
	}
	return false
}
