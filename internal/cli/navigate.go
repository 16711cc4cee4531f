package cli

import (
	"github.com/alexanderramin/qcreview/internal/report"
	"github.com/alexanderramin/qcreview/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg asks every view on the stack to re-read the session.
type refreshViewMsg struct{}

// cmdOutputMsg carries text to be displayed transiently over the
// current view.
type cmdOutputMsg struct {
	output string
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// quitMsg ends the program.
type quitMsg struct{}

// exportDoneMsg reports a finished export write.
type exportDoneMsg struct {
	job *service.ExportJob
	err error
}

// importDoneMsg carries a decoded sidecar back to the UI loop.
type importDoneMsg struct {
	path string
	doc  *report.Document
	err  error
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

func quitCmd() tea.Cmd {
	return func() tea.Msg { return quitMsg{} }
}

// outputCmd displays s over the active view. Empty output is a no-op.
func outputCmd(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}

// popWithOutput leaves the current text-entry view and shows s.
func popWithOutput(s string) tea.Cmd {
	return tea.Batch(popView(), outputCmd(s))
}

// wizardCompleteOutput returns a wizardCompleteMsg that displays a message string.
func wizardCompleteOutput(msg string) tea.Msg {
	return wizardCompleteMsg{nextCmd: outputCmd(msg)}
}
