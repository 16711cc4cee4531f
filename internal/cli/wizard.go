package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/qcreview/internal/cli/formatter"
	"github.com/alexanderramin/qcreview/internal/report"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// reviewHuhTheme returns a huh theme using the Gruvbox palette.
func reviewHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(reviewHuhTheme()).WithShowHelp(false)
}

func requirePath(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a file path is required")
	}
	return nil
}

// exportWizard asks for the reviewer name and the target file, then
// writes the sidecar. An empty name cancels the export.
func exportWizard(state *SharedState) tea.Cmd {
	name := state.Reviewer
	path := state.Sidecar

	form := newForm(huh.NewGroup(
		huh.NewInput().
			Title("Reviewer name").
			Description("Stored with the verdicts. Leave empty to cancel.").
			Value(&name),
		huh.NewInput().
			Title("Save to").
			Description(".json writes a sidecar, .db or .sqlite a snapshot database").
			Validate(requirePath).
			Value(&path),
	))

	return startWizardCmd(state, "Export", form, func() tea.Cmd {
		return exportCmd(state, name, strings.TrimSpace(path))
	})
}

// exportCmd captures the session on the calling goroutine and leaves only
// the file write to the returned command. The result comes back as an
// exportDoneMsg so the session is marked saved inside Update.
func exportCmd(state *SharedState, reviewer, path string) tea.Cmd {
	reviewer = strings.TrimSpace(reviewer)
	if reviewer == "" {
		return outputCmd(exportCancelled)
	}
	state.Reviewer = reviewer
	state.Sidecar = path
	svc := state.Review

	job, err := svc.PrepareExport(path, reviewer, "")
	if errors.Is(err, report.ErrReviewerRequired) {
		return outputCmd(exportCancelled)
	}
	if err != nil {
		return outputCmd(formatter.Error(err))
	}
	return func() tea.Msg {
		return exportDoneMsg{job: job, err: svc.WriteExport(context.Background(), job)}
	}
}

const exportCancelled = "Export cancelled: a reviewer name is required."

func exportResult(state *SharedState, msg exportDoneMsg) string {
	if msg.err != nil {
		return formatter.Error(msg.err)
	}
	state.Review.CommitExport(msg.job)
	return formatter.Success(fmt.Sprintf("Saved %s to %s",
		formatter.Plural(msg.job.Entries, "verdict"), formatter.Bold(msg.job.Path)))
}

// importWizard asks which sidecar to load and applies it.
func importWizard(state *SharedState) tea.Cmd {
	path := state.Sidecar

	form := newForm(huh.NewGroup(
		huh.NewInput().
			Title("Load review from").
			Description("A data.json sidecar, legacy or current, or a snapshot database").
			Validate(requirePath).
			Value(&path),
	))

	return startWizardCmd(state, "Import", form, func() tea.Cmd {
		return importCmd(state, strings.TrimSpace(path))
	})
}

// importCmd reads and decodes path off the UI loop. The decoded document
// is applied to the session when Update receives the importDoneMsg.
func importCmd(state *SharedState, path string) tea.Cmd {
	svc := state.Review
	return func() tea.Msg {
		doc, err := svc.ReadImport(context.Background(), path)
		return importDoneMsg{path: path, doc: doc, err: err}
	}
}

func importResult(state *SharedState, msg importDoneMsg) string {
	if msg.err != nil {
		return formatter.Error(msg.err) + "\n" + formatter.Dim("Review state unchanged.")
	}
	res := state.Review.ApplyImport(msg.doc)
	out := formatter.Success(fmt.Sprintf("Loaded %s from %s",
		formatter.Plural(res.Applied, "verdict"), filepath.Base(msg.path)))
	if res.Skipped > 0 {
		out += "\n" + formatter.Dim(fmt.Sprintf("%s not in this report: %s",
			formatter.Plural(res.Skipped, "entry"), strings.Join(res.SkippedIDs, ", ")))
	}
	return out
}

// cannedCommentWizard appends a stock phrase to the current subject's
// comment.
func cannedCommentWizard(state *SharedState) tea.Cmd {
	cur := state.Session().Current()
	if cur == nil {
		return outputCmd(formatter.Dim("No subject to comment on."))
	}
	if len(state.CannedComments) == 0 {
		return outputCmd(formatter.Dim("No canned comments configured."))
	}

	id := cur.ID
	var choice string
	options := make([]huh.Option[string], 0, len(state.CannedComments))
	for _, c := range state.CannedComments {
		options = append(options, huh.NewOption(c, c))
	}
	form := newForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Add to comment on " + id).
			Options(options...).
			Value(&choice),
	))

	return startWizardCmd(state, "Canned comment", form, func() tea.Cmd {
		if err := state.Session().AppendComment(id, choice); err != nil {
			return outputCmd(formatter.Error(err))
		}
		return nil
	})
}

// quitTitle names the unsaved-changes confirm on the view stack.
const quitTitle = "Quit"

// quitWizard exits straight away when everything is saved, and asks
// first otherwise. The warning is advisory: confirming quits anyway.
func quitWizard(state *SharedState) tea.Cmd {
	if !state.Session().Dirty() {
		return quitCmd()
	}

	var leave bool
	form := newForm(huh.NewGroup(
		huh.NewConfirm().
			Title("You have unsaved changes").
			Description("Export with ctrl+s to keep them.").
			Affirmative("Quit anyway").
			Negative("Keep reviewing").
			Value(&leave),
	))

	return startWizardCmd(state, quitTitle, form, func() tea.Cmd {
		if leave {
			return quitCmd()
		}
		return nil
	})
}
