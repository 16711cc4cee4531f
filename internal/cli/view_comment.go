package cli

import (
	"github.com/alexanderramin/qcreview/internal/cli/formatter"
	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/alexanderramin/qcreview/internal/keymap"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// commentView edits the free-text comment of one subject. Leaving with
// esc stores the text verbatim.
type commentView struct {
	state   *SharedState
	subject string
	input   textarea.Model
}

func newCommentView(state *SharedState, subj *domain.Subject) *commentView {
	ta := textarea.New()
	ta.Placeholder = "Describe what you see…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(max(state.Width-4, 20))
	ta.SetHeight(max(min(state.ContentHeight()-4, 8), 3))
	ta.SetValue(subj.Comment)
	ta.Focus()

	return &commentView{
		state:   state,
		subject: subj.ID,
		input:   ta,
	}
}

func (v *commentView) ID() ViewID    { return ViewComment }
func (v *commentView) Title() string { return "Comment " + v.subject }

func (v *commentView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "save and close")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "new line")),
	}
}

func (v *commentView) Init() tea.Cmd {
	return textarea.Blink
}

func (v *commentView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.input.SetWidth(max(msg.Width-4, 20))
		return v, nil
	case refreshViewMsg:
		return v, nil
	case tea.KeyMsg:
		if v.state.Keys.Dispatch(msg) == keymap.ActionLeaveTextEntry {
			return v, v.save()
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *commentView) save() tea.Cmd {
	if err := v.commit(); err != nil {
		return popWithOutput(formatter.Error(err))
	}
	return popView()
}

// commit stores the typed text. Unchanged text leaves the session clean.
func (v *commentView) commit() error {
	text := v.input.Value()
	if subj, ok := v.state.Session().Subject(v.subject); ok && subj.Comment == text {
		return nil
	}
	return v.state.Session().SetComment(v.subject, text)
}

func (v *commentView) View() string {
	return "\n  " + formatter.Header("Comment on "+v.subject) + "\n\n" + v.input.View()
}
