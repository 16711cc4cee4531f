package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/qcreview/internal/cli/formatter"
	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/alexanderramin/qcreview/internal/keymap"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// searchMatch is a subject of the current metric whose id matches the query.
type searchMatch struct {
	index int
	subj  *domain.Subject
}

// searchView filters the current metric's subjects by id and jumps to the
// chosen one.
type searchView struct {
	state   *SharedState
	metric  string
	input   textinput.Model
	matches []searchMatch
	cursor  int
}

func newSearchView(state *SharedState) *searchView {
	ti := textinput.New()
	ti.Placeholder = "subject id"
	ti.Prompt = "/ "
	ti.Focus()

	v := &searchView{
		state:  state,
		metric: state.Session().CurrentMetric(),
		input:  ti,
	}
	v.filter()
	return v
}

func (v *searchView) ID() ViewID    { return ViewSearch }
func (v *searchView) Title() string { return "Search" }

func (v *searchView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "select")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "jump")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *searchView) Init() tea.Cmd {
	return textinput.Blink
}

// filter keeps subjects whose id contains the query, ignoring case.
func (v *searchView) filter() {
	q := strings.ToLower(strings.TrimSpace(v.input.Value()))
	v.matches = v.matches[:0]
	for i, subj := range v.state.Session().Subjects(v.metric) {
		if q == "" || strings.Contains(strings.ToLower(subj.ID), q) {
			v.matches = append(v.matches, searchMatch{index: i, subj: subj})
		}
	}
	v.cursor = min(v.cursor, max(len(v.matches)-1, 0))
}

func (v *searchView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		return v, nil
	case tea.KeyMsg:
		if v.state.Keys.Dispatch(msg) == keymap.ActionLeaveTextEntry {
			return v, popView()
		}
		switch msg.Type {
		case tea.KeyUp:
			v.cursor = max(v.cursor-1, 0)
			return v, nil
		case tea.KeyDown:
			v.cursor = min(v.cursor+1, max(len(v.matches)-1, 0))
			return v, nil
		case tea.KeyEnter:
			return v, v.jump()
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.filter()
	return v, cmd
}

func (v *searchView) jump() tea.Cmd {
	v.state.Keys.LeaveTextEntry()
	if len(v.matches) == 0 {
		return popWithOutput(formatter.Dim(fmt.Sprintf("No subject in %s matches %q.",
			domain.MetricLabel(v.metric), v.input.Value())))
	}
	target := v.matches[v.cursor]
	if err := v.state.Session().JumpTo(v.metric, target.index); err != nil {
		return popWithOutput(formatter.Error(err))
	}
	return popView()
}

func (v *searchView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Find in "+domain.MetricLabel(v.metric)) + "\n\n")
	b.WriteString("  " + v.input.View() + "\n\n")

	if len(v.matches) == 0 {
		b.WriteString("  " + formatter.Dim("no matches"))
		return b.String()
	}

	limit := max(v.state.ContentHeight()-6, 3)
	start := 0
	if v.cursor >= limit {
		start = v.cursor - limit + 1
	}
	for i := start; i < len(v.matches) && i < start+limit; i++ {
		m := v.matches[i]
		prefix := "  "
		if i == v.cursor {
			prefix = formatter.StyleHeader.Render("▸ ")
		}
		b.WriteString("  " + prefix + formatter.StatusStyle(m.subj.Status).Render(m.subj.ID) + "\n")
	}
	b.WriteString("  " + formatter.Dim(fmt.Sprintf("%d of %d", len(v.matches), len(v.state.Session().Subjects(v.metric)))))
	return b.String()
}
