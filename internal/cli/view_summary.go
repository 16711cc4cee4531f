package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/qcreview/internal/cli/formatter"
	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/alexanderramin/qcreview/internal/summary"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// summaryFilters is the cycle of the tab key: everything, then one
// status at a time.
var summaryFilters = append([]domain.Status{""}, domain.Statuses...)

// summaryView is the cross-reference table of every subject. Enter jumps
// to the selected subject.
type summaryView struct {
	state  *SharedState
	rows   []summary.Row
	shown  []summary.Row
	cursor int
	filter int
}

func newSummaryView(state *SharedState) *summaryView {
	v := &summaryView{state: state}
	v.reload()
	return v
}

func (v *summaryView) ID() ViewID    { return ViewSummary }
func (v *summaryView) Title() string { return "Summary" }

func (v *summaryView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "select")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
	}
}

func (v *summaryView) Init() tea.Cmd { return nil }

func (v *summaryView) reload() {
	v.rows = summary.Build(v.state.Session())
	v.applyFilter()
}

func (v *summaryView) applyFilter() {
	if st := summaryFilters[v.filter]; st != "" {
		v.shown = summary.Filter(v.rows, st)
	} else {
		v.shown = v.rows
	}
	v.cursor = min(v.cursor, max(len(v.shown)-1, 0))
}

func (v *summaryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.reload()
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			v.cursor = max(v.cursor-1, 0)
		case "down", "j":
			v.cursor = min(v.cursor+1, max(len(v.shown)-1, 0))
		case "tab":
			v.filter = (v.filter + 1) % len(summaryFilters)
			v.cursor = 0
			v.applyFilter()
		case "enter":
			return v, v.open()
		case "s":
			return v, popView()
		}
	}
	return v, nil
}

func (v *summaryView) open() tea.Cmd {
	if len(v.shown) == 0 {
		return nil
	}
	row := v.shown[v.cursor]
	if err := v.state.Session().JumpTo(row.Metric, row.Index); err != nil {
		return outputCmd(formatter.Error(err))
	}
	return popView()
}

func (v *summaryView) View() string {
	counts := summary.Count(v.rows)

	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Summary") + "\n")
	b.WriteString("  " + formatter.RenderProgress(counts.Reviewed(), counts.Total, 20) + "  ")
	for _, st := range domain.Statuses {
		b.WriteString(formatter.StatusStyle(st).Render(fmt.Sprintf("%s %d", st, counts.Of(st))) + "  ")
	}
	b.WriteString("\n")
	label := "all"
	if st := summaryFilters[v.filter]; st != "" {
		label = st.String()
	}
	b.WriteString("  " + formatter.Dim("showing "+label) + "\n\n")

	if len(v.shown) == 0 {
		b.WriteString("  " + formatter.Dim("nothing to show"))
		return b.String()
	}

	limit := max(v.state.ContentHeight()-8, 3)
	start := 0
	if v.cursor >= limit {
		start = v.cursor - limit + 1
	}
	end := min(start+limit, len(v.shown))

	commentWidth := max(v.state.Width-50, 20)
	rows := make([][]string, 0, end-start)
	for _, r := range v.shown[start:end] {
		rows = append(rows, []string{
			domain.MetricLabel(r.Metric),
			r.SubjectID,
			formatter.StatusStyle(r.Status).Render(r.Status.String()),
			formatter.Truncate(r.Comment, commentWidth),
		})
	}
	b.WriteString(formatter.RenderTable([]string{"METRIC", "SUBJECT", "STATUS", "COMMENT"}, rows, v.cursor-start))
	return b.String()
}
