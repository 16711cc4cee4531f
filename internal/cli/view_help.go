package cli

import (
	"github.com/alexanderramin/qcreview/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// helpView lists every reviewer binding. h or esc closes it.
type helpView struct {
	state *SharedState
	model help.Model
}

func newHelpView(state *SharedState) *helpView {
	h := help.New()
	h.ShowAll = true
	h.Width = state.Width
	h.Styles.FullKey = formatter.StyleHeader
	h.Styles.FullDesc = formatter.StyleFg
	h.Styles.FullSeparator = formatter.StyleDim
	return &helpView{state: state, model: h}
}

func (v *helpView) ID() ViewID    { return ViewHelp }
func (v *helpView) Title() string { return "Help" }

func (v *helpView) ShortHelp() []key.Binding {
	return []key.Binding{v.state.Keys.Keys().Help}
}

func (v *helpView) Init() tea.Cmd { return nil }

func (v *helpView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.model.Width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, v.state.Keys.Keys().Help) {
			return v, popView()
		}
	}
	return v, nil
}

func (v *helpView) View() string {
	return "\n" + formatter.RenderBox("Keyboard shortcuts", v.model.View(v.state.Keys.Keys()))
}
