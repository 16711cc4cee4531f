package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/qcreview/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack with the reviewer view at the bottom.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	// Transient output (export result, import error), displayed in the
	// content area until the next key press.
	lastOutput string

	// Scrollable viewport for output that exceeds terminal height.
	outputVP     viewport.Model
	outputActive bool // true when lastOutput is being displayed in the viewport
}

func newAppModel(state *SharedState) appModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = outputViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := appModel{
		state:    state,
		outputVP: vp,
	}
	m.viewStack = []View{newReviewerView(state)}
	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if m.outputActive {
			m.outputVP.Width = msg.Width
			m.outputVP.Height = m.state.ContentHeight()
		}
		// Every view lays out against the terminal size.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.outputActive {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}

	case pushViewMsg:
		m.clearOutput()
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, refreshViews()

	case refreshViewMsg:
		// Broadcast so the reviewer view re-reads the session after edits
		// made in views above it.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case cmdOutputMsg:
		m.lastOutput = msg.output
		m.outputActive = true
		m.outputVP.SetContent(msg.output)
		m.outputVP.Width = m.state.Width
		m.outputVP.Height = m.state.ContentHeight()
		m.outputVP.GotoTop()
		return m, nil

	// Session changes from finished exports and imports are applied here,
	// on the UI loop, never inside the commands that did the I/O.
	case exportDoneMsg:
		return m.Update(cmdOutputMsg{output: exportResult(m.state, msg)})

	case importDoneMsg:
		out := importResult(m.state, msg)
		mm, cmd := m.Update(cmdOutputMsg{output: out})
		return mm, tea.Batch(cmd, refreshViews())

	case wizardCompleteMsg:
		// Atomically pop the wizard view and execute the follow-up command.
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		m.clearOutput()
		return m, tea.Batch(msg.nextCmd, refreshViews())

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	// Forward other messages (cursor blink, mouse) to the active view.
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.interrupt()
	}

	// When output is displayed, intercept scroll keys for the viewport.
	// Other keys dismiss the output, then fall through to normal handling.
	if m.outputActive {
		if isOutputScrollKey(msg) {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}
		m.clearOutput()
		if msg.Type == tea.KeyEsc {
			return m, nil
		}
	}

	// Text fields receive every key, esc included.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	if msg.Type == tea.KeyEsc && len(m.viewStack) > 1 {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
		return m, refreshViews()
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

// interrupt handles ctrl+c from any view. Open text fields are committed
// and closed first. Unsaved verdicts get the quit confirm; ctrl+c on the
// confirm itself quits without asking again.
func (m appModel) interrupt() (tea.Model, tea.Cmd) {
	if wv, ok := m.activeView().(*wizardView); ok && wv.titleStr == quitTitle {
		m.quitting = true
		return m, tea.Quit
	}

	m.clearOutput()
	var outputs []string
	for len(m.viewStack) > 1 {
		v := m.activeView()
		if cv, ok := v.(*commentView); ok {
			if err := cv.commit(); err != nil {
				outputs = append(outputs, formatter.Error(err))
			}
		}
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
	}
	m.state.Keys.LeaveTextEntry()

	if !m.state.Session().Dirty() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tea.Batch(refreshViews(), outputCmd(strings.Join(outputs, "\n")), quitWizard(m.state))
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	// Content area: active view or scrollable output
	if m.lastOutput != "" {
		if m.outputActive && m.state.Height > 0 {
			sections = append(sections, m.outputVP.View())
		} else {
			sections = append(sections, m.lastOutput)
		}
	} else if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("qcreview")
	if m.state.Report != nil && m.state.Report.Title != "" {
		title += " " + formatter.Bold(m.state.Report.Title)
	}

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	header := title + breadcrumb

	sess := m.state.Session()
	switch {
	case sess.Dirty():
		header += "  " + formatter.StyleYellow.Render("● unsaved")
	case sess.SavedAt != nil:
		header += "  " + formatter.Dim("saved by "+sess.Reviewer)
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	if m.outputActive && m.outputVP.TotalLineCount() > m.outputVP.Height {
		hints = append(hints, scrollIndicator(m.outputVP))
		hints = append(hints, formatter.Dim("↑↓ pgup/pgdn: scroll"))
		hints = append(hints, formatter.Dim("esc: dismiss"))
	} else if m.outputActive {
		hints = append(hints, formatter.Dim("any key: dismiss"))
	} else if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			if !b.Enabled() {
				continue
			}
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
		if len(m.viewStack) > 1 && !viewCapturesInput(v) {
			hints = append(hints, formatter.Dim("esc: back"))
		}
	}

	bar := strings.Join(hints, "  ")
	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}

// clearOutput dismisses the transient output and deactivates the viewport.
func (m *appModel) clearOutput() {
	m.lastOutput = ""
	m.outputActive = false
}

// outputViewportKeyMap returns a restricted keymap for the output viewport.
// Only arrow/page keys scroll. Letter keys are left free so they can
// dismiss the output or act on the reviewer view.
func outputViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

// isOutputScrollKey returns true if the key should scroll the output viewport
// rather than dismissing the output.
func isOutputScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}

// scrollIndicator returns a dim scroll position string for the status bar.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	pct := int(vp.ScrollPercent() * 100)
	return formatter.Dim(fmt.Sprintf("[%d%%]", pct))
}
