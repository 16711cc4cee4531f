package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/qcreview/internal/cli/formatter"
	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/alexanderramin/qcreview/internal/keymap"
	"github.com/alexanderramin/qcreview/internal/wheel"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// mediaState is the per-subject viewer state. It resets whenever the
// current subject changes.
type mediaState struct {
	subject   string
	zoom      wheel.Zoom
	magnifier bool
	frame     int
	playing   bool
}

// reviewerView is the home view: metric tabs, the current subject and its
// verdict.
type reviewerView struct {
	state  *SharedState
	media  mediaState
	wheel  *wheel.Normalizer
	smooth bool
}

func newReviewerView(state *SharedState) *reviewerView {
	v := &reviewerView{
		state:  state,
		wheel:  wheel.NewNormalizer(),
		smooth: true,
	}
	v.syncMedia()
	return v
}

func (v *reviewerView) ID() ViewID { return ViewReviewer }

func (v *reviewerView) Title() string {
	return domain.MetricLabel(v.state.Session().CurrentMetric())
}

func (v *reviewerView) ShortHelp() []key.Binding {
	km := v.state.Keys.Keys()
	sess := v.state.Session()
	prev, next := km.Prev, km.Next
	prev.SetEnabled(sess.CanStep(-1))
	next.SetEnabled(sess.CanStep(1))
	return []key.Binding{prev, next, km.Pass, km.Warning, km.Fail, km.Comment, km.Help, km.Quit}
}

func (v *reviewerView) Init() tea.Cmd { return nil }

func (v *reviewerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.syncMedia()
		return v, nil

	case tea.MouseMsg:
		v.handleWheel(msg)
		return v, nil

	case tea.KeyMsg:
		cmd := v.handleAction(v.state.Keys.Dispatch(msg))
		v.syncMedia()
		return v, cmd
	}
	return v, nil
}

func (v *reviewerView) handleAction(act keymap.Action) tea.Cmd {
	sess := v.state.Session()
	cur := sess.Current()

	if status, advance, ok := act.Verdict(); ok {
		if cur == nil {
			return nil
		}
		if err := sess.SetStatus(cur.ID, status); err != nil {
			return outputCmd(formatter.Error(err))
		}
		if advance {
			sess.Step(1)
		}
		return nil
	}

	switch act {
	case keymap.ActionPrev:
		sess.Step(-1)
	case keymap.ActionNext:
		sess.Step(1)
	case keymap.ActionPrevMetric:
		sess.StepMetric(-1)
	case keymap.ActionNextMetric:
		sess.StepMetric(1)

	case keymap.ActionComment:
		if cur == nil {
			v.state.Keys.LeaveTextEntry()
			return outputCmd(formatter.Dim("No subject to comment on."))
		}
		return pushView(newCommentView(v.state, cur))
	case keymap.ActionSearch:
		if len(sess.Subjects(sess.CurrentMetric())) == 0 {
			v.state.Keys.LeaveTextEntry()
			return outputCmd(formatter.Dim("No subjects in this metric."))
		}
		return pushView(newSearchView(v.state))
	case keymap.ActionCannedComment:
		return cannedCommentWizard(v.state)

	case keymap.ActionToggleMagnifier:
		v.media.magnifier = !v.media.magnifier
	case keymap.ActionToggleHelp:
		return pushView(newHelpView(v.state))
	case keymap.ActionToggleTheme:
		v.state.Dark = !v.state.Dark
	case keymap.ActionToggleSmoothing:
		v.smooth = !v.smooth

	case keymap.ActionFrameNext, keymap.ActionFramePrev, keymap.ActionPlayPause:
		if cur == nil || cur.MediaKind() != domain.MediaVideo {
			return nil
		}
		switch act {
		case keymap.ActionFrameNext:
			v.media.playing = false
			v.media.frame++
		case keymap.ActionFramePrev:
			v.media.playing = false
			v.media.frame = max(v.media.frame-1, 0)
		default:
			v.media.playing = !v.media.playing
		}

	case keymap.ActionSummary:
		return pushView(newSummaryView(v.state))
	case keymap.ActionExport:
		return exportWizard(v.state)
	case keymap.ActionImport:
		return importWizard(v.state)
	case keymap.ActionQuit:
		return quitWizard(v.state)
	}
	return nil
}

// handleWheel zooms the magnifier. Terminals report one event per notch,
// so each event is one line of scroll.
func (v *reviewerView) handleWheel(msg tea.MouseMsg) {
	if !v.media.magnifier || msg.Action != tea.MouseActionPress {
		return
	}
	var ev wheel.Event
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		ev = wheel.Event{DeltaY: 1, Mode: wheel.DeltaLine}
	case tea.MouseButtonWheelDown:
		ev = wheel.Event{DeltaY: -1, Mode: wheel.DeltaLine}
	default:
		return
	}
	if d, ok := v.wheel.Normalize(ev); ok {
		v.media.zoom.Apply(d.Value)
	}
}

// syncMedia resets the viewer state when the current subject changed.
func (v *reviewerView) syncMedia() {
	id := ""
	if cur := v.state.Session().Current(); cur != nil {
		id = cur.Metric + "/" + cur.ID
	}
	if id == v.media.subject && id != "" {
		return
	}
	v.media = mediaState{
		subject:   id,
		zoom:      wheel.NewZoom(v.state.ZoomInitial),
		magnifier: v.media.magnifier,
	}
}

func (v *reviewerView) View() string {
	theme := v.state.Theme()
	sess := v.state.Session()

	var b strings.Builder
	b.WriteString(v.renderTabs(theme))
	b.WriteString("\n\n")

	cur := sess.Current()
	if cur == nil {
		b.WriteString(theme.Muted.Render("  No subjects in this metric. ctrl+→ moves to the next one."))
		return b.String()
	}

	idx, total := sess.Position()
	width := max(v.state.Width-4, 40)

	title := formatter.StatusStyle(cur.Status).Bold(true).Render(cur.ID)
	counter := formatter.Dim(fmt.Sprintf("%d/%d", idx+1, total))
	gap := max(width-lipgloss.Width(title)-lipgloss.Width(counter)-lipgloss.Width(formatter.StatusBadge(cur.Status))-6, 1)

	lines := []string{
		title + "  " + formatter.StatusBadge(cur.Status) + strings.Repeat(" ", gap) + counter,
		"",
		v.renderMedia(cur),
		"",
		v.renderComment(cur),
	}
	b.WriteString(theme.Panel.Width(width).Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	b.WriteString(v.renderStepHints())
	return b.String()
}

func (v *reviewerView) renderTabs(theme formatter.Theme) string {
	sess := v.state.Session()
	current := sess.CurrentMetric()
	tabs := make([]string, 0, len(sess.Metrics()))
	for _, m := range sess.Metrics() {
		label := domain.MetricLabel(m)
		if m == current {
			tabs = append(tabs, theme.ActiveTab.Render(label))
			continue
		}
		tabs = append(tabs, theme.Tab.Render(label))
	}
	return " " + strings.Join(tabs, " ")
}

func (v *reviewerView) renderMedia(cur *domain.Subject) string {
	path := cur.Media
	if v.state.Report != nil {
		path = v.state.Report.ResolveMedia(cur.Media)
	}
	kind := cur.MediaKind()
	lines := []string{
		formatter.Dim("media   ") + path + formatter.Dim(" ("+string(kind)+")"),
	}

	switch kind {
	case domain.MediaVideo:
		play := "paused"
		if v.media.playing {
			play = formatter.StyleGreen.Render("playing")
		}
		lines = append(lines, formatter.Dim("video   ")+fmt.Sprintf("frame %d, %s", v.media.frame, play))
	case domain.MediaImage:
		mag := "off"
		if v.media.magnifier {
			mag = formatter.StyleBlue.Render(fmt.Sprintf("on, %d×", v.media.zoom.Level()))
		}
		render := "smooth"
		if !v.smooth {
			render = "pixelated"
		}
		lines = append(lines, formatter.Dim("view    ")+"magnifier "+mag+formatter.Dim(" · ")+render)
	}
	return strings.Join(lines, "\n")
}

func (v *reviewerView) renderComment(cur *domain.Subject) string {
	if cur.Comment == "" {
		return formatter.Dim("comment (none, press c)")
	}
	return formatter.Dim("comment ") + strings.ReplaceAll(cur.Comment, "\n", "\n        ")
}

func (v *reviewerView) renderStepHints() string {
	sess := v.state.Session()
	hint := func(enabled bool, text string) string {
		if enabled {
			return formatter.StyleFg.Render(text)
		}
		return formatter.StyleDim.Strikethrough(true).Render(text)
	}
	return "  " + hint(sess.CanStep(-1), "← prev") + "   " + hint(sess.CanStep(1), "next →")
}
