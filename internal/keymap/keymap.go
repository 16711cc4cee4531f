// Package keymap maps key presses to reviewer actions. The dispatcher has
// two modes: in Navigation mode single keys drive the review, in TextEntry
// mode every key belongs to the focused text field except esc.
package keymap

import (
	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the dispatcher state.
type Mode int

const (
	ModeNavigation Mode = iota
	ModeTextEntry
)

func (m Mode) String() string {
	if m == ModeTextEntry {
		return "text-entry"
	}
	return "navigation"
}

// Action is what a key press asks the reviewer view to do.
type Action int

const (
	ActionNone Action = iota
	ActionPrev
	ActionNext
	ActionPrevMetric
	ActionNextMetric
	ActionPassAndNext
	ActionWarning
	ActionFail
	ActionPending
	ActionComment
	ActionSearch
	ActionToggleMagnifier
	ActionToggleHelp
	ActionToggleTheme
	ActionToggleSmoothing
	ActionFrameNext
	ActionFramePrev
	ActionPlayPause
	ActionCannedComment
	ActionSummary
	ActionExport
	ActionImport
	ActionQuit
	ActionLeaveTextEntry
)

var actionNames = map[Action]string{
	ActionNone:            "none",
	ActionPrev:            "prev",
	ActionNext:            "next",
	ActionPrevMetric:      "prev-metric",
	ActionNextMetric:      "next-metric",
	ActionPassAndNext:     "pass",
	ActionWarning:         "warning",
	ActionFail:            "fail",
	ActionPending:         "pending",
	ActionComment:         "comment",
	ActionSearch:          "search",
	ActionToggleMagnifier: "magnifier",
	ActionToggleHelp:      "help",
	ActionToggleTheme:     "theme",
	ActionToggleSmoothing: "smoothing",
	ActionFrameNext:       "frame-next",
	ActionFramePrev:       "frame-prev",
	ActionPlayPause:       "play-pause",
	ActionCannedComment:   "canned-comment",
	ActionSummary:         "summary",
	ActionExport:          "export",
	ActionImport:          "import",
	ActionQuit:            "quit",
	ActionLeaveTextEntry:  "leave-text-entry",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// Verdict returns the status an action assigns, and whether the cursor
// advances afterwards.
func (a Action) Verdict() (status domain.Status, advance bool, ok bool) {
	switch a {
	case ActionPassAndNext:
		return domain.StatusPass, true, true
	case ActionWarning:
		return domain.StatusWarning, false, true
	case ActionFail:
		return domain.StatusFail, false, true
	case ActionPending:
		return domain.StatusPending, false, true
	}
	return "", false, false
}

// opensTextEntry lists actions that hand the keyboard to a text field.
func (a Action) opensTextEntry() bool {
	return a == ActionComment || a == ActionSearch
}

// KeyMap holds every binding of the reviewer view.
type KeyMap struct {
	Prev       key.Binding
	Next       key.Binding
	PrevMetric key.Binding
	NextMetric key.Binding
	Pass       key.Binding
	Warning    key.Binding
	Fail       key.Binding
	Pending    key.Binding
	Comment    key.Binding
	Search     key.Binding
	Magnifier  key.Binding
	Help       key.Binding
	Theme      key.Binding
	Smoothing  key.Binding
	FrameNext  key.Binding
	FramePrev  key.Binding
	PlayPause  key.Binding
	Canned     key.Binding
	Summary    key.Binding
	Export     key.Binding
	Import     key.Binding
	Quit       key.Binding
	Leave      key.Binding
}

// DefaultKeyMap returns the standard reviewer bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev")),
		Next:       key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		PrevMetric: key.NewBinding(key.WithKeys("ctrl+left"), key.WithHelp("ctrl+←", "prev metric")),
		NextMetric: key.NewBinding(key.WithKeys("ctrl+right"), key.WithHelp("ctrl+→", "next metric")),
		Pass:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "pass + next")),
		Warning:    key.NewBinding(key.WithKeys("2", "w"), key.WithHelp("2/w", "warning")),
		Fail:       key.NewBinding(key.WithKeys("3", "f"), key.WithHelp("3/f", "fail")),
		Pending:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "pending")),
		Comment:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Magnifier:  key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "magnifier")),
		Help:       key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "help")),
		Theme:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dark theme")),
		Smoothing:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "smoothing")),
		FrameNext:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next frame")),
		FramePrev:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev frame")),
		PlayPause:  key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "play/pause")),
		Canned:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "canned comment")),
		Summary:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "summary")),
		Export:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "export")),
		Import:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "import")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Leave:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
	}
}

// ShortHelp is the status-bar subset.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Pass, k.Warning, k.Fail, k.Comment, k.Help, k.Quit}
}

// FullHelp lists every navigation binding, grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.PrevMetric, k.NextMetric, k.Search, k.Summary},
		{k.Pass, k.Warning, k.Fail, k.Pending, k.Comment, k.Canned},
		{k.Magnifier, k.Smoothing, k.FrameNext, k.FramePrev, k.PlayPause, k.Theme},
		{k.Export, k.Import, k.Help, k.Quit},
	}
}

type entry struct {
	binding *key.Binding
	action  Action
}

// Dispatcher turns key presses into actions according to the current mode.
type Dispatcher struct {
	keys    KeyMap
	mode    Mode
	entries []entry
}

// New returns a dispatcher in Navigation mode with the default bindings.
func New() *Dispatcher {
	return NewWithKeyMap(DefaultKeyMap())
}

// NewWithKeyMap returns a dispatcher using km.
func NewWithKeyMap(km KeyMap) *Dispatcher {
	d := &Dispatcher{keys: km}
	k := &d.keys
	d.entries = []entry{
		{&k.PrevMetric, ActionPrevMetric},
		{&k.NextMetric, ActionNextMetric},
		{&k.Prev, ActionPrev},
		{&k.Next, ActionNext},
		{&k.Pass, ActionPassAndNext},
		{&k.Warning, ActionWarning},
		{&k.Fail, ActionFail},
		{&k.Pending, ActionPending},
		{&k.Comment, ActionComment},
		{&k.Search, ActionSearch},
		{&k.Magnifier, ActionToggleMagnifier},
		{&k.Help, ActionToggleHelp},
		{&k.Theme, ActionToggleTheme},
		{&k.Smoothing, ActionToggleSmoothing},
		{&k.FrameNext, ActionFrameNext},
		{&k.FramePrev, ActionFramePrev},
		{&k.PlayPause, ActionPlayPause},
		{&k.Canned, ActionCannedComment},
		{&k.Summary, ActionSummary},
		{&k.Export, ActionExport},
		{&k.Import, ActionImport},
		{&k.Quit, ActionQuit},
	}
	return d
}

// Keys returns the bindings, for help rendering.
func (d *Dispatcher) Keys() KeyMap { return d.keys }

// Mode returns the current mode.
func (d *Dispatcher) Mode() Mode { return d.mode }

// EnterTextEntry hands the keyboard to a text field.
func (d *Dispatcher) EnterTextEntry() { d.mode = ModeTextEntry }

// LeaveTextEntry gives the keyboard back to navigation.
func (d *Dispatcher) LeaveTextEntry() { d.mode = ModeNavigation }

// Dispatch resolves a key press. In TextEntry mode only the leave binding
// is recognised; it switches back to Navigation mode. Actions that open a
// text field switch to TextEntry mode.
func (d *Dispatcher) Dispatch(msg tea.KeyMsg) Action {
	if d.mode == ModeTextEntry {
		if key.Matches(msg, d.keys.Leave) {
			d.mode = ModeNavigation
			return ActionLeaveTextEntry
		}
		return ActionNone
	}

	for _, e := range d.entries {
		if key.Matches(msg, *e.binding) {
			if e.action.opensTextEntry() {
				d.mode = ModeTextEntry
			}
			return e.action
		}
	}
	return ActionNone
}
