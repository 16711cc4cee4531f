package cli

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/qcreview/internal/config"
	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/alexanderramin/qcreview/internal/keymap"
	"github.com/alexanderramin/qcreview/internal/service"
	"github.com/alexanderramin/qcreview/internal/teatest"
	"github.com/alexanderramin/qcreview/internal/testutil"
	"github.com/alexanderramin/qcreview/internal/wheel"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Sidecar:        "data.json",
		Theme:          "light",
		LogLevel:       "info",
		CannedComments: []string{"Motion artifact", "Signal dropout"},
		ZoomInitial:    wheel.ZoomInitial,
	}
}

// testApp wires an App that never touches the user's config or log file.
func testApp(t *testing.T) *App {
	t.Helper()
	return &App{
		Config:        testConfig(),
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:           func() time.Time { return testNow },
		IsInteractive: func() bool { return false },
	}
}

// testState builds the shared state around a session. The default
// sidecar lives in a per-test temp dir.
func testState(t *testing.T, sess *domain.Session) *SharedState {
	t.Helper()
	if sess == nil {
		sess = testutil.NewTestSession(t, nil)
	}
	app := testApp(t)
	return &SharedState{
		App:            app,
		Review:         service.NewReviewService(sess, service.WithClock(app.Now)),
		Keys:           keymap.New(),
		Sidecar:        filepath.Join(t.TempDir(), "data.json"),
		CannedComments: app.Config.CannedComments,
		ZoomInitial:    app.Config.ZoomInitial,
	}
}

// TestDriver wraps teatest.Driver with inspection of appModel internals
// (view stack, shared state, transient output) the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel over state, sets the terminal size
// and drains Init().
func NewTestDriver(t *testing.T, state *SharedState) *TestDriver {
	t.Helper()

	m := newAppModel(state)
	d := teatest.New(t, m, teatest.WithSize(120, 40), teatest.WithCmdTimeout(100*time.Millisecond))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Session is shorthand for State().Session().
func (d *TestDriver) Session() *domain.Session {
	return d.State().Session()
}

// Reviewer returns the reviewer view at the bottom of the stack.
func (d *TestDriver) Reviewer() *reviewerView {
	return d.appModel().viewStack[0].(*reviewerView)
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// LastOutput returns the transient output displayed in the content area.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}
