package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/qcreview/internal/config"
	"github.com/alexanderramin/qcreview/internal/logging"
	"github.com/alexanderramin/qcreview/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// tuiAnnotation marks commands that hand the terminal to bubbletea, so
// logs stay out of stderr.
const tuiAnnotation = "tui"

// App holds what every command needs. Nil fields are filled in before
// the command runs: Config from the config file, Logger from Config.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	// Now stamps exports. Defaults to time.Now.
	Now func() time.Time
	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// RunTUI runs the bubbletea program. Tests replace it.
	RunTUI func(m tea.Model) error

	logCloser io.Closer
}

// NewRootCmd creates the top-level "qcreview" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var opts reviewOptions

	root := &cobra.Command{
		Use:   "qcreview [report]",
		Short: "Review imaging QC reports in the terminal",
		Long: `qcreview pages through the subjects of a QC report metric by metric,
records a Pass/Warning/Fail verdict and a comment for each, and exports
the review as a data.json sidecar that the next session can load again.

A report is a generated HTML report, a YAML or JSON manifest, or a
directory with one folder of images per metric.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{tuiAnnotation: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runReview(cmd, app, args[0], opts)
		},
	}

	root.PersistentFlags().String("config", "", "Config file (default ~/.config/qcreview/config.yaml)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	opts.bind(root)

	root.AddCommand(
		newReviewCmd(app),
		newSummaryCmd(app),
		newExportCmd(app),
		newMetricsCmd(app),
		newSnapshotsCmd(app),
	)

	return root
}

// setup resolves configuration and logging once per invocation.
func (a *App) setup(cmd *cobra.Command) error {
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.RunTUI == nil {
		a.RunTUI = runProgram
	}
	if a.Config == nil {
		file, _ := cmd.Flags().GetString("config")
		v, err := config.New(file)
		if err != nil {
			return err
		}
		if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
			if err := v.BindPFlag("log.level", f); err != nil {
				return err
			}
		}
		cfg, err := config.Load(v, file != "")
		if err != nil {
			return err
		}
		a.Config = cfg
	}
	if a.Logger == nil {
		logger, closer, err := logging.New(logging.Options{
			File:   a.Config.LogFile,
			Level:  a.Config.LogLevel,
			TUI:    cmd.Annotations[tuiAnnotation] == "true",
			Stderr: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		a.Logger = logger
		a.logCloser = closer
	}
	return nil
}

func (a *App) teardown() error {
	if a.logCloser == nil {
		return nil
	}
	err := a.logCloser.Close()
	a.logCloser = nil
	return err
}

func (a *App) observer() service.UseCaseObserver {
	return service.NewLogUseCaseObserver(a.Logger)
}

func (a *App) interactive() bool {
	return a.IsInteractive == nil || a.IsInteractive()
}

func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
