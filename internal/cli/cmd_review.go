package cli

import (
	"errors"

	"github.com/alexanderramin/qcreview/internal/keymap"
	"github.com/spf13/cobra"
)

// reviewOptions are the flags shared by "qcreview <report>" and
// "qcreview review <report>".
type reviewOptions struct {
	load     string
	reviewer string
	dark     bool
}

func (o *reviewOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.load, "load", "", "Sidecar to load at start (data.json or snapshot database)")
	cmd.Flags().StringVar(&o.reviewer, "reviewer", "", "Reviewer name offered on export")
	cmd.Flags().BoolVar(&o.dark, "dark", false, "Start with the dark theme")
}

func newReviewCmd(app *App) *cobra.Command {
	var opts reviewOptions
	cmd := &cobra.Command{
		Use:         "review <report>",
		Short:       "Open the interactive reviewer",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{tuiAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(cmd, app, args[0], opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func runReview(cmd *cobra.Command, app *App, reportPath string, opts reviewOptions) error {
	if !app.interactive() {
		return errors.New("review needs an interactive terminal; use summary or export instead")
	}

	rep, svc, err := openReview(cmd.Context(), app, reportPath, opts.load)
	if err != nil {
		return err
	}

	state := &SharedState{
		App:            app,
		Review:         svc,
		Report:         rep,
		Keys:           keymap.New(),
		Reviewer:       app.Config.Reviewer,
		Sidecar:        app.Config.Sidecar,
		Dark:           app.Config.Dark() || opts.dark,
		CannedComments: app.Config.CannedComments,
		ZoomInitial:    app.Config.ZoomInitial,
	}
	if opts.reviewer != "" {
		state.Reviewer = opts.reviewer
	}
	if opts.load != "" {
		state.Sidecar = opts.load
	}

	app.Logger.Info("review started", "report", rep.Source, "subjects", rep.SubjectCount())
	if err := app.RunTUI(newAppModel(state)); err != nil {
		return err
	}
	sess := svc.Session()
	app.Logger.Info("review ended", "unsaved", sess.Dirty())
	return nil
}
