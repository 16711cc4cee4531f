package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/qcreview/internal/report"
	"github.com/alexanderramin/qcreview/internal/service"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var load, out, reviewer, format string

	cmd := &cobra.Command{
		Use:   "export <report>",
		Short: "Re-encode a sidecar in the current format",
		Long: `Loads a sidecar against its report and writes it back in the current
two-record layout, or as a snapshot database. Use it to convert sidecars
saved by older report versions.`,
		Example: `  qcreview export report.html --load old.json --out data.json --reviewer alice
  qcreview export report.html --load data.json --out review.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := service.ParseFormat(format)
			if err != nil {
				return err
			}
			if reviewer == "" {
				reviewer = app.Config.Reviewer
			}
			if out == "" {
				out = app.Config.Sidecar
			}

			_, svc, err := openReview(cmd.Context(), app, args[0], load)
			if err != nil {
				return err
			}
			if f == "" {
				f = service.FormatForPath(out)
			}
			if err := svc.Export(cmd.Context(), out, reviewer, f); err != nil {
				if errors.Is(err, report.ErrReviewerRequired) {
					return fmt.Errorf("%w: pass --reviewer or set reviewer in the config", err)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s (%s)\n", svc.Session().SubjectCount(), out, f)
			return nil
		},
	}

	cmd.Flags().StringVar(&load, "load", "", "Sidecar to convert (legacy or current layout)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default from config, data.json)")
	cmd.Flags().StringVar(&reviewer, "reviewer", "", "Reviewer name (default from config)")
	cmd.Flags().StringVar(&format, "format", "", "json or sqlite (default from the output extension)")
	_ = cmd.MarkFlagRequired("load")
	return cmd
}
