package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/alexanderramin/qcreview/internal/manifest"
	"github.com/spf13/cobra"
)

func newMetricsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <report>",
		Short: "List the metrics of a report and their subject counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			app.Logger.Debug("listing metrics", "source", rep.Source)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, reportLabel(rep))
			fmt.Fprintln(out)

			rows := make([][]string, 0, len(rep.Metrics))
			for _, m := range rep.Metrics {
				videos := 0
				for _, s := range m.Subjects {
					if s.MediaKind() == domain.MediaVideo {
						videos++
					}
				}
				rows = append(rows, []string{m.Name, strconv.Itoa(len(m.Subjects)), strconv.Itoa(videos)})
			}
			if err := renderTable(out, []string{"METRIC", "SUBJECTS", "VIDEOS"}, rows); err != nil {
				return err
			}

			fmt.Fprintf(out, "\n%d metrics, %d subjects\n", len(rep.Metrics), rep.SubjectCount())
			return nil
		},
	}
}

