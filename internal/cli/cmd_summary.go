package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/qcreview/internal/cli/formatter"
	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/alexanderramin/qcreview/internal/summary"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	var load, status string
	var byMetric bool

	cmd := &cobra.Command{
		Use:   "summary <report>",
		Short: "Print every subject with its verdict and comment",
		Example: `  qcreview summary report.html --load data.json
  qcreview summary report.html --load data.json --status Fail,Warning`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, unknown := summary.ParseStatuses(status)
			if len(unknown) > 0 {
				return fmt.Errorf("unknown status %s (want Pass, Warning, Fail or Pending)", strings.Join(unknown, ", "))
			}

			_, svc, err := openReview(cmd.Context(), app, args[0], load)
			if err != nil {
				return err
			}
			rows := summary.Build(svc.Session())
			shown := summary.Filter(rows, statuses...)

			out := cmd.OutOrStdout()
			listed := make([][]string, 0, len(shown))
			for _, r := range shown {
				listed = append(listed, []string{
					domain.MetricLabel(r.Metric),
					r.SubjectID,
					r.Status.String(),
					formatter.Truncate(r.Comment, 60),
				})
			}
			if err := renderTable(out, []string{"METRIC", "SUBJECT", "STATUS", "COMMENT"}, listed); err != nil {
				return err
			}

			counts := summary.Count(rows)
			fmt.Fprintln(out)
			fmt.Fprintln(out, countsLine(counts))

			if byMetric {
				order, per := summary.CountByMetric(rows)
				fmt.Fprintln(out)
				perMetric := make([][]string, 0, len(order))
				for _, m := range order {
					c := per[m]
					perMetric = append(perMetric, []string{
						domain.MetricLabel(m),
						strconv.Itoa(c.Total),
						strconv.Itoa(c.Of(domain.StatusPass)),
						strconv.Itoa(c.Of(domain.StatusWarning)),
						strconv.Itoa(c.Of(domain.StatusFail)),
						strconv.Itoa(c.Of(domain.StatusPending)),
					})
				}
				return renderTable(out, []string{"METRIC", "TOTAL", "PASS", "WARNING", "FAIL", "PENDING"}, perMetric)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&load, "load", "", "Sidecar with the verdicts (data.json or snapshot database)")
	cmd.Flags().StringVar(&status, "status", "", "Only list these statuses, comma separated")
	cmd.Flags().BoolVar(&byMetric, "by-metric", false, "Also print counts per metric")
	return cmd
}

// countsLine reads "Total 5  Pass 1  Warning 0  Fail 1  Pending 3  (reviewed 2/5)".
func countsLine(c summary.Counts) string {
	parts := []string{fmt.Sprintf("Total %d", c.Total)}
	for _, st := range domain.Statuses {
		parts = append(parts, fmt.Sprintf("%s %d", st, c.Of(st)))
	}
	return strings.Join(parts, "  ") + fmt.Sprintf("  (reviewed %d/%d)", c.Reviewed(), c.Total)
}
