package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/qcreview/internal/cli/formatter"
	"github.com/alexanderramin/qcreview/internal/domain"
	"github.com/alexanderramin/qcreview/internal/service"
	"github.com/spf13/cobra"
)

const snapshotTimeLayout = "2006-01-02 15:04:05"

func newSnapshotsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Inspect and prune a snapshot database",
		Long: `Every export to a .db or .sqlite file adds a snapshot. Loading the
database restores the newest one; these commands show the rest.`,
		Example: `  qcreview snapshots list review.db
  qcreview snapshots show review.db 6f1c2a9e-...
  qcreview snapshots delete review.db 6f1c2a9e-...`,
	}
	cmd.AddCommand(
		newSnapshotsListCmd(app),
		newSnapshotsShowCmd(app),
		newSnapshotsDeleteCmd(app),
	)
	return cmd
}

func newSnapshotsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <db>",
		Short: "List snapshots, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := service.NewSnapshotService(app.observer()).List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintln(out, "No snapshots.")
				return nil
			}

			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{
					info.ID,
					info.SavedAt.Local().Format(snapshotTimeLayout),
					info.Reviewer,
					strconv.Itoa(info.Entries),
					strconv.Itoa(info.FormatVersion),
				})
			}
			return renderTable(out, []string{"ID", "SAVED", "REVIEWER", "ENTRIES", "VERSION"}, rows)
		},
	}
}

func newSnapshotsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <db> <id>",
		Short: "Print the verdicts stored in one snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := service.NewSnapshotService(app.observer()).Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			reviewer := ""
			if snap.Document.Settings != nil {
				reviewer = snap.Document.Settings.Reviewer
			}
			fmt.Fprintf(out, "%s saved by %s at %s\n\n", snap.ID, reviewer, snap.SavedAt.Local().Format(snapshotTimeLayout))

			rows := make([][]string, 0, len(snap.Document.Entries))
			for _, e := range snap.Document.Entries {
				rows = append(rows, []string{
					domain.MetricLabel(e.Metric),
					e.SubjectID,
					e.Status,
					formatter.Truncate(e.Comment, 60),
				})
			}
			return renderTable(out, []string{"METRIC", "SUBJECT", "STATUS", "COMMENT"}, rows)
		},
	}
}

func newSnapshotsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <db> <id>",
		Short: "Remove one snapshot and its verdicts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := service.NewSnapshotService(app.observer()).Delete(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %s\n", args[1])
			return nil
		},
	}
}
