package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/qcreview/internal/manifest"
	"github.com/alexanderramin/qcreview/internal/service"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// openReview reads the report, starts a fresh session and, when sidecar
// is set, applies a previous review to it.
func openReview(ctx context.Context, app *App, reportPath, sidecar string) (*manifest.Report, service.ReviewService, error) {
	rep, err := manifest.Load(reportPath)
	if err != nil {
		return nil, nil, err
	}
	sess, err := rep.Session()
	if err != nil {
		return nil, nil, err
	}
	svc := service.NewReviewService(sess,
		service.WithClock(app.Now),
		service.WithObserver(app.observer()),
	)
	app.Logger.Debug("report loaded",
		"source", rep.Source,
		"metrics", len(rep.Metrics),
		"subjects", rep.SubjectCount(),
	)

	if sidecar == "" {
		return rep, svc, nil
	}
	res, err := svc.Import(ctx, sidecar)
	if err != nil {
		return nil, nil, err
	}
	if res.Skipped > 0 {
		app.Logger.Warn("sidecar entries not in report",
			"sidecar", sidecar,
			"skipped", res.Skipped,
			"ids", res.SkippedIDs,
		)
	}
	return rep, svc, nil
}

// newTable creates a borderless left-aligned table.
func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

// renderTable writes rows under headers to w. The table is rendered in
// full before anything reaches w.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	var buf bytes.Buffer
	table := newTable(&buf, headers...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("adding table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func reportLabel(rep *manifest.Report) string {
	if rep.Title != "" {
		return fmt.Sprintf("%s (%s)", rep.Title, rep.Source)
	}
	return rep.Source
}

