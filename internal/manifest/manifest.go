// Package manifest reads the set of metrics and subjects a QC report
// declares. Three sources are understood: the generated HTML report
// itself, a YAML or JSON manifest, and a directory tree with one folder
// per metric.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/qcreview/internal/domain"
)

var (
	ErrUnsupportedSource = errors.New("unsupported report source")
	ErrNoMetrics         = errors.New("report declares no metrics")
)

// Report is the initial data of a review session.
type Report struct {
	Title   string
	Source  string
	BaseDir string
	Metrics []domain.Metric
}

// SubjectCount is the number of subjects across all metrics.
func (r *Report) SubjectCount() int {
	n := 0
	for _, m := range r.Metrics {
		n += len(m.Subjects)
	}
	return n
}

// Session builds a fresh review session from the report.
func (r *Report) Session() (*domain.Session, error) {
	s, err := domain.NewSession(r.Metrics)
	if err != nil {
		return nil, fmt.Errorf("building session from %s: %w", r.Source, err)
	}
	return s, nil
}

// ResolveMedia returns a media path relative to the working
// directory. URLs and absolute paths are returned unchanged.
func (r *Report) ResolveMedia(media string) string {
	if media == "" || filepath.IsAbs(media) || strings.Contains(media, "://") || strings.HasPrefix(media, "data:") {
		return media
	}
	return filepath.Join(r.BaseDir, media)
}

// Load picks a reader from the path: directories are scanned, .html and
// .htm files are parsed as generated reports, .yaml .yml and .json files
// as manifests.
func Load(path string) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening report: %w", err)
	}

	var rep *Report
	switch {
	case info.IsDir():
		rep, err = LoadDir(path)
	default:
		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm":
			rep, err = LoadHTMLFile(path)
		case ".yaml", ".yml", ".json":
			rep, err = LoadManifestFile(path)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, path)
		}
	}
	if err != nil {
		return nil, err
	}
	if len(rep.Metrics) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMetrics, path)
	}
	return rep, nil
}
