package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// WriteManifest writes a YAML manifest for specs into dir and returns its
// path. Media paths match NewTestMetrics.
func WriteManifest(t *testing.T, dir string, specs ...MetricSpec) string {
	t.Helper()
	if len(specs) == 0 {
		specs = DefaultSpecs()
	}

	type subject struct {
		ID    string `yaml:"id"`
		Media string `yaml:"media"`
	}
	type metric struct {
		Name     string    `yaml:"name"`
		Subjects []subject `yaml:"subjects"`
	}
	doc := struct {
		Title   string   `yaml:"title"`
		Metrics []metric `yaml:"metrics"`
	}{Title: "Test report"}

	for _, m := range NewTestMetrics(specs...) {
		mm := metric{Name: m.Name}
		for _, s := range m.Subjects {
			mm.Subjects = append(mm.Subjects, subject{ID: s.ID, Media: s.Media})
		}
		doc.Metrics = append(doc.Metrics, mm)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("encoding manifest: %v", err)
	}
	path := filepath.Join(dir, "report.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}
