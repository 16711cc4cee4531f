package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/qcreview/internal/domain"
	"gopkg.in/yaml.v3"
)

// manifestFile is the on-disk manifest. JSON manifests use the same keys.
type manifestFile struct {
	Title   string           `yaml:"title"`
	Metrics []manifestMetric `yaml:"metrics"`
}

type manifestMetric struct {
	Name     string            `yaml:"name"`
	Subjects []manifestSubject `yaml:"subjects"`
}

type manifestSubject struct {
	ID    string `yaml:"id"`
	Media string `yaml:"media"`
}

// LoadManifestFile reads a YAML or JSON manifest.
func LoadManifestFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	rep, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	rep.Source = path
	rep.BaseDir = filepath.Dir(path)
	return rep, nil
}

// ParseManifest decodes manifest bytes. Subjects without a media path
// default to the id.
func ParseManifest(data []byte) (*Report, error) {
	var mf manifestFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, err
	}

	rep := &Report{Title: mf.Title}
	for i, mm := range mf.Metrics {
		if strings.TrimSpace(mm.Name) == "" {
			return nil, fmt.Errorf("metric %d: %w", i, domain.ErrEmptyMetricName)
		}
		m := domain.Metric{Name: mm.Name}
		for _, ms := range mm.Subjects {
			media := ms.Media
			if media == "" {
				media = ms.ID
			}
			m.Subjects = append(m.Subjects, &domain.Subject{ID: ms.ID, Media: media})
		}
		rep.Metrics = append(rep.Metrics, m)
	}
	return rep, nil
}
