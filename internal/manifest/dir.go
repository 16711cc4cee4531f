package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/qcreview/internal/domain"
)

// LoadDir treats each sub-directory of root as a metric and each file in
// it as a subject, both sorted by name. Hidden entries are skipped.
func LoadDir(root string) (*Report, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading report directory: %w", err)
	}

	rep := &Report{Title: filepath.Base(root), Source: root, BaseDir: root}
	for _, e := range entries {
		if !e.IsDir() || hidden(e.Name()) {
			continue
		}
		files, err := os.ReadDir(filepath.Join(root, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading metric %s: %w", e.Name(), err)
		}
		m := domain.Metric{Name: e.Name()}
		for _, f := range files {
			if f.IsDir() || hidden(f.Name()) {
				continue
			}
			id := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
			m.Subjects = append(m.Subjects, &domain.Subject{
				ID:    id,
				Media: filepath.Join(e.Name(), f.Name()),
			})
		}
		rep.Metrics = append(rep.Metrics, m)
	}
	return rep, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
