// Package report encodes and decodes the QC sidecar file: the reviewer's
// judgments plus the navigation settings needed to resume a session.
package report

import "errors"

// CurrentVersion is the newest sidecar layout this package writes and reads.
const CurrentVersion = 2

// DefaultFileName is the sidecar name the generated report downloads.
const DefaultFileName = "data.json"

const (
	recordSettings = "settings"
	recordReport   = "report"
)

var (
	ErrMalformed          = errors.New("malformed sidecar")
	ErrUnknownFormat      = errors.New("unrecognized sidecar format")
	ErrUnsupportedVersion = errors.New("unsupported sidecar version")
	ErrReviewerRequired   = errors.New("reviewer name is required")
)

// Format identifies which layout a document was read from.
type Format int

const (
	FormatModern Format = iota
	FormatLegacy
)

func (f Format) String() string {
	if f == FormatLegacy {
		return "legacy"
	}
	return "modern"
}

// Document is a decoded sidecar, independent of its on-disk layout.
type Document struct {
	Format   Format
	Version  int
	Settings *Settings
	Entries  []Entry
}

// Settings carries who saved the sidecar, when, and where each metric's
// cursor was.
type Settings struct {
	Reviewer string
	Date     string
	Cursors  []TabCursor
}

// TabCursor is the displayed subject index of one metric.
type TabCursor struct {
	Metric string `json:"tab_name"`
	Index  int    `json:"tab_index"`
}

// Entry is one subject's judgment.
type Entry struct {
	Metric    string `json:"qc"`
	SubjectID string `json:"filename"`
	Status    string `json:"status"`
	Comment   string `json:"comments"`
}

// settingsRecord and reportRecord are the two records of the modern layout.
type settingsRecord struct {
	Type     string      `json:"type"`
	Version  int         `json:"version,omitempty"`
	Username string      `json:"username"`
	Date     string      `json:"date"`
	Data     []TabCursor `json:"data"`
}

type reportRecord struct {
	Type string  `json:"type"`
	Data []Entry `json:"data"`
}

// legacyEntry is the per-subject value of the flat legacy mapping.
type legacyEntry struct {
	Status   string `json:"status"`
	Comments string `json:"comments"`
}
