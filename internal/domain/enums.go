package domain

import (
	"path/filepath"
	"strings"
)

// Status is the reviewer verdict for a subject.
type Status string

const (
	StatusPending Status = "Pending"
	StatusPass    Status = "Pass"
	StatusWarning Status = "Warning"
	StatusFail    Status = "Fail"
)

// Statuses lists every verdict in shortcut order (1..4 maps Pass..Pending).
var Statuses = []Status{StatusPass, StatusWarning, StatusFail, StatusPending}

// Valid reports whether s is one of the four verdicts.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPass, StatusWarning, StatusFail:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// ParseStatus maps a wire or user-typed status onto the enum. Matching is
// case-insensitive. Unknown or empty input yields Pending with ok=false.
func ParseStatus(raw string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pass":
		return StatusPass, true
	case "warning":
		return StatusWarning, true
	case "fail":
		return StatusFail, true
	case "pending":
		return StatusPending, true
	}
	return StatusPending, false
}

// StatusForDigit returns the verdict bound to a digit shortcut.
func StatusForDigit(d rune) (Status, bool) {
	i := int(d - '1')
	if i < 0 || i >= len(Statuses) {
		return "", false
	}
	return Statuses[i], true
}

// MediaKind classifies what a subject displays.
type MediaKind string

const (
	MediaNone  MediaKind = "none"
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

var videoExtensions = map[string]bool{
	".mp4": true, ".webm": true, ".ogv": true, ".mov": true, ".avi": true,
}

// MediaKindOf classifies a media path by extension.
func MediaKindOf(path string) MediaKind {
	if path == "" {
		return MediaNone
	}
	if videoExtensions[strings.ToLower(filepath.Ext(path))] {
		return MediaVideo
	}
	return MediaImage
}
