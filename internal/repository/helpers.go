package repository

import (
	"time"
)

// timeLayout is how timestamps are stored. The fraction is always nine
// digits, so stored UTC values compare as text in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTime converts t to its stored form.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime reads a stored timestamp, accepting trimmed fractions and
// second precision from files written by hand. Unparseable values become
// the zero time.
func parseTime(s string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
