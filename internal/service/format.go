package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is a sidecar container.
type Format string

const (
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

var ErrUnknownFormat = errors.New("unknown sidecar format")

// sqliteMagic opens every SQLite database file.
var sqliteMagic = []byte("SQLite format 3\x00")

// ParseFormat reads a --format value. Empty means "decide from the path".
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case "json":
		return FormatJSON, nil
	case "sqlite", "db":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: %q (want json or sqlite)", ErrUnknownFormat, raw)
}

// FormatForPath picks the container from a file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sqlite", ".sqlite3", ".db":
		return FormatSQLite
	}
	return FormatJSON
}

// sniffFormat reads the start of an existing file to tell a snapshot
// database from a JSON sidecar.
func sniffFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening sidecar: %w", err)
	}
	defer f.Close()

	head := make([]byte, len(sqliteMagic))
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading sidecar: %w", err)
	}
	if bytes.Equal(head[:n], sqliteMagic) {
		return FormatSQLite, nil
	}
	return FormatJSON, nil
}
