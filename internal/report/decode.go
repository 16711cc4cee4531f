package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// recordHeader is read first from each record to pick its decoder.
type recordHeader struct {
	Type    *string `json:"type"`
	Version int     `json:"version"`
}

// Decode reads a sidecar in either layout. The container decides the
// layout: a JSON array is the modern record list, an object is the legacy
// per-subject mapping unless it is itself a typed record.
func Decode(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}

	switch trimmed[0] {
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return decodeRecords(raw)
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if isTypedRecord(obj) {
			return decodeRecords([]json.RawMessage{trimmed})
		}
		return decodeLegacy(obj)
	}
	return nil, ErrUnknownFormat
}

func isTypedRecord(obj map[string]json.RawMessage) bool {
	raw, ok := obj["type"]
	if !ok {
		return false
	}
	var s string
	return json.Unmarshal(raw, &s) == nil
}

func decodeRecords(raw []json.RawMessage) (*Document, error) {
	doc := &Document{Format: FormatModern, Version: CurrentVersion}

	for i, rec := range raw {
		var hdr recordHeader
		if err := json.Unmarshal(rec, &hdr); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformed, i, err)
		}
		if hdr.Type == nil {
			return nil, fmt.Errorf("%w: record %d has no type", ErrMalformed, i)
		}
		if hdr.Version > CurrentVersion {
			return nil, fmt.Errorf("%w: %d (newest supported is %d)", ErrUnsupportedVersion, hdr.Version, CurrentVersion)
		}

		switch *hdr.Type {
		case recordSettings:
			var sr settingsRecord
			if err := json.Unmarshal(rec, &sr); err != nil {
				return nil, fmt.Errorf("%w: settings record: %v", ErrMalformed, err)
			}
			doc.Settings = &Settings{
				Reviewer: sr.Username,
				Date:     sr.Date,
				Cursors:  sr.Data,
			}
			if hdr.Version > 0 {
				doc.Version = hdr.Version
			}
		case recordReport:
			var rr reportRecord
			if err := json.Unmarshal(rec, &rr); err != nil {
				return nil, fmt.Errorf("%w: report record: %v", ErrMalformed, err)
			}
			doc.Entries = append(doc.Entries, rr.Data...)
		}
	}
	return doc, nil
}

func decodeLegacy(obj map[string]json.RawMessage) (*Document, error) {
	ids := make([]string, 0, len(obj))
	for id := range obj {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	doc := &Document{Format: FormatLegacy, Version: 1}
	for _, id := range ids {
		var le legacyEntry
		if err := json.Unmarshal(obj[id], &le); err != nil {
			return nil, fmt.Errorf("%w: subject %q: %v", ErrMalformed, id, err)
		}
		doc.Entries = append(doc.Entries, Entry{
			SubjectID: id,
			Status:    le.Status,
			Comment:   le.Comments,
		})
	}
	return doc, nil
}
