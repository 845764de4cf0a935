package models

import (
	"encoding/json"
	"time"
)

// timestampLayout is the ISO-8601 form used in the persisted collection:
// UTC with millisecond precision and a trailing Z.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// parseLayouts are the ISO-8601 variants accepted when reading.
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is a time.Time that serializes as an ISO-8601 string.
//
// A stored value that is not in the canonical form (another offset style,
// null, unparsable text) is kept verbatim and written back unchanged, so
// reading and rewriting a collection never alters it. Time is the zero time
// when the value could not be parsed.
type Timestamp struct {
	time.Time

	raw string
}

// NewTimestamp truncates t to milliseconds so it survives a round trip
// through the persisted form unchanged.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

// String returns the canonical ISO-8601 form of Time.
func (t Timestamp) String() string {
	return t.UTC().Format(timestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.raw != "" {
		return []byte(t.raw), nil
	}
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. It never fails: values that do
// not parse are kept as-is.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		t.raw = string(data)
		return nil
	}

	for _, layout := range parseLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			break
		}
	}

	if t.IsZero() || `"`+t.String()+`"` != string(data) {
		t.raw = string(data)
	}
	return nil
}
