package session

import (
	"encoding/json"
	"time"
)

// timestampLayouts are tried in order. The backend writes naive local
// timestamps (no zone), possibly with microseconds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Timestamp keeps the backend's raw timestamp text and parses it lazily.
// Decoding never fails on an unrecognised format; Time reports ok=false
// instead.
type Timestamp struct {
	Raw string
}

// NewTimestamp formats t the way the backend does.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Raw: t.Format("2006-01-02T15:04:05.000000")}
}

// Time parses the raw value. Naive timestamps are interpreted in local time.
func (t Timestamp) Time() (time.Time, bool) {
	if t.Raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, t.Raw, time.Local); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// IsZero reports whether no timestamp was provided.
func (t Timestamp) IsZero() bool {
	return t.Raw == ""
}

// String returns the raw value.
func (t Timestamp) String() string {
	return t.Raw
}

// MarshalJSON writes the raw value back unchanged.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Raw)
}

// UnmarshalJSON accepts a string or null. Any other JSON type is kept as
// its literal text.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Raw = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		t.Raw = string(data)
		return nil
	}
	t.Raw = s
	return nil
}

// MarshalYAML writes the raw value as a plain string.
func (t Timestamp) MarshalYAML() (any, error) {
	return t.Raw, nil
}
