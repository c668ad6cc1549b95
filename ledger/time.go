package ledger

import (
	"fmt"
	"strings"
	"time"
)

// datetimeLocal is the format the original record book used for shift start
// and end fields (HTML datetime-local inputs, no seconds, no zone).
const datetimeLocal = "2006-01-02T15:04"

// Timestamp is a point in time that marshals as RFC3339 and unmarshals from
// either RFC3339 or the original app's datetime-local form. An empty string
// or null decodes to the zero value, which stands for "unset".
type Timestamp struct {
	time.Time
}

func Now() Timestamp {
	return Timestamp{time.Now().UTC().Truncate(time.Millisecond)}
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t}
}

// ParseTimestamp accepts RFC3339 (with or without fractional seconds) and
// the datetime-local form. Empty input yields the zero Timestamp.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Timestamp{t}, nil
	}
	if t, err := time.Parse(datetimeLocal, s); err == nil {
		return Timestamp{t}, nil
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Equal compares instants, tolerating zone differences from re-parsing.
func (t Timestamp) Equal(other Timestamp) bool {
	return t.Time.Equal(other.Time)
}
