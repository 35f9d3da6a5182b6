package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateTimeLayout is the wire format of every timestamp: ISO-8601 local
// date-time without an offset.
const DateTimeLayout = "2006-01-02T15:04:05"

var dateTimeLayouts = []string{
	DateTimeLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// LocalDateTime is a time.Time that serializes as DateTimeLayout in the
// server's local zone.
type LocalDateTime time.Time

func ParseLocalDateTime(s string) (LocalDateTime, error) {
	var lastErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return LocalDateTime(t), nil
		}
		lastErr = err
	}
	return LocalDateTime{}, fmt.Errorf("parse date-time %q: %w", s, lastErr)
}

func (t LocalDateTime) Time() time.Time {
	return time.Time(t)
}

func (t LocalDateTime) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t LocalDateTime) String() string {
	return time.Time(t).In(time.Local).Format(DateTimeLayout)
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = LocalDateTime{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseLocalDateTime(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
