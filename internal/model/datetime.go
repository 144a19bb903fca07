package model

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// DateTimeLayout is the wire format for timestamps exchanged with clients.
const DateTimeLayout = "2006-01-02 15:04:05"

// DateTime is a UTC timestamp encoded as "YYYY-MM-DD HH:MM:SS" in JSON.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t.UTC().Truncate(time.Second)}
}

func ParseDateTime(raw string) (DateTime, error) {
	t, err := time.ParseInLocation(DateTimeLayout, raw, time.UTC)
	if err != nil {
		return DateTime{}, fmt.Errorf("parse datetime %q: %w", raw, err)
	}
	return DateTime{Time: t}, nil
}

func (d DateTime) String() string {
	if d.IsZero() {
		return ""
	}
	return d.UTC().Format(DateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.String())), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = DateTime{}
		return nil
	}

	raw, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("datetime must be a string: %w", err)
	}
	if raw == "" {
		*d = DateTime{}
		return nil
	}

	parsed, err := ParseDateTime(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
