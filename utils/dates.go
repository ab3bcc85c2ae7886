package utils

import (
	"fmt"
	"time"
)

// DateLayout matches the date strings the frontend sends.
const DateLayout = "2006-01-02"

// ParseDate accepts "2006-01-02" or RFC3339 and normalizes the result to
// calendar midnight UTC, so comparisons work on whole days regardless of
// the time-of-day or zone the client happened to send.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return NormalizeDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or RFC3339)", value)
	}
	return NormalizeDate(t), nil
}

// NormalizeDate truncates t to midnight UTC of its calendar day.
func NormalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date at midnight UTC.
func Today() time.Time {
	return NormalizeDate(time.Now().UTC())
}
