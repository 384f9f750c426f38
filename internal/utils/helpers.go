package utils

import (
	"time"
)

// ParseYMD parses a YYYY-MM-DD string into a date.
func ParseYMD(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	// strip time to midnight UTC to match DATE semantics
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatYMD renders a date as YYYY-MM-DD.
func FormatYMD(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
