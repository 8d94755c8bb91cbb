package timeutils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO-8601 calendar date used for keys, API payloads and export rows.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD using its own calendar fields.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay drops the clock part of t and moves it to UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the real number of days of month in year (leap years included).
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
