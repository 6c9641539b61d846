package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// NormalizeJourneyDate collapses any timestamp on a service day to the plain
// YYYY-MM-DD key that bookings and seat rows are stored under. Accepts a
// bare date, a date-time, or an RFC3339 timestamp; anything between
// 00:00:00.000 and 23:59:59.999 of a day yields that day.
func NormalizeJourneyDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("tanggal kosong")
	}
	if t, err := ParseDate(s); err == nil {
		return t.Format(layoutDate), nil
	}
	if t, err := time.ParseInLocation(layoutDateTime, s, time.Local); err == nil {
		return t.Format(layoutDate), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(time.Local).Format(layoutDate), nil
	}
	return "", fmt.Errorf("format tanggal tidak valid: %q", s)
}

// NormalizeTimeStr validates a wall-clock HH:MM string.
func NormalizeTimeStr(s string) (string, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", fmt.Errorf("format jam tidak valid (HH:MM)")
	}
	return t.Format("15:04"), nil
}
