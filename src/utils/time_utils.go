package utils

import (
	"fmt"
	"strconv"
	"time"
)

const iso8601Layout = "2006-01-02T15:04:05.000Z"

// ISO8601 formats epoch milliseconds as UTC with millisecond precision.
// Zero yields an empty string.
func ISO8601(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(iso8601Layout)
}

// Milliseconds returns the current epoch time in ms.
func Milliseconds() int64 {
	return time.Now().UnixMilli()
}

// ParseYYMMDD reads a compact expiry token as 00:00:00 UTC of 20YY-MM-DD.
func ParseYYMMDD(token string) (time.Time, error) {
	if len(token) != 6 {
		return time.Time{}, fmt.Errorf("expiry token %q must have 6 digits", token)
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return time.Time{}, fmt.Errorf("expiry token %q is not numeric", token)
	}
	yy, mm, dd := n/10000, (n/100)%100, n%100
	t := time.Date(2000+yy, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(mm) || t.Day() != dd {
		return time.Time{}, fmt.Errorf("expiry token %q is not a calendar date", token)
	}
	return t, nil
}

// FormatYYMMDD is the inverse of ParseYYMMDD for epoch milliseconds.
func FormatYYMMDD(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("060102")
}
