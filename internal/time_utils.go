package internal

import (
	"fmt"
	"time"
)

const (
	// DisplayTimeFormat is the standard time format used across the application
	DisplayTimeFormat = "2006-01-02 15:04:05"
	// LogTimeFormat is the timestamp format used in log lines
	LogTimeFormat = "2006-01-02T15:04:05.000Z07:00"
)

// FormatLocal formats t in the display format using the local time zone.
func FormatLocal(t time.Time) string {
	return t.Local().Format(DisplayTimeFormat)
}

// UnixTimestamp renders t as fractional unix seconds with microsecond
// precision, e.g. "1697712345.123456".
func UnixTimestamp(t time.Time) string {
	return fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/int(time.Microsecond))
}

// FormatRemaining renders the time left until exp, e.g. "1h5m left".
func FormatRemaining(exp, now time.Time) string {
	if exp.IsZero() {
		return "-"
	}
	if !exp.After(now) {
		return "Expired"
	}
	diff := exp.Sub(now)
	return fmt.Sprintf("%dh%dm left", int(diff.Hours()), int(diff.Minutes())%60)
}
