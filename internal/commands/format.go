package commands

import (
	"fmt"
	"time"
)

// formatDuration renders a tracked interval in milliseconds as h:mm:ss.
func formatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	d := time.Duration(ms) * time.Millisecond
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// formatEstimate renders a time estimate in minutes as "2h 30m", "45m" or
// "3h".
func formatEstimate(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// formatDay renders a stored due or scheduled date for display. Values are
// RFC 3339 timestamps or bare YYYY-MM-DD dates.
func formatDay(value *string) string {
	if value == nil {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, *value); err == nil {
		return t.Local().Format("2006-01-02")
	}
	return *value
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
