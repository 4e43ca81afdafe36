package ui

import (
	"fmt"
	"time"
)

var timeNow = time.Now

// formatDate describes how long ago t happened. Anything a week or older falls
// back to a date; future timestamps read as "Just now".
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	now := timeNow()
	diff := now.Sub(t)

	minutes := int(diff / time.Minute)
	hours := minutes / 60
	days := hours / 24
	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return plural(minutes, "minute") + " ago"
	case hours < 24:
		return plural(hours, "hour") + " ago"
	case days < 7:
		return plural(days, "day") + " ago"
	default:
		return t.In(now.Location()).Format("Jan 2, 2006")
	}
}

// formatDateTime renders an absolute timestamp for the detail view.
func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(timeNow().Location()).Format("Jan 2, 2006, 03:04 PM")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
