// Package timefmt renders timestamps as the short relative labels
// shown next to conversations and messages.
package timefmt

import (
	"fmt"
	"time"
)

// Relative maps an absolute instant to a label relative to now.
// Buckets, in order: "just now" (<60s), "{N} min ago" (<1h),
// "{N} hr ago" (same calendar day), "Yesterday", weekday name
// (<7 days), "02 Jan" (same year), "Jan 06" otherwise.
// A zero instant yields an empty label.
func Relative(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	elapsed := now.Sub(t)
	if elapsed < time.Minute {
		return "just now"
	}
	if elapsed < time.Hour {
		return fmt.Sprintf("%d min ago", int(elapsed.Minutes()))
	}
	if sameDay(t, now) {
		return fmt.Sprintf("%d hr ago", int(elapsed.Hours()))
	}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfYesterday := startOfToday.AddDate(0, 0, -1)
	if !t.Before(startOfYesterday) && t.Before(startOfToday) {
		return "Yesterday"
	}

	if elapsed < 7*24*time.Hour {
		return t.Format("Monday")
	}
	if t.Year() == now.Year() {
		return t.Format("02 Jan")
	}
	return t.Format("Jan 06")
}

// RelativeMs is Relative for unix-millisecond timestamps, with 0
// treated as absent.
func RelativeMs(ms int64, now time.Time) string {
	if ms == 0 {
		return ""
	}
	return Relative(time.UnixMilli(ms), now)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
