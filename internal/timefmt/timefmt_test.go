package timefmt

import (
	"testing"
	"time"
)

func TestRelative(t *testing.T) {
	// Fixed reference point, mid-year to keep buckets unambiguous.
	now := time.Date(2025, time.June, 18, 15, 0, 0, 0, time.UTC) // a Wednesday

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"zero instant", time.Time{}, ""},
		{"30 seconds ago", now.Add(-30 * time.Second), "just now"},
		{"59 seconds ago", now.Add(-59 * time.Second), "just now"},
		{"5 minutes ago", now.Add(-5 * time.Minute), "5 min ago"},
		{"59 minutes ago", now.Add(-59 * time.Minute), "59 min ago"},
		{"3 hours ago same day", now.Add(-3 * time.Hour), "3 hr ago"},
		{"25 hours ago previous day", now.Add(-25 * time.Hour), "Yesterday"},
		{"late last night", time.Date(2025, time.June, 17, 23, 30, 0, 0, time.UTC), "Yesterday"},
		{"three days ago", now.AddDate(0, 0, -3), "Sunday"},
		{"six days ago", now.AddDate(0, 0, -6), "Thursday"},
		{"two weeks ago same year", now.AddDate(0, 0, -14), "04 Jun"},
		{"earlier same year", time.Date(2025, time.February, 7, 9, 0, 0, 0, time.UTC), "07 Feb"},
		{"previous year", time.Date(2023, time.November, 2, 9, 0, 0, 0, time.UTC), "Nov 23"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Relative(tt.at, now); got != tt.want {
				t.Errorf("Relative() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelativeMs(t *testing.T) {
	now := time.Date(2025, time.June, 18, 15, 0, 0, 0, time.UTC)

	if got := RelativeMs(0, now); got != "" {
		t.Errorf("RelativeMs(0) = %q, want empty", got)
	}
	ms := now.Add(-10 * time.Minute).UnixMilli()
	if got := RelativeMs(ms, now); got != "10 min ago" {
		t.Errorf("RelativeMs() = %q, want 10 min ago", got)
	}
}
