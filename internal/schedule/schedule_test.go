package schedule

import (
	"testing"
	"time"
)

func TestPickupTimeBareDate(t *testing.T) {
	got, ok := PickupTime("2025-06-10", "")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("got %v, want local midnight %v", got, want)
	}
}

func TestPickupTimeWithClock(t *testing.T) {
	cases := []struct {
		timeStr string
		hour    int
		minute  int
	}{
		{"2:30 PM", 14, 30},
		{"2:30 pm", 14, 30},
		{"09:00 AM", 9, 0},
		{"12 PM noon", 0, 0}, // no H:MM match, clock untouched
		{"12:00 PM", 12, 0},
		{"12:00 AM", 0, 0},
		{"11:59PM", 23, 59},
	}
	for _, tc := range cases {
		got, ok := PickupTime("2025-06-10", tc.timeStr)
		if !ok {
			t.Fatalf("%q: expected parse to succeed", tc.timeStr)
		}
		if got.Hour() != tc.hour || got.Minute() != tc.minute {
			t.Errorf("%q: got %02d:%02d, want %02d:%02d",
				tc.timeStr, got.Hour(), got.Minute(), tc.hour, tc.minute)
		}
	}
}

func TestPickupTimeUnparseable(t *testing.T) {
	for _, s := range []string{"", "  ", "soon", "2025-13-99"} {
		if _, ok := PickupTime(s, "9:00 AM"); ok {
			t.Errorf("%q: expected parse to fail", s)
		}
	}
}

func TestPickupTimeRFC3339(t *testing.T) {
	got, ok := PickupTime("2025-06-10T08:30:00Z", "")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if got.UTC().Hour() != 8 || got.UTC().Minute() != 30 {
		t.Errorf("got %v", got)
	}
}

func TestClassify(t *testing.T) {
	now := time.Date(2025, 6, 10, 13, 0, 0, 0, time.Local)
	cases := []struct {
		pickup time.Time
		want   Status
	}{
		{now.Add(-time.Minute), StatusOverdue},
		{now, StatusClose},
		{now.Add(90 * time.Minute), StatusClose},
		{now.Add(2 * time.Hour), StatusClose},
		{now.Add(2*time.Hour + time.Nanosecond), StatusOntime},
		{now.Add(48 * time.Hour), StatusOntime},
	}
	for _, tc := range cases {
		if got := Classify(tc.pickup, now); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.pickup, got, tc.want)
		}
	}
}

func TestStatusForScenarios(t *testing.T) {
	// Pickup at 2:30 PM, now 1:00 PM the same day: 90 minutes away.
	now := time.Date(2025, 6, 10, 13, 0, 0, 0, time.Local)
	if got := StatusFor("2025-06-10", "2:30 PM", now); got != StatusClose {
		t.Errorf("90 minutes out = %v, want close", got)
	}

	// Pickup yesterday 9 AM, now 9 AM: overdue.
	now = time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)
	if got := StatusFor("2025-06-09", "09:00 AM", now); got != StatusOverdue {
		t.Errorf("yesterday = %v, want overdue", got)
	}

	// Unparseable degrades to ontime, never overdue.
	if got := StatusFor("whenever", "", now); got != StatusOntime {
		t.Errorf("unparseable = %v, want ontime", got)
	}
}

func TestSummarize(t *testing.T) {
	// Thursday 2025-06-12; week ends Saturday 06-14.
	now := time.Date(2025, 6, 12, 8, 0, 0, 0, time.Local)
	pickups := []time.Time{
		time.Date(2025, 6, 12, 15, 0, 0, 0, time.Local), // today
		time.Date(2025, 6, 12, 6, 0, 0, 0, time.Local),  // today (earlier counts too)
		time.Date(2025, 6, 13, 9, 0, 0, 0, time.Local),  // tomorrow
		time.Date(2025, 6, 14, 9, 0, 0, 0, time.Local),  // rest of week
		time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local),  // next week, uncounted
	}

	s := Summarize(pickups, now)
	if s.Today != 2 || s.Tomorrow != 1 || s.RestOfWeek != 1 {
		t.Errorf("summary = %+v, want 2/1/1", s)
	}
}
