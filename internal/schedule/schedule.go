// Package schedule resolves carrier-proposed pickup date/time strings into
// instants and classifies them against the current time for the scheduled
// jobs view. Classification drives display emphasis only, never eligibility.
package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Status is the schedule emphasis of a pickup.
type Status string

const (
	StatusOverdue Status = "overdue"
	StatusClose   Status = "close"
	StatusOntime  Status = "ontime"
)

// CloseThreshold is how far ahead a pickup counts as "very close".
const CloseThreshold = 2 * time.Hour

var (
	bareDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRe    = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])`)
)

// dateLayouts are tried in order for non-bare date strings.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
}

// PickupTime resolves a proposed pickup date and optional 12-hour time string
// into a local instant. A bare YYYY-MM-DD date means local midnight. A time
// of the form "H:MM AM/PM" overrides the clock (12 PM is noon, 12 AM is
// midnight). Returns ok=false when the date cannot be parsed.
func PickupTime(dateStr, timeStr string) (time.Time, bool) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return time.Time{}, false
	}

	var date time.Time
	if bareDateRe.MatchString(s) {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return time.Time{}, false
		}
		date = parsed
	} else {
		parsed, ok := parseAny(s)
		if !ok {
			return time.Time{}, false
		}
		date = parsed
	}

	if m := clockRe.FindStringSubmatch(strings.TrimSpace(timeStr)); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		period := strings.ToUpper(m[3])
		if period == "PM" && h != 12 {
			h += 12
		}
		if period == "AM" && h == 12 {
			h = 0
		}
		date = time.Date(date.Year(), date.Month(), date.Day(), h, min, 0, 0, date.Location())
	}

	return date, true
}

func parseAny(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Classify returns the schedule status of a resolved pickup instant.
func Classify(pickup, now time.Time) Status {
	if pickup.Before(now) {
		return StatusOverdue
	}
	if pickup.Sub(now) <= CloseThreshold {
		return StatusClose
	}
	return StatusOntime
}

// StatusFor classifies a job's proposed pickup strings, degrading missing or
// unparseable dates to ontime so unscheduled jobs are never flagged overdue.
func StatusFor(dateStr, timeStr string, now time.Time) Status {
	pickup, ok := PickupTime(dateStr, timeStr)
	if !ok {
		return StatusOntime
	}
	return Classify(pickup, now)
}

// Summary counts upcoming pickups by urgency window.
type Summary struct {
	Today      int
	Tomorrow   int
	RestOfWeek int
}

// Summarize buckets resolved pickup instants into today, tomorrow, and the
// rest of the current week (through Saturday), by local calendar date.
func Summarize(pickups []time.Time, now time.Time) Summary {
	todayKey := dateKey(now)
	tomorrowKey := dateKey(now.AddDate(0, 0, 1))
	weekEndKey := dateKey(endOfWeek(now))

	var s Summary
	for _, p := range pickups {
		key := dateKey(p)
		switch {
		case key == todayKey:
			s.Today++
		case key == tomorrowKey:
			s.Tomorrow++
		case key > tomorrowKey && key <= weekEndKey:
			s.RestOfWeek++
		}
	}
	return s
}

// endOfWeek returns the Saturday of now's Sunday-to-Saturday week.
func endOfWeek(now time.Time) time.Time {
	days := (6 - int(now.Weekday()) + 7) % 7
	return now.AddDate(0, 0, days)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
