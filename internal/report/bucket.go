// Package report aggregates revenue into trailing time buckets for the
// financial views. Buckets are derived per render from already-fetched
// offers and never persisted.
package report

import (
	"fmt"
	"time"
)

// Granularity selects the bucket window size.
type Granularity string

const (
	Weekly  Granularity = "week"
	Monthly Granularity = "month"
)

// Record is one amount with an optional timestamp. Records without a
// timestamp are excluded from buckets but still count toward Total.
type Record struct {
	Amount    float64
	Timestamp *time.Time
}

// Bucket is one aggregated time window.
type Bucket struct {
	Start time.Time
	End   time.Time
	Label string
	Sum   float64
	Count int
}

// Contains reports whether t falls in the bucket's inclusive [Start, End].
func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

// Revenue returns exactly n contiguous, disjoint buckets ending with the
// window containing now, ordered oldest to newest. Weeks run Sunday through
// Saturday in now's location; months are calendar months. The most recent
// bucket covers its full window even though only data up to now exists.
func Revenue(now time.Time, g Granularity, n int, records []Record) []Bucket {
	if n <= 0 {
		return nil
	}

	buckets := make([]Bucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		var start, end time.Time
		switch g {
		case Monthly:
			first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			start = first.AddDate(0, -i, 0)
			end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		default:
			sunday := startOfWeek(now)
			start = sunday.AddDate(0, 0, -7*i)
			end = start.AddDate(0, 0, 7).Add(-time.Nanosecond)
		}
		buckets = append(buckets, Bucket{Start: start, End: end, Label: label(g, start, end)})
	}

	for _, rec := range records {
		if rec.Timestamp == nil {
			continue
		}
		for i := range buckets {
			if buckets[i].Contains(*rec.Timestamp) {
				buckets[i].Sum += rec.Amount
				buckets[i].Count++
				break
			}
		}
	}

	return buckets
}

// Total sums all records regardless of timestamp.
func Total(records []Record) (sum float64, count int) {
	for _, rec := range records {
		sum += rec.Amount
		count++
	}
	return sum, count
}

// startOfWeek returns the Sunday 00:00 of t's week, in t's location.
func startOfWeek(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(t.Weekday()))
}

func label(g Granularity, start, end time.Time) string {
	if g == Monthly {
		return start.Format("January 2006")
	}
	return fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
}
