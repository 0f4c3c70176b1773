package report

import (
	"testing"
	"time"
)

func ts(t time.Time) *time.Time { return &t }

func TestWeeklyBucketsCoverTrailingWeeks(t *testing.T) {
	// Thursday 2025-06-12.
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.Local)
	buckets := Revenue(now, Weekly, 4, nil)

	if len(buckets) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(buckets))
	}

	wantStarts := []time.Time{
		time.Date(2025, 5, 18, 0, 0, 0, 0, time.Local),
		time.Date(2025, 5, 25, 0, 0, 0, 0, time.Local),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local),
		time.Date(2025, 6, 8, 0, 0, 0, 0, time.Local),
	}
	for i, want := range wantStarts {
		if !buckets[i].Start.Equal(want) {
			t.Errorf("bucket %d start = %v, want %v", i, buckets[i].Start, want)
		}
		if buckets[i].Start.Weekday() != time.Sunday {
			t.Errorf("bucket %d does not start on Sunday", i)
		}
		if buckets[i].End.Weekday() != time.Saturday {
			t.Errorf("bucket %d does not end on Saturday", i)
		}
	}

	// Contiguous and disjoint.
	for i := 1; i < len(buckets); i++ {
		if !buckets[i].Start.Equal(buckets[i-1].End.Add(time.Nanosecond)) {
			t.Errorf("bucket %d not contiguous with previous", i)
		}
	}

	// Last bucket contains the reference instant.
	if !buckets[3].Contains(now) {
		t.Error("last bucket does not contain the reference instant")
	}
}

func TestWeeklySumsThisWeek(t *testing.T) {
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.Local)
	records := []Record{
		{Amount: 100.50, Timestamp: ts(time.Date(2025, 6, 9, 12, 0, 0, 0, time.Local))},
		{Amount: 200.25, Timestamp: ts(time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local))},
		{Amount: 49.25, Timestamp: ts(time.Date(2025, 6, 12, 9, 0, 0, 0, time.Local))},
	}

	buckets := Revenue(now, Weekly, 4, records)
	last := buckets[3]
	if last.Sum != 350.00 {
		t.Errorf("this-week sum = %v, want 350.00", last.Sum)
	}
	if last.Count != 3 {
		t.Errorf("this-week count = %d, want 3", last.Count)
	}
	for i := 0; i < 3; i++ {
		if buckets[i].Count != 0 {
			t.Errorf("bucket %d unexpectedly got records", i)
		}
	}
}

func TestRecordsWithoutTimestampExcluded(t *testing.T) {
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.Local)
	records := []Record{
		{Amount: 40},
		{Amount: 60, Timestamp: ts(now)},
	}

	buckets := Revenue(now, Weekly, 2, records)
	var total float64
	var count int
	for _, b := range buckets {
		total += b.Sum
		count += b.Count
	}
	if total != 60 || count != 1 {
		t.Errorf("bucketed total = %v/%d, want 60/1", total, count)
	}

	sum, n := Total(records)
	if sum != 100 || n != 2 {
		t.Errorf("Total = %v/%d, want 100/2", sum, n)
	}
}

func TestRecordCountedExactlyOnce(t *testing.T) {
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.Local)
	// Record on a Sunday boundary belongs to the week it opens.
	boundary := time.Date(2025, 6, 8, 0, 0, 0, 0, time.Local)
	records := []Record{{Amount: 10, Timestamp: ts(boundary)}}

	buckets := Revenue(now, Weekly, 4, records)
	var count int
	for _, b := range buckets {
		count += b.Count
	}
	if count != 1 {
		t.Errorf("record counted %d times, want 1", count)
	}
	if buckets[3].Count != 1 {
		t.Error("boundary record not in the most recent bucket")
	}
}

func TestMonthlyBuckets(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local)
	records := []Record{
		{Amount: 500, Timestamp: ts(time.Date(2025, 1, 31, 23, 0, 0, 0, time.Local))},
		{Amount: 250, Timestamp: ts(time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local))},
	}

	buckets := Revenue(now, Monthly, 3, records)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}

	wantLabels := []string{"January 2025", "February 2025", "March 2025"}
	for i, want := range wantLabels {
		if buckets[i].Label != want {
			t.Errorf("bucket %d label = %q, want %q", i, buckets[i].Label, want)
		}
	}
	if buckets[0].Sum != 500 || buckets[1].Sum != 0 || buckets[2].Sum != 250 {
		t.Errorf("monthly sums = %v/%v/%v, want 500/0/250",
			buckets[0].Sum, buckets[1].Sum, buckets[2].Sum)
	}
}

func TestWeeklyLabel(t *testing.T) {
	now := time.Date(2025, 1, 4, 12, 0, 0, 0, time.Local) // Saturday
	buckets := Revenue(now, Weekly, 1, nil)
	if buckets[0].Label != "Dec 29 – Jan 4, 2025" {
		t.Errorf("label = %q", buckets[0].Label)
	}
}

func TestRevenueIsPure(t *testing.T) {
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.Local)
	records := []Record{
		{Amount: 1.25, Timestamp: ts(time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local))},
		{Amount: 2.75, Timestamp: ts(time.Date(2025, 6, 11, 0, 0, 0, 0, time.Local))},
	}

	a := Revenue(now, Weekly, 4, records)
	b := Revenue(now, Weekly, 4, records)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("bucket %d differs between identical runs", i)
		}
	}
}

func TestZeroBuckets(t *testing.T) {
	if got := Revenue(time.Now(), Weekly, 0, nil); got != nil {
		t.Errorf("expected nil for n=0, got %v", got)
	}
}
