package analytics

import (
	"testing"

	"github.com/ajmok/streamstats/internal/history"
)

func TestDistributionsHourly(t *testing.T) {
	var events []history.Event
	for _, ts := range []string{
		"2024-01-01T14:00", "2024-01-02T14:15", "2024-01-03T14:30",
		"2024-01-04T14:45", "2024-01-05T14:59",
	} {
		events = append(events, testEvent(t, "A", "Artist1", "Alb1", ts, 1000, false))
	}

	dist := Distributions(events)
	if len(dist.Hourly) != 24 {
		t.Fatalf("Hourly buckets = %d, want 24 (gap-filled)", len(dist.Hourly))
	}
	for _, b := range dist.Hourly {
		want := 0
		if b.Label == "14:00" {
			want = 5
		}
		if b.Count != want {
			t.Errorf("Bucket %q count = %d, want %d", b.Label, b.Count, want)
		}
	}
}

func TestDistributionsWeekday(t *testing.T) {
	// 2024-01-01 is a Monday.
	events := []history.Event{
		testEvent(t, "A", "Artist1", "Alb1", "2024-01-01T10:00", 1000, false),
		testEvent(t, "A", "Artist1", "Alb1", "2024-01-07T10:00", 1000, false),
	}

	dist := Distributions(events)
	if len(dist.Weekday) != 7 {
		t.Fatalf("Weekday buckets = %d, want 7", len(dist.Weekday))
	}
	if dist.Weekday[0].Label != "Monday" || dist.Weekday[0].Count != 1 {
		t.Errorf("Weekday[0] = %q (%d), want Monday (1)", dist.Weekday[0].Label, dist.Weekday[0].Count)
	}
	if dist.Weekday[6].Label != "Sunday" || dist.Weekday[6].Count != 1 {
		t.Errorf("Weekday[6] = %q (%d), want Sunday (1)", dist.Weekday[6].Label, dist.Weekday[6].Count)
	}
}

func TestDistributionsMonthDayLabels(t *testing.T) {
	dist := Distributions(nil)
	if len(dist.MonthDay) != 31 {
		t.Fatalf("MonthDay buckets = %d, want 31", len(dist.MonthDay))
	}
	wants := map[int]string{
		1:  "1st",
		2:  "2nd",
		3:  "3rd",
		4:  "4th",
		11: "11th",
		12: "12th",
		13: "13th",
		21: "21st",
		22: "22nd",
		23: "23rd",
		31: "31st",
	}
	for day, want := range wants {
		if got := dist.MonthDay[day-1].Label; got != want {
			t.Errorf("Day %d label = %q, want %q", day, got, want)
		}
	}
}

func TestDistributionsMonthly(t *testing.T) {
	events := []history.Event{
		testEvent(t, "A", "Artist1", "Alb1", "2024-03-15T10:00", 1000, false),
		testEvent(t, "A", "Artist1", "Alb1", "2023-03-20T10:00", 1000, false),
		testEvent(t, "A", "Artist1", "Alb1", "2024-12-25T10:00", 1000, false),
	}

	dist := Distributions(events)
	if len(dist.Monthly) != 12 {
		t.Fatalf("Monthly buckets = %d, want 12", len(dist.Monthly))
	}
	if dist.Monthly[2].Label != "March" || dist.Monthly[2].Count != 2 {
		t.Errorf("March = %q (%d), want March (2)", dist.Monthly[2].Label, dist.Monthly[2].Count)
	}
	if dist.Monthly[11].Label != "December" || dist.Monthly[11].Count != 1 {
		t.Errorf("December = %q (%d), want December (1)", dist.Monthly[11].Label, dist.Monthly[11].Count)
	}
}
