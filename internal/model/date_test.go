package model

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	a := Day(2026, time.January, 1)
	if got := DaysBetween(a, Day(2026, time.January, 31)); got != 30 {
		t.Fatalf("DaysBetween = %d, want 30", got)
	}
	if got := DaysBetween(a, Day(2025, time.December, 31)); got != -1 {
		t.Fatalf("DaysBetween backwards = %d, want -1", got)
	}
	// Crosses a leap day.
	if got := DaysBetween(Day(2028, time.February, 1), Day(2028, time.March, 1)); got != 29 {
		t.Fatalf("DaysBetween leap Feb = %d, want 29", got)
	}
}

func TestClampDayOfMonth(t *testing.T) {
	if got := ClampDayOfMonth(2026, time.February, 31); !got.Equal(Day(2026, time.February, 28)) {
		t.Fatalf("clamp Feb 2026 = %s", got.Format(DayFormat))
	}
	if got := ClampDayOfMonth(2028, time.February, 31); !got.Equal(Day(2028, time.February, 29)) {
		t.Fatalf("clamp leap Feb = %s", got.Format(DayFormat))
	}
	if got := ClampDayOfMonth(2026, time.April, 15); !got.Equal(Day(2026, time.April, 15)) {
		t.Fatalf("in-range day moved: %s", got.Format(DayFormat))
	}
}

func TestNormalize(t *testing.T) {
	loc := time.FixedZone("X", -5*3600)
	ts := time.Date(2026, time.June, 3, 23, 45, 0, 0, loc)
	got := Normalize(ts)
	if !got.Equal(Day(2026, time.June, 3)) {
		t.Fatalf("Normalize = %s", got.Format(time.RFC3339))
	}
	if got.Location() != time.UTC {
		t.Fatal("normalized day not in UTC")
	}
}

func TestEventID(t *testing.T) {
	if got := EventID("rent", Day(2026, time.February, 1)); got != "rent@2026-02-01" {
		t.Fatalf("EventID = %q", got)
	}
}
