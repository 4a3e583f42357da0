package dateutil

import (
	"testing"
	"time"
)

func TestStartOfUTCDay_NonUTCInput(t *testing.T) {
	// 23:30 on Jan 1 in UTC+5 is 18:30 on Jan 1 UTC.
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2025, 1, 1, 23, 30, 0, 0, loc)

	got := StartOfUTCDay(in)
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfUTCDay = %v, want %v", got, want)
	}

	// 01:30 on Jan 2 in UTC-5 is 06:30 on Jan 2 UTC.
	loc = time.FixedZone("UTC-5", -5*3600)
	in = time.Date(2025, 1, 2, 1, 30, 0, 0, loc)
	got = StartOfUTCDay(in)
	want = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfUTCDay = %v, want %v", got, want)
	}
}

func TestEndOfUTCDay(t *testing.T) {
	in := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	got := EndOfUTCDay(in)
	if got.Before(in) {
		t.Fatalf("EndOfUTCDay %v is before input %v", got, in)
	}
	next := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	if !got.Before(next) {
		t.Errorf("EndOfUTCDay %v crosses into the next day", got)
	}
}

func TestUTCDayDifference(t *testing.T) {
	a := time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 1, 2, 0, 1, 0, 0, time.UTC)
	if d := UTCDayDifference(a, b); d != 1 {
		t.Errorf("UTCDayDifference(%v, %v) = %d, want 1", a, b, d)
	}

	if d := UTCDayDifference(b, a); d != -1 {
		t.Errorf("reverse difference = %d, want -1", d)
	}

	// Two instants minutes apart on the same UTC day.
	c := time.Date(2025, 1, 1, 0, 5, 0, 0, time.UTC)
	if d := UTCDayDifference(a, c); d != 0 {
		t.Errorf("same-day difference = %d, want 0", d)
	}
}

func TestDaysLate(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if got := DaysLate(due, due.AddDate(0, 0, 3)); got != 3 {
		t.Errorf("DaysLate 3 days after due = %d, want 3", got)
	}
	if got := DaysLate(due, due.Add(4*time.Hour)); got != 0 {
		t.Errorf("DaysLate same day = %d, want 0", got)
	}
	if got := DaysLate(due, due.AddDate(0, 0, -2)); got != 0 {
		t.Errorf("DaysLate before due = %d, want 0", got)
	}
}

func TestSameUTCDay(t *testing.T) {
	// Same wall-clock day in different zones can be different UTC days.
	est := time.FixedZone("UTC-5", -5*3600)
	a := time.Date(2025, 1, 1, 22, 0, 0, 0, est) // Jan 2, 03:00 UTC
	b := time.Date(2025, 1, 1, 10, 0, 0, 0, est) // Jan 1, 15:00 UTC
	if SameUTCDay(a, b) {
		t.Error("expected different UTC days across the UTC midnight boundary")
	}
}
