package availability

import (
	"testing"
	"time"
)

func TestCandidates_HalfHourGrid(t *testing.T) {
	day := Date{Year: 2026, Month: time.January, Day: 28}
	slots := Candidates(day, time.UTC, 9, 11, 30*time.Minute)
	want := []string{"09:00", "09:30", "10:00", "10:30"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, s := range slots {
		if got := s.Format("15:04"); got != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], got)
		}
		if DateOf(s) != day {
			t.Fatalf("slot %d on wrong day: %s", i, s)
		}
	}
}

func TestCandidates_Empty(t *testing.T) {
	day := Date{Year: 2026, Month: time.January, Day: 28}
	if got := Candidates(day, time.UTC, 18, 9, 30*time.Minute); len(got) != 0 {
		t.Fatalf("closing before opening should give no slots, got %d", len(got))
	}
	if got := Candidates(day, time.UTC, 9, 10, 25*time.Minute); got != nil {
		t.Fatal("step that does not divide an hour should be rejected")
	}
}

func TestCandidates_UsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	day := Date{Year: 2026, Month: time.March, Day: 2}
	slots := Candidates(day, loc, 9, 10, 30*time.Minute)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	// Bogota is UTC-5 all year.
	if got := slots[0].UTC().Format(time.RFC3339); got != "2026-03-02T14:00:00Z" {
		t.Fatalf("unexpected first slot %s", got)
	}
}

func TestCandidates_SpringForwardGap(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// Clocks jump from 02:00 to 03:00 on this day.
	day := Date{Year: 2026, Month: time.March, Day: 8}
	slots := Candidates(day, loc, 1, 4, 30*time.Minute)
	want := []string{"01:00", "01:30", "03:00", "03:30"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %v", len(want), slots)
	}
	for i, s := range slots {
		if got := s.Format("15:04"); got != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], got)
		}
		if i > 0 && !s.After(slots[i-1]) {
			t.Fatalf("slots not strictly ascending at %d: %v", i, slots)
		}
	}
}

func TestFilter(t *testing.T) {
	day := Date{Year: 2026, Month: time.January, Day: 28}
	all := Candidates(day, time.UTC, 9, 11, 30*time.Minute)
	taken := day.At(10, 0, time.UTC)

	got := Filter(all, func(t time.Time) bool { return t.Equal(taken) })
	if len(got) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(got))
	}
	for _, s := range got {
		if s.Equal(taken) {
			t.Fatal("taken slot was not filtered")
		}
	}
}

func TestParseDateAndClock(t *testing.T) {
	d, err := ParseDate("2026-02-14")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if d.String() != "2026-02-14" {
		t.Fatalf("round trip mismatch: %s", d)
	}
	if _, err := ParseDate("14/02/2026"); err == nil {
		t.Fatal("expected error for wrong layout")
	}

	c, err := ParseClock("19:30")
	if err != nil || c.Hour != 19 || c.Minute != 30 {
		t.Fatalf("unexpected clock %+v (%v)", c, err)
	}
	if _, err := ParseClock("7pm"); err == nil {
		t.Fatal("expected error for bad clock")
	}
}
