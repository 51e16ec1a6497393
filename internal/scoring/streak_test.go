package scoring

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAdvance_FirstActivity(t *testing.T) {
	s := Advance(Streak{}, day("2026-03-01T10:00:00Z"))

	if s.Current != 1 {
		t.Errorf("expected streak 1, got %d", s.Current)
	}
	if s.Longest != 1 {
		t.Errorf("expected longest 1, got %d", s.Longest)
	}
	if s.LastActive == nil {
		t.Fatal("expected LastActive to be set")
	}
}

func TestAdvance_SameDayIsFree(t *testing.T) {
	s := Advance(Streak{}, day("2026-03-01T10:00:00Z"))
	s = Advance(s, day("2026-03-01T23:59:00Z"))

	if s.Current != 1 {
		t.Errorf("same-day report should not change streak, got %d", s.Current)
	}
}

func TestAdvance_ConsecutiveDays(t *testing.T) {
	s := Advance(Streak{}, day("2026-03-01T10:00:00Z"))
	s = Advance(s, day("2026-03-02T08:00:00Z"))
	s = Advance(s, day("2026-03-03T23:00:00Z"))

	if s.Current != 3 {
		t.Errorf("expected streak 3, got %d", s.Current)
	}
	if s.Longest != 3 {
		t.Errorf("expected longest 3, got %d", s.Longest)
	}
}

func TestAdvance_SkippedDayResets(t *testing.T) {
	s := Advance(Streak{}, day("2026-03-01T10:00:00Z"))
	s = Advance(s, day("2026-03-02T10:00:00Z"))
	s = Advance(s, day("2026-03-04T10:00:00Z"))

	if s.Current != 1 {
		t.Errorf("expected reset to 1, got %d", s.Current)
	}
	if s.Longest != 2 {
		t.Errorf("longest should survive the reset, got %d", s.Longest)
	}
}

func TestAdvance_MidnightUTCBoundary(t *testing.T) {
	// 23:59 and 00:01 the next day are consecutive calendar days.
	s := Advance(Streak{}, day("2026-03-01T23:59:00Z"))
	s = Advance(s, day("2026-03-02T00:01:00Z"))

	if s.Current != 2 {
		t.Errorf("minutes apart across midnight should count as consecutive days, got %d", s.Current)
	}
}

func TestAdvance_LongestIsMonotonic(t *testing.T) {
	var s Streak
	days := []string{
		"2026-03-01T10:00:00Z",
		"2026-03-02T10:00:00Z",
		"2026-03-03T10:00:00Z",
		"2026-03-07T10:00:00Z", // broken
		"2026-03-08T10:00:00Z",
	}

	prev := 0
	for _, d := range days {
		s = Advance(s, day(d))
		if s.Longest < prev {
			t.Fatalf("longest streak decreased from %d to %d", prev, s.Longest)
		}
		prev = s.Longest
	}

	if s.Current != 2 {
		t.Errorf("expected current 2 after rebuild, got %d", s.Current)
	}
	if s.Longest != 3 {
		t.Errorf("expected longest 3, got %d", s.Longest)
	}
}
