package scoring

import (
	"time"
)

// Streak is the day-granularity consecutive-activity state of one agent
type Streak struct {
	Current    int
	Longest    int
	LastActive *time.Time
}

// Advance transitions the streak for a qualifying activity observed at now.
// Day arithmetic is done on UTC calendar days, not wall-clock durations:
// two reports a minute apart across midnight UTC count as consecutive days.
func Advance(s Streak, now time.Time) Streak {
	today := toUTCDate(now)

	switch {
	case s.LastActive == nil:
		s.Current = 1
	default:
		switch daysBetween(toUTCDate(*s.LastActive), today) {
		case 0:
			// Repeat report on the same day is free; keep LastActive as-is.
			if s.Current > s.Longest {
				s.Longest = s.Current
			}
			return s
		case 1:
			s.Current++
		default:
			s.Current = 1
		}
	}

	s.LastActive = &today
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	return s
}

// toUTCDate truncates t to midnight UTC
func toUTCDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole calendar days from a to b (both midnight UTC)
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
