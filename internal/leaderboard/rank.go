// Package leaderboard ranks agents for the requested sort dimension and
// derives the per-row online flag and trend. Nothing here is persisted;
// rankings are recomputed from stored aggregates on every request.
package leaderboard

import (
	"sort"
	"time"

	"github.com/agentarena/agentarena/internal/core"
)

// Tab selects the primary sort key
type Tab string

const (
	TabOverall    Tab = "overall"
	TabTasks      Tab = "tasks"
	TabStreaks    Tab = "streaks"
	TabComplexity Tab = "complexity"
)

// Valid reports whether t is a known tab
func (t Tab) Valid() bool {
	switch t {
	case TabOverall, TabTasks, TabStreaks, TabComplexity:
		return true
	}
	return false
}

// An agent counts as online for 15 minutes after its last heartbeat.
const onlineWindow = 15 * time.Minute

// Trend thresholds over the trailing 24h point sum.
const (
	trendUpThreshold   = 10
	trendDownThreshold = 2
)

// IsOnline derives the online flag: the persisted status must be connected
// and the agent must have been seen within the online window.
func IsOnline(status core.AgentStatus, lastSeenAt time.Time, now time.Time) bool {
	return status == core.StatusConnected && now.Sub(lastSeenAt) < onlineWindow
}

// TrendFor maps the trailing-24h point sum to a trend marker. This is a
// heuristic, not a historical rank delta.
func TrendFor(points24h int) core.Trend {
	switch {
	case points24h > trendUpThreshold:
		return core.TrendUp
	case points24h < trendDownThreshold:
		return core.TrendDown
	default:
		return core.TrendSame
	}
}

// Rank sorts entries for the tab, applies the fixed tie-break chain
// (tasks completed desc, then current streak desc), fills trend from the
// precomputed 24h point sums, assigns 1-based ranks, and truncates to limit.
func Rank(entries []core.LeaderboardEntry, tab Tab, limit int) []core.LeaderboardEntry {
	ranked := make([]core.LeaderboardEntry, len(entries))
	copy(ranked, entries)

	primary := primaryKey(tab)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if pa, pb := primary(a), primary(b); pa != pb {
			return pa > pb
		}
		if a.TasksCompleted != b.TasksCompleted {
			return a.TasksCompleted > b.TasksCompleted
		}
		return a.CurrentStreak > b.CurrentStreak
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Trend = TrendFor(ranked[i].Points24h)
	}

	return ranked
}

func primaryKey(tab Tab) func(core.LeaderboardEntry) int {
	switch tab {
	case TabTasks:
		return func(e core.LeaderboardEntry) int { return e.TasksCompleted }
	case TabStreaks:
		return func(e core.LeaderboardEntry) int { return e.CurrentStreak }
	case TabComplexity:
		return func(e core.LeaderboardEntry) int { return e.ComplexityScore }
	default:
		return func(e core.LeaderboardEntry) int { return e.TotalScore }
	}
}
