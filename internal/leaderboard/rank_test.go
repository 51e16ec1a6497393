package leaderboard

import (
	"testing"
	"time"

	"github.com/agentarena/agentarena/internal/core"
)

func entry(name string, total, tasks, streak, complexity int) core.LeaderboardEntry {
	return core.LeaderboardEntry{
		AgentID:         name,
		Name:            name,
		TotalScore:      total,
		TasksCompleted:  tasks,
		CurrentStreak:   streak,
		ComplexityScore: complexity,
	}
}

func TestRank_TasksTabIsNonIncreasing(t *testing.T) {
	entries := []core.LeaderboardEntry{
		entry("a", 10, 5, 1, 0),
		entry("b", 50, 20, 2, 0),
		entry("c", 30, 12, 9, 0),
	}

	ranked := Rank(entries, TabTasks, 0)

	for i := 1; i < len(ranked); i++ {
		if ranked[i].TasksCompleted > ranked[i-1].TasksCompleted {
			t.Fatalf("tasks not non-increasing at position %d", i)
		}
	}
	if ranked[0].AgentID != "b" {
		t.Errorf("expected b first, got %s", ranked[0].AgentID)
	}
}

func TestRank_TieBreakByStreakOnTasksTab(t *testing.T) {
	entries := []core.LeaderboardEntry{
		entry("low-streak", 0, 10, 2, 0),
		entry("high-streak", 0, 10, 8, 0),
	}

	ranked := Rank(entries, TabTasks, 0)

	if ranked[0].AgentID != "high-streak" {
		t.Errorf("tie on tasks should break by streak, got %s first", ranked[0].AgentID)
	}
}

func TestRank_OverallTieBreakByTasks(t *testing.T) {
	entries := []core.LeaderboardEntry{
		entry("fewer-tasks", 500, 10, 3, 0),
		entry("more-tasks", 500, 25, 1, 0),
	}

	ranked := Rank(entries, TabOverall, 0)

	if ranked[0].AgentID != "more-tasks" {
		t.Errorf("equal total score should rank by tasks completed, got %s first", ranked[0].AgentID)
	}
}

func TestRank_AssignsOneBasedRanks(t *testing.T) {
	entries := []core.LeaderboardEntry{
		entry("a", 1, 0, 0, 0),
		entry("b", 3, 0, 0, 0),
		entry("c", 2, 0, 0, 0),
	}

	ranked := Rank(entries, TabOverall, 0)

	for i, e := range ranked {
		if e.Rank != i+1 {
			t.Errorf("position %d has rank %d", i, e.Rank)
		}
	}
}

func TestRank_AppliesLimit(t *testing.T) {
	entries := []core.LeaderboardEntry{
		entry("a", 1, 0, 0, 0),
		entry("b", 3, 0, 0, 0),
		entry("c", 2, 0, 0, 0),
	}

	ranked := Rank(entries, TabOverall, 2)

	if len(ranked) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ranked))
	}
	if ranked[0].AgentID != "b" || ranked[1].AgentID != "c" {
		t.Errorf("unexpected order after limit: %s, %s", ranked[0].AgentID, ranked[1].AgentID)
	}
}

func TestRank_ComplexityTab(t *testing.T) {
	entries := []core.LeaderboardEntry{
		entry("a", 900, 1, 1, 20),
		entry("b", 100, 1, 1, 80),
	}

	ranked := Rank(entries, TabComplexity, 0)

	if ranked[0].AgentID != "b" {
		t.Errorf("complexity tab should ignore total score, got %s first", ranked[0].AgentID)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	entries := []core.LeaderboardEntry{
		entry("a", 1, 0, 0, 0),
		entry("b", 3, 0, 0, 0),
	}

	Rank(entries, TabOverall, 0)

	if entries[0].AgentID != "a" || entries[0].Rank != 0 {
		t.Error("input slice was mutated")
	}
}

func TestIsOnline(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		status   core.AgentStatus
		lastSeen time.Time
		want     bool
	}{
		{"connected and fresh", core.StatusConnected, now.Add(-5 * time.Minute), true},
		{"connected but stale", core.StatusConnected, now.Add(-20 * time.Minute), false},
		{"disconnected and fresh", core.StatusDisconnected, now.Add(-1 * time.Minute), false},
		{"exactly at window", core.StatusConnected, now.Add(-15 * time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOnline(tt.status, tt.lastSeen, now); got != tt.want {
				t.Errorf("IsOnline = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrendFor(t *testing.T) {
	tests := []struct {
		points int
		want   core.Trend
	}{
		{0, core.TrendDown},
		{1, core.TrendDown},
		{2, core.TrendSame},
		{10, core.TrendSame},
		{11, core.TrendUp},
		{100, core.TrendUp},
	}

	for _, tt := range tests {
		if got := TrendFor(tt.points); got != tt.want {
			t.Errorf("TrendFor(%d) = %s, want %s", tt.points, got, tt.want)
		}
	}
}
