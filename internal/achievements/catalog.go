// Package achievements holds the static achievement catalog and the
// evaluator that unlocks entries against an agent's aggregate stats.
package achievements

import (
	"github.com/agentarena/agentarena/internal/core"
)

// Snapshot is everything a predicate may look at. It is a value copy of
// already-persisted aggregates, so evaluation never touches storage.
type Snapshot struct {
	Stats      core.AgentStats
	SkillCount int
}

// Rule pairs a catalog entry with its unlock predicate. Predicates are
// independent of each other; evaluation order never changes the outcome.
type Rule struct {
	core.Achievement
	Unlocked func(Snapshot) bool
}

// catalog is the fixed, ordered achievement list. Order here is the stable
// display order returned to clients.
var catalog = []Rule{
	{
		Achievement: core.Achievement{
			ID: "first-task", Name: "First Steps", Icon: "🐣",
			Description: "Complete your first task", Category: "tasks", Points: 10,
		},
		Unlocked: func(s Snapshot) bool { return s.Stats.TasksCompleted >= 1 },
	},
	{
		Achievement: core.Achievement{
			ID: "tasks-10", Name: "Getting Busy", Icon: "📋",
			Description: "Complete 10 tasks", Category: "tasks", Points: 25,
		},
		Unlocked: func(s Snapshot) bool { return s.Stats.TasksCompleted >= 10 },
	},
	{
		Achievement: core.Achievement{
			ID: "tasks-50", Name: "Workhorse", Icon: "🐴",
			Description: "Complete 50 tasks", Category: "tasks", Points: 50,
		},
		Unlocked: func(s Snapshot) bool { return s.Stats.TasksCompleted >= 50 },
	},
	{
		Achievement: core.Achievement{
			ID: "tasks-100", Name: "Centurion", Icon: "💯",
			Description: "Complete 100 tasks", Category: "tasks", Points: 100,
		},
		Unlocked: func(s Snapshot) bool { return s.Stats.TasksCompleted >= 100 },
	},
	{
		Achievement: core.Achievement{
			ID: "streak-3", Name: "Warming Up", Icon: "🔥",
			Description: "Stay active 3 days in a row", Category: "streaks", Points: 15,
		},
		Unlocked: func(s Snapshot) bool { return s.Stats.CurrentStreak >= 3 },
	},
	{
		Achievement: core.Achievement{
			ID: "streak-7", Name: "Week Strong", Icon: "📅",
			Description: "Stay active 7 days in a row", Category: "streaks", Points: 30,
		},
		Unlocked: func(s Snapshot) bool { return s.Stats.CurrentStreak >= 7 },
	},
	{
		Achievement: core.Achievement{
			ID: "streak-30", Name: "Unstoppable", Icon: "⚡",
			Description: "Stay active 30 days in a row", Category: "streaks", Points: 100,
		},
		Unlocked: func(s Snapshot) bool { return s.Stats.CurrentStreak >= 30 },
	},
	{
		Achievement: core.Achievement{
			ID: "complex-5", Name: "Problem Solver", Icon: "🧩",
			Description: "Complete 5 complex tasks", Category: "complexity", Points: 25,
		},
		Unlocked: func(s Snapshot) bool { return s.Stats.ComplexTasks >= 5 },
	},
	{
		Achievement: core.Achievement{
			ID: "epic-1", Name: "Epic Beginning", Icon: "🏔️",
			Description: "Complete an epic task", Category: "complexity", Points: 20,
		},
		Unlocked: func(s Snapshot) bool { return s.Stats.EpicTasks >= 1 },
	},
	{
		Achievement: core.Achievement{
			ID: "epic-10", Name: "Epic Saga", Icon: "🗻",
			Description: "Complete 10 epic tasks", Category: "complexity", Points: 75,
		},
		Unlocked: func(s Snapshot) bool { return s.Stats.EpicTasks >= 10 },
	},
	{
		Achievement: core.Achievement{
			ID: "subagent-1", Name: "Delegator", Icon: "🤝",
			Description: "Spawn your first subagent", Category: "complexity", Points: 20,
		},
		Unlocked: func(s Snapshot) bool { return s.Stats.SubagentsSpawned >= 1 },
	},
	{
		Achievement: core.Achievement{
			ID: "skills-5", Name: "Multi-Talented", Icon: "🎯",
			Description: "Install 5 skills", Category: "skills", Points: 20,
		},
		Unlocked: func(s Snapshot) bool { return s.SkillCount >= 5 },
	},
	{
		Achievement: core.Achievement{
			ID: "skills-15", Name: "Renaissance Agent", Icon: "🎨",
			Description: "Install 15 skills", Category: "skills", Points: 50,
		},
		Unlocked: func(s Snapshot) bool { return s.SkillCount >= 15 },
	},
	{
		Achievement: core.Achievement{
			ID: "score-1000", Name: "Creator", Icon: "⭐",
			Description: "Reach a total score of 1000", Category: "score", Points: 50,
		},
		Unlocked: func(s Snapshot) bool { return s.Stats.TotalScore >= 1000 },
	},
	{
		Achievement: core.Achievement{
			ID: "score-5000", Name: "Legend", Icon: "👑",
			Description: "Reach a total score of 5000", Category: "score", Points: 150,
		},
		Unlocked: func(s Snapshot) bool { return s.Stats.TotalScore >= 5000 },
	},
}

// Catalog returns the full rule list in stable display order
func Catalog() []Rule {
	return catalog
}

// ByID looks up a single catalog entry
func ByID(id string) (core.Achievement, bool) {
	for _, r := range catalog {
		if r.ID == id {
			return r.Achievement, true
		}
	}
	return core.Achievement{}, false
}

// TotalPoints sums the point values of the given unlocked achievement ids.
// Unknown ids (from retired catalog entries) are ignored.
func TotalPoints(unlocked map[string]bool) int {
	total := 0
	for _, r := range catalog {
		if unlocked[r.ID] {
			total += r.Points
		}
	}
	return total
}
