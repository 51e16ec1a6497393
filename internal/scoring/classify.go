// Package scoring implements the AgentArena scoring rules: task complexity
// classification, point values, composite sub-scores, streak tracking, and
// level resolution. Every function here is pure; persistence happens elsewhere.
package scoring

import (
	"github.com/agentarena/agentarena/internal/core"
)

// Classification thresholds. Evaluated in strict priority order.
const (
	epicToolCount    = 25
	epicDuration     = 120 // minutes
	complexToolCount = 11
	complexDuration  = 30
	mediumToolCount  = 4
	mediumDuration   = 5
)

// Classify maps measurable task signals to a complexity tier.
// First matching rule wins; subagent involvement trumps everything.
func Classify(toolsCount int, durationMinutes float64, hasSubagents bool) core.Complexity {
	switch {
	case hasSubagents || toolsCount >= epicToolCount || durationMinutes >= epicDuration:
		return core.ComplexityEpic
	case toolsCount >= complexToolCount || durationMinutes >= complexDuration:
		return core.ComplexityComplex
	case toolsCount >= mediumToolCount || durationMinutes >= mediumDuration:
		return core.ComplexityMedium
	default:
		return core.ComplexitySimple
	}
}

// ResolveComplexity decides the final tier for a reported activity.
//
// Automatic classification overrides the caller-supplied tier for task-type
// activities whenever at least one measurable signal (tools count or
// duration) is present. An agent cannot claim "epic" for a 2-tool,
// 1-minute task. For every other case the declared tier is used verbatim,
// defaulting to simple.
func ResolveComplexity(typ core.ActivityType, declared core.Complexity, toolsCount *int, durationMinutes *float64, hasSubagents bool) core.Complexity {
	if typ == core.ActivityTask && (toolsCount != nil || durationMinutes != nil) {
		tools := 0
		if toolsCount != nil {
			tools = *toolsCount
		}
		duration := 0.0
		if durationMinutes != nil {
			duration = *durationMinutes
		}
		return Classify(tools, duration, hasSubagents)
	}
	if declared.Valid() {
		return declared
	}
	return core.ComplexitySimple
}

// PointsFor returns the point value of one task activity at the given tier.
// Non-task activity types always earn zero points; callers enforce that.
func PointsFor(c core.Complexity) int {
	switch c {
	case core.ComplexityEpic:
		return 10
	case core.ComplexityComplex:
		return 5
	case core.ComplexityMedium:
		return 3
	default:
		return 1
	}
}
