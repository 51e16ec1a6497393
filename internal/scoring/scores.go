package scoring

import (
	"math"
	"time"

	"github.com/agentarena/agentarena/internal/core"
)

// Per-dimension caps keep sub-scores comparable on a 0-100 display scale.
const (
	capabilityPerSkill       = 5
	capabilityCap            = 100
	integrationPerConnection = 10
	integrationCap           = 100
	streakPointWeight        = 5
)

// CapabilityScore scores the enabled-skill count
func CapabilityScore(enabledSkills int) int {
	return capInt(enabledSkills*capabilityPerSkill, capabilityCap)
}

// IntegrationDepth scores the connected-integration count
func IntegrationDepth(connectedIntegrations int) int {
	return capInt(connectedIntegrations*integrationPerConnection, integrationCap)
}

// MemoryStrength scores a memory summary. The four terms cap individually
// (50+25+20+5), so the sum never exceeds 100 by construction and is not
// capped again.
func MemoryStrength(m core.MemorySummary, now time.Time) int {
	score := math.Min(float64(m.TotalMemories)*0.1, 50)
	score += math.Min(float64(m.DepthDays)*0.05, 25)
	score += math.Min(float64(len(m.Categories))*2, 20)
	if m.LastMemoryAt != nil && now.Sub(*m.LastMemoryAt) < 24*time.Hour {
		score += 5
	}
	return int(math.Round(score))
}

// TaskPoints is the uncapped point total across the complexity breakdown
func TaskPoints(simple, medium, complex, epic int) int {
	return simple*PointsFor(core.ComplexitySimple) +
		medium*PointsFor(core.ComplexityMedium) +
		complex*PointsFor(core.ComplexityComplex) +
		epic*PointsFor(core.ComplexityEpic)
}

// Inputs carries everything the aggregator needs. Only persisted counters
// and snapshots go in, so recomputing twice from the same stored state
// always yields identical scores.
type Inputs struct {
	Stats                 core.AgentStats
	EnabledSkills         int
	ConnectedIntegrations int
	Memory                core.MemorySummary
	AchievementPoints     int
	Now                   time.Time
}

// Recompute returns the stats with every derived score rebuilt from the raw
// counters. total_score is never patched incrementally anywhere in the
// system; this is the single authoritative aggregation step.
func Recompute(in Inputs) core.AgentStats {
	s := in.Stats

	memory := MemoryStrength(in.Memory, in.Now)

	s.CapabilityScore = CapabilityScore(in.EnabledSkills)
	s.IntegrationDepth = IntegrationDepth(in.ConnectedIntegrations)
	s.MemoryStrength = memory
	// Quality mirrors memory strength until a dedicated signal exists.
	s.QualityScore = memory
	s.ActivityScore = capInt(s.TasksCompleted*2, 80) + capInt(s.CurrentStreak*2, 20)
	s.ComplexityScore = capInt(s.MediumTasks*2+s.ComplexTasks*5+s.EpicTasks*10, 100)
	s.ProactivityScore = capInt(s.SubagentsSpawned*5, 100)

	s.TotalScore = TaskPoints(s.SimpleTasks, s.MediumTasks, s.ComplexTasks, s.EpicTasks) +
		s.CurrentStreak*streakPointWeight +
		s.CapabilityScore +
		s.MemoryStrength +
		s.IntegrationDepth +
		in.AchievementPoints

	return s
}

func capInt(v, max int) int {
	if v > max {
		return max
	}
	return v
}
