package arena

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agentarena/agentarena/internal/achievements"
	"github.com/agentarena/agentarena/internal/core"
	"github.com/agentarena/agentarena/internal/logging"
	"github.com/agentarena/agentarena/internal/scoring"
)

// ActivityReport is one inbound activity event. Optional signals are
// pointers so "absent" and "zero" stay distinguishable for the classifier.
type ActivityReport struct {
	Type            string         `json:"type"`
	Complexity      string         `json:"complexity,omitempty"`
	Description     string         `json:"description,omitempty"`
	ToolsCount      *int           `json:"tools_count,omitempty"`
	DurationMinutes *float64       `json:"duration_minutes,omitempty"`
	Accuracy        *float64       `json:"accuracy,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// SkillReport is one declared skill in a skill sync
type SkillReport struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"` // nil means enabled
}

// MemoryReport is the agent's self-reported memory snapshot
type MemoryReport struct {
	TotalMemories int            `json:"total_memories"`
	DepthDays     int            `json:"depth_days"`
	LastMemoryAt  *time.Time     `json:"last_memory_at,omitempty"`
	Categories    map[string]int `json:"categories,omitempty"`
}

// IntegrationReport is one declared integration in an integration sync
type IntegrationReport struct {
	Name      string         `json:"name"`
	Connected bool           `json:"connected"`
	Config    map[string]any `json:"config,omitempty"`
}

// ReportResult is returned from every stat-mutating report: the refreshed
// aggregate plus whatever unlocked during this report.
type ReportResult struct {
	Stats         *core.AgentStats   `json:"stats"`
	Level         core.Level         `json:"level"`
	PointsEarned  int                `json:"points_earned"`
	NewlyUnlocked []core.Achievement `json:"newly_unlocked"`
}

func (r *ActivityReport) validate() error {
	typ := core.ActivityType(r.Type)
	if !typ.Valid() {
		return core.Invalid("type", fmt.Sprintf("unknown activity type %q", r.Type))
	}
	if r.Complexity != "" && !core.Complexity(r.Complexity).Valid() {
		return core.Invalid("complexity", fmt.Sprintf("unknown complexity %q", r.Complexity))
	}
	if r.ToolsCount != nil && *r.ToolsCount < 0 {
		return core.Invalid("tools_count", "must not be negative")
	}
	if r.DurationMinutes != nil && *r.DurationMinutes < 0 {
		return core.Invalid("duration_minutes", "must not be negative")
	}
	if r.Accuracy != nil && (*r.Accuracy < 0 || *r.Accuracy > 1) {
		return core.Invalid("accuracy", "must be between 0 and 1")
	}
	return nil
}

// ReportActivities applies a batch of activity events to one agent.
// The whole batch is validated up front; an invalid entry rejects the batch
// before any counter moves.
func (s *Service) ReportActivities(agentID string, reports []ActivityReport) (*ReportResult, error) {
	if len(reports) == 0 {
		return nil, core.Invalid("activities", "must contain at least one entry")
	}
	for i := range reports {
		if err := reports[i].validate(); err != nil {
			return nil, err
		}
	}

	stats, err := s.stats.Get(agentID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	earned := 0

	for i := range reports {
		r := &reports[i]
		typ := core.ActivityType(r.Type)

		hasSubagents := typ == core.ActivitySubagent || metadataCount(r.Metadata, "subagents_spawned") > 0
		complexity := scoring.ResolveComplexity(
			typ, core.Complexity(r.Complexity), r.ToolsCount, r.DurationMinutes, hasSubagents)

		points := 0
		entryComplexity := core.Complexity("")
		if typ == core.ActivityTask {
			points = scoring.PointsFor(complexity)
			entryComplexity = complexity
		}

		entry := &core.ActivityEntry{
			ID:          uuid.NewString(),
			AgentID:     agentID,
			Type:        typ,
			Complexity:  entryComplexity,
			Description: r.Description,
			Metadata:    r.Metadata,
			Points:      points,
			CreatedAt:   now,
		}
		if err := s.activity.Insert(entry); err != nil {
			return nil, fmt.Errorf("failed to log activity: %w", err)
		}

		applyCounters(stats, r, typ, complexity)
		earned += points
	}

	// One batch advances the streak at most once.
	streak := scoring.Advance(scoring.Streak{
		Current:    stats.CurrentStreak,
		Longest:    stats.LongestStreak,
		LastActive: stats.LastActiveDate,
	}, now)
	stats.CurrentStreak = streak.Current
	stats.LongestStreak = streak.Longest
	stats.LastActiveDate = streak.LastActive

	refreshed, newly, err := s.refreshStats(agentID, stats)
	if err != nil {
		return nil, err
	}

	if err := s.agents.UpdateStatus(agentID, core.StatusConnected, now); err != nil {
		return nil, err
	}

	logging.WithField("agent", agentID).Debug(
		"processed %d activities, %d points", len(reports), earned)

	return &ReportResult{
		Stats:         refreshed,
		Level:         scoring.LevelFor(refreshed.TotalScore),
		PointsEarned:  earned,
		NewlyUnlocked: newly,
	}, nil
}

// applyCounters bumps the raw counters for one validated report
func applyCounters(stats *core.AgentStats, r *ActivityReport, typ core.ActivityType, complexity core.Complexity) {
	switch typ {
	case core.ActivityTask:
		stats.TasksCompleted++
		switch complexity {
		case core.ComplexityEpic:
			stats.EpicTasks++
		case core.ComplexityComplex:
			stats.ComplexTasks++
		case core.ComplexityMedium:
			stats.MediumTasks++
		default:
			stats.SimpleTasks++
		}
	case core.ActivitySessionStart:
		stats.SessionsCount++
	case core.ActivitySessionEnd:
		if r.DurationMinutes != nil {
			stats.TotalSessionDuration += *r.DurationMinutes
		}
	case core.ActivityToolUse:
		if r.ToolsCount != nil {
			stats.ToolsUsed += *r.ToolsCount
		} else {
			stats.ToolsUsed++
		}
	case core.ActivitySubagent:
		if n := metadataCount(r.Metadata, "subagents_spawned"); n > 0 {
			stats.SubagentsSpawned += n
		} else {
			stats.SubagentsSpawned++
		}
	}
}

// ReportSkills syncs the agent's declared skill set. With removeUnlisted
// the report is authoritative and anything missing from it is dropped.
func (s *Service) ReportSkills(agentID string, reports []SkillReport, removeUnlisted bool) (*ReportResult, error) {
	names := make([]string, 0, len(reports))
	for i := range reports {
		if reports[i].Name == "" {
			return nil, core.Invalid("skills", "skill name must not be empty")
		}
		names = append(names, reports[i].Name)
	}

	if removeUnlisted {
		if err := s.skills.DeleteUnlisted(agentID, names); err != nil {
			return nil, fmt.Errorf("failed to prune skills: %w", err)
		}
	}

	now := s.now().UTC()
	for i := range reports {
		r := &reports[i]
		enabled := r.Enabled == nil || *r.Enabled
		skill := &core.Skill{
			AgentID:     agentID,
			Name:        r.Name,
			Category:    normalizeCategory(r.Category),
			Icon:        r.Icon,
			Description: r.Description,
			Enabled:     enabled,
			InstalledAt: now,
		}
		if err := s.skills.Upsert(skill); err != nil {
			return nil, fmt.Errorf("failed to upsert skill %s: %w", r.Name, err)
		}
	}

	return s.refreshAndReport(agentID)
}

// ReportMemory replaces the agent's memory snapshot
func (s *Service) ReportMemory(agentID string, report MemoryReport) (*ReportResult, error) {
	if report.TotalMemories < 0 {
		return nil, core.Invalid("total_memories", "must not be negative")
	}
	if report.DepthDays < 0 {
		return nil, core.Invalid("depth_days", "must not be negative")
	}

	summary := &core.MemorySummary{
		AgentID:       agentID,
		TotalMemories: report.TotalMemories,
		DepthDays:     report.DepthDays,
		LastMemoryAt:  report.LastMemoryAt,
		Categories:    report.Categories,
	}
	if err := s.memory.Upsert(summary); err != nil {
		return nil, fmt.Errorf("failed to store memory summary: %w", err)
	}

	return s.refreshAndReport(agentID)
}

// ReportIntegrations syncs the agent's declared integrations
func (s *Service) ReportIntegrations(agentID string, reports []IntegrationReport, removeUnlisted bool) (*ReportResult, error) {
	names := make([]string, 0, len(reports))
	for i := range reports {
		if reports[i].Name == "" {
			return nil, core.Invalid("integrations", "integration name must not be empty")
		}
		names = append(names, reports[i].Name)
	}

	if removeUnlisted {
		if err := s.integrations.DeleteUnlisted(agentID, names); err != nil {
			return nil, fmt.Errorf("failed to prune integrations: %w", err)
		}
	}

	now := s.now().UTC()
	for i := range reports {
		r := &reports[i]
		integration := &core.Integration{
			AgentID:   agentID,
			Name:      r.Name,
			Connected: r.Connected,
			Config:    r.Config,
		}
		if r.Connected {
			integration.ConnectedAt = &now
		}
		if err := s.integrations.Upsert(integration); err != nil {
			return nil, fmt.Errorf("failed to upsert integration %s: %w", r.Name, err)
		}
	}

	return s.refreshAndReport(agentID)
}

// refreshAndReport reloads the persisted stats and runs the refresh cycle.
// Used by report paths that change inputs to the derived scores but not the
// raw counters.
func (s *Service) refreshAndReport(agentID string) (*ReportResult, error) {
	stats, err := s.stats.Get(agentID)
	if err != nil {
		return nil, err
	}

	refreshed, newly, err := s.refreshStats(agentID, stats)
	if err != nil {
		return nil, err
	}

	return &ReportResult{
		Stats:         refreshed,
		Level:         scoring.LevelFor(refreshed.TotalScore),
		NewlyUnlocked: newly,
	}, nil
}

// refreshStats is the single write path for derived scores: recompute from
// counters, evaluate achievements against the fresh aggregate, persist any
// unlocks, then recompute once more so achievement points land in the total.
func (s *Service) refreshStats(agentID string, stats *core.AgentStats) (*core.AgentStats, []core.Achievement, error) {
	skillCount, err := s.skills.CountEnabled(agentID)
	if err != nil {
		return nil, nil, err
	}
	integrationCount, err := s.integrations.CountConnected(agentID)
	if err != nil {
		return nil, nil, err
	}
	memory, err := s.memory.Get(agentID)
	if err != nil {
		return nil, nil, err
	}
	unlocked, err := s.unlocks.UnlockedIDs(agentID)
	if err != nil {
		return nil, nil, err
	}

	now := s.now().UTC()
	inputs := scoring.Inputs{
		Stats:                 *stats,
		EnabledSkills:         skillCount,
		ConnectedIntegrations: integrationCount,
		Memory:                *memory,
		AchievementPoints:     achievements.TotalPoints(unlocked),
		Now:                   now,
	}
	recomputed := scoring.Recompute(inputs)

	snap := achievements.Snapshot{Stats: recomputed, SkillCount: skillCount}
	newly := achievements.Evaluate(snap, unlocked)

	for _, a := range newly {
		err := s.unlocks.Unlock(agentID, a.ID, now)
		if err != nil && err != core.ErrAlreadyUnlocked {
			return nil, nil, fmt.Errorf("failed to unlock %s: %w", a.ID, err)
		}
		unlocked[a.ID] = true
		logging.WithField("agent", agentID).Info("achievement unlocked: %s", a.Name)
	}

	// New unlocks change achievement points, so the total is rebuilt once
	// more before persisting.
	if len(newly) > 0 {
		inputs.AchievementPoints = achievements.TotalPoints(unlocked)
		recomputed = scoring.Recompute(inputs)
	}

	recomputed.AgentID = agentID
	recomputed.UpdatedAt = now
	if err := s.stats.Upsert(&recomputed); err != nil {
		return nil, nil, fmt.Errorf("failed to persist stats: %w", err)
	}

	return &recomputed, newly, nil
}

// metadataCount reads a non-negative integer out of loosely-typed metadata
func metadataCount(metadata map[string]any, key string) int {
	if metadata == nil {
		return 0
	}
	switch v := metadata[key].(type) {
	case float64: // JSON numbers decode to float64
		if v > 0 {
			return int(v)
		}
	case int:
		if v > 0 {
			return v
		}
	}
	return 0
}

// normalizeCategory folds unknown categories into "other"
func normalizeCategory(category string) string {
	for _, c := range core.SkillCategories {
		if category == c {
			return category
		}
	}
	return "other"
}
