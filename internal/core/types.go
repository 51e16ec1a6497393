// Package core defines the fundamental types for AgentArena.
// Everything else in the system is built around these.
package core

import (
	"time"
)

// -----------------------------------------------------------------------------
// Complexity - how hard a task was
// -----------------------------------------------------------------------------

// Complexity classifies a single task activity
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
	ComplexityEpic    Complexity = "epic"
)

// Valid reports whether c is a known complexity tier
func (c Complexity) Valid() bool {
	switch c {
	case ComplexitySimple, ComplexityMedium, ComplexityComplex, ComplexityEpic:
		return true
	}
	return false
}

// -----------------------------------------------------------------------------
// ActivityType - what kind of event was reported
// -----------------------------------------------------------------------------

// ActivityType is the declared type of a reported activity
type ActivityType string

const (
	ActivityTask         ActivityType = "task"
	ActivitySessionStart ActivityType = "session_start"
	ActivitySessionEnd   ActivityType = "session_end"
	ActivityToolUse      ActivityType = "tool_use"
	ActivitySubagent     ActivityType = "subagent"
	ActivityHeartbeat    ActivityType = "heartbeat"
)

// Valid reports whether t is a known activity type
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTask, ActivitySessionStart, ActivitySessionEnd,
		ActivityToolUse, ActivitySubagent, ActivityHeartbeat:
		return true
	}
	return false
}

// -----------------------------------------------------------------------------
// Level - named tier derived from total score
// -----------------------------------------------------------------------------

// Level is the display tier an agent has reached
type Level string

const (
	LevelApprentice Level = "Apprentice"
	LevelBuilder    Level = "Builder"
	LevelCreator    Level = "Creator"
	LevelArchitect  Level = "Architect"
	LevelLegend     Level = "Legend"
)

// -----------------------------------------------------------------------------
// Agent - the tracked AI entity
// -----------------------------------------------------------------------------

// AgentStatus is the persisted connection state of an agent
type AgentStatus string

const (
	StatusConnected    AgentStatus = "connected"
	StatusDisconnected AgentStatus = "disconnected"
)

// Agent is one tracked AI agent. Agents are never hard-deleted;
// disconnecting only flips the status.
type Agent struct {
	ID         string      `json:"id"` // UUID
	Name       string      `json:"name"`
	Platform   string      `json:"platform"`
	Status     AgentStatus `json:"status"`
	LastSeenAt time.Time   `json:"last_seen_at"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// -----------------------------------------------------------------------------
// AgentStats - the aggregate scoring state, one row per agent
// -----------------------------------------------------------------------------

// AgentStats holds every persisted counter and derived score for an agent.
// Derived scores are always recomputed from the counters; they are stored
// only so read paths and the leaderboard avoid recomputing on every query.
type AgentStats struct {
	AgentID string `json:"agent_id"`

	// Raw counters
	TasksCompleted       int     `json:"tasks_completed"`
	SimpleTasks          int     `json:"simple_tasks"`
	MediumTasks          int     `json:"medium_tasks"`
	ComplexTasks         int     `json:"complex_tasks"`
	EpicTasks            int     `json:"epic_tasks"`
	SessionsCount        int     `json:"sessions_count"`
	TotalSessionDuration float64 `json:"total_session_duration"` // minutes
	ToolsUsed            int     `json:"tools_used"`
	SubagentsSpawned     int     `json:"subagents_spawned"`
	UptimePercentage     float64 `json:"uptime_percentage"`

	// Streak state
	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`

	// Derived scores
	ActivityScore    int `json:"activity_score"`
	CapabilityScore  int `json:"capability_score"`
	ComplexityScore  int `json:"complexity_score"`
	MemoryStrength   int `json:"memory_strength"`
	QualityScore     int `json:"quality_score"`
	IntegrationDepth int `json:"integration_depth"`
	ProactivityScore int `json:"proactivity_score"`
	TotalScore       int `json:"total_score"`

	UpdatedAt time.Time `json:"updated_at"`
}

// -----------------------------------------------------------------------------
// ActivityEntry - append-only log of one reported event
// -----------------------------------------------------------------------------

// ActivityEntry is one reported event. Immutable once written.
type ActivityEntry struct {
	ID          string         `json:"id"` // UUID
	AgentID     string         `json:"agent_id"`
	Type        ActivityType   `json:"type"`
	Complexity  Complexity     `json:"complexity,omitempty"` // empty for non-task types
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Points      int            `json:"points"` // 0 for non-task types
	CreatedAt   time.Time      `json:"created_at"`
}

// -----------------------------------------------------------------------------
// Skills and integrations
// -----------------------------------------------------------------------------

// SkillCategories is the fixed set of recognized skill categories.
// Anything else is normalized to "other".
var SkillCategories = []string{
	"coding", "research", "writing", "data", "design", "automation", "other",
}

// Skill is one installed capability of an agent, keyed by (agent, name)
type Skill struct {
	AgentID     string    `json:"agent_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Icon        string    `json:"icon,omitempty"`
	Description string    `json:"description,omitempty"`
	Enabled     bool      `json:"enabled"`
	InstalledAt time.Time `json:"installed_at"`
}

// Integration is one external-service connection, keyed by (agent, name)
type Integration struct {
	AgentID     string         `json:"agent_id"`
	Name        string         `json:"name"`
	Connected   bool           `json:"connected"`
	Config      map[string]any `json:"config,omitempty"`
	ConnectedAt *time.Time     `json:"connected_at,omitempty"` // nil when disconnected
}

// -----------------------------------------------------------------------------
// Memory
// -----------------------------------------------------------------------------

// MemorySummary is the per-agent memory snapshot driving memory_strength
type MemorySummary struct {
	AgentID       string         `json:"agent_id"`
	TotalMemories int            `json:"total_memories"`
	DepthDays     int            `json:"depth_days"`
	LastMemoryAt  *time.Time     `json:"last_memory_at,omitempty"`
	Categories    map[string]int `json:"categories,omitempty"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// -----------------------------------------------------------------------------
// Achievements
// -----------------------------------------------------------------------------

// Achievement is one static catalog entry
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Points      int    `json:"points"`
}

// UnlockedAchievement records that an agent unlocked a catalog entry.
// At most one row exists per (agent, achievement).
type UnlockedAchievement struct {
	AgentID       string    `json:"agent_id"`
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// -----------------------------------------------------------------------------
// Leaderboard - read-time projection, never stored
// -----------------------------------------------------------------------------

// Trend is the 24h point-sum heuristic shown next to a leaderboard row
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendSame Trend = "same"
)

// LeaderboardEntry is one ranked row. Rank is assigned after sorting.
type LeaderboardEntry struct {
	Rank             int    `json:"rank"`
	AgentID          string `json:"agent_id"`
	Name             string `json:"name"`
	Platform         string `json:"platform"`
	Level            Level  `json:"level"`
	TotalScore       int    `json:"total_score"`
	TasksCompleted   int    `json:"tasks_completed"`
	CurrentStreak    int    `json:"current_streak"`
	ComplexityScore  int    `json:"complexity_score"`
	SkillCount       int    `json:"skill_count"`
	IntegrationCount int    `json:"integration_count"`
	Online           bool   `json:"online"`
	Trend            Trend  `json:"trend"`
	Points24h        int    `json:"-"`
}
