package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/agentarena/agentarena/internal/core"
)

// StatsStore handles the per-agent aggregate scoring state
type StatsStore struct {
	db *DB
}

// NewStatsStore creates a new stats store
func NewStatsStore(db *DB) *StatsStore {
	return &StatsStore{db: db}
}

// Get returns the stats row for an agent, or a zero-valued row if none has
// been written yet. A missing row is not an error: every agent implicitly
// starts at zero.
func (s *StatsStore) Get(agentID string) (*core.AgentStats, error) {
	stats := &core.AgentStats{}
	var lastActive sql.NullTime

	err := s.db.conn.QueryRow(`
		SELECT agent_id, tasks_completed, simple_tasks, medium_tasks, complex_tasks, epic_tasks,
		       sessions_count, total_session_duration, tools_used, subagents_spawned,
		       uptime_percentage, current_streak, longest_streak, last_active_date,
		       activity_score, capability_score, complexity_score, memory_strength,
		       quality_score, integration_depth, proactivity_score, total_score, updated_at
		FROM agent_stats WHERE agent_id = ?
	`, agentID).Scan(
		&stats.AgentID, &stats.TasksCompleted, &stats.SimpleTasks, &stats.MediumTasks,
		&stats.ComplexTasks, &stats.EpicTasks, &stats.SessionsCount, &stats.TotalSessionDuration,
		&stats.ToolsUsed, &stats.SubagentsSpawned, &stats.UptimePercentage,
		&stats.CurrentStreak, &stats.LongestStreak, &lastActive,
		&stats.ActivityScore, &stats.CapabilityScore, &stats.ComplexityScore,
		&stats.MemoryStrength, &stats.QualityScore, &stats.IntegrationDepth,
		&stats.ProactivityScore, &stats.TotalScore, &stats.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return &core.AgentStats{AgentID: agentID}, nil
	}
	if err != nil {
		return nil, err
	}

	if lastActive.Valid {
		t := lastActive.Time
		stats.LastActiveDate = &t
	}

	return stats, nil
}

// Upsert writes the full stats row, creating it on first report
func (s *StatsStore) Upsert(stats *core.AgentStats) error {
	stats.UpdatedAt = time.Now().UTC()

	var lastActive any
	if stats.LastActiveDate != nil {
		lastActive = *stats.LastActiveDate
	}

	_, err := s.db.conn.Exec(`
		INSERT INTO agent_stats (
		    agent_id, tasks_completed, simple_tasks, medium_tasks, complex_tasks, epic_tasks,
		    sessions_count, total_session_duration, tools_used, subagents_spawned,
		    uptime_percentage, current_streak, longest_streak, last_active_date,
		    activity_score, capability_score, complexity_score, memory_strength,
		    quality_score, integration_depth, proactivity_score, total_score, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(agent_id) DO UPDATE SET
		    tasks_completed = excluded.tasks_completed,
		    simple_tasks = excluded.simple_tasks,
		    medium_tasks = excluded.medium_tasks,
		    complex_tasks = excluded.complex_tasks,
		    epic_tasks = excluded.epic_tasks,
		    sessions_count = excluded.sessions_count,
		    total_session_duration = excluded.total_session_duration,
		    tools_used = excluded.tools_used,
		    subagents_spawned = excluded.subagents_spawned,
		    uptime_percentage = excluded.uptime_percentage,
		    current_streak = excluded.current_streak,
		    longest_streak = excluded.longest_streak,
		    last_active_date = excluded.last_active_date,
		    activity_score = excluded.activity_score,
		    capability_score = excluded.capability_score,
		    complexity_score = excluded.complexity_score,
		    memory_strength = excluded.memory_strength,
		    quality_score = excluded.quality_score,
		    integration_depth = excluded.integration_depth,
		    proactivity_score = excluded.proactivity_score,
		    total_score = excluded.total_score,
		    updated_at = excluded.updated_at
	`,
		stats.AgentID, stats.TasksCompleted, stats.SimpleTasks, stats.MediumTasks,
		stats.ComplexTasks, stats.EpicTasks, stats.SessionsCount, stats.TotalSessionDuration,
		stats.ToolsUsed, stats.SubagentsSpawned, stats.UptimePercentage,
		stats.CurrentStreak, stats.LongestStreak, lastActive,
		stats.ActivityScore, stats.CapabilityScore, stats.ComplexityScore,
		stats.MemoryStrength, stats.QualityScore, stats.IntegrationDepth,
		stats.ProactivityScore, stats.TotalScore, stats.UpdatedAt,
	)

	return err
}

// ListAll returns the stats rows for every agent, keyed by agent id
func (s *StatsStore) ListAll() (map[string]*core.AgentStats, error) {
	rows, err := s.db.conn.Query("SELECT agent_id FROM agent_stats")
	if err != nil {
		return nil, err
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	all := make(map[string]*core.AgentStats, len(ids))
	for _, id := range ids {
		stats, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		all[id] = stats
	}

	return all, nil
}
