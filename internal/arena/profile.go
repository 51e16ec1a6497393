package arena

import (
	"time"

	"github.com/agentarena/agentarena/internal/achievements"
	"github.com/agentarena/agentarena/internal/core"
	"github.com/agentarena/agentarena/internal/leaderboard"
	"github.com/agentarena/agentarena/internal/scoring"
)

const recentActivityLimit = 20

// AchievementStatus is one catalog entry with the agent's unlock state
type AchievementStatus struct {
	core.Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// Profile is the full read-side view of one agent
type Profile struct {
	Agent         *core.Agent           `json:"agent"`
	Stats         *core.AgentStats      `json:"stats"`
	Level         core.Level            `json:"level"`
	Online        bool                  `json:"online"`
	Radar         map[string]int        `json:"radar"`
	TaskBreakdown map[string]int        `json:"task_breakdown"`
	Skills        []*core.Skill         `json:"skills"`
	Integrations  []*core.Integration   `json:"integrations"`
	Memory        *core.MemorySummary   `json:"memory"`
	Achievements  []AchievementStatus   `json:"achievements"`
	Recent        []*core.ActivityEntry `json:"recent_activity"`
}

// Profile assembles the agent's full view from the stores. Read-only; no
// score is recomputed here.
func (s *Service) Profile(agentID string) (*Profile, error) {
	agent, err := s.agents.GetByID(agentID)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.Get(agentID)
	if err != nil {
		return nil, err
	}
	skills, err := s.skills.List(agentID)
	if err != nil {
		return nil, err
	}
	integrations, err := s.integrations.List(agentID)
	if err != nil {
		return nil, err
	}
	memory, err := s.memory.Get(agentID)
	if err != nil {
		return nil, err
	}
	unlocks, err := s.unlocks.List(agentID)
	if err != nil {
		return nil, err
	}
	recent, err := s.activity.Recent(agentID, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	unlockedAt := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.AchievementID] = u.UnlockedAt
	}

	catalog := achievements.Catalog()
	statuses := make([]AchievementStatus, 0, len(catalog))
	for _, rule := range catalog {
		status := AchievementStatus{Achievement: rule.Achievement}
		if at, ok := unlockedAt[rule.ID]; ok {
			status.Unlocked = true
			t := at
			status.UnlockedAt = &t
		}
		statuses = append(statuses, status)
	}

	return &Profile{
		Agent:  agent,
		Stats:  stats,
		Level:  scoring.LevelFor(stats.TotalScore),
		Online: leaderboard.IsOnline(agent.Status, agent.LastSeenAt, s.now().UTC()),
		Radar: map[string]int{
			"activity":    stats.ActivityScore,
			"capability":  stats.CapabilityScore,
			"complexity":  stats.ComplexityScore,
			"memory":      stats.MemoryStrength,
			"quality":     stats.QualityScore,
			"proactivity": stats.ProactivityScore,
		},
		TaskBreakdown: map[string]int{
			"simple":  stats.SimpleTasks,
			"medium":  stats.MediumTasks,
			"complex": stats.ComplexTasks,
			"epic":    stats.EpicTasks,
		},
		Skills:       skills,
		Integrations: integrations,
		Memory:       memory,
		Achievements: statuses,
		Recent:       recent,
	}, nil
}

// Leaderboard ranks every agent on the requested tab
func (s *Service) Leaderboard(tab leaderboard.Tab, limit int) ([]core.LeaderboardEntry, error) {
	if !tab.Valid() {
		return nil, core.Invalid("tab", "unknown leaderboard tab")
	}

	agents, err := s.agents.List()
	if err != nil {
		return nil, err
	}
	stats, err := s.stats.ListAll()
	if err != nil {
		return nil, err
	}
	skillCounts, err := s.skills.CountsAll()
	if err != nil {
		return nil, err
	}
	integrationCounts, err := s.integrations.CountsAll()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	points24h, err := s.activity.PointsSinceAll(now.Add(-24 * time.Hour))
	if err != nil {
		return nil, err
	}

	entries := make([]core.LeaderboardEntry, 0, len(agents))
	for _, agent := range agents {
		st := stats[agent.ID]
		if st == nil {
			st = &core.AgentStats{AgentID: agent.ID}
		}
		entries = append(entries, core.LeaderboardEntry{
			AgentID:          agent.ID,
			Name:             agent.Name,
			Platform:         agent.Platform,
			Level:            scoring.LevelFor(st.TotalScore),
			TotalScore:       st.TotalScore,
			TasksCompleted:   st.TasksCompleted,
			CurrentStreak:    st.CurrentStreak,
			ComplexityScore:  st.ComplexityScore,
			SkillCount:       skillCounts[agent.ID],
			IntegrationCount: integrationCounts[agent.ID],
			Online:           leaderboard.IsOnline(agent.Status, agent.LastSeenAt, now),
			Points24h:        points24h[agent.ID],
		})
	}

	return leaderboard.Rank(entries, tab, limit), nil
}
