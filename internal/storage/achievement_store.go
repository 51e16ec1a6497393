package storage

import (
	"time"

	"github.com/agentarena/agentarena/internal/core"
)

// AchievementStore handles achievement unlock records
type AchievementStore struct {
	db *DB
}

// NewAchievementStore creates a new achievement store
func NewAchievementStore(db *DB) *AchievementStore {
	return &AchievementStore{db: db}
}

// Unlock records an achievement for an agent at most once. A concurrent
// duplicate unlock hits the primary key and is reported as
// core.ErrAlreadyUnlocked, which callers treat as success.
func (s *AchievementStore) Unlock(agentID, achievementID string, at time.Time) error {
	res, err := s.db.conn.Exec(`
		INSERT INTO agent_achievements (agent_id, achievement_id, unlocked_at)
		VALUES (?, ?, ?)
		ON CONFLICT(agent_id, achievement_id) DO NOTHING
	`, agentID, achievementID, at)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrAlreadyUnlocked
	}
	return nil
}

// UnlockedIDs returns the set of achievement ids an agent has unlocked
func (s *AchievementStore) UnlockedIDs(agentID string) (map[string]bool, error) {
	rows, err := s.db.conn.Query(`
		SELECT achievement_id FROM agent_achievements WHERE agent_id = ?
	`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}

	return ids, rows.Err()
}

// List returns an agent's unlock records in unlock order
func (s *AchievementStore) List(agentID string) ([]*core.UnlockedAchievement, error) {
	rows, err := s.db.conn.Query(`
		SELECT agent_id, achievement_id, unlocked_at
		FROM agent_achievements WHERE agent_id = ? ORDER BY unlocked_at ASC
	`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var unlocks []*core.UnlockedAchievement
	for rows.Next() {
		u := &core.UnlockedAchievement{}
		if err := rows.Scan(&u.AgentID, &u.AchievementID, &u.UnlockedAt); err != nil {
			return nil, err
		}
		unlocks = append(unlocks, u)
	}

	return unlocks, rows.Err()
}
