package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentarena/agentarena/internal/core"
)

// SkillStore handles per-agent skills, keyed by (agent, name)
type SkillStore struct {
	db *DB
}

// NewSkillStore creates a new skill store
func NewSkillStore(db *DB) *SkillStore {
	return &SkillStore{db: db}
}

// Upsert inserts or updates a skill by name
func (s *SkillStore) Upsert(skill *core.Skill) error {
	if skill.InstalledAt.IsZero() {
		skill.InstalledAt = time.Now().UTC()
	}

	_, err := s.db.conn.Exec(`
		INSERT INTO agent_skills (agent_id, name, category, icon, description, enabled, installed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(agent_id, name) DO UPDATE SET
		    category = excluded.category,
		    icon = excluded.icon,
		    description = excluded.description,
		    enabled = excluded.enabled
	`,
		skill.AgentID, skill.Name, skill.Category, skill.Icon,
		skill.Description, skill.Enabled, skill.InstalledAt,
	)

	return err
}

// DeleteUnlisted removes every skill of the agent whose name is not in keep.
// Used when a report carries remove_unlisted.
func (s *SkillStore) DeleteUnlisted(agentID string, keep []string) error {
	if len(keep) == 0 {
		_, err := s.db.conn.Exec("DELETE FROM agent_skills WHERE agent_id = ?", agentID)
		return err
	}

	placeholders := strings.Repeat("?,", len(keep)-1) + "?"
	args := make([]any, 0, len(keep)+1)
	args = append(args, agentID)
	for _, name := range keep {
		args = append(args, name)
	}

	query := fmt.Sprintf(
		"DELETE FROM agent_skills WHERE agent_id = ? AND name NOT IN (%s)", placeholders)
	_, err := s.db.conn.Exec(query, args...)
	return err
}

// List returns all skills of an agent in name order
func (s *SkillStore) List(agentID string) ([]*core.Skill, error) {
	rows, err := s.db.conn.Query(`
		SELECT agent_id, name, category, icon, description, enabled, installed_at
		FROM agent_skills WHERE agent_id = ? ORDER BY name ASC
	`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []*core.Skill
	for rows.Next() {
		skill := &core.Skill{}
		if err := rows.Scan(
			&skill.AgentID, &skill.Name, &skill.Category, &skill.Icon,
			&skill.Description, &skill.Enabled, &skill.InstalledAt,
		); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}

	return skills, rows.Err()
}

// CountEnabled returns the number of enabled skills for one agent
func (s *SkillStore) CountEnabled(agentID string) (int, error) {
	var count int
	err := s.db.conn.QueryRow(`
		SELECT COUNT(*) FROM agent_skills WHERE agent_id = ? AND enabled = 1
	`, agentID).Scan(&count)
	return count, err
}

// CountsAll returns enabled-skill counts per agent
func (s *SkillStore) CountsAll() (map[string]int, error) {
	rows, err := s.db.conn.Query(`
		SELECT agent_id, COUNT(*) FROM agent_skills WHERE enabled = 1 GROUP BY agent_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		counts[id] = count
	}

	return counts, rows.Err()
}
