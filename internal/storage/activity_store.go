package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/agentarena/agentarena/internal/core"
)

// ActivityStore handles the append-only activity log
type ActivityStore struct {
	db *DB
}

// NewActivityStore creates a new activity store
func NewActivityStore(db *DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Insert appends one log entry. Entries are never updated or deleted.
func (s *ActivityStore) Insert(entry *core.ActivityEntry) error {
	metadata, _ := json.Marshal(entry.Metadata)
	if entry.Metadata == nil {
		metadata = []byte("{}")
	}

	var complexity any
	if entry.Complexity != "" {
		complexity = string(entry.Complexity)
	}

	_, err := s.db.conn.Exec(`
		INSERT INTO activity_log (id, agent_id, type, complexity, description, metadata, points, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID, entry.AgentID, entry.Type, complexity,
		entry.Description, string(metadata), entry.Points, entry.CreatedAt,
	)

	return err
}

// Recent returns the newest entries for an agent
func (s *ActivityStore) Recent(agentID string, limit int) ([]*core.ActivityEntry, error) {
	rows, err := s.db.conn.Query(`
		SELECT id, agent_id, type, complexity, description, metadata, points, created_at
		FROM activity_log
		WHERE agent_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, agentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*core.ActivityEntry
	for rows.Next() {
		entry := &core.ActivityEntry{}
		var complexity sql.NullString
		var metadata string

		if err := rows.Scan(
			&entry.ID, &entry.AgentID, &entry.Type, &complexity,
			&entry.Description, &metadata, &entry.Points, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}

		entry.Complexity = core.Complexity(complexity.String)
		json.Unmarshal([]byte(metadata), &entry.Metadata)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// PointsSince sums the points one agent earned after the cutoff
func (s *ActivityStore) PointsSince(agentID string, since time.Time) (int, error) {
	var points int
	err := s.db.conn.QueryRow(`
		SELECT COALESCE(SUM(points), 0) FROM activity_log
		WHERE agent_id = ? AND created_at >= ?
	`, agentID, since).Scan(&points)
	return points, err
}

// PointsSinceAll sums points per agent after the cutoff, for leaderboard
// trend derivation in one query
func (s *ActivityStore) PointsSinceAll(since time.Time) (map[string]int, error) {
	rows, err := s.db.conn.Query(`
		SELECT agent_id, COALESCE(SUM(points), 0) FROM activity_log
		WHERE created_at >= ?
		GROUP BY agent_id
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[string]int)
	for rows.Next() {
		var id string
		var points int
		if err := rows.Scan(&id, &points); err != nil {
			return nil, err
		}
		sums[id] = points
	}

	return sums, rows.Err()
}
