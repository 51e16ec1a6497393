package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/agentarena/agentarena/internal/core"
)

// MemoryStore handles the one-row-per-agent memory summary
type MemoryStore struct {
	db *DB
}

// NewMemoryStore creates a new memory store
func NewMemoryStore(db *DB) *MemoryStore {
	return &MemoryStore{db: db}
}

// Upsert writes the memory summary for an agent
func (s *MemoryStore) Upsert(m *core.MemorySummary) error {
	m.UpdatedAt = time.Now().UTC()

	categories, _ := json.Marshal(m.Categories)
	if m.Categories == nil {
		categories = []byte("{}")
	}

	var lastMemory any
	if m.LastMemoryAt != nil {
		lastMemory = *m.LastMemoryAt
	}

	_, err := s.db.conn.Exec(`
		INSERT INTO agent_memory (agent_id, total_memories, depth_days, last_memory_at, categories, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(agent_id) DO UPDATE SET
		    total_memories = excluded.total_memories,
		    depth_days = excluded.depth_days,
		    last_memory_at = excluded.last_memory_at,
		    categories = excluded.categories,
		    updated_at = excluded.updated_at
	`,
		m.AgentID, m.TotalMemories, m.DepthDays, lastMemory,
		string(categories), m.UpdatedAt,
	)

	return err
}

// Get returns the memory summary for an agent, or an empty summary if the
// agent never reported memory
func (s *MemoryStore) Get(agentID string) (*core.MemorySummary, error) {
	m := &core.MemorySummary{}
	var lastMemory sql.NullTime
	var categories string

	err := s.db.conn.QueryRow(`
		SELECT agent_id, total_memories, depth_days, last_memory_at, categories, updated_at
		FROM agent_memory WHERE agent_id = ?
	`, agentID).Scan(
		&m.AgentID, &m.TotalMemories, &m.DepthDays, &lastMemory, &categories, &m.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return &core.MemorySummary{AgentID: agentID}, nil
	}
	if err != nil {
		return nil, err
	}

	if lastMemory.Valid {
		t := lastMemory.Time
		m.LastMemoryAt = &t
	}
	json.Unmarshal([]byte(categories), &m.Categories)

	return m, nil
}
