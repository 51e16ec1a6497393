package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentarena/agentarena/internal/core"
)

// IntegrationStore handles per-agent integrations, keyed by (agent, name)
type IntegrationStore struct {
	db *DB
}

// NewIntegrationStore creates a new integration store
func NewIntegrationStore(db *DB) *IntegrationStore {
	return &IntegrationStore{db: db}
}

// Upsert inserts or updates an integration by name
func (s *IntegrationStore) Upsert(integration *core.Integration) error {
	config, _ := json.Marshal(integration.Config)
	if integration.Config == nil {
		config = []byte("{}")
	}

	var connectedAt any
	if integration.ConnectedAt != nil {
		connectedAt = *integration.ConnectedAt
	}

	_, err := s.db.conn.Exec(`
		INSERT INTO agent_integrations (agent_id, name, connected, config, connected_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(agent_id, name) DO UPDATE SET
		    connected = excluded.connected,
		    config = excluded.config,
		    connected_at = excluded.connected_at
	`,
		integration.AgentID, integration.Name, integration.Connected,
		string(config), connectedAt,
	)

	return err
}

// DeleteUnlisted removes every integration of the agent not named in keep
func (s *IntegrationStore) DeleteUnlisted(agentID string, keep []string) error {
	if len(keep) == 0 {
		_, err := s.db.conn.Exec("DELETE FROM agent_integrations WHERE agent_id = ?", agentID)
		return err
	}

	placeholders := strings.Repeat("?,", len(keep)-1) + "?"
	args := make([]any, 0, len(keep)+1)
	args = append(args, agentID)
	for _, name := range keep {
		args = append(args, name)
	}

	query := fmt.Sprintf(
		"DELETE FROM agent_integrations WHERE agent_id = ? AND name NOT IN (%s)", placeholders)
	_, err := s.db.conn.Exec(query, args...)
	return err
}

// List returns all integrations of an agent in name order
func (s *IntegrationStore) List(agentID string) ([]*core.Integration, error) {
	rows, err := s.db.conn.Query(`
		SELECT agent_id, name, connected, config, connected_at
		FROM agent_integrations WHERE agent_id = ? ORDER BY name ASC
	`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var integrations []*core.Integration
	for rows.Next() {
		integration := &core.Integration{}
		var config string
		var connectedAt sql.NullTime

		if err := rows.Scan(
			&integration.AgentID, &integration.Name, &integration.Connected,
			&config, &connectedAt,
		); err != nil {
			return nil, err
		}

		json.Unmarshal([]byte(config), &integration.Config)
		if connectedAt.Valid {
			t := connectedAt.Time
			integration.ConnectedAt = &t
		}
		integrations = append(integrations, integration)
	}

	return integrations, rows.Err()
}

// CountConnected returns the number of connected integrations for one agent
func (s *IntegrationStore) CountConnected(agentID string) (int, error) {
	var count int
	err := s.db.conn.QueryRow(`
		SELECT COUNT(*) FROM agent_integrations WHERE agent_id = ? AND connected = 1
	`, agentID).Scan(&count)
	return count, err
}

// CountsAll returns connected-integration counts per agent
func (s *IntegrationStore) CountsAll() (map[string]int, error) {
	rows, err := s.db.conn.Query(`
		SELECT agent_id, COUNT(*) FROM agent_integrations WHERE connected = 1 GROUP BY agent_id
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
