package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/agentarena/agentarena/internal/core"
)

// AgentStore handles agent persistence
type AgentStore struct {
	db *DB
}

// NewAgentStore creates a new agent store
func NewAgentStore(db *DB) *AgentStore {
	return &AgentStore{db: db}
}

// Credential is the stored credential material for one agent
type Credential struct {
	KeyID string
	Hash  string
	Salt  string
}

// Create inserts a new agent with its credential
func (s *AgentStore) Create(agent *core.Agent, cred Credential) error {
	now := time.Now().UTC()
	agent.CreatedAt = now
	agent.UpdatedAt = now

	_, err := s.db.conn.Exec(`
		INSERT INTO agents (id, name, platform, status, key_id, key_hash, key_salt, last_seen_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		agent.ID, agent.Name, agent.Platform, agent.Status,
		cred.KeyID, cred.Hash, cred.Salt,
		agent.LastSeenAt, agent.CreatedAt, agent.UpdatedAt,
	)

	return err
}

// GetByID returns an agent by ID
func (s *AgentStore) GetByID(id string) (*core.Agent, error) {
	row := s.db.conn.QueryRow(`
		SELECT id, name, platform, status, last_seen_at, created_at, updated_at
		FROM agents WHERE id = ?
	`, id)

	return scanAgent(row)
}

// GetByKeyID returns the agent owning a key id together with its stored
// credential, for bearer-key verification
func (s *AgentStore) GetByKeyID(keyID string) (*core.Agent, *Credential, error) {
	agent := &core.Agent{}
	cred := &Credential{}

	err := s.db.conn.QueryRow(`
		SELECT id, name, platform, status, last_seen_at, created_at, updated_at,
		       key_id, key_hash, key_salt
		FROM agents WHERE key_id = ?
	`, keyID).Scan(
		&agent.ID, &agent.Name, &agent.Platform, &agent.Status,
		&agent.LastSeenAt, &agent.CreatedAt, &agent.UpdatedAt,
		&cred.KeyID, &cred.Hash, &cred.Salt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, core.ErrAgentNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	return agent, cred, nil
}

// UpdateStatus sets the connection status and last-seen timestamp
func (s *AgentStore) UpdateStatus(id string, status core.AgentStatus, lastSeen time.Time) error {
	res, err := s.db.conn.Exec(`
		UPDATE agents SET status = ?, last_seen_at = ?, updated_at = ? WHERE id = ?
	`, status, lastSeen, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// RotateKey replaces the agent's credential. The old key stops working
// immediately because lookup is by key id.
func (s *AgentStore) RotateKey(id string, cred Credential) error {
	res, err := s.db.conn.Exec(`
		UPDATE agents SET key_id = ?, key_hash = ?, key_salt = ?, updated_at = ? WHERE id = ?
	`, cred.KeyID, cred.Hash, cred.Salt, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// List returns all agents
func (s *AgentStore) List() ([]*core.Agent, error) {
	rows, err := s.db.conn.Query(`
		SELECT id, name, platform, status, last_seen_at, created_at, updated_at
		FROM agents ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []*core.Agent
	for rows.Next() {
		agent := &core.Agent{}
		if err := rows.Scan(
			&agent.ID, &agent.Name, &agent.Platform, &agent.Status,
			&agent.LastSeenAt, &agent.CreatedAt, &agent.UpdatedAt,
		); err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}

	return agents, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgent(row rowScanner) (*core.Agent, error) {
	agent := &core.Agent{}
	err := row.Scan(
		&agent.ID, &agent.Name, &agent.Platform, &agent.Status,
		&agent.LastSeenAt, &agent.CreatedAt, &agent.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrAgentNotFound
	}
	if err != nil {
		return nil, err
	}
	return agent, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrAgentNotFound
	}
	return nil
}
