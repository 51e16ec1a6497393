// Package arena is the reporting and scoring engine. It ties the pure
// scoring rules to the storage layer: every inbound report flows through
// here, and every derived score is recomputed here before it is persisted.
package arena

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agentarena/agentarena/internal/auth"
	"github.com/agentarena/agentarena/internal/core"
	"github.com/agentarena/agentarena/internal/logging"
	"github.com/agentarena/agentarena/internal/storage"
)

// Service is the reporting engine. Handlers are stateless; all durable
// state lives in the stores, so concurrent requests for different agents
// never contend in-process.
type Service struct {
	agents       *storage.AgentStore
	stats        *storage.StatsStore
	activity     *storage.ActivityStore
	skills       *storage.SkillStore
	integrations *storage.IntegrationStore
	memory       *storage.MemoryStore
	unlocks      *storage.AchievementStore

	now func() time.Time // injectable clock
}

// NewService creates the engine over an opened database
func NewService(db *storage.DB) *Service {
	return &Service{
		agents:       storage.NewAgentStore(db),
		stats:        storage.NewStatsStore(db),
		activity:     storage.NewActivityStore(db),
		skills:       storage.NewSkillStore(db),
		integrations: storage.NewIntegrationStore(db),
		memory:       storage.NewMemoryStore(db),
		unlocks:      storage.NewAchievementStore(db),
		now:          time.Now,
	}
}

// ConnectResult is returned once, at connect or key rotation. The plaintext
// key is never stored and never shown again.
type ConnectResult struct {
	Agent  *core.Agent `json:"agent"`
	APIKey string      `json:"api_key"`
}

// Connect registers a new agent and issues its API key
func (s *Service) Connect(name, platform string) (*ConnectResult, error) {
	if name == "" {
		return nil, core.Invalid("name", "must not be empty")
	}

	key, err := auth.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to issue key: %w", err)
	}

	agent := &core.Agent{
		ID:         uuid.NewString(),
		Name:       name,
		Platform:   platform,
		Status:     core.StatusConnected,
		LastSeenAt: s.now().UTC(),
	}

	cred := storage.Credential{KeyID: key.KeyID, Hash: key.Hash, Salt: key.Salt}
	if err := s.agents.Create(agent, cred); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	logging.WithField("agent", agent.ID).Info("agent connected: %s", name)

	return &ConnectResult{Agent: agent, APIKey: key.Plaintext}, nil
}

// Authenticate resolves a bearer key to its agent. Any failure collapses
// to ErrUnauthorized; callers never learn whether the key id existed.
func (s *Service) Authenticate(bearer string) (*core.Agent, error) {
	keyID, secret, err := auth.Parse(bearer)
	if err != nil {
		return nil, core.ErrUnauthorized
	}

	agent, cred, err := s.agents.GetByKeyID(keyID)
	if err != nil {
		return nil, core.ErrUnauthorized
	}

	if !auth.Verify(secret, cred.Hash, cred.Salt) {
		return nil, core.ErrUnauthorized
	}

	return agent, nil
}

// RotateKey replaces the agent's API key and returns the new plaintext once
func (s *Service) RotateKey(agentID string) (string, error) {
	key, err := auth.Generate()
	if err != nil {
		return "", fmt.Errorf("failed to issue key: %w", err)
	}

	cred := storage.Credential{KeyID: key.KeyID, Hash: key.Hash, Salt: key.Salt}
	if err := s.agents.RotateKey(agentID, cred); err != nil {
		return "", err
	}

	logging.WithField("agent", agentID).Info("API key rotated")

	return key.Plaintext, nil
}

// Disconnect flips the agent offline. Nothing is deleted.
func (s *Service) Disconnect(agentID string) error {
	return s.agents.UpdateStatus(agentID, core.StatusDisconnected, s.now().UTC())
}

// HeartbeatResult echoes the acknowledged heartbeat
type HeartbeatResult struct {
	AgentID   string    `json:"agent_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Heartbeat marks the agent connected and appends a zero-point log entry
func (s *Service) Heartbeat(agentID string, metadata map[string]any) (*HeartbeatResult, error) {
	now := s.now().UTC()

	if err := s.agents.UpdateStatus(agentID, core.StatusConnected, now); err != nil {
		return nil, err
	}

	entry := &core.ActivityEntry{
		ID:        uuid.NewString(),
		AgentID:   agentID,
		Type:      core.ActivityHeartbeat,
		Metadata:  metadata,
		CreatedAt: now,
	}
	if err := s.activity.Insert(entry); err != nil {
		return nil, fmt.Errorf("failed to log heartbeat: %w", err)
	}

	return &HeartbeatResult{AgentID: agentID, Timestamp: now}, nil
}
