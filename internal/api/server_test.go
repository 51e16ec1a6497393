package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agentarena/agentarena/internal/arena"
	"github.com/agentarena/agentarena/internal/config"
	"github.com/agentarena/agentarena/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := storage.Open(storage.Config{InMemory: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return New(config.Default(), arena.NewService(db))
}

func doJSON(t *testing.T, s *Server, method, path, apiKey string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

// connectTestAgent registers an agent over the API and returns its key
func connectTestAgent(t *testing.T, s *Server, name string) string {
	t.Helper()

	rec := doJSON(t, s, http.MethodPost, "/api/v1/agents/connect", "", map[string]string{
		"name":     name,
		"platform": "claude-code",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("connect returned %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		APIKey string `json:"api_key"`
	}
	decode(t, rec, &result)
	if result.APIKey == "" {
		t.Fatal("connect returned no API key")
	}
	return result.APIKey
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestConnect_RequiresName(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/agents/connect", "", map[string]string{
		"platform": "claude-code",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuth_MissingAndBadKey(t *testing.T) {
	s := newTestServer(t)
	connectTestAgent(t, s, "scout")

	rec := doJSON(t, s, http.MethodGet, "/api/v1/profile", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/profile", "ar_bogus_key", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: expected 401, got %d", rec.Code)
	}
}

func TestReportActivity_RoundTrip(t *testing.T) {
	s := newTestServer(t)
	key := connectTestAgent(t, s, "scout")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/activity", key, map[string]any{
		"activities": []map[string]any{
			{"type": "task", "tools_count": 30, "description": "big refactor"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		PointsEarned int `json:"points_earned"`
		Stats        struct {
			EpicTasks int `json:"epic_tasks"`
		} `json:"stats"`
	}
	decode(t, rec, &result)

	if result.PointsEarned != 10 || result.Stats.EpicTasks != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestReportActivity_ValidationError(t *testing.T) {
	s := newTestServer(t)
	key := connectTestAgent(t, s, "scout")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/activity", key, map[string]any{
		"activities": []map[string]any{
			{"type": "task", "tools_count": -3},
		},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSkillsAndProfile(t *testing.T) {
	s := newTestServer(t)
	key := connectTestAgent(t, s, "scout")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/skills", key, map[string]any{
		"skills": []map[string]any{
			{"name": "web-search", "category": "research"},
			{"name": "refactor", "category": "coding"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("skills report returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/profile", key, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile returned %d", rec.Code)
	}

	var profile struct {
		Stats struct {
			CapabilityScore int `json:"capability_score"`
		} `json:"stats"`
		Skills []struct {
			Name string `json:"name"`
		} `json:"skills"`
	}
	decode(t, rec, &profile)

	if profile.Stats.CapabilityScore != 10 {
		t.Errorf("expected capability 10, got %d", profile.Stats.CapabilityScore)
	}
	if len(profile.Skills) != 2 {
		t.Errorf("expected 2 skills, got %d", len(profile.Skills))
	}
}

func TestLeaderboard_PublicAndLimited(t *testing.T) {
	s := newTestServer(t)
	key := connectTestAgent(t, s, "scout")
	connectTestAgent(t, s, "rival")

	doJSON(t, s, http.MethodPost, "/api/v1/activity", key, map[string]any{
		"activities": []map[string]any{{"type": "task"}},
	})

	rec := doJSON(t, s, http.MethodGet, "/api/v1/leaderboard?tab=overall&limit=1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard returned %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Tab     string `json:"tab"`
		Entries []struct {
			Rank int    `json:"rank"`
			Name string `json:"name"`
		} `json:"entries"`
	}
	decode(t, rec, &result)

	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry with limit=1, got %d", len(result.Entries))
	}
	if result.Entries[0].Name != "scout" || result.Entries[0].Rank != 1 {
		t.Errorf("expected scout at rank 1, got %+v", result.Entries[0])
	}
}

func TestLeaderboard_BadInputs(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/leaderboard?tab=vibes", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown tab: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/leaderboard?limit=zero", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit: expected 400, got %d", rec.Code)
	}
}

func TestRotateKey_OldKeyRejected(t *testing.T) {
	s := newTestServer(t)
	key := connectTestAgent(t, s, "scout")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/agents/rotate-key", key, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("rotate returned %d: %s", rec.Code, rec.Body.String())
	}

	var rotated struct {
		APIKey string `json:"api_key"`
	}
	decode(t, rec, &rotated)

	if rec := doJSON(t, s, http.MethodGet, "/api/v1/profile", key, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("old key: expected 401, got %d", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodGet, "/api/v1/profile", rotated.APIKey, nil); rec.Code != http.StatusOK {
		t.Errorf("new key: expected 200, got %d", rec.Code)
	}
}

func TestDisconnectAndHeartbeat(t *testing.T) {
	s := newTestServer(t)
	key := connectTestAgent(t, s, "scout")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/agents/disconnect", key, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("disconnect returned %d", rec.Code)
	}

	// The key stays valid after disconnect; a heartbeat brings the agent back.
	rec = doJSON(t, s, http.MethodPost, "/api/v1/heartbeat", key, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("heartbeat returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/profile", key, nil)
	var profile struct {
		Online bool `json:"online"`
	}
	decode(t, rec, &profile)
	if !profile.Online {
		t.Error("agent should be online after heartbeat")
	}
}
