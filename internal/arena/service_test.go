package arena

import (
	"errors"
	"testing"
	"time"

	"github.com/agentarena/agentarena/internal/core"
	"github.com/agentarena/agentarena/internal/leaderboard"
	"github.com/agentarena/agentarena/internal/storage"
)

func testService(t *testing.T) *Service {
	t.Helper()

	db, err := storage.Open(storage.Config{InMemory: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewService(db)
}

func connectAgent(t *testing.T, s *Service, name string) *core.Agent {
	t.Helper()

	res, err := s.Connect(name, "claude-code")
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	return res.Agent
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestConnect_IssuesUsableKey(t *testing.T) {
	s := testService(t)

	res, err := s.Connect("scout", "claude-code")
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if res.APIKey == "" {
		t.Fatal("expected a plaintext API key")
	}

	agent, err := s.Authenticate(res.APIKey)
	if err != nil {
		t.Fatalf("Authenticate with issued key failed: %v", err)
	}
	if agent.ID != res.Agent.ID {
		t.Errorf("authenticated as %s, want %s", agent.ID, res.Agent.ID)
	}
}

func TestConnect_EmptyNameRejected(t *testing.T) {
	s := testService(t)

	if _, err := s.Connect("", "claude-code"); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthenticate_BadKey(t *testing.T) {
	s := testService(t)
	connectAgent(t, s, "scout")

	for _, key := range []string{"", "garbage", "ar_000000000000_bogussecret"} {
		if _, err := s.Authenticate(key); !errors.Is(err, core.ErrUnauthorized) {
			t.Errorf("Authenticate(%q) = %v, want ErrUnauthorized", key, err)
		}
	}
}

func TestRotateKey_OldKeyStopsWorking(t *testing.T) {
	s := testService(t)

	res, err := s.Connect("scout", "claude-code")
	if err != nil {
		t.Fatal(err)
	}

	newKey, err := s.RotateKey(res.Agent.ID)
	if err != nil {
		t.Fatalf("RotateKey failed: %v", err)
	}

	if _, err := s.Authenticate(res.APIKey); !errors.Is(err, core.ErrUnauthorized) {
		t.Errorf("old key still works after rotation: %v", err)
	}
	if _, err := s.Authenticate(newKey); err != nil {
		t.Errorf("new key does not work: %v", err)
	}
}

func TestReportActivities_EpicTask(t *testing.T) {
	s := testService(t)
	agent := connectAgent(t, s, "scout")

	res, err := s.ReportActivities(agent.ID, []ActivityReport{{
		Type:            "task",
		Description:     "rebuilt the deploy pipeline",
		ToolsCount:      intPtr(30),
		DurationMinutes: floatPtr(45),
	}})
	if err != nil {
		t.Fatalf("ReportActivities failed: %v", err)
	}

	if res.PointsEarned != 10 {
		t.Errorf("expected 10 points for an epic task, got %d", res.PointsEarned)
	}
	if res.Stats.TasksCompleted != 1 || res.Stats.EpicTasks != 1 {
		t.Errorf("counters wrong: %+v", res.Stats)
	}
	if res.Stats.CurrentStreak != 1 {
		t.Errorf("expected streak 1, got %d", res.Stats.CurrentStreak)
	}
}

func TestReportActivities_DeclaredComplexityOverridden(t *testing.T) {
	s := testService(t)
	agent := connectAgent(t, s, "scout")

	// Claims epic, but the signals say simple.
	res, err := s.ReportActivities(agent.ID, []ActivityReport{{
		Type:            "task",
		Complexity:      "epic",
		ToolsCount:      intPtr(2),
		DurationMinutes: floatPtr(1),
	}})
	if err != nil {
		t.Fatal(err)
	}

	if res.PointsEarned != 1 {
		t.Errorf("expected the classifier to demote to simple (1 point), got %d", res.PointsEarned)
	}
	if res.Stats.SimpleTasks != 1 || res.Stats.EpicTasks != 0 {
		t.Errorf("counters wrong: %+v", res.Stats)
	}
}

func TestReportActivities_DeclaredComplexityWithoutSignals(t *testing.T) {
	s := testService(t)
	agent := connectAgent(t, s, "scout")

	res, err := s.ReportActivities(agent.ID, []ActivityReport{{
		Type:       "task",
		Complexity: "complex",
	}})
	if err != nil {
		t.Fatal(err)
	}

	if res.PointsEarned != 5 {
		t.Errorf("declared complexity should stand without signals, got %d points", res.PointsEarned)
	}
}

func TestReportActivities_ValidationRejectsBatch(t *testing.T) {
	s := testService(t)
	agent := connectAgent(t, s, "scout")

	tests := []struct {
		name   string
		report ActivityReport
	}{
		{"unknown type", ActivityReport{Type: "party"}},
		{"negative tools", ActivityReport{Type: "task", ToolsCount: intPtr(-1)}},
		{"negative duration", ActivityReport{Type: "task", DurationMinutes: floatPtr(-5)}},
		{"accuracy above one", ActivityReport{Type: "task", Accuracy: floatPtr(1.5)}},
		{"bad complexity", ActivityReport{Type: "task", Complexity: "legendary"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A valid entry in the same batch must not be applied either.
			_, err := s.ReportActivities(agent.ID, []ActivityReport{
				{Type: "task"},
				tt.report,
			})
			if !errors.Is(err, core.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}

			profile, err := s.Profile(agent.ID)
			if err != nil {
				t.Fatal(err)
			}
			if profile.Stats.TasksCompleted != 0 {
				t.Errorf("rejected batch still moved counters: %+v", profile.Stats)
			}
		})
	}
}

func TestReportActivities_StreakAdvancesOncePerDay(t *testing.T) {
	s := testService(t)
	agent := connectAgent(t, s, "scout")

	day := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }

	report := []ActivityReport{{Type: "task"}}

	for i := 0; i < 3; i++ {
		if _, err := s.ReportActivities(agent.ID, report); err != nil {
			t.Fatal(err)
		}
	}

	res, err := s.ReportActivities(agent.ID, report)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.CurrentStreak != 1 {
		t.Errorf("same-day reports should keep streak at 1, got %d", res.Stats.CurrentStreak)
	}

	day = day.Add(24 * time.Hour)
	res, err = s.ReportActivities(agent.ID, report)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.CurrentStreak != 2 {
		t.Errorf("next-day report should advance streak to 2, got %d", res.Stats.CurrentStreak)
	}

	day = day.Add(72 * time.Hour)
	res, err = s.ReportActivities(agent.ID, report)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.CurrentStreak != 1 {
		t.Errorf("gap should reset streak to 1, got %d", res.Stats.CurrentStreak)
	}
	if res.Stats.LongestStreak != 2 {
		t.Errorf("longest streak should survive the reset, got %d", res.Stats.LongestStreak)
	}
}

func TestReportActivities_UnlocksFirstTask(t *testing.T) {
	s := testService(t)
	agent := connectAgent(t, s, "scout")

	res, err := s.ReportActivities(agent.ID, []ActivityReport{{Type: "task"}})
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, a := range res.NewlyUnlocked {
		if a.ID == "first-task" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected first-task unlock, got %v", res.NewlyUnlocked)
	}

	// Achievement points must land in the persisted total:
	// 1 simple task + streak 1*5 + first-task 10.
	if res.Stats.TotalScore != 1+5+10 {
		t.Errorf("expected total score 16, got %d", res.Stats.TotalScore)
	}

	// Second report must not unlock it again.
	res, err = s.ReportActivities(agent.ID, []ActivityReport{{Type: "task"}})
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range res.NewlyUnlocked {
		if a.ID == "first-task" {
			t.Error("first-task unlocked twice")
		}
	}
}

func TestReportActivities_NonTaskCounters(t *testing.T) {
	s := testService(t)
	agent := connectAgent(t, s, "scout")

	res, err := s.ReportActivities(agent.ID, []ActivityReport{
		{Type: "session_start"},
		{Type: "tool_use", ToolsCount: intPtr(7)},
		{Type: "subagent", Metadata: map[string]any{"subagents_spawned": float64(3)}},
		{Type: "session_end", DurationMinutes: floatPtr(42.5)},
	})
	if err != nil {
		t.Fatal(err)
	}

	st := res.Stats
	if st.SessionsCount != 1 || st.ToolsUsed != 7 || st.SubagentsSpawned != 3 {
		t.Errorf("counters wrong: %+v", st)
	}
	if st.TotalSessionDuration != 42.5 {
		t.Errorf("expected session duration 42.5, got %v", st.TotalSessionDuration)
	}
	if res.PointsEarned != 0 {
		t.Errorf("non-task activities must earn zero points, got %d", res.PointsEarned)
	}
}

func TestReportSkills_CapabilityAndPruning(t *testing.T) {
	s := testService(t)
	agent := connectAgent(t, s, "scout")

	res, err := s.ReportSkills(agent.ID, []SkillReport{
		{Name: "web-search", Category: "research"},
		{Name: "refactor", Category: "coding"},
		{Name: "mystery", Category: "underwater-basket-weaving"},
	}, false)
	if err != nil {
		t.Fatalf("ReportSkills failed: %v", err)
	}
	if res.Stats.CapabilityScore != 15 {
		t.Errorf("expected capability 15 for 3 skills, got %d", res.Stats.CapabilityScore)
	}

	// Authoritative sync drops everything unlisted.
	res, err = s.ReportSkills(agent.ID, []SkillReport{
		{Name: "refactor", Category: "coding"},
	}, true)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.CapabilityScore != 5 {
		t.Errorf("expected capability 5 after pruning, got %d", res.Stats.CapabilityScore)
	}

	profile, err := s.Profile(agent.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(profile.Skills) != 1 || profile.Skills[0].Name != "refactor" {
		t.Errorf("pruning left wrong skills: %+v", profile.Skills)
	}
}

func TestReportSkills_UnknownCategoryNormalized(t *testing.T) {
	s := testService(t)
	agent := connectAgent(t, s, "scout")

	if _, err := s.ReportSkills(agent.ID, []SkillReport{
		{Name: "mystery", Category: "underwater-basket-weaving"},
	}, false); err != nil {
		t.Fatal(err)
	}

	profile, err := s.Profile(agent.ID)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Skills[0].Category != "other" {
		t.Errorf("expected category other, got %s", profile.Skills[0].Category)
	}
}

func TestReportMemory_Validation(t *testing.T) {
	s := testService(t)
	agent := connectAgent(t, s, "scout")

	if _, err := s.ReportMemory(agent.ID, MemoryReport{TotalMemories: -1}); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative memories, got %v", err)
	}
	if _, err := s.ReportMemory(agent.ID, MemoryReport{DepthDays: -1}); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative depth, got %v", err)
	}
}

func TestReportMemory_Scoring(t *testing.T) {
	s := testService(t)
	agent := connectAgent(t, s, "scout")

	recent := s.now().UTC().Add(-1 * time.Hour)
	res, err := s.ReportMemory(agent.ID, MemoryReport{
		TotalMemories: 200,
		DepthDays:     100,
		LastMemoryAt:  &recent,
		Categories:    map[string]int{"facts": 120, "people": 50, "projects": 30},
	})
	if err != nil {
		t.Fatal(err)
	}

	// 20 volume + 5 depth + 6 categories + 5 recency
	if res.Stats.MemoryStrength != 36 {
		t.Errorf("expected memory strength 36, got %d", res.Stats.MemoryStrength)
	}
	if res.Stats.QualityScore != 36 {
		t.Errorf("quality should mirror memory, got %d", res.Stats.QualityScore)
	}
}

func TestReportIntegrations_DepthAndConnectedAt(t *testing.T) {
	s := testService(t)
	agent := connectAgent(t, s, "scout")

	res, err := s.ReportIntegrations(agent.ID, []IntegrationReport{
		{Name: "github", Connected: true},
		{Name: "slack", Connected: true},
		{Name: "jira", Connected: false},
	}, false)
	if err != nil {
		t.Fatalf("ReportIntegrations failed: %v", err)
	}

	if res.Stats.IntegrationDepth != 20 {
		t.Errorf("expected depth 20 for 2 connected, got %d", res.Stats.IntegrationDepth)
	}

	profile, err := s.Profile(agent.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range profile.Integrations {
		if i.Connected && i.ConnectedAt == nil {
			t.Errorf("connected integration %s missing connected_at", i.Name)
		}
		if !i.Connected && i.ConnectedAt != nil {
			t.Errorf("disconnected integration %s has connected_at", i.Name)
		}
	}
}

func TestHeartbeat_EarnsNothing(t *testing.T) {
	s := testService(t)
	agent := connectAgent(t, s, "scout")

	if _, err := s.Heartbeat(agent.ID, map[string]any{"version": "1.2.0"}); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}

	profile, err := s.Profile(agent.ID)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Stats.TotalScore != 0 {
		t.Errorf("heartbeat changed the score: %d", profile.Stats.TotalScore)
	}
	if !profile.Online {
		t.Error("agent should be online after a heartbeat")
	}
}

func TestDisconnect_GoesOffline(t *testing.T) {
	s := testService(t)
	agent := connectAgent(t, s, "scout")

	if err := s.Disconnect(agent.ID); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}

	profile, err := s.Profile(agent.ID)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Online {
		t.Error("agent should be offline after disconnect")
	}
	if profile.Agent.Status != core.StatusDisconnected {
		t.Errorf("expected disconnected status, got %s", profile.Agent.Status)
	}
}

func TestProfile_NotFound(t *testing.T) {
	s := testService(t)

	if _, err := s.Profile("nope"); !errors.Is(err, core.ErrAgentNotFound) {
		t.Errorf("expected ErrAgentNotFound, got %v", err)
	}
}

func TestLeaderboard_OrdersAndRanks(t *testing.T) {
	s := testService(t)

	slow := connectAgent(t, s, "slow")
	fast := connectAgent(t, s, "fast")

	if _, err := s.ReportActivities(slow.ID, []ActivityReport{{Type: "task"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ReportActivities(fast.ID, []ActivityReport{
		{Type: "task", ToolsCount: intPtr(30)},
		{Type: "task", ToolsCount: intPtr(12)},
	}); err != nil {
		t.Fatal(err)
	}

	entries, err := s.Leaderboard(leaderboard.TabOverall, 10)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "fast" || entries[0].Rank != 1 {
		t.Errorf("expected fast at rank 1, got %+v", entries[0])
	}
	if entries[1].Rank != 2 {
		t.Errorf("expected rank 2, got %d", entries[1].Rank)
	}
	if entries[0].Trend != core.TrendUp {
		t.Errorf("fast earned 15 points in 24h, expected up trend, got %s", entries[0].Trend)
	}
}

func TestLeaderboard_UnknownTab(t *testing.T) {
	s := testService(t)

	if _, err := s.Leaderboard(leaderboard.Tab("vibes"), 10); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
