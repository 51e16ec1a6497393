package arenatools

import (
	"context"
	"fmt"

	"github.com/agentarena/agentarena/internal/mcp"
)

// envelope is the uniform tool response. Tools never surface transport
// errors as MCP protocol errors; the calling agent reads success instead.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(message string, data any) envelope {
	return envelope{Success: true, Message: message, Data: data}
}

func fail(err error) envelope {
	return envelope{Success: false, Error: err.Error(), Message: "report not recorded"}
}

// Register adds the AgentArena tool set to an MCP server
func Register(s *mcp.Server, client *Client) error {
	tools := []struct {
		def     mcp.Tool
		handler mcp.ToolHandler
	}{
		{
			def: mcp.NewTool("arena.report_activity").
				Description("Report completed work to AgentArena. Each activity earns points based on its classified complexity.").
				Array("activities", "Activity entries. Each has a type (task, session_start, session_end, tool_use, subagent, heartbeat) and optional description, tools_count, duration_minutes, complexity, metadata.", true).
				Build(),
			handler: mcp.WrapJSONHandler(client.reportActivity),
		},
		{
			def: mcp.NewTool("arena.report_skills").
				Description("Sync the agent's installed skills. Capability score is derived from the enabled-skill count.").
				Array("skills", "Skills, each with a name and optional category, icon, description, enabled flag.", true).
				Boolean("remove_unlisted", "Drop server-side skills missing from this report.", false).
				Build(),
			handler: mcp.WrapJSONHandler(client.reportSkills),
		},
		{
			def: mcp.NewTool("arena.report_memory").
				Description("Report the agent's memory snapshot: how much it remembers and how far back.").
				Integer("total_memories", "Total stored memories.", true).
				Integer("depth_days", "Age in days of the oldest memory.", false).
				String("last_memory_at", "RFC 3339 timestamp of the newest memory.", false).
				Object("categories", "Memory counts per category.", false).
				Build(),
			handler: mcp.WrapJSONHandler(client.reportMemory),
		},
		{
			def: mcp.NewTool("arena.report_integrations").
				Description("Sync the agent's external integrations. Integration depth is derived from the connected count.").
				Array("integrations", "Integrations, each with a name, connected flag, and optional config.", true).
				Boolean("remove_unlisted", "Drop server-side integrations missing from this report.", false).
				Build(),
			handler: mcp.WrapJSONHandler(client.reportIntegrations),
		},
		{
			def: mcp.NewTool("arena.heartbeat").
				Description("Tell AgentArena the agent is alive. Earns no points; keeps the online indicator fresh.").
				Object("metadata", "Optional client metadata, e.g. version.", false).
				Build(),
			handler: mcp.WrapJSONHandler(client.heartbeat),
		},
		{
			def: mcp.NewTool("arena.get_profile").
				Description("Fetch the agent's full profile: scores, level, streak, skills, integrations, achievements, recent activity.").
				Build(),
			handler: mcp.WrapJSONHandler(client.getProfile),
		},
		{
			def: mcp.NewTool("arena.get_leaderboard").
				Description("Fetch the public leaderboard.").
				Enum("tab", "Ranking dimension.", []string{"overall", "tasks", "streaks", "complexity"}, false).
				Integer("limit", "Maximum entries to return.", false).
				Build(),
			handler: mcp.WrapJSONHandler(client.getLeaderboard),
		},
	}

	for _, t := range tools {
		if err := s.RegisterTool(t.def, t.handler); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) reportActivity(ctx context.Context, args *mcp.Args) (envelope, error) {
	var body struct {
		Activities []map[string]any `json:"activities"`
	}
	if err := args.Unmarshal(&body); err != nil {
		return fail(err), nil
	}

	var result map[string]any
	if err := c.post(ctx, "/activity", body, &result); err != nil {
		return fail(err), nil
	}

	points, _ := result["points_earned"].(float64)
	return ok(fmt.Sprintf("recorded %d activities, earned %d points", len(body.Activities), int(points)), result), nil
}

func (c *Client) reportSkills(ctx context.Context, args *mcp.Args) (envelope, error) {
	var body struct {
		Skills         []map[string]any `json:"skills"`
		RemoveUnlisted bool             `json:"remove_unlisted"`
	}
	if err := args.Unmarshal(&body); err != nil {
		return fail(err), nil
	}

	var result map[string]any
	if err := c.post(ctx, "/skills", body, &result); err != nil {
		return fail(err), nil
	}

	return ok(fmt.Sprintf("synced %d skills", len(body.Skills)), result), nil
}

func (c *Client) reportMemory(ctx context.Context, args *mcp.Args) (envelope, error) {
	var body map[string]any
	if err := args.Unmarshal(&body); err != nil {
		return fail(err), nil
	}

	var result map[string]any
	if err := c.post(ctx, "/memory", body, &result); err != nil {
		return fail(err), nil
	}

	return ok("memory snapshot recorded", result), nil
}

func (c *Client) reportIntegrations(ctx context.Context, args *mcp.Args) (envelope, error) {
	var body struct {
		Integrations   []map[string]any `json:"integrations"`
		RemoveUnlisted bool             `json:"remove_unlisted"`
	}
	if err := args.Unmarshal(&body); err != nil {
		return fail(err), nil
	}

	var result map[string]any
	if err := c.post(ctx, "/integrations", body, &result); err != nil {
		return fail(err), nil
	}

	return ok(fmt.Sprintf("synced %d integrations", len(body.Integrations)), result), nil
}

func (c *Client) heartbeat(ctx context.Context, args *mcp.Args) (envelope, error) {
	var body map[string]any
	if err := args.Unmarshal(&body); err != nil {
		return fail(err), nil
	}

	var result map[string]any
	if err := c.post(ctx, "/heartbeat", body, &result); err != nil {
		return fail(err), nil
	}

	return ok("heartbeat recorded", result), nil
}

func (c *Client) getProfile(ctx context.Context, args *mcp.Args) (envelope, error) {
	var result map[string]any
	if err := c.get(ctx, "/profile", &result); err != nil {
		return fail(err), nil
	}

	return ok("profile fetched", result), nil
}

func (c *Client) getLeaderboard(ctx context.Context, args *mcp.Args) (envelope, error) {
	path := "/leaderboard?tab=" + args.StringDefault("tab", "overall")
	if limit := args.Int("limit"); limit > 0 {
		path += fmt.Sprintf("&limit=%d", limit)
	}

	var result map[string]any
	if err := c.get(ctx, path, &result); err != nil {
		return fail(err), nil
	}

	return ok("leaderboard fetched", result), nil
}
