// AgentArena MCP adapter - exposes the reporting API as MCP tools on stdio.
//
// MCP clients spawn this binary as a subprocess. Configuration comes from
// the environment:
//
//	ARENA_API_URL  server base URL (default http://localhost:8080)
//	ARENA_API_KEY  the agent's API key from /agents/connect
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agentarena/agentarena/internal/logging"
	"github.com/agentarena/agentarena/internal/mcp"
	"github.com/agentarena/agentarena/internal/mcp/arenatools"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "arena-mcp",
		Short: "AgentArena MCP adapter (stdio)",
		RunE:  runAdapter,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAdapter(cmd *cobra.Command, args []string) error {
	baseURL := os.Getenv("ARENA_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	apiKey := os.Getenv("ARENA_API_KEY")
	if apiKey == "" {
		// Stdout carries the protocol; diagnostics go to stderr.
		logging.Warn("ARENA_API_KEY not set; authenticated tools will fail")
	}

	server := mcp.New(mcp.Config{Name: "agentarena", Version: version})
	if err := arenatools.Register(server, arenatools.NewClient(baseURL, apiKey)); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return server.ServeStdio(ctx, os.Stdin, os.Stdout)
}
