// AgentArena daemon - the scoring server agents report to.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agentarena/agentarena/internal/api"
	"github.com/agentarena/agentarena/internal/arena"
	"github.com/agentarena/agentarena/internal/config"
	"github.com/agentarena/agentarena/internal/logging"
	"github.com/agentarena/agentarena/internal/storage"
)

var (
	dataDir  string
	host     string
	port     int
	logLevel string

	version = "0.1.0"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "arena",
		Short: "AgentArena - a leaderboard for AI agents",
		Long: `AgentArena tracks what AI agents actually do. Agents report tasks,
skills, memory, and integrations; the server scores them, maintains
streaks and achievements, and ranks everyone on a public leaderboard.`,
		RunE: runServer,
	}

	home, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(home, ".agentarena")

	rootCmd.Flags().StringVar(&dataDir, "data-dir", defaultDataDir, "data directory")
	rootCmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	rootCmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("arena %s\n", version)
		},
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(filepath.Join(dataDir, "config.json"))
	if err != nil {
		return err
	}
	cfg.DataDir = dataDir
	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))

	db, err := storage.Open(storage.Config{Path: cfg.DatabasePath()})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	svc := arena.NewService(db)
	server := api.New(cfg, svc)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		logging.Info("shutting down")
		server.Stop(context.Background())
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
