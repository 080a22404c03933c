// Command minebot plays the ore-mining contest over stdin/stdout.
// Diagnostics go to stderr; stdout carries nothing but commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talgya/minebot/internal/config"
	"github.com/talgya/minebot/internal/engine"
	"github.com/talgya/minebot/internal/protocol"
)

var (
	configPath  string
	journalPath string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "minebot",
	Short: "Play one match, reading snapshots on stdin and writing commands on stdout",
	Long: `minebot reads the referee's initialisation line and per-turn snapshots
from stdin and answers every turn with one command per robot.

Strategy thresholds come from --config (YAML); missing keys keep their defaults.
Use --journal to record every turn to a SQLite file for later review.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "strategy YAML file")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "SQLite file to record the match into")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	rootCmd.AddCommand(sandboxCmd, historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	setupLogging()

	strategy, err := loadStrategy()
	if err != nil {
		return err
	}

	reader, err := protocol.NewReader(os.Stdin)
	if err != nil {
		slog.Error("failed to read initialisation", "error", err)
		return err
	}
	strategy.Width, strategy.Height = reader.Width, reader.Height

	sched := engine.NewScheduler(strategy)
	eng := engine.NewEngine(sched, reader, protocol.NewWriter(os.Stdout))

	if journalPath != "" {
		closeJournal, err := attachJournal(eng, strategy)
		if err != nil {
			return err
		}
		defer closeJournal()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := eng.Run(ctx); err != nil {
		slog.Error("match aborted", "error", err)
		return err
	}
	return nil
}

func setupLogging() {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func loadStrategy() (config.Strategy, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	s, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load strategy", "path", configPath, "error", err)
		return s, fmt.Errorf("load strategy: %w", err)
	}
	slog.Info("strategy loaded", "path", configPath)
	return s, nil
}
