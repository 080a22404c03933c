package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/minebot/internal/arena"
	"github.com/talgya/minebot/internal/engine"
	"github.com/talgya/minebot/internal/world"
)

var (
	sandboxSeed  int64
	sandboxTurns int
)

// sandboxCmd plays a solo match against the built-in referee.
var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Play a solo match on a generated ore field",
	Long: `Generate an ore field from --seed and let the bot play it alone against
a simplified referee. Useful for checking a strategy file end to end.`,
	RunE: runSandbox,
}

func init() {
	sandboxCmd.Flags().Int64Var(&sandboxSeed, "seed", 42, "ore field seed (0 = random)")
	sandboxCmd.Flags().IntVar(&sandboxTurns, "turns", 200, "turns to play")
}

func runSandbox(cmd *cobra.Command, args []string) error {
	setupLogging()

	strategy, err := loadStrategy()
	if err != nil {
		return err
	}

	gen := world.DefaultGenConfig()
	gen.Width, gen.Height = strategy.Width, strategy.Height
	gen.Seed = sandboxSeed
	truth := world.Generate(gen)
	total := world.TotalOre(truth)
	slog.Info("ore field generated", "seed", sandboxSeed, "ore", total)

	rules := arena.DefaultConfig()
	rules.MaxTurns = sandboxTurns
	rules.HomeColumn = strategy.HomeColumn
	ref := arena.New(truth, rules)

	sched := engine.NewScheduler(strategy)
	eng := engine.NewEngine(sched, ref, ref)
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
		return err
	}

	fmt.Fprintf(os.Stdout, "sandbox: %s ore delivered of %s in %d turns, %d/%d robots alive\n",
		humanize.Comma(int64(ref.Score())), humanize.Comma(int64(total)),
		ref.Turn(), ref.Alive(), rules.Robots)
	return nil
}
