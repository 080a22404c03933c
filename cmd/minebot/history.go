package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/minebot/internal/persistence"
)

var (
	historyLimit int
	historyMatch string
)

// historyCmd reads back what --journal recorded.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled matches, or replay one match's commands",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "matches to list")
	historyCmd.Flags().StringVar(&historyMatch, "match", "", "match id to replay turn by turn")
}

func runHistory(cmd *cobra.Command, args []string) error {
	setupLogging()
	if journalPath == "" {
		return errors.New("history needs --journal")
	}

	j, err := persistence.Open(journalPath)
	if err != nil {
		return err
	}
	defer j.Close()

	out := cmd.OutOrStdout()
	if historyMatch == "" {
		matches, err := j.RecentMatches(historyLimit)
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		for _, m := range matches {
			when := m.StartedAt
			if t, err := time.Parse(time.RFC3339, m.StartedAt); err == nil {
				when = humanize.Time(t)
			}
			fmt.Fprintf(out, "%s  %-14s  %dx%d  %3d turns  %s-%s\n",
				m.ID, when, m.Width, m.Height, m.Turns,
				humanize.Comma(int64(m.MyScore)), humanize.Comma(int64(m.OppScore)))
		}
		return nil
	}

	m, err := j.Match(historyMatch)
	if err != nil {
		return fmt.Errorf("match %s: %w", historyMatch, err)
	}
	turns, err := j.Turns(m.ID)
	if err != nil {
		return err
	}
	for _, t := range turns {
		fmt.Fprintf(out, "turn %3d  score %d-%d  ore %d  living %d  cooldowns %d/%d\n",
			t.Turn, t.MyScore, t.OppScore, t.VisibleOre, t.Living, t.RadarCooldown, t.TrapCooldown)
		cmds, err := j.Commands(m.ID, t.Turn)
		if err != nil {
			return err
		}
		for _, c := range cmds {
			fmt.Fprintf(out, "  %2d %-8s %s\n", c.RobotID, c.Task, c.Command)
		}
	}
	return nil
}
