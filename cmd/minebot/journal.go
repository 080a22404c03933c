package main

import (
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/talgya/minebot/internal/agents"
	"github.com/talgya/minebot/internal/config"
	"github.com/talgya/minebot/internal/engine"
	"github.com/talgya/minebot/internal/persistence"
	"github.com/talgya/minebot/internal/protocol"
)

// attachJournal opens the journal and wires the engine's turn callbacks to it.
// The returned func closes the journal.
func attachJournal(eng *engine.Engine, strategy config.Strategy) (func(), error) {
	j, err := persistence.Open(journalPath)
	if err != nil {
		slog.Error("failed to open journal", "path", journalPath, "error", err)
		return nil, err
	}

	raw, err := yaml.Marshal(strategy)
	if err != nil {
		j.Close()
		return nil, fmt.Errorf("encode strategy: %w", err)
	}
	matchID, err := j.BeginMatch(strategy.Width, strategy.Height, string(raw))
	if err != nil {
		j.Close()
		return nil, err
	}

	sched := eng.Sched
	eng.OnTurn = func(turn int, f *protocol.Frame, cmds []agents.Command) error {
		rec := persistence.TurnRecord{
			MatchID:       matchID,
			Turn:          turn,
			MyScore:       f.MyScore,
			OppScore:      f.OppScore,
			RadarCooldown: f.RadarCooldown,
			TrapCooldown:  f.TrapCooldown,
			VisibleOre:    sched.Economy.VisibleOre,
			Living:        sched.Economy.Living,
		}
		rows := make([]persistence.CommandRecord, 0, len(cmds))
		for _, c := range cmds {
			rows = append(rows, persistence.CommandRecord{
				MatchID: matchID,
				Turn:    turn,
				RobotID: int(c.RobotID),
				Task:    c.Label,
				Command: c.String(),
			})
		}
		return j.RecordTurn(rec, rows)
	}
	eng.OnEnd = func(turns int, f *protocol.Frame) error {
		return j.EndMatch(matchID, turns, f.MyScore, f.OppScore)
	}

	return func() {
		if err := j.Close(); err != nil {
			slog.Error("failed to close journal", "error", err)
		}
	}, nil
}
