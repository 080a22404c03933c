package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/talgya/minebot/internal/agents"
	"github.com/talgya/minebot/internal/protocol"
)

// FrameSource yields one snapshot per turn. io.EOF ends the match.
type FrameSource interface {
	Next() (*protocol.Frame, error)
}

// CommandSink receives each turn's commands.
type CommandSink interface {
	Write(cmds []agents.Command) error
}

// Engine drives a match turn by turn.
type Engine struct {
	Sched  *Scheduler
	Source FrameSource
	Sink   CommandSink

	// Callbacks, populated during setup.
	OnTurn func(turn int, f *protocol.Frame, cmds []agents.Command) error // After commands are written
	OnEnd  func(turn int, f *protocol.Frame) error                         // Once, after the last turn
}

// NewEngine wires a scheduler to a feed.
func NewEngine(sched *Scheduler, src FrameSource, sink CommandSink) *Engine {
	return &Engine{Sched: sched, Source: src, Sink: sink}
}

// Run plays until the feed ends or ctx is cancelled. Cancellation is only
// observed between turns; a decision pass always completes.
func (e *Engine) Run(ctx context.Context) error {
	slog.Info("match started", "width", e.Sched.Map.Width, "height", e.Sched.Map.Height)

	var last *protocol.Frame
	for {
		select {
		case <-ctx.Done():
			slog.Info("match interrupted", "turn", e.Sched.Turn)
			return ctx.Err()
		default:
		}

		f, err := e.Source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("turn %d: %w", e.Sched.Turn, err)
		}

		turn := e.Sched.Turn
		start := time.Now()
		cmds := e.Sched.Step(f)
		elapsed := time.Since(start)

		if err := e.Sink.Write(cmds); err != nil {
			return fmt.Errorf("turn %d: %w", turn, err)
		}
		slog.Debug("turn decided", "turn", turn, "robots", len(cmds), "elapsed", elapsed)

		if e.OnTurn != nil {
			if err := e.OnTurn(turn, f, cmds); err != nil {
				slog.Error("turn hook failed", "turn", turn, "error", err)
			}
		}
		last = f
	}

	slog.Info("match ended", "turns", e.Sched.Turn, "alive", e.Sched.Robots.Alive(),
		"my_score", e.Sched.Economy.MyScore, "opp_score", e.Sched.Economy.OppScore)
	if e.OnEnd != nil && last != nil {
		if err := e.OnEnd(e.Sched.Turn, last); err != nil {
			return fmt.Errorf("end hook: %w", err)
		}
	}
	return nil
}
