// Package engine runs the per-turn decision pass: it applies the snapshot,
// walks every robot through its task state machine, and drives the turn loop.
package engine

import (
	"log/slog"

	"github.com/talgya/minebot/internal/agents"
	"github.com/talgya/minebot/internal/config"
	"github.com/talgya/minebot/internal/economy"
	"github.com/talgya/minebot/internal/protocol"
	"github.com/talgya/minebot/internal/world"
)

// Scheduler owns all state for one match. Nothing it consults is global, so
// several matches can run side by side.
type Scheduler struct {
	Config  config.Strategy
	Map     *world.Map
	Robots  *agents.Registry
	Economy *economy.Economy

	// Enemies holds enemy robot positions from the current snapshot.
	Enemies []world.Coord

	// Turn is the index of the turn being decided, starting at 0.
	Turn int

	// ore is this pass's working list of known ore cells. Robots that target
	// a cell shrink it for the robots after them.
	ore []world.Coord

	operator    agents.RobotID
	hasOperator bool
}

// NewScheduler creates a match context from a validated strategy.
func NewScheduler(cfg config.Strategy) *Scheduler {
	return &Scheduler{
		Config:  cfg,
		Map:     world.NewMap(cfg.Width, cfg.Height),
		Robots:  agents.NewRegistry(),
		Economy: economy.New(cfg),
	}
}

// Step applies one snapshot and returns exactly one command per robot ever
// seen, in first-observation order. Dead robots get WAIT.
func (s *Scheduler) Step(f *protocol.Frame) []agents.Command {
	s.apply(f)

	robots := s.Robots.Robots()
	cmds := make([]agents.Command, 0, len(robots))
	for _, r := range robots {
		cmds = append(cmds, s.decide(r))
	}

	s.Turn++
	return cmds
}

// apply folds the snapshot into the map, registry, and economy.
func (s *Scheduler) apply(f *protocol.Frame) {
	m := s.Map
	m.BeginSnapshot()
	for y := 0; y < m.Height && y < len(f.Ore); y++ {
		for x := 0; x < m.Width && x < len(f.Ore[y]); x++ {
			m.Observe(world.Coord{X: x, Y: y}, f.Ore[y][x], f.Hole[y][x], s.Turn)
		}
	}
	for _, e := range f.Entities {
		switch e.Kind {
		case protocol.EntityRadar:
			m.MarkRadar(e.Pos)
		case protocol.EntityTrap:
			m.MarkTrap(e.Pos)
		}
	}
	m.AttributeDigs(s.Economy.Dug())

	for _, e := range f.Robots() {
		s.observeRobot(e)
	}
	s.Enemies = s.Enemies[:0]
	for _, e := range f.Enemies() {
		s.Enemies = append(s.Enemies, e.Pos)
	}

	lost := s.Economy.BeginTurn(economy.TurnInfo{
		Turn:          s.Turn,
		MyScore:       f.MyScore,
		OppScore:      f.OppScore,
		RadarCooldown: f.RadarCooldown,
		TrapCooldown:  f.TrapCooldown,
	}, m)
	for _, c := range lost {
		slog.Info("radar lost, requeued", "turn", s.Turn, "target", c.String())
	}

	s.ore = m.KnownOre()

	if s.Config.Ambush.Enabled && !s.hasOperator {
		if op := s.Robots.At(s.Config.Ambush.Operator); op != nil {
			s.operator, s.hasOperator = op.ID, true
			slog.Debug("ambush operator chosen", "robot", op.ID)
		}
	}
}

func (s *Scheduler) observeRobot(e protocol.Entity) {
	id := agents.RobotID(e.ID)
	isNew := s.Robots.Get(id) == nil
	died := s.Robots.Observe(id, e.Pos, e.Item)

	switch {
	case isNew && !died:
		s.Economy.Living++
	case died && !isNew:
		s.Economy.Living--
		r := s.Robots.Get(id)
		if r.Task == agents.TaskPlaceRadar && r.Target != nil {
			s.Economy.RadarAbandoned(*r.Target)
		}
		slog.Info("robot destroyed", "turn", s.Turn, "robot", id, "task", r.Task.String(), "living", s.Economy.Living)
		r.ClearTask()
	}
}

// OwnPositions returns the positions of our living robots.
func (s *Scheduler) OwnPositions() []world.Coord {
	var out []world.Coord
	for _, r := range s.Robots.Robots() {
		if !r.Dead {
			out = append(out, r.Pos)
		}
	}
	return out
}

// HomeColumn returns the configured delivery column.
func (s *Scheduler) HomeColumn() int {
	return s.Config.HomeColumn
}

func (s *Scheduler) atHome(r *agents.Robot) bool {
	return r.Pos.X == s.HomeColumn()
}

// exploreMinX is the first column blind digs may use this turn.
func (s *Scheduler) exploreMinX() int {
	if s.Turn < s.Config.Explore.EarlyTurns {
		return s.Config.Explore.EarlyColumnOffset
	}
	return s.Config.Explore.ColumnOffset
}

// takeOre claims one unit of ore at c for this pass, or the whole cell when
// spreading robots across cells.
func (s *Scheduler) takeOre(c world.Coord) {
	cell := s.Map.Cell(c)
	if cell == nil {
		return
	}
	if s.Config.SpreadHarvest {
		cell.Ore = 0
	} else if cell.Ore > 0 {
		cell.Ore--
	}
	if cell.Ore <= 0 {
		s.dropOre(c)
	}
}

func (s *Scheduler) dropOre(c world.Coord) {
	for i, o := range s.ore {
		if o == c {
			s.ore = append(s.ore[:i], s.ore[i+1:]...)
			return
		}
	}
}
