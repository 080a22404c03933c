package engine

import (
	"log/slog"

	"github.com/talgya/minebot/internal/agents"
	"github.com/talgya/minebot/internal/hazard"
	"github.com/talgya/minebot/internal/targeting"
	"github.com/talgya/minebot/internal/world"
)

// decide runs one robot through completion, preemption, assignment, and
// execution, and returns its command.
func (s *Scheduler) decide(r *agents.Robot) agents.Command {
	if r.Dead {
		r.LastCommand = agents.CommandWait
		return agents.Command{RobotID: r.ID, Kind: agents.CommandWait, Label: "dead"}
	}

	s.complete(r)

	// Delivering ore beats anything else the robot was doing.
	if r.Carries(agents.ItemOre) && r.Task != agents.TaskReturn {
		if r.Task == agents.TaskPlaceRadar && r.Target != nil {
			s.Economy.RadarAbandoned(*r.Target)
		}
		r.ClearTask()
		r.Task = agents.TaskReturn
	}

	if r.Task == agents.TaskUnassigned {
		s.assign(r)
	}

	cmd, ok := s.execute(r)
	if !ok {
		// Nothing to do under the current task; start over next turn.
		r.ClearTask()
		cmd = s.wait(r)
	}

	if cmd.Kind == agents.CommandDig && world.Manhattan(r.Pos, cmd.Target) <= 1 {
		s.Economy.RecordDig(cmd.Target)
	}
	r.LastCommand = cmd.Kind
	if cmd.Label == "" {
		cmd.Label = r.Task.String()
	}
	return cmd
}

// complete clears tasks whose goal was reached before this turn.
func (s *Scheduler) complete(r *agents.Robot) {
	switch r.Task {
	case agents.TaskPlaceRadar:
		if r.Consumed(agents.ItemRadar) {
			if r.Target != nil {
				s.Economy.RadarPlaced(*r.Target)
			}
			r.ClearTask()
		}
	case agents.TaskPlaceTrap, agents.TaskTrapPattern:
		if r.Consumed(agents.ItemTrap) {
			r.ClearTask()
		}
	case agents.TaskReturn:
		if s.atHome(r) {
			r.ClearTask()
		}
	}
}

// assign picks a task for an Unassigned robot, first match wins.
func (s *Scheduler) assign(r *agents.Robot) {
	switch {
	case s.assignAmbush(r):
	case s.atHome(r) && s.Economy.RadarFavorable():
		target, _ := s.Economy.AssignRadar()
		r.Task = agents.TaskPlaceRadar
		r.SetTarget(target)
	case s.atHome(r) && s.trapFavorable():
		r.Task = agents.TaskPlaceTrap
	default:
		r.Task = agents.TaskHarvest
	}
	slog.Debug("task assigned", "turn", s.Turn, "robot", r.ID, "task", r.Task.String())
}

// assignAmbush handles the dedicated trap operator: detonate the line when
// it would take out more enemies than friends, otherwise keep building it.
func (s *Scheduler) assignAmbush(r *agents.Robot) bool {
	a := s.Config.Ambush
	if !a.Enabled || !s.hasOperator || r.ID != s.operator || len(a.Line) == 0 {
		return false
	}
	if s.Turn >= a.TriggerCutoff || s.lineExhausted() {
		return false
	}

	blast := hazard.BlastSet(s.Map, a.Line[0])
	enemies := hazard.CountIn(blast, s.Enemies)
	own := hazard.CountIn(blast, s.OwnPositions())
	if enemies > own && enemies >= a.MinKills {
		r.Task = agents.TaskTriggerTrap
		slog.Info("ambush armed", "turn", s.Turn, "robot", r.ID, "enemies", enemies, "own", own, "chain", len(blast))
		return true
	}
	// A full line has nothing to build; the operator works normally until
	// enemies walk into it.
	if len(s.openSlots()) == 0 {
		return false
	}
	r.Task = agents.TaskTrapPattern
	return true
}

func (s *Scheduler) trapFavorable() bool {
	t := s.Config.Trap
	e := s.Economy
	return t.Enabled &&
		e.Cooldown(agents.ItemTrap) == 0 &&
		!e.Requested(agents.ItemTrap) &&
		e.TrapReadyTurns() >= t.ReadyTurns &&
		s.Turn < t.CutoffTurn
}

// openSlots returns ambush line cells that are safe and hold no trap yet.
func (s *Scheduler) openSlots() []world.Coord {
	var out []world.Coord
	for _, c := range s.Config.Ambush.Line {
		cell := s.Map.Cell(c)
		if cell != nil && !cell.Trap && !cell.Unsafe() {
			out = append(out, c)
		}
	}
	return out
}

// armedSlots returns ambush line cells holding an own trap.
func (s *Scheduler) armedSlots() []world.Coord {
	var out []world.Coord
	for _, c := range s.Config.Ambush.Line {
		if cell := s.Map.Cell(c); cell != nil && cell.Trap {
			out = append(out, c)
		}
	}
	return out
}

// lineExhausted reports that the ambush line has nothing left to fill and
// nothing to detonate.
func (s *Scheduler) lineExhausted() bool {
	return len(s.openSlots()) == 0 && len(s.armedSlots()) == 0
}

// execute dispatches on the robot's task. ok is false when the task cannot
// produce a command this turn.
func (s *Scheduler) execute(r *agents.Robot) (agents.Command, bool) {
	switch r.Task {
	case agents.TaskPlaceRadar:
		return s.placeRadar(r)
	case agents.TaskPlaceTrap:
		return s.placeTrap(r)
	case agents.TaskTrapPattern:
		return s.trapPattern(r)
	case agents.TaskTriggerTrap:
		return s.triggerTrap(r)
	case agents.TaskHarvest:
		return s.harvest(r)
	case agents.TaskReturn:
		return s.returnHome(r), true
	default:
		return agents.Command{}, false
	}
}

func (s *Scheduler) placeRadar(r *agents.Robot) (agents.Command, bool) {
	if !r.Carries(agents.ItemRadar) {
		s.Economy.MarkRequested(agents.ItemRadar)
		return s.request(r, agents.ItemRadar), true
	}
	if r.Target == nil {
		return agents.Command{}, false
	}

	target := *r.Target
	if s.Map.Unsafe(target) {
		if alt, ok := targeting.ClosestSafeCell(s.Map, target, s.Config.Explore.ColumnOffset); ok {
			slog.Debug("radar target relocated", "robot", r.ID, "from", target.String(), "to", alt.String())
			s.Economy.RelocateRadar(target, alt)
			r.SetTarget(alt)
			target = alt
		}
	}
	return s.dig(r, target), true
}

func (s *Scheduler) placeTrap(r *agents.Robot) (agents.Command, bool) {
	if !r.Carries(agents.ItemTrap) {
		s.Economy.MarkRequested(agents.ItemTrap)
		return s.request(r, agents.ItemTrap), true
	}

	site, ok := targeting.ClosestTrapSite(s.Map, r.Pos, s.Config.Trap.MinOre)
	if !ok {
		site, ok = targeting.ClosestUnexplored(s.Map, r.Pos, s.exploreMinX())
	}
	if !ok {
		return agents.Command{}, false
	}
	// Harvesters later in the pass must not dig into the trap being laid.
	s.dropOre(site)
	r.SetTarget(site)
	return s.dig(r, site), true
}

func (s *Scheduler) trapPattern(r *agents.Robot) (agents.Command, bool) {
	open := s.openSlots()
	if s.Turn >= s.Config.Ambush.PatternCutoff || len(open) == 0 {
		r.ClearTask()
		return s.wait(r), true
	}
	if !r.Carries(agents.ItemTrap) {
		// Requests are only served on the home column.
		if !s.atHome(r) {
			return s.move(r, world.Coord{X: s.HomeColumn(), Y: r.Pos.Y}), true
		}
		return s.request(r, agents.ItemTrap), true
	}

	slot, _ := targeting.Closest(r.Pos, open)
	r.SetTarget(slot)
	return s.dig(r, slot), true
}

func (s *Scheduler) triggerTrap(r *agents.Robot) (agents.Command, bool) {
	slot, ok := targeting.Closest(r.Pos, s.armedSlots())
	if !ok {
		r.ClearTask()
		return s.wait(r), true
	}
	slog.Info("ambush triggered", "turn", s.Turn, "robot", r.ID, "at", slot.String())
	cmd := s.dig(r, slot)
	cmd.Label = agents.TaskTriggerTrap.String()
	r.ClearTask()
	return cmd, true
}

func (s *Scheduler) harvest(r *agents.Robot) (agents.Command, bool) {
	if c, ok := targeting.ClosestSafeOre(s.Map, r.Pos, s.ore); ok {
		s.takeOre(c)
		r.SetTarget(c)
		return s.dig(r, c), true
	}
	if s.Turn > s.Config.AggressiveTurn && len(s.ore) > 0 {
		c := targeting.ClosestKnownOre(r.Pos, s.ore)
		s.takeOre(c)
		r.SetTarget(c)
		return s.dig(r, c), true
	}

	// Nothing to dig: fetch a radar if one is due.
	if s.Economy.RadarFavorable() {
		r.ClearTask()
		r.Task = agents.TaskReturn
		return s.returnHome(r), true
	}

	if s.Turn < s.Config.Radar.ScoutTurns && s.Economy.Scouts < s.Config.Radar.MaxScouts {
		if next, ok := s.Economy.Queue.Peek(); ok {
			s.Economy.Scouts++
			return s.move(r, next), true
		}
	}

	if c, ok := targeting.ClosestUnexplored(s.Map, r.Pos, s.exploreMinX()); ok {
		r.SetTarget(c)
		return s.dig(r, c), true
	}
	return agents.Command{}, false
}

// returnHome heads for the home column in the robot's row, or around the
// risk band when the row is inside it.
func (s *Scheduler) returnHome(r *agents.Robot) agents.Command {
	row := r.Pos.Y
	if band := s.Economy.Band; band.Contains(row) {
		row = band.Exit(row, s.Map.Height)
	}
	return s.move(r, world.Coord{X: s.HomeColumn(), Y: row})
}

func (s *Scheduler) dig(r *agents.Robot, c world.Coord) agents.Command {
	return agents.Command{RobotID: r.ID, Kind: agents.CommandDig, Target: c}
}

func (s *Scheduler) move(r *agents.Robot, c world.Coord) agents.Command {
	return agents.Command{RobotID: r.ID, Kind: agents.CommandMove, Target: c}
}

func (s *Scheduler) request(r *agents.Robot, item agents.Item) agents.Command {
	r.AwaitingItem = true
	return agents.Command{RobotID: r.ID, Kind: agents.CommandRequest, Item: item}
}

func (s *Scheduler) wait(r *agents.Robot) agents.Command {
	return agents.Command{RobotID: r.ID, Kind: agents.CommandWait}
}
