// Package economy tracks the state robots share within a turn: cooldowns,
// one-request-per-kind flags, visible ore, the radar placement queue, and
// the home-column risk band.
package economy

import (
	"slices"

	"github.com/talgya/minebot/internal/agents"
	"github.com/talgya/minebot/internal/config"
	"github.com/talgya/minebot/internal/world"
)

// TurnInfo carries the per-turn header values from the snapshot.
type TurnInfo struct {
	Turn          int
	MyScore       int
	OppScore      int
	RadarCooldown int
	TrapCooldown  int
}

// Economy is reset at the start of every turn except for its queue-like
// parts (placement queue, placed and pending radars), which persist.
type Economy struct {
	TurnInfo

	VisibleOre int  // Safe ore currently visible on the map
	Living     int  // Own robots alive
	Band       Band // Active risk band, if any
	Scouts     int  // Robots sent toward a radar spot this turn

	Queue *PlacementQueue

	requested map[agents.Item]bool
	dug       []world.Coord

	placed  []world.Coord        // Radars we buried, in placement order
	pending map[world.Coord]bool // Radar targets assigned but not yet buried

	trapReadySince int
	lastTrapCD     int

	radarCfg config.Radar
	riskCfg  config.RiskBand
}

// New creates the economy for a match.
func New(cfg config.Strategy) *Economy {
	return &Economy{
		Queue:      NewPlacementQueue(cfg.Radar.Plan),
		requested:  make(map[agents.Item]bool),
		pending:    make(map[world.Coord]bool),
		lastTrapCD: -1,
		radarCfg:   cfg.Radar,
		riskCfg:    cfg.Risk,
	}
}

// BeginTurn recomputes the per-turn aggregates from a freshly applied map and
// returns the radar targets found missing, which have been requeued at the front.
func (e *Economy) BeginTurn(info TurnInfo, m *world.Map) (lost []world.Coord) {
	e.TurnInfo = info

	if info.TrapCooldown == 0 && e.lastTrapCD != 0 {
		e.trapReadySince = info.Turn
	}
	e.lastTrapCD = info.TrapCooldown

	clear(e.requested)
	e.dug = e.dug[:0]
	e.Scouts = 0
	e.VisibleOre = m.SafeOreTotal()

	kept := e.placed[:0]
	for _, c := range e.placed {
		if cell := m.Cell(c); cell != nil && cell.Radar {
			kept = append(kept, c)
			continue
		}
		lost = append(lost, c)
	}
	e.placed = kept
	for i := len(lost) - 1; i >= 0; i-- {
		e.Queue.PushFront(lost[i])
	}

	e.Band = Band{}
	if e.riskCfg.Enabled && info.Turn < e.riskCfg.TurnLimit && e.Living >= e.riskCfg.MinAgents {
		e.Band = EstimateBand(m, e.riskCfg)
	}
	return lost
}

// Requested reports whether a device of this kind was already requested this turn.
func (e *Economy) Requested(item agents.Item) bool {
	return e.requested[item]
}

// MarkRequested records a request so later robots in the pass skip it.
func (e *Economy) MarkRequested(item agents.Item) {
	e.requested[item] = true
}

// Cooldown returns the cooldown for a requestable device.
func (e *Economy) Cooldown(item agents.Item) int {
	switch item {
	case agents.ItemRadar:
		return e.RadarCooldown
	case agents.ItemTrap:
		return e.TrapCooldown
	default:
		return -1
	}
}

// TrapReadyTurns returns how many turns the trap cooldown has been zero.
func (e *Economy) TrapReadyTurns() int {
	if e.TrapCooldown != 0 {
		return 0
	}
	return e.Turn - e.trapReadySince
}

// RadarFavorable is the shared guard for radar placement: off cooldown, a
// target left, nobody requested one this turn, and too little ore in sight.
func (e *Economy) RadarFavorable() bool {
	return e.RadarCooldown == 0 &&
		e.Queue.Len() > 0 &&
		!e.requested[agents.ItemRadar] &&
		e.VisibleOre < e.radarCfg.OreThreshold
}

// AssignRadar pops the next radar target and marks it pending.
func (e *Economy) AssignRadar() (world.Coord, bool) {
	c, ok := e.Queue.Pop()
	if ok {
		e.pending[c] = true
	}
	return c, ok
}

// RelocateRadar moves a pending target to a new cell.
func (e *Economy) RelocateRadar(from, to world.Coord) {
	delete(e.pending, from)
	e.pending[to] = true
}

// RadarPlaced clears the pending entry and starts watching the radar.
func (e *Economy) RadarPlaced(c world.Coord) {
	delete(e.pending, c)
	if !slices.Contains(e.placed, c) {
		e.placed = append(e.placed, c)
	}
}

// RadarAbandoned returns a pending target to the front of the queue.
func (e *Economy) RadarAbandoned(c world.Coord) {
	delete(e.pending, c)
	e.Queue.PushFront(c)
}

// Pending reports whether c is assigned to a robot but not yet buried.
func (e *Economy) Pending(c world.Coord) bool {
	return e.pending[c]
}

// Placed returns the radars being watched, in placement order.
func (e *Economy) Placed() []world.Coord {
	return slices.Clone(e.placed)
}

// RecordDig notes a dig that will execute this turn.
func (e *Economy) RecordDig(c world.Coord) {
	e.dug = append(e.dug, c)
}

// Dug returns this turn's digs, for next turn's self-dug attribution.
func (e *Economy) Dug() []world.Coord {
	return slices.Clone(e.dug)
}
