// Package arena is a small single-player referee used to exercise the bot
// offline. It is deliberately simpler than the real referee: no opponent,
// instant delivery, and a fixed device cooldown.
package arena

import (
	"fmt"
	"io"

	"github.com/talgya/minebot/internal/agents"
	"github.com/talgya/minebot/internal/protocol"
	"github.com/talgya/minebot/internal/world"
)

// Config holds referee rules.
type Config struct {
	Robots     int
	MaxTurns   int
	Cooldown   int // Turns between two requests of the same device
	MoveRange  int // Manhattan cells per MOVE
	RadarRange int // Manhattan radius revealed around a radar
	HomeColumn int
}

// DefaultConfig mirrors the ranked rules where they matter to the bot.
func DefaultConfig() Config {
	return Config{
		Robots:     5,
		MaxTurns:   200,
		Cooldown:   5,
		MoveRange:  4,
		RadarRange: 4,
		HomeColumn: 0,
	}
}

type robot struct {
	id   int
	pos  world.Coord
	item agents.Item
}

// Arena holds the true state of a sandbox match. It implements both ends of
// the engine's feed: Next produces snapshots and Write applies commands.
type Arena struct {
	cfg   Config
	truth *world.Map

	robots  []*robot
	radars  map[world.Coord]bool
	traps   map[world.Coord]bool
	radarCD int
	trapCD  int

	turn  int
	score int
}

// New creates a referee over a fully known ore map. Robots start spread out
// along the home column.
func New(truth *world.Map, cfg Config) *Arena {
	a := &Arena{
		cfg:    cfg,
		truth:  truth,
		radars: make(map[world.Coord]bool),
		traps:  make(map[world.Coord]bool),
	}
	gap := truth.Height / (cfg.Robots + 1)
	if gap < 1 {
		gap = 1
	}
	for i := 0; i < cfg.Robots; i++ {
		y := (i + 1) * gap
		if y >= truth.Height {
			y = truth.Height - 1
		}
		a.robots = append(a.robots, &robot{id: i, pos: world.Coord{X: cfg.HomeColumn, Y: y}})
	}
	return a
}

// Score returns ore delivered so far.
func (a *Arena) Score() int { return a.score }

// Turn returns the number of turns played.
func (a *Arena) Turn() int { return a.turn }

// Alive counts robots still on the grid.
func (a *Arena) Alive() int {
	n := 0
	for _, r := range a.robots {
		if !r.pos.Dead() {
			n++
		}
	}
	return n
}

// Next renders the current state as the bot would see it.
func (a *Arena) Next() (*protocol.Frame, error) {
	if a.turn >= a.cfg.MaxTurns {
		return nil, io.EOF
	}

	f := protocol.NewFrame(a.truth.Width, a.truth.Height)
	f.MyScore = a.score
	f.RadarCooldown, f.TrapCooldown = a.radarCD, a.trapCD

	for _, cell := range a.truth.Cells() {
		f.Hole[cell.Y][cell.X] = cell.Hole
		if a.visible(cell.Coord()) {
			f.Ore[cell.Y][cell.X] = cell.Ore
		}
	}

	for _, r := range a.robots {
		f.Entities = append(f.Entities, protocol.Entity{ID: r.id, Kind: protocol.EntityRobot, Pos: r.pos, Item: r.item})
	}
	id := len(a.robots)
	for _, cell := range a.truth.Cells() {
		c := cell.Coord()
		if a.radars[c] {
			f.Entities = append(f.Entities, protocol.Entity{ID: id, Kind: protocol.EntityRadar, Pos: c})
			id++
		}
		if a.traps[c] {
			f.Entities = append(f.Entities, protocol.Entity{ID: id, Kind: protocol.EntityTrap, Pos: c})
			id++
		}
	}
	return f, nil
}

func (a *Arena) visible(c world.Coord) bool {
	for r := range a.radars {
		if world.Manhattan(r, c) <= a.cfg.RadarRange {
			return true
		}
	}
	return false
}

// Write applies one command per robot and advances the turn.
func (a *Arena) Write(cmds []agents.Command) error {
	if len(cmds) != len(a.robots) {
		return fmt.Errorf("turn %d: got %d commands for %d robots", a.turn, len(cmds), len(a.robots))
	}

	if a.radarCD > 0 {
		a.radarCD--
	}
	if a.trapCD > 0 {
		a.trapCD--
	}

	for _, c := range cmds {
		id := int(c.RobotID)
		if id < 0 || id >= len(a.robots) {
			return fmt.Errorf("turn %d: unknown robot %d", a.turn, id)
		}
		r := a.robots[id]
		if r.pos.Dead() {
			continue
		}
		switch c.Kind {
		case agents.CommandMove:
			if a.truth.InBounds(c.Target) {
				r.pos = r.pos.Toward(c.Target, a.cfg.MoveRange)
			}
		case agents.CommandDig:
			a.dig(r, c.Target)
		case agents.CommandRequest:
			a.request(r, c.Item)
		}
	}

	for _, r := range a.robots {
		if r.item == agents.ItemOre && r.pos.X == a.cfg.HomeColumn {
			r.item = agents.ItemNone
			a.score++
		}
	}
	a.turn++
	return nil
}

func (a *Arena) dig(r *robot, t world.Coord) {
	cell := a.truth.Cell(t)
	if cell == nil {
		return
	}
	if world.Manhattan(r.pos, t) > 1 {
		for steps := 0; steps < a.cfg.MoveRange && world.Manhattan(r.pos, t) > 1; steps++ {
			r.pos = r.pos.Toward(t, 1)
		}
		return
	}

	if a.traps[t] {
		a.explode(t)
		return
	}
	cell.Hole = true
	switch r.item {
	case agents.ItemRadar:
		a.radars[t] = true
		r.item = agents.ItemNone
	case agents.ItemTrap:
		a.traps[t] = true
		r.item = agents.ItemNone
	}
	if r.item == agents.ItemNone && cell.Ore > 0 {
		cell.Ore--
		r.item = agents.ItemOre
	}
}

func (a *Arena) request(r *robot, item agents.Item) {
	if r.pos.X != a.cfg.HomeColumn || r.item != agents.ItemNone {
		return
	}
	switch item {
	case agents.ItemRadar:
		if a.radarCD > 0 {
			return
		}
		a.radarCD = a.cfg.Cooldown
	case agents.ItemTrap:
		if a.trapCD > 0 {
			return
		}
		a.trapCD = a.cfg.Cooldown
	default:
		return
	}
	r.item = item
}

// explode detonates the trap at t and every trap chained to it, destroying
// robots on or next to any detonated cell.
func (a *Arena) explode(t world.Coord) {
	queue := []world.Coord{t}
	blown := map[world.Coord]bool{t: true}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		delete(a.traps, cur)
		delete(a.radars, cur)
		for _, n := range cur.Neighbors() {
			if a.traps[n] && !blown[n] {
				blown[n] = true
				queue = append(queue, n)
			}
		}
	}
	for _, r := range a.robots {
		for c := range blown {
			if !r.pos.Dead() && world.Manhattan(r.pos, c) <= 1 {
				r.pos = world.DeadCoord
				r.item = agents.ItemNone
			}
		}
	}
}
