// Package protocol reads the referee's per-turn snapshot and writes robot
// commands. It only structures text; all decisions live in the engine.
package protocol

import (
	"github.com/talgya/minebot/internal/agents"
	"github.com/talgya/minebot/internal/world"
)

// EntityKind is the referee's entity type code.
type EntityKind uint8

const (
	EntityRobot      EntityKind = 0 // Own robot
	EntityEnemyRobot EntityKind = 1
	EntityRadar      EntityKind = 2 // Own radar
	EntityTrap       EntityKind = 3 // Own trap
)

// Entity is one visible entity record.
type Entity struct {
	ID   int
	Kind EntityKind
	Pos  world.Coord
	Item agents.Item
}

// Frame is one turn's snapshot.
type Frame struct {
	MyScore  int
	OppScore int

	// Ore and Hole are indexed [y][x]. Ore holds world.OreUnknown for "?".
	Ore  [][]int
	Hole [][]bool

	RadarCooldown int
	TrapCooldown  int

	Entities []Entity
}

// NewFrame allocates an all-unknown frame of the given size.
func NewFrame(width, height int) *Frame {
	f := &Frame{
		Ore:  make([][]int, height),
		Hole: make([][]bool, height),
	}
	for y := 0; y < height; y++ {
		f.Ore[y] = make([]int, width)
		f.Hole[y] = make([]bool, width)
		for x := range f.Ore[y] {
			f.Ore[y][x] = world.OreUnknown
		}
	}
	return f
}

// Robots returns own robot records in report order.
func (f *Frame) Robots() []Entity {
	return f.filter(EntityRobot)
}

// Enemies returns enemy robot records in report order.
func (f *Frame) Enemies() []Entity {
	return f.filter(EntityEnemyRobot)
}

func (f *Frame) filter(kind EntityKind) []Entity {
	var out []Entity
	for _, e := range f.Entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// itemFromCode maps the referee's carried-item code.
func itemFromCode(code int) agents.Item {
	switch code {
	case 2:
		return agents.ItemRadar
	case 3:
		return agents.ItemTrap
	case 4:
		return agents.ItemOre
	default:
		return agents.ItemNone
	}
}

// ItemCode is the inverse of itemFromCode.
func ItemCode(item agents.Item) int {
	switch item {
	case agents.ItemRadar:
		return 2
	case agents.ItemTrap:
		return 3
	case agents.ItemOre:
		return 4
	default:
		return -1
	}
}
