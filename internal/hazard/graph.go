// Package hazard analyses chains of our own traps. A trap that goes off sets
// off every trap orthogonally adjacent to it, so a detonation destroys the
// whole connected component.
package hazard

import (
	"github.com/talgya/minebot/internal/world"
)

// Set is a collection of cells.
type Set map[world.Coord]struct{}

// Has reports whether c is in the set.
func (s Set) Has(c world.Coord) bool {
	_, ok := s[c]
	return ok
}

// BlastSet returns c plus every own trap reachable from it through adjacent
// own traps. It is empty when c holds no own trap.
func BlastSet(m *world.Map, c world.Coord) Set {
	blast := make(Set)
	start := m.Cell(c)
	if start == nil || !start.Trap {
		return blast
	}

	// The visited set is the result itself, fresh for every call.
	blast[c] = struct{}{}
	queue := []world.Coord{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if blast.Has(n) {
				continue
			}
			cell := m.Cell(n)
			if cell == nil || !cell.Trap {
				continue
			}
			blast[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return blast
}

// CountIn counts living positions inside the set. Dead robots sit on the
// off-grid sentinel and are never counted.
func CountIn(set Set, positions []world.Coord) int {
	n := 0
	for _, p := range positions {
		if !p.Dead() && set.Has(p) {
			n++
		}
	}
	return n
}
