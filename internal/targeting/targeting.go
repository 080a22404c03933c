// Package targeting picks the best cell for a robot from a candidate set.
// Every selector minimizes Manhattan distance and keeps the first candidate
// on ties, so results depend only on candidate order.
package targeting

import (
	"github.com/talgya/minebot/internal/world"
)

// Closest returns the candidate nearest to origin. ok is false when
// candidates is empty.
func Closest(origin world.Coord, candidates []world.Coord) (best world.Coord, ok bool) {
	bestDist := -1
	for _, c := range candidates {
		d := world.Manhattan(origin, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist >= 0
}

// ClosestKnownOre returns the ore cell nearest to origin. candidates must be
// non-empty.
func ClosestKnownOre(origin world.Coord, candidates []world.Coord) world.Coord {
	best, _ := Closest(origin, candidates)
	return best
}

// ClosestSafeOre is ClosestKnownOre restricted to cells we can dig without
// risking a concealed trap.
func ClosestSafeOre(m *world.Map, origin world.Coord, candidates []world.Coord) (world.Coord, bool) {
	safe := make([]world.Coord, 0, len(candidates))
	for _, c := range candidates {
		if !m.Unsafe(c) {
			safe = append(safe, c)
		}
	}
	return Closest(origin, safe)
}

// ClosestUnexplored returns the nearest undug cell with unknown ore at x >= minX.
func ClosestUnexplored(m *world.Map, origin world.Coord, minX int) (world.Coord, bool) {
	return Closest(origin, m.Unexplored(minX))
}

// ClosestSafeCell finds a replacement for an unsafe planned target. It is the
// exploration search under another name: unexplored cells have no hole and
// are therefore safe.
func ClosestSafeCell(m *world.Map, origin world.Coord, minX int) (world.Coord, bool) {
	return ClosestUnexplored(m, origin, minX)
}

// ClosestTrapSite returns the nearest safe, rich cell suitable for a trap.
func ClosestTrapSite(m *world.Map, origin world.Coord, minOre int) (world.Coord, bool) {
	return Closest(origin, m.TrapSites(minOre))
}
