// Package world provides the square mining grid, per-cell state, and spatial scans.
// Coordinates are (x, y) with x growing away from the home column.
package world

import "fmt"

// Coord is a cell position on the grid.
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// DeadCoord is where the referee reports destroyed robots.
var DeadCoord = Coord{X: -1, Y: -1}

// Dead reports whether the coordinate is the destroyed-robot sentinel.
func (c Coord) Dead() bool {
	return c == DeadCoord
}

// String formats the coordinate the way commands expect it: "x y".
func (c Coord) String() string {
	return fmt.Sprintf("%d %d", c.X, c.Y)
}

// NeighborDirections defines the four orthogonal neighbor offsets.
var NeighborDirections = [4]Coord{
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
}

// Neighbors returns the four orthogonally adjacent coordinates.
// Callers filter out-of-bounds results with Map.InBounds.
func (c Coord) Neighbors() [4]Coord {
	var result [4]Coord
	for i, dir := range NeighborDirections {
		result[i] = Coord{X: c.X + dir.X, Y: c.Y + dir.Y}
	}
	return result
}

// Manhattan returns |dx| + |dy| between two coordinates.
func Manhattan(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Toward returns the coordinate reached by walking at most steps cells from
// c toward target, horizontal distance first.
func (c Coord) Toward(target Coord, steps int) Coord {
	out := c
	for steps > 0 && out.X != target.X {
		if target.X > out.X {
			out.X++
		} else {
			out.X--
		}
		steps--
	}
	for steps > 0 && out.Y != target.Y {
		if target.Y > out.Y {
			out.Y++
		} else {
			out.Y--
		}
		steps--
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
