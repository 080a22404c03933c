package world

import "fmt"

// OreUnknown marks a cell whose ore content is outside radar coverage.
const OreUnknown = -1

// Cell is a single grid tile as last reported by the referee.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`

	Ore  int  `json:"ore"`  // OreUnknown or >= 0
	Hole bool `json:"hole"` // A hole exists here, dug by anyone

	// SelfDug is set once one of our own digs is attributed to this cell.
	// It is never cleared by snapshot application.
	SelfDug bool `json:"self_dug"`

	// Transient device flags, cleared at the start of every snapshot.
	Radar bool `json:"radar"` // Own radar
	Trap  bool `json:"trap"`  // Own trap (enemy traps are never visible)

	TurnDug int `json:"turn_dug"` // Turn the hole was first seen, -1 if never
}

// Coord returns the cell's position.
func (c *Cell) Coord() Coord {
	return Coord{X: c.X, Y: c.Y}
}

// Unsafe reports whether digging here may hit a concealed enemy trap:
// there is a hole and we did not dig it.
func (c *Cell) Unsafe() bool {
	return c.Hole && !c.SelfDug
}

// KnownOre reports whether the cell is inside radar coverage with ore left.
func (c *Cell) KnownOre() bool {
	return c.Ore != OreUnknown && c.Ore > 0
}

// Map holds the complete grid state. Cells are stored row-major, and every
// scan walks them in that order (y outer, x inner); target selection relies
// on it for deterministic tie-breaks.
type Map struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	cells []Cell
}

// NewMap creates a grid with every cell unknown and undug.
func NewMap(width, height int) *Map {
	m := &Map{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.cells[y*width+x] = Cell{X: x, Y: y, Ore: OreUnknown, TurnDug: -1}
		}
	}
	return m
}

// InBounds returns true if the coordinate lies on the grid.
func (m *Map) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
}

// Cell returns the cell at c, or nil if out of bounds.
func (m *Map) Cell(c Coord) *Cell {
	if !m.InBounds(c) {
		return nil
	}
	return &m.cells[c.Y*m.Width+c.X]
}

// Unsafe is a convenience wrapper; out-of-bounds coordinates are never safe.
func (m *Map) Unsafe(c Coord) bool {
	cell := m.Cell(c)
	return cell == nil || cell.Unsafe()
}

// BeginSnapshot clears the transient device flags before a new snapshot is applied.
func (m *Map) BeginSnapshot() {
	for i := range m.cells {
		m.cells[i].Radar = false
		m.cells[i].Trap = false
	}
}

// Observe writes the reported ore and hole state for one cell.
func (m *Map) Observe(c Coord, ore int, hole bool, turn int) {
	cell := m.Cell(c)
	if cell == nil {
		return
	}
	if ore < 0 {
		ore = OreUnknown
	}
	cell.Ore = ore
	if hole && !cell.Hole {
		cell.TurnDug = turn
	}
	cell.Hole = hole
}

// MarkRadar flags an own radar reported at c this turn.
func (m *Map) MarkRadar(c Coord) {
	if cell := m.Cell(c); cell != nil {
		cell.Radar = true
	}
}

// MarkTrap flags an own trap reported at c this turn.
func (m *Map) MarkTrap(c Coord) {
	if cell := m.Cell(c); cell != nil {
		cell.Trap = true
	}
}

// AttributeDigs marks the given cells as self-dug where a hole now exists.
// Called with last turn's dig set after the new snapshot is observed.
func (m *Map) AttributeDigs(dug []Coord) {
	for _, c := range dug {
		if cell := m.Cell(c); cell != nil && cell.Hole {
			cell.SelfDug = true
		}
	}
}

// Cells returns all cells in scan order.
func (m *Map) Cells() []*Cell {
	out := make([]*Cell, len(m.cells))
	for i := range m.cells {
		out[i] = &m.cells[i]
	}
	return out
}

// KnownOre returns coordinates with known positive ore and no own trap.
func (m *Map) KnownOre() []Coord {
	var out []Coord
	for i := range m.cells {
		c := &m.cells[i]
		if c.KnownOre() && !c.Trap {
			out = append(out, c.Coord())
		}
	}
	return out
}

// Unexplored returns undug, trap-free cells with unknown ore at x >= minX.
func (m *Map) Unexplored(minX int) []Coord {
	var out []Coord
	for i := range m.cells {
		c := &m.cells[i]
		if c.X >= minX && c.Ore == OreUnknown && !c.Hole && !c.Trap {
			out = append(out, c.Coord())
		}
	}
	return out
}

// TrapSites returns safe, trap-free cells we have not dug whose ore exceeds minOre.
func (m *Map) TrapSites(minOre int) []Coord {
	var out []Coord
	for i := range m.cells {
		c := &m.cells[i]
		if !c.SelfDug && c.Ore != OreUnknown && c.Ore > minOre && !c.Trap && !c.Unsafe() {
			out = append(out, c.Coord())
		}
	}
	return out
}

// OwnTraps returns every cell currently reporting an own trap.
func (m *Map) OwnTraps() []Coord {
	var out []Coord
	for i := range m.cells {
		if m.cells[i].Trap {
			out = append(out, m.cells[i].Coord())
		}
	}
	return out
}

// SafeOreTotal sums the ore in known, safe, trap-free cells.
func (m *Map) SafeOreTotal() int {
	total := 0
	for i := range m.cells {
		c := &m.cells[i]
		if c.KnownOre() && !c.Trap && !c.Unsafe() {
			total += c.Ore
		}
	}
	return total
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d)", m.Width, m.Height)
}
