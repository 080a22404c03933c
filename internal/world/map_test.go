package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellSafety(t *testing.T) {
	t.Run("foreign hole is unsafe", func(t *testing.T) {
		c := Cell{Hole: true, SelfDug: false}
		assert.True(t, c.Unsafe())
	})
	t.Run("own hole is safe", func(t *testing.T) {
		c := Cell{Hole: true, SelfDug: true}
		assert.False(t, c.Unsafe())
	})
	t.Run("no hole is always safe", func(t *testing.T) {
		assert.False(t, (&Cell{Hole: false, SelfDug: false}).Unsafe())
		assert.False(t, (&Cell{Hole: false, SelfDug: true}).Unsafe())
	})
}

func TestMapBounds(t *testing.T) {
	m := NewMap(30, 15)
	assert.True(t, m.InBounds(Coord{X: 0, Y: 0}))
	assert.True(t, m.InBounds(Coord{X: 29, Y: 14}))
	assert.False(t, m.InBounds(Coord{X: 30, Y: 0}))
	assert.False(t, m.InBounds(DeadCoord))
	assert.Nil(t, m.Cell(Coord{X: -1, Y: 3}))

	cell := m.Cell(Coord{X: 4, Y: 9})
	require.NotNil(t, cell)
	assert.Equal(t, Coord{X: 4, Y: 9}, cell.Coord())
	assert.Equal(t, OreUnknown, cell.Ore)
	assert.True(t, m.Unsafe(DeadCoord), "off-grid cells are never safe")
}

func TestObserveStampsTurnDug(t *testing.T) {
	m := NewMap(5, 5)
	c := Coord{X: 2, Y: 2}

	m.Observe(c, 2, false, 0)
	assert.Equal(t, -1, m.Cell(c).TurnDug)

	m.Observe(c, 1, true, 7)
	assert.Equal(t, 7, m.Cell(c).TurnDug)

	m.Observe(c, 1, true, 9)
	assert.Equal(t, 7, m.Cell(c).TurnDug, "only the first sighting counts")

	m.Observe(c, -5, true, 10)
	assert.Equal(t, OreUnknown, m.Cell(c).Ore)
}

func TestDeviceFlagsAreTransient(t *testing.T) {
	m := NewMap(5, 5)
	c := Coord{X: 1, Y: 1}
	m.MarkRadar(c)
	m.MarkTrap(c)
	require.True(t, m.Cell(c).Radar)
	require.True(t, m.Cell(c).Trap)

	m.BeginSnapshot()
	assert.False(t, m.Cell(c).Radar)
	assert.False(t, m.Cell(c).Trap)
}

func TestAttributeDigs(t *testing.T) {
	m := NewMap(5, 5)
	dug := Coord{X: 3, Y: 1}
	missed := Coord{X: 4, Y: 1}
	m.Observe(dug, 0, true, 1)

	m.AttributeDigs([]Coord{dug, missed})
	assert.True(t, m.Cell(dug).SelfDug)
	assert.False(t, m.Cell(missed).SelfDug, "no hole appeared, nothing to attribute")

	// Re-applying a snapshot never clears the attribution.
	m.BeginSnapshot()
	m.Observe(dug, 0, true, 2)
	assert.True(t, m.Cell(dug).SelfDug)
}

func TestScans(t *testing.T) {
	m := NewMap(6, 3)
	m.Observe(Coord{X: 2, Y: 0}, 3, false, 0)
	m.Observe(Coord{X: 4, Y: 1}, 2, true, 0) // foreign hole
	m.Observe(Coord{X: 5, Y: 2}, 1, false, 0)
	m.Observe(Coord{X: 1, Y: 2}, 0, false, 0)
	m.Observe(Coord{X: 3, Y: 2}, OreUnknown, true, 0)
	m.MarkTrap(Coord{X: 5, Y: 2})

	t.Run("known ore skips traps", func(t *testing.T) {
		assert.Equal(t, []Coord{{X: 2, Y: 0}, {X: 4, Y: 1}}, m.KnownOre())
	})

	t.Run("unexplored respects column offset", func(t *testing.T) {
		got := m.Unexplored(4)
		assert.Equal(t, []Coord{{X: 4, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 1}, {X: 4, Y: 2}}, got)
		for _, c := range m.Unexplored(0) {
			assert.NotEqual(t, Coord{X: 3, Y: 2}, c, "holes are not exploration candidates")
			assert.NotEqual(t, Coord{X: 1, Y: 2}, c, "known-empty cells are not unexplored")
		}
	})

	t.Run("trap sites need safe rich cells", func(t *testing.T) {
		assert.Equal(t, []Coord{{X: 2, Y: 0}}, m.TrapSites(1))
		assert.Empty(t, m.TrapSites(3))
	})

	t.Run("own traps", func(t *testing.T) {
		assert.Equal(t, []Coord{{X: 5, Y: 2}}, m.OwnTraps())
	})

	t.Run("safe ore total", func(t *testing.T) {
		assert.Equal(t, 3, m.SafeOreTotal())
	})
}

func TestCoordHelpers(t *testing.T) {
	assert.Equal(t, 7, Manhattan(Coord{X: 0, Y: 5}, Coord{X: 3, Y: 9}))
	assert.Equal(t, "3 9", Coord{X: 3, Y: 9}.String())
	assert.True(t, DeadCoord.Dead())

	n := Coord{X: 2, Y: 2}.Neighbors()
	assert.ElementsMatch(t, []Coord{{X: 3, Y: 2}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3}}, n[:])

	assert.Equal(t, Coord{X: 4, Y: 5}, Coord{X: 0, Y: 5}.Toward(Coord{X: 10, Y: 8}, 4))
	assert.Equal(t, Coord{X: 2, Y: 7}, Coord{X: 0, Y: 5}.Toward(Coord{X: 2, Y: 9}, 4))
	assert.Equal(t, Coord{X: 1, Y: 1}, Coord{X: 1, Y: 1}.Toward(Coord{X: 1, Y: 1}, 4))
}
