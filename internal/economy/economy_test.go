package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/minebot/internal/agents"
	"github.com/talgya/minebot/internal/config"
	"github.com/talgya/minebot/internal/world"
)

func TestPlacementQueue(t *testing.T) {
	a, b, c := world.Coord{X: 6, Y: 7}, world.Coord{X: 10, Y: 3}, world.Coord{X: 10, Y: 11}
	plan := []world.Coord{a, b, c}
	q := NewPlacementQueue(plan)
	plan[0] = world.Coord{}

	got, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, a, got, "the queue owns a copy of the plan")
	assert.Equal(t, 2, q.Len())

	q.PushFront(a)
	front, _ := q.Peek()
	assert.Equal(t, a, front)

	q.PushFront(c)
	assert.Equal(t, []world.Coord{c, a, b}, q.Targets(), "requeueing moves, never duplicates")

	for q.Len() > 0 {
		q.Pop()
	}
	_, ok = q.Pop()
	assert.False(t, ok)
}

func newEconomy(t *testing.T) (*Economy, *world.Map) {
	t.Helper()
	cfg := config.Default()
	return New(cfg), world.NewMap(cfg.Width, cfg.Height)
}

func TestBeginTurnResetsPerTurnState(t *testing.T) {
	e, m := newEconomy(t)
	m.Observe(world.Coord{X: 5, Y: 5}, 3, false, 0)
	m.Observe(world.Coord{X: 7, Y: 5}, 2, true, 0) // foreign hole: not counted

	e.BeginTurn(TurnInfo{Turn: 0}, m)
	assert.Equal(t, 3, e.VisibleOre)

	e.MarkRequested(agents.ItemRadar)
	e.RecordDig(world.Coord{X: 5, Y: 5})
	e.Scouts = 1
	assert.True(t, e.Requested(agents.ItemRadar))
	assert.False(t, e.Requested(agents.ItemTrap))

	e.BeginTurn(TurnInfo{Turn: 1}, m)
	assert.False(t, e.Requested(agents.ItemRadar))
	assert.Empty(t, e.Dug())
	assert.Zero(t, e.Scouts)
}

func TestRadarFavorable(t *testing.T) {
	e, m := newEconomy(t)

	e.BeginTurn(TurnInfo{RadarCooldown: 0}, m)
	assert.True(t, e.RadarFavorable())

	e.MarkRequested(agents.ItemRadar)
	assert.False(t, e.RadarFavorable(), "one radar request per turn")

	e.BeginTurn(TurnInfo{RadarCooldown: 2}, m)
	assert.False(t, e.RadarFavorable())

	for _, x := range []int{5, 6, 7, 8} {
		m.Observe(world.Coord{X: x, Y: 1}, 3, false, 0)
	}
	e.BeginTurn(TurnInfo{RadarCooldown: 0}, m)
	assert.Equal(t, 12, e.VisibleOre)
	assert.False(t, e.RadarFavorable(), "enough ore in sight")
}

func TestLostRadarIsRequeuedFirst(t *testing.T) {
	e, m := newEconomy(t)
	e.BeginTurn(TurnInfo{}, m)

	first, _ := e.AssignRadar()
	second, _ := e.AssignRadar()
	assert.True(t, e.Pending(first))

	e.RadarPlaced(first)
	e.RadarPlaced(second)
	assert.False(t, e.Pending(first))
	assert.Equal(t, []world.Coord{first, second}, e.Placed())

	m.BeginSnapshot()
	m.MarkRadar(second)
	lost := e.BeginTurn(TurnInfo{Turn: 5}, m)
	assert.Equal(t, []world.Coord{first}, lost)
	assert.Equal(t, []world.Coord{second}, e.Placed())

	next, ok := e.AssignRadar()
	require.True(t, ok)
	assert.Equal(t, first, next)
}

func TestLostRadarsKeepPlacementOrder(t *testing.T) {
	e, m := newEconomy(t)
	a, _ := e.AssignRadar()
	b, _ := e.AssignRadar()
	e.RadarPlaced(a)
	e.RadarPlaced(b)

	m.BeginSnapshot()
	e.BeginTurn(TurnInfo{}, m)
	targets := e.Queue.Targets()
	assert.Equal(t, []world.Coord{a, b}, targets[:2])
}

func TestRadarAbandonedAndRelocated(t *testing.T) {
	e, _ := newEconomy(t)
	target, _ := e.AssignRadar()

	alt := world.Coord{X: 6, Y: 6}
	e.RelocateRadar(target, alt)
	assert.False(t, e.Pending(target))
	assert.True(t, e.Pending(alt))

	e.RadarAbandoned(alt)
	assert.False(t, e.Pending(alt))
	front, _ := e.Queue.Peek()
	assert.Equal(t, alt, front)
}

func TestTrapReadyTurns(t *testing.T) {
	e, m := newEconomy(t)

	e.BeginTurn(TurnInfo{Turn: 0, TrapCooldown: 0}, m)
	assert.Equal(t, 0, e.TrapReadyTurns())
	e.BeginTurn(TurnInfo{Turn: 3, TrapCooldown: 0}, m)
	assert.Equal(t, 3, e.TrapReadyTurns())

	e.BeginTurn(TurnInfo{Turn: 4, TrapCooldown: 5}, m)
	assert.Equal(t, 0, e.TrapReadyTurns())

	e.BeginTurn(TurnInfo{Turn: 9, TrapCooldown: 0}, m)
	e.BeginTurn(TurnInfo{Turn: 10, TrapCooldown: 0}, m)
	assert.Equal(t, 1, e.TrapReadyTurns())
	assert.Equal(t, 0, e.Cooldown(agents.ItemTrap))
	assert.Equal(t, -1, e.Cooldown(agents.ItemOre))
}

func TestBeginTurnRiskBand(t *testing.T) {
	cfg := config.Default()
	cfg.Risk.Enabled = true
	e := New(cfg)
	m := world.NewMap(cfg.Width, cfg.Height)
	for _, y := range []int{6, 7, 8} {
		m.Observe(world.Coord{X: 1, Y: y}, 0, true, 0)
	}

	e.BeginTurn(TurnInfo{Turn: 10}, m)
	assert.False(t, e.Band.Active, "too few robots to worry")

	e.Living = 5
	e.BeginTurn(TurnInfo{Turn: 10}, m)
	assert.Equal(t, Band{Active: true, Min: 5, Max: 9}, e.Band)

	e.BeginTurn(TurnInfo{Turn: cfg.Risk.TurnLimit}, m)
	assert.False(t, e.Band.Active, "the heuristic expires")
}
