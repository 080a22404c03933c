package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/minebot/internal/world"
)

func TestRegistryKeepsObservationOrder(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []RobotID{7, 3, 5} {
		reg.Observe(id, world.Coord{X: 0, Y: int(id)}, ItemNone)
	}
	reg.Observe(3, world.Coord{X: 1, Y: 3}, ItemNone)

	var ids []RobotID
	for _, r := range reg.Robots() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []RobotID{7, 3, 5}, ids)
	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, RobotID(5), reg.At(2).ID)
	assert.Nil(t, reg.At(3))
	assert.Nil(t, reg.Get(42))
}

func TestRegistryDeathReportedOnce(t *testing.T) {
	reg := NewRegistry()
	reg.Observe(1, world.Coord{X: 0, Y: 4}, ItemNone)
	reg.Observe(2, world.Coord{X: 0, Y: 8}, ItemNone)

	assert.True(t, reg.Observe(1, world.DeadCoord, ItemNone))
	assert.False(t, reg.Observe(1, world.DeadCoord, ItemNone))
	assert.True(t, reg.Get(1).Dead)
	assert.Equal(t, 1, reg.Alive())
	assert.Equal(t, 2, reg.Len(), "dead robots stay registered")
}

func TestRegistryTracksPreviousItem(t *testing.T) {
	reg := NewRegistry()
	reg.Observe(0, world.Coord{X: 0, Y: 1}, ItemNone)
	reg.Observe(0, world.Coord{X: 0, Y: 1}, ItemRadar)

	r := reg.Get(0)
	require.NotNil(t, r)
	assert.Equal(t, ItemNone, r.PrevItem)
	assert.Equal(t, ItemRadar, r.Item)

	r.AwaitingItem = true
	assert.False(t, r.Consumed(ItemRadar), "just picked it up")

	reg.Observe(0, world.Coord{X: 5, Y: 1}, ItemNone)
	assert.True(t, r.Consumed(ItemRadar))

	r.ClearTask()
	assert.False(t, r.Consumed(ItemRadar))
	assert.Equal(t, TaskUnassigned, r.Task)
	assert.Nil(t, r.Target)
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Command{Kind: CommandDig, Target: world.Coord{X: 5, Y: 5}}, "DIG 5 5"},
		{Command{Kind: CommandMove, Target: world.Coord{X: 0, Y: 7}}, "MOVE 0 7"},
		{Command{Kind: CommandRequest, Item: ItemRadar}, "REQUEST RADAR"},
		{Command{Kind: CommandRequest, Item: ItemTrap}, "REQUEST TRAP"},
		{Command{Kind: CommandWait}, "WAIT"},
		{Command{}, "WAIT"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.String())
		})
	}
}
