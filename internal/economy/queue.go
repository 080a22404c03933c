package economy

import (
	"slices"

	"github.com/talgya/minebot/internal/world"
)

// PlacementQueue is the ordered list of planned radar targets.
// Targets are consumed from the front; a target whose radar was lost goes
// back to the front.
type PlacementQueue struct {
	targets []world.Coord
}

// NewPlacementQueue creates a queue holding a copy of plan.
func NewPlacementQueue(plan []world.Coord) *PlacementQueue {
	return &PlacementQueue{targets: slices.Clone(plan)}
}

// Len returns the number of queued targets.
func (q *PlacementQueue) Len() int {
	return len(q.targets)
}

// Peek returns the front target without removing it.
func (q *PlacementQueue) Peek() (world.Coord, bool) {
	if len(q.targets) == 0 {
		return world.Coord{}, false
	}
	return q.targets[0], true
}

// Pop removes and returns the front target.
func (q *PlacementQueue) Pop() (world.Coord, bool) {
	c, ok := q.Peek()
	if ok {
		q.targets = q.targets[1:]
	}
	return c, ok
}

// PushFront makes c the next target handed out. A target already queued is
// moved rather than duplicated.
func (q *PlacementQueue) PushFront(c world.Coord) {
	if i := slices.Index(q.targets, c); i >= 0 {
		q.targets = slices.Delete(q.targets, i, i+1)
	}
	q.targets = slices.Insert(q.targets, 0, c)
}

// Targets returns a copy of the queue, front first.
func (q *PlacementQueue) Targets() []world.Coord {
	return slices.Clone(q.targets)
}
