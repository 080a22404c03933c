package agents

import (
	"github.com/talgya/minebot/internal/world"
)

// Registry holds every robot ever seen, keyed by id, plus the order in which
// they were first observed. Commands are emitted in that order.
type Registry struct {
	index map[RobotID]*Robot
	order []RobotID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[RobotID]*Robot)}
}

// Observe applies one sighting. Known robots are updated in place; unknown
// ids get a fresh Unassigned record. died is true only on the sighting that
// first reports the robot at the dead sentinel.
func (r *Registry) Observe(id RobotID, pos world.Coord, item Item) (died bool) {
	rb, ok := r.index[id]
	if !ok {
		rb = &Robot{ID: id, Pos: pos, Item: item, PrevItem: item}
		r.index[id] = rb
		r.order = append(r.order, id)
	} else {
		rb.PrevItem = rb.Item
		rb.Item = item
		rb.Pos = pos
	}

	if pos.Dead() && !rb.Dead {
		rb.Dead = true
		return true
	}
	return false
}

// Get returns the robot with the given id, or nil.
func (r *Registry) Get(id RobotID) *Robot {
	return r.index[id]
}

// Robots returns every robot in first-observation order, dead ones included.
func (r *Registry) Robots() []*Robot {
	out := make([]*Robot, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.index[id])
	}
	return out
}

// Alive counts robots not marked dead.
func (r *Registry) Alive() int {
	n := 0
	for _, rb := range r.index {
		if !rb.Dead {
			n++
		}
	}
	return n
}

// Len returns the number of robots ever observed.
func (r *Registry) Len() int {
	return len(r.order)
}

// At returns the robot observed n-th (0-based), or nil.
func (r *Registry) At(n int) *Robot {
	if n < 0 || n >= len(r.order) {
		return nil
	}
	return r.index[r.order[n]]
}
