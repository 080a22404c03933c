// Package agents provides the robot data model, task states, and the registry
// that carries robot state from one turn to the next.
package agents

import (
	"github.com/talgya/minebot/internal/world"
)

// RobotID is the referee-assigned entity id of a robot.
type RobotID int

// Item enumerates what a robot can carry.
type Item uint8

const (
	ItemNone  Item = iota
	ItemRadar      // Utility device: reveals ore around where it is buried
	ItemTrap       // Hazard device: explodes when its cell is dug
	ItemOre        // Harvested ore on its way home
)

// String returns the protocol name of an item.
func (i Item) String() string {
	switch i {
	case ItemRadar:
		return "RADAR"
	case ItemTrap:
		return "TRAP"
	case ItemOre:
		return "ORE"
	default:
		return "NONE"
	}
}

// Task is the closed set of jobs a robot can be working on.
type Task uint8

const (
	TaskUnassigned  Task = iota
	TaskPlaceRadar       // Fetch a radar and bury it at the queued target
	TaskPlaceTrap        // Fetch a trap and bury it on a rich cell
	TaskTrapPattern      // Fill the planned ambush line with traps
	TaskTriggerTrap      // Dig a trap on the ambush line to set off the chain
	TaskHarvest          // Dig ore, or explore for it
	TaskReturn           // Carry ore back to the home column
)

// String returns a short label for logs and command annotations.
func (t Task) String() string {
	switch t {
	case TaskPlaceRadar:
		return "radar"
	case TaskPlaceTrap:
		return "trap"
	case TaskTrapPattern:
		return "pattern"
	case TaskTriggerTrap:
		return "trigger"
	case TaskHarvest:
		return "harvest"
	case TaskReturn:
		return "return"
	default:
		return "idle"
	}
}

// CommandKind enumerates the four command verbs.
type CommandKind uint8

const (
	CommandNone CommandKind = iota
	CommandDig
	CommandMove
	CommandWait
	CommandRequest
)

// Command is one robot's order for the turn.
type Command struct {
	RobotID RobotID
	Kind    CommandKind
	Target  world.Coord // DIG and MOVE
	Item    Item        // REQUEST
	Label   string      // Optional annotation shown by the referee viewer
}

// String renders the command in protocol form, without the label.
func (c Command) String() string {
	switch c.Kind {
	case CommandDig:
		return "DIG " + c.Target.String()
	case CommandMove:
		return "MOVE " + c.Target.String()
	case CommandRequest:
		return "REQUEST " + c.Item.String()
	default:
		return "WAIT"
	}
}

// Robot is one of our robots, persisted across turns.
type Robot struct {
	ID RobotID `json:"id"`

	Pos      world.Coord `json:"pos"`
	Item     Item        `json:"item"`
	PrevItem Item        `json:"prev_item"` // Item at the previous observation

	Task   Task         `json:"task"`
	Target *world.Coord `json:"target,omitempty"`

	// AwaitingItem marks that we asked for a device and have not yet used it.
	AwaitingItem bool `json:"awaiting_item"`

	Dead        bool        `json:"dead"`
	LastCommand CommandKind `json:"last_command"`
}

// Carries reports whether the robot holds the given item.
func (r *Robot) Carries(item Item) bool {
	return r.Item == item
}

// Consumed reports that the robot held item at the previous observation,
// no longer does, and was waiting to use it: the device was buried.
func (r *Robot) Consumed(item Item) bool {
	return r.AwaitingItem && r.PrevItem == item && r.Item != item
}

// ClearTask resets the robot to Unassigned.
func (r *Robot) ClearTask() {
	r.Task = TaskUnassigned
	r.Target = nil
	r.AwaitingItem = false
}

// SetTarget stores a copy of c as the robot's target.
func (r *Robot) SetTarget(c world.Coord) {
	r.Target = &c
}
