package protocol

import (
	"bufio"
	"fmt"
	"io"

	"github.com/talgya/minebot/internal/agents"
)

// Writer emits one command line per robot and flushes after every turn.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write prints the turn's commands in order. Labels are appended after the
// command, which the referee shows next to the robot.
func (w *Writer) Write(cmds []agents.Command) error {
	for _, c := range cmds {
		line := c.String()
		if c.Label != "" {
			line += " " + c.Label
		}
		if _, err := fmt.Fprintln(w.w, line); err != nil {
			return fmt.Errorf("write command for robot %d: %w", c.RobotID, err)
		}
	}
	return w.w.Flush()
}
