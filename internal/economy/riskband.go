package economy

import (
	"github.com/talgya/minebot/internal/config"
	"github.com/talgya/minebot/internal/world"
)

// Band is an inclusive row interval on the risk column suspected to hide
// enemy traps. Returning robots route around it.
type Band struct {
	Active bool
	Min    int
	Max    int
}

// Contains reports whether row y lies inside an active band.
func (b Band) Contains(y int) bool {
	return b.Active && y >= b.Min && y <= b.Max
}

// Exit returns the row a robot at row y should use to leave the band: just
// above it from the upper half, just below it otherwise. The result is
// clamped to [0, height).
func (b Band) Exit(y, height int) int {
	mid := (b.Min + b.Max) / 2
	row := b.Max + 1
	if y <= mid {
		row = b.Min - 1
	}
	if row < 0 {
		row = b.Max + 1
	}
	if row >= height {
		row = b.Min - 1
	}
	if row < 0 {
		row = 0
	}
	return row
}

// EstimateBand looks for a contiguous run of foreign holes on the risk
// column. A few enemy digs next to the home column usually mean traps; many
// scattered ones mean the opponent is just exploring.
func EstimateBand(m *world.Map, cfg config.RiskBand) Band {
	dug := 0
	best, bestStart := 0, -1
	run, runStart := 0, -1

	for y := 0; y < m.Height; y++ {
		cell := m.Cell(world.Coord{X: cfg.Column, Y: y})
		suspicious := cell != nil && cell.Hole && !cell.SelfDug && !cell.Trap
		if suspicious {
			dug++
		}

		if suspicious && y >= cfg.MinRow && y <= cfg.MaxRow {
			if run == 0 {
				runStart = y
			}
			run++
			if run > best {
				best, bestStart = run, runStart
			}
			continue
		}
		run = 0
	}

	if dug > cfg.ExploringThreshold || best <= cfg.MinRun {
		return Band{}
	}

	b := Band{Active: true, Min: bestStart - 1, Max: bestStart + best}
	if b.Min < 0 {
		b.Min = 0
	}
	if b.Max >= m.Height {
		b.Max = m.Height - 1
	}
	return b
}
