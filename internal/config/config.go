// Package config loads the strategy file. Every threshold the scheduler
// consults lives here, so a match instance never reads ambient globals.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/minebot/internal/world"
)

// Strategy is the full set of tunables for one match.
type Strategy struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	MaxTurns   int `yaml:"max_turns"`
	HomeColumn int `yaml:"home_column"`

	// SpreadHarvest zeroes a targeted cell instead of decrementing it, so the
	// next robot in the same turn picks a different cell.
	SpreadHarvest bool `yaml:"spread_harvest"`

	// AggressiveTurn is the turn after which harvest ignores cell safety
	// when no safe ore is known.
	AggressiveTurn int `yaml:"aggressive_turn"`

	Explore Explore  `yaml:"explore"`
	Radar   Radar    `yaml:"radar"`
	Trap    Trap     `yaml:"trap"`
	Ambush  Ambush   `yaml:"ambush"`
	Risk    RiskBand `yaml:"risk_band"`
}

// Explore controls blind digging when no ore is known.
type Explore struct {
	EarlyTurns        int `yaml:"early_turns"`         // Turns during which near-home columns are skipped
	EarlyColumnOffset int `yaml:"early_column_offset"` // Minimum x while early
	ColumnOffset      int `yaml:"column_offset"`       // Minimum x afterwards
}

// Radar controls radar placement.
type Radar struct {
	Plan         []world.Coord `yaml:"plan"`          // Initial placement queue, front first
	OreThreshold int           `yaml:"ore_threshold"` // Place radars only while visible safe ore is below this
	ScoutTurns   int           `yaml:"scout_turns"`   // Early window in which idle robots walk toward the next radar spot
	MaxScouts    int           `yaml:"max_scouts"`    // Robots allowed to do so per turn
}

// Trap controls ordinary trap placement.
type Trap struct {
	Enabled    bool `yaml:"enabled"`
	MinOre     int  `yaml:"min_ore"`     // Only trap cells with more ore than this
	ReadyTurns int  `yaml:"ready_turns"` // Turns the cooldown must have been zero
	CutoffTurn int  `yaml:"cutoff_turn"` // No new traps from this turn on
}

// Ambush controls the dedicated trap operator that builds a chained trap line
// and detonates it under enemy robots.
type Ambush struct {
	Enabled       bool          `yaml:"enabled"`
	Operator      int           `yaml:"operator"` // Index of the operator in observation order
	Line          []world.Coord `yaml:"line"`
	PatternCutoff int           `yaml:"pattern_cutoff"` // Stop laying traps on the line from this turn
	TriggerCutoff int           `yaml:"trigger_cutoff"` // Stop considering the strategy from this turn
	MinKills      int           `yaml:"min_kills"`      // Enemy robots that must be inside the blast
}

// RiskBand controls the home-column trap prediction heuristic.
type RiskBand struct {
	Enabled            bool `yaml:"enabled"`
	Column             int  `yaml:"column"`
	TurnLimit          int  `yaml:"turn_limit"`
	MinAgents          int  `yaml:"min_agents"`
	MinRow             int  `yaml:"min_row"`
	MaxRow             int  `yaml:"max_row"`
	ExploringThreshold int  `yaml:"exploring_threshold"`
	MinRun             int  `yaml:"min_run"`
}

// Default returns the strategy used for ranked matches.
func Default() Strategy {
	return Strategy{
		Width:          30,
		Height:         15,
		MaxTurns:       200,
		HomeColumn:     0,
		SpreadHarvest:  true,
		AggressiveTurn: 160,
		Explore: Explore{
			EarlyTurns:        15,
			EarlyColumnOffset: 5,
			ColumnOffset:      1,
		},
		Radar: Radar{
			Plan: []world.Coord{
				{X: 6, Y: 7}, {X: 10, Y: 3}, {X: 10, Y: 11}, {X: 14, Y: 7},
				{X: 18, Y: 3}, {X: 18, Y: 11}, {X: 22, Y: 7}, {X: 26, Y: 3},
				{X: 26, Y: 11}, {X: 14, Y: 0}, {X: 14, Y: 14}, {X: 28, Y: 7},
			},
			OreThreshold: 12,
			ScoutTurns:   10,
			MaxScouts:    1,
		},
		Trap: Trap{
			Enabled:    true,
			MinOre:     1,
			ReadyTurns: 3,
			CutoffTurn: 120,
		},
		Ambush: Ambush{
			Enabled:  false,
			Operator: 4,
			Line: []world.Coord{
				{X: 1, Y: 5}, {X: 1, Y: 6}, {X: 1, Y: 7}, {X: 1, Y: 8}, {X: 1, Y: 9},
			},
			PatternCutoff: 60,
			TriggerCutoff: 195,
			MinKills:      2,
		},
		Risk: RiskBand{
			Enabled:            false,
			Column:             1,
			TurnLimit:          100,
			MinAgents:          3,
			MinRow:             2,
			MaxRow:             12,
			ExploringThreshold: 6,
			MinRun:             2,
		},
	}
}

// Load reads a YAML strategy file over the defaults. Keys missing from the
// file keep their default values.
func Load(path string) (Strategy, error) {
	s := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read strategy: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate rejects strategies the scheduler cannot run.
func (s Strategy) Validate() error {
	var errs []error
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid %dx%d must be positive", s.Width, s.Height))
	}
	if s.HomeColumn < 0 || s.HomeColumn >= s.Width {
		errs = append(errs, fmt.Errorf("home_column %d outside grid", s.HomeColumn))
	}
	inGrid := func(c world.Coord) bool {
		return c.X >= 0 && c.X < s.Width && c.Y >= 0 && c.Y < s.Height
	}
	for _, c := range s.Radar.Plan {
		if !inGrid(c) {
			errs = append(errs, fmt.Errorf("radar plan target (%s) outside grid", c))
		}
	}
	for _, c := range s.Ambush.Line {
		if !inGrid(c) {
			errs = append(errs, fmt.Errorf("ambush line cell (%s) outside grid", c))
		}
	}
	if s.Ambush.Enabled && len(s.Ambush.Line) == 0 {
		errs = append(errs, errors.New("ambush enabled with an empty line"))
	}
	if s.Risk.Enabled && s.Risk.MinRow > s.Risk.MaxRow {
		errs = append(errs, fmt.Errorf("risk_band rows %d..%d inverted", s.Risk.MinRow, s.Risk.MaxRow))
	}
	return errors.Join(errs...)
}
