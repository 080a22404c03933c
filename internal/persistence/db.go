// Package persistence provides a SQLite journal of matches: one row per turn
// and one row per robot command, for post-match review.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Journal wraps a SQLite connection for match recording.
type Journal struct {
	conn *sqlx.DB
}

// MatchRecord is one row of the matches table.
type MatchRecord struct {
	ID        string `db:"id"`
	StartedAt string `db:"started_at"`
	Width     int    `db:"width"`
	Height    int    `db:"height"`
	Strategy  string `db:"strategy"`
	Turns     int    `db:"turns"`
	MyScore   int    `db:"my_score"`
	OppScore  int    `db:"opp_score"`
}

// TurnRecord is one row of the turns table.
type TurnRecord struct {
	MatchID       string `db:"match_id"`
	Turn          int    `db:"turn"`
	MyScore       int    `db:"my_score"`
	OppScore      int    `db:"opp_score"`
	RadarCooldown int    `db:"radar_cooldown"`
	TrapCooldown  int    `db:"trap_cooldown"`
	VisibleOre    int    `db:"visible_ore"`
	Living        int    `db:"living"`
}

// CommandRecord is one row of the commands table.
type CommandRecord struct {
	MatchID string `db:"match_id"`
	Turn    int    `db:"turn"`
	RobotID int    `db:"robot_id"`
	Task    string `db:"task"`
	Command string `db:"command"`
}

// Open opens or creates a journal at the given path.
func Open(path string) (*Journal, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// One writer; keeps the WAL simple and makes every query see the same data.
	conn.SetMaxOpenConns(1)

	j := &Journal{conn: conn}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.conn.Close()
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS matches (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		strategy TEXT NOT NULL,
		turns INTEGER NOT NULL DEFAULT 0,
		my_score INTEGER NOT NULL DEFAULT 0,
		opp_score INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS turns (
		match_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		my_score INTEGER NOT NULL,
		opp_score INTEGER NOT NULL,
		radar_cooldown INTEGER NOT NULL,
		trap_cooldown INTEGER NOT NULL,
		visible_ore INTEGER NOT NULL,
		living INTEGER NOT NULL,
		PRIMARY KEY (match_id, turn)
	);

	CREATE TABLE IF NOT EXISTS commands (
		match_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		robot_id INTEGER NOT NULL,
		task TEXT NOT NULL,
		command TEXT NOT NULL,
		PRIMARY KEY (match_id, turn, robot_id)
	);

	CREATE INDEX IF NOT EXISTS idx_commands_robot ON commands(match_id, robot_id);
	`
	_, err := j.conn.Exec(schema)
	return err
}

// BeginMatch creates a match row and returns its id.
func (j *Journal) BeginMatch(width, height int, strategy string) (string, error) {
	id := uuid.NewString()
	_, err := j.conn.Exec(
		"INSERT INTO matches (id, started_at, width, height, strategy) VALUES (?, ?, ?, ?, ?)",
		id, time.Now().UTC().Format(time.RFC3339), width, height, strategy,
	)
	if err != nil {
		return "", fmt.Errorf("insert match: %w", err)
	}
	slog.Info("journal match started", "match", id)
	return id, nil
}

// RecordTurn writes a turn and its commands in one transaction.
func (j *Journal) RecordTurn(t TurnRecord, cmds []CommandRecord) error {
	tx, err := j.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`INSERT OR REPLACE INTO turns
		(match_id, turn, my_score, opp_score, radar_cooldown, trap_cooldown, visible_ore, living)
		VALUES (:match_id, :turn, :my_score, :opp_score, :radar_cooldown, :trap_cooldown, :visible_ore, :living)`, t)
	if err != nil {
		return fmt.Errorf("insert turn %d: %w", t.Turn, err)
	}

	for _, c := range cmds {
		_, err := tx.NamedExec(`INSERT OR REPLACE INTO commands
			(match_id, turn, robot_id, task, command)
			VALUES (:match_id, :turn, :robot_id, :task, :command)`, c)
		if err != nil {
			return fmt.Errorf("insert command robot %d turn %d: %w", c.RobotID, c.Turn, err)
		}
	}

	return tx.Commit()
}

// EndMatch stores the final turn count and scores.
func (j *Journal) EndMatch(id string, turns, myScore, oppScore int) error {
	_, err := j.conn.Exec(
		"UPDATE matches SET turns = ?, my_score = ?, opp_score = ? WHERE id = ?",
		turns, myScore, oppScore, id,
	)
	return err
}

// Match returns one match row.
func (j *Journal) Match(id string) (MatchRecord, error) {
	var m MatchRecord
	err := j.conn.Get(&m, "SELECT id, started_at, width, height, strategy, turns, my_score, opp_score FROM matches WHERE id = ?", id)
	return m, err
}

// Turns returns every recorded turn of a match in order.
func (j *Journal) Turns(matchID string) ([]TurnRecord, error) {
	var turns []TurnRecord
	err := j.conn.Select(&turns,
		"SELECT match_id, turn, my_score, opp_score, radar_cooldown, trap_cooldown, visible_ore, living FROM turns WHERE match_id = ? ORDER BY turn",
		matchID,
	)
	return turns, err
}

// Commands returns one turn's commands in robot id order.
func (j *Journal) Commands(matchID string, turn int) ([]CommandRecord, error) {
	var cmds []CommandRecord
	err := j.conn.Select(&cmds,
		"SELECT match_id, turn, robot_id, task, command FROM commands WHERE match_id = ? AND turn = ? ORDER BY robot_id",
		matchID, turn,
	)
	return cmds, err
}

// RecentMatches returns the most recent N matches.
func (j *Journal) RecentMatches(limit int) ([]MatchRecord, error) {
	var matches []MatchRecord
	err := j.conn.Select(&matches,
		"SELECT id, started_at, width, height, strategy, turns, my_score, opp_score FROM matches ORDER BY started_at DESC LIMIT ?",
		limit,
	)
	return matches, err
}
