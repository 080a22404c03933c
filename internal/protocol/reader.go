package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/talgya/minebot/internal/world"
)

// Reader parses the referee's text feed.
type Reader struct {
	Width  int
	Height int

	sc   *bufio.Scanner
	line int
}

// NewReader consumes the initialisation line ("width height").
func NewReader(r io.Reader) (*Reader, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	rd := &Reader{sc: sc}

	ints, err := rd.ints(2)
	if err != nil {
		return nil, fmt.Errorf("read dimensions: %w", err)
	}
	rd.Width, rd.Height = ints[0], ints[1]
	if rd.Width <= 0 || rd.Height <= 0 {
		return nil, fmt.Errorf("line %d: bad dimensions %dx%d", rd.line, rd.Width, rd.Height)
	}
	return rd, nil
}

// Next reads one turn. It returns io.EOF when the feed ends cleanly between turns.
func (r *Reader) Next() (*Frame, error) {
	f := NewFrame(r.Width, r.Height)

	scores, err := r.ints(2)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read scores: %w", err)
	}
	f.MyScore, f.OppScore = scores[0], scores[1]

	for y := 0; y < r.Height; y++ {
		fields, err := r.fields()
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", y, unexpected(err))
		}
		if len(fields) < 2*r.Width {
			return nil, fmt.Errorf("line %d: row %d has %d fields, want %d", r.line, y, len(fields), 2*r.Width)
		}
		for x := 0; x < r.Width; x++ {
			if fields[2*x] != "?" {
				ore, err := strconv.Atoi(fields[2*x])
				if err != nil || ore < 0 {
					return nil, fmt.Errorf("line %d: bad ore %q at (%d,%d)", r.line, fields[2*x], x, y)
				}
				f.Ore[y][x] = ore
			}
			f.Hole[y][x] = fields[2*x+1] == "1"
		}
	}

	header, err := r.ints(3)
	if err != nil {
		return nil, fmt.Errorf("read entity header: %w", unexpected(err))
	}
	count := header[0]
	if count < 0 {
		return nil, fmt.Errorf("line %d: negative entity count %d", r.line, count)
	}
	f.RadarCooldown, f.TrapCooldown = header[1], header[2]

	f.Entities = make([]Entity, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.ints(5)
		if err != nil {
			return nil, fmt.Errorf("read entity %d: %w", i, unexpected(err))
		}
		f.Entities = append(f.Entities, Entity{
			ID:   v[0],
			Kind: EntityKind(v[1]),
			Pos:  world.Coord{X: v[2], Y: v[3]},
			Item: itemFromCode(v[4]),
		})
	}
	return f, nil
}

func (r *Reader) fields() ([]string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	r.line++
	return strings.Fields(r.sc.Text()), nil
}

func (r *Reader) ints(n int) ([]int, error) {
	fields, err := r.fields()
	if err != nil {
		return nil, err
	}
	if len(fields) < n {
		return nil, fmt.Errorf("line %d: got %d fields, want %d", r.line, len(fields), n)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("line %d: field %d: %w", r.line, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// unexpected turns a mid-frame EOF into io.ErrUnexpectedEOF.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
