package combat

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gridbattle/internal/config"
	"gridbattle/internal/grid"
)

var ErrUnknownTile = errors.New("combat: unknown tile character")

// FormatError reports where the battlefield text is malformed.
// Line and Column are 1-based; both are 0 when the whole input is at fault.
type FormatError struct {
	Line   int
	Column int
	Char   rune
	Err    error
}

func (e *FormatError) Error() string {
	switch {
	case e.Char != 0:
		return fmt.Sprintf("line %d, column %d: %q: %v", e.Line, e.Column, e.Char, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *FormatError) Unwrap() error { return e.Err }

func ParseReader(r io.Reader, rules config.Rules) (*System, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("combat: read input: %w", err)
	}
	return Parse(string(b), rules)
}

// Parse builds a System from the battlefield text. Actor ids follow the
// row-major scan, so the same text always yields the same System.
func Parse(text string, rules config.Rules) (*System, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r", ""))
	if text == "" {
		return nil, &FormatError{Err: grid.ErrEmptyGrid}
	}

	s := &System{}
	lines := strings.Split(text, "\n")
	rows := make([][]grid.Tile, 0, len(lines))
	for y, line := range lines {
		if y > 0 && len(line) != len(lines[0]) {
			return nil, &FormatError{Line: y + 1, Err: grid.ErrNonRectangular}
		}
		row := make([]grid.Tile, 0, len(line))
		for x, ch := range line {
			switch ch {
			case '#':
				row = append(row, grid.WallTile())
			case '.':
				row = append(row, grid.EmptyTile())
			case 'E', 'G':
				sp := Elf
				if ch == 'G' {
					sp = Goblin
				}
				id := s.spawn(sp, grid.Position{X: x, Y: y}, rules)
				row = append(row, grid.ActorTile(id))
			default:
				return nil, &FormatError{Line: y + 1, Column: x + 1, Char: ch, Err: ErrUnknownTile}
			}
		}
		rows = append(rows, row)
	}

	field, err := grid.FromTiles(rows)
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	s.field = field
	return s, nil
}

func (s *System) spawn(sp Species, pos grid.Position, rules config.Rules) grid.ActorID {
	id := grid.ActorID(len(s.actors))
	s.actors = append(s.actors, Actor{
		ID:      id,
		Species: sp,
		HP:      rules.HitPoints,
		Power:   rules.AttackPower,
		Pos:     pos,
	})
	s.alive[sp]++
	s.initial[sp]++
	return id
}
