package grid

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

type Position struct{ X, Y int }

// Less orders positions row-major: y first, then x.
func (p Position) Less(o Position) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// Compare is Less in three-way form, for slices.SortFunc.
func (p Position) Compare(o Position) int {
	switch {
	case p == o:
		return 0
	case p.Less(o):
		return -1
	default:
		return 1
	}
}

// Neighbors returns the orthogonal neighbours in up, left, right, down order,
// which is also their row-major order.
func (p Position) Neighbors() [4]Position {
	return [4]Position{
		{X: p.X, Y: p.Y - 1},
		{X: p.X - 1, Y: p.Y},
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
	}
}

func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func (p Position) Adjacent(o Position) bool { return p.Manhattan(o) == 1 }

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

func abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
