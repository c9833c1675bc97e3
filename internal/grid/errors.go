package grid

import "errors"

var (
	// ErrEmptyGrid indicates the input has no rows or no columns.
	ErrEmptyGrid = errors.New("grid: map must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrOutOfBounds indicates a write outside the map.
	ErrOutOfBounds = errors.New("grid: position out of bounds")
	// ErrOccupied indicates a move onto a tile that is not empty.
	ErrOccupied = errors.New("grid: destination tile is not empty")
)
