package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrTooSmall is returned for boards below the 3×3 minimum. Smaller
	// toroidal boards would count a cell as its own neighbor.
	ErrTooSmall = errors.New("grid: dimensions below 3x3 minimum")

	// ErrOutOfBounds marks a position outside the board.
	ErrOutOfBounds = errors.New("grid: position out of bounds")

	// ErrDimensionMismatch indicates two boards of different shape.
	ErrDimensionMismatch = errors.New("grid: dimension mismatch")
)

// BoundsError carries the offending position of an out-of-bounds access.
type BoundsError struct {
	Pos        Position
	Rows, Cols int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%v: %v on %dx%d board", ErrOutOfBounds, e.Pos, e.Rows, e.Cols)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
