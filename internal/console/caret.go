package console

import "github.com/SzymonKubica/game-console-sub000/internal/grid"

// Caret is the user's grid cursor. It moves independently of the simulation
// and wraps at the board edges.
type Caret struct {
	Pos        grid.Position
	rows, cols int
}

func newCaret(rows, cols int) Caret {
	return Caret{Pos: grid.Position{Row: rows / 2, Col: cols / 2}, rows: rows, cols: cols}
}

// Move shifts the caret one cell and returns its previous position.
func (c *Caret) Move(d Direction) grid.Position {
	prev := c.Pos
	switch d {
	case Up:
		c.Pos.Row = (c.Pos.Row - 1 + c.rows) % c.rows
	case Down:
		c.Pos.Row = (c.Pos.Row + 1) % c.rows
	case Left:
		c.Pos.Col = (c.Pos.Col - 1 + c.cols) % c.cols
	case Right:
		c.Pos.Col = (c.Pos.Col + 1) % c.cols
	}
	return prev
}
