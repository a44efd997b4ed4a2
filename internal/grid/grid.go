package grid

import (
	"fmt"
	"strings"
)

// Cell is the binary state of a single board square.
type Cell uint8

const (
	Empty Cell = iota
	Alive
)

// Flip swaps Empty and Alive.
func (c Cell) Flip() Cell {
	if c == Alive {
		return Empty
	}
	return Alive
}

func (c Cell) String() string {
	if c == Alive {
		return "alive"
	}
	return "empty"
}

// Topology selects the adjacency rule at the board edges.
type Topology uint8

const (
	// Bounded boards exclude neighbors outside the extents.
	Bounded Topology = iota
	// Toroidal boards wrap both axes modulo their dimension.
	Toroidal
)

func (t Topology) String() string {
	if t == Toroidal {
		return "toroidal"
	}
	return "bounded"
}

// ParseTopology accepts "bounded" or "toroidal" (plus "torus"/"wrap" aliases).
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bounded", "finite", "":
		return Bounded, nil
	case "toroidal", "torus", "wrap":
		return Toroidal, nil
	}
	return Bounded, fmt.Errorf("unknown topology %q", s)
}

// MarshalText lets Topology round-trip through yaml and flags.
func (t Topology) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Topology) UnmarshalText(b []byte) error {
	v, err := ParseTopology(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Position addresses a cell by row and column.
type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Less orders positions row-major.
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// MinSize is the smallest accepted number of rows or columns.
const MinSize = 3

// Grid stores cells in row-major order.
type Grid struct {
	rows, cols int
	topology   Topology
	cells      []Cell
}

// New allocates an empty board.
func New(rows, cols int, topology Topology) (*Grid, error) {
	if rows < MinSize || cols < MinSize {
		return nil, fmt.Errorf("%w: got %dx%d", ErrTooSmall, rows, cols)
	}
	return &Grid{
		rows:     rows,
		cols:     cols,
		topology: topology,
		cells:    make([]Cell, rows*cols),
	}, nil
}

func (g *Grid) Rows() int          { return g.rows }
func (g *Grid) Cols() int          { return g.cols }
func (g *Grid) Topology() Topology { return g.topology }
func (g *Grid) Size() int          { return len(g.cells) }

// InBounds reports whether p addresses a cell of the board.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Wrap maps any position onto the board modulo its dimensions.
func (g *Grid) Wrap(p Position) Position {
	p.Row = (p.Row%g.rows + g.rows) % g.rows
	p.Col = (p.Col%g.cols + g.cols) % g.cols
	return p
}

func (g *Grid) index(p Position) int {
	if !g.InBounds(p) {
		panic(&BoundsError{Pos: p, Rows: g.rows, Cols: g.cols})
	}
	return p.Row*g.cols + p.Col
}

// At returns the cell at p. It panics when p is off the board.
func (g *Grid) At(p Position) Cell {
	return g.cells[g.index(p)]
}

// Alive is shorthand for At(p) == Alive.
func (g *Grid) Alive(p Position) bool {
	return g.At(p) == Alive
}

// Set writes c at p. It panics when p is off the board.
func (g *Grid) Set(p Position, c Cell) {
	g.cells[g.index(p)] = c
}

// Toggle returns the one-element DiffSet that flips the cell at p. The board
// itself is not modified; the diff goes through Apply like any other.
func (g *Grid) Toggle(p Position) DiffSet {
	return DiffSet{{Pos: p, State: g.At(p).Flip()}}
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		if c == Alive {
			n++
		}
	}
	return n
}

// LiveCells lists live positions in row-major order.
func (g *Grid) LiveCells() []Position {
	live := make([]Position, 0)
	for i, c := range g.cells {
		if c == Alive {
			live = append(live, Position{Row: i / g.cols, Col: i % g.cols})
		}
	}
	return live
}

// Clear sets every cell to Empty.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

// Clone returns an independent copy of the board.
func (g *Grid) Clone() *Grid {
	c := &Grid{rows: g.rows, cols: g.cols, topology: g.topology, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both boards have the same shape, topology and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.rows != o.rows || g.cols != o.cols || g.topology != o.topology {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Diff returns the DiffSet that turns g into target.
func (g *Grid) Diff(target *Grid) (DiffSet, error) {
	if g.rows != target.rows || g.cols != target.cols {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, g.rows, g.cols, target.rows, target.cols)
	}
	ds := make(DiffSet, 0)
	for i := range g.cells {
		if g.cells[i] != target.cells[i] {
			ds = append(ds, Diff{Pos: Position{Row: i / g.cols, Col: i % g.cols}, State: target.cells[i]})
		}
	}
	return ds, nil
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(p Position, c Cell)) {
	for i, c := range g.cells {
		fn(Position{Row: i / g.cols, Col: i % g.cols}, c)
	}
}

// String renders the board as Life plaintext rows ('O' alive, '.' empty).
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(len(g.cells) + g.rows)
	for r := 0; r < g.rows; r++ {
		for _, c := range g.cells[r*g.cols : (r+1)*g.cols] {
			if c == Alive {
				b.WriteByte('O')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
