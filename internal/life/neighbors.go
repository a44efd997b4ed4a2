package life

import "github.com/SzymonKubica/game-console-sub000/internal/grid"

// neighborhood lists the eight Moore offsets in row-major order.
var neighborhood = [8]grid.Position{
	{Row: -1, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: 1},
	{Row: 0, Col: -1}, {Row: 0, Col: 1},
	{Row: 1, Col: -1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
}

// Neighbors returns the positions adjacent to p under the board topology.
// Bounded boards drop positions off the edge; toroidal boards wrap them.
func Neighbors(g *grid.Grid, p grid.Position) []grid.Position {
	out := make([]grid.Position, 0, len(neighborhood))
	for _, d := range neighborhood {
		n := grid.Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if g.Topology() == grid.Toroidal {
			out = append(out, g.Wrap(n))
			continue
		}
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// CountAlive counts live neighbors of p, in [0, 8].
func CountAlive(g *grid.Grid, p grid.Position) int {
	rows, cols := g.Rows(), g.Cols()
	toroidal := g.Topology() == grid.Toroidal
	n := 0
	for _, d := range neighborhood {
		r, c := p.Row+d.Row, p.Col+d.Col
		if toroidal {
			r = (r + rows) % rows
			c = (c + cols) % cols
		} else if r < 0 || r >= rows || c < 0 || c >= cols {
			continue
		}
		if g.At(grid.Position{Row: r, Col: c}) == grid.Alive {
			n++
		}
	}
	return n
}
