package life

import "github.com/SzymonKubica/game-console-sub000/internal/grid"

// Step computes one Conway generation as a DiffSet. The board is read only:
// every neighbor count sees the prior generation, so no transition computed
// earlier in the scan can influence a later one. Unchanged cells produce no
// diff and the result is in row-major order.
func Step(g *grid.Grid) grid.DiffSet {
	return StepRule(g, Conway)
}

// StepRule is Step for an arbitrary birth/survival rule.
func StepRule(g *grid.Grid, rule Rule) grid.DiffSet {
	rows, cols := g.Rows(), g.Cols()
	ds := make(grid.DiffSet, 0)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := grid.Position{Row: r, Col: c}
			alive := g.At(p) == grid.Alive
			next := rule.Next(alive, CountAlive(g, p))
			if next == alive {
				continue
			}
			state := grid.Empty
			if next {
				state = grid.Alive
			}
			ds = append(ds, grid.Diff{Pos: p, State: state})
		}
	}
	return ds
}

// Advance steps g in place n times and returns the number of cells changed.
func Advance(g *grid.Grid, rule Rule, n int) int {
	changed := 0
	for i := 0; i < n; i++ {
		ds := StepRule(g, rule)
		grid.Apply(g, ds)
		changed += len(ds)
	}
	return changed
}
