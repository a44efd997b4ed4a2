package grid

import "sort"

// Diff is a single-cell transition to State.
type Diff struct {
	Pos   Position
	State Cell
}

// DiffSet is an ordered set of diffs, canonically row-major with at most one
// diff per position.
type DiffSet []Diff

// Canonical reports whether ds is strictly row-major (sorted, no duplicates).
func (ds DiffSet) Canonical() bool {
	for i := 1; i < len(ds); i++ {
		if !ds[i-1].Pos.Less(ds[i].Pos) {
			return false
		}
	}
	return true
}

// Sort puts ds into row-major order in place.
func (ds DiffSet) Sort() {
	sort.Slice(ds, func(i, j int) bool { return ds[i].Pos.Less(ds[j].Pos) })
}

// Births counts diffs that bring a cell to life.
func (ds DiffSet) Births() int {
	n := 0
	for _, d := range ds {
		if d.State == Alive {
			n++
		}
	}
	return n
}

// Deaths counts diffs that empty a cell.
func (ds DiffSet) Deaths() int {
	return len(ds) - ds.Births()
}

// Inverse returns the diffs that undo ds, in the same order.
func (ds DiffSet) Inverse() DiffSet {
	inv := make(DiffSet, len(ds))
	for i, d := range ds {
		inv[i] = Diff{Pos: d.Pos, State: d.State.Flip()}
	}
	return inv
}

// Apply writes every diff into g.
func Apply(g *Grid, ds DiffSet) {
	for _, d := range ds {
		g.Set(d.Pos, d.State)
	}
}

// Unapply restores the cells ds replaced. Because diffs are only emitted on a
// real transition the previous value is the flip of the new one.
func Unapply(g *Grid, ds DiffSet) {
	for i := len(ds) - 1; i >= 0; i-- {
		g.Set(ds[i].Pos, ds[i].State.Flip())
	}
}
