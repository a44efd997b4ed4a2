package life

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
)

func newGrid(t *testing.T, rows, cols int, topo grid.Topology) *grid.Grid {
	t.Helper()
	g, err := grid.New(rows, cols, topo)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	return g
}

func fill(g *grid.Grid) {
	g.Each(func(p grid.Position, _ grid.Cell) { g.Set(p, grid.Alive) })
}

func TestCountAliveCorners(t *testing.T) {
	const rows, cols = 6, 8
	corner := grid.Position{Row: 0, Col: 0}
	opposite := grid.Position{Row: rows - 1, Col: cols - 1}

	torus := newGrid(t, rows, cols, grid.Toroidal)
	torus.Set(opposite, grid.Alive)
	if n := CountAlive(torus, corner); n != 1 {
		t.Errorf("toroidal corner should see (R-1,C-1), got %d neighbors", n)
	}

	bounded := newGrid(t, rows, cols, grid.Bounded)
	bounded.Set(opposite, grid.Alive)
	if n := CountAlive(bounded, corner); n != 0 {
		t.Errorf("bounded corner must not see (R-1,C-1), got %d", n)
	}

	fill(bounded)
	if n := CountAlive(bounded, corner); n != 3 {
		t.Errorf("full bounded corner: expected 3, got %d", n)
	}
	for _, p := range Neighbors(bounded, corner) {
		if p == opposite {
			t.Error("bounded neighbors include the opposite corner")
		}
	}
}

func TestCountAliveFullBoard(t *testing.T) {
	tests := []struct {
		name string
		topo grid.Topology
		pos  grid.Position
		want int
	}{
		{"bounded corner", grid.Bounded, grid.Position{Row: 0, Col: 0}, 3},
		{"bounded edge", grid.Bounded, grid.Position{Row: 0, Col: 2}, 5},
		{"bounded interior", grid.Bounded, grid.Position{Row: 2, Col: 2}, 8},
		{"toroidal corner", grid.Toroidal, grid.Position{Row: 0, Col: 0}, 8},
		{"toroidal edge", grid.Toroidal, grid.Position{Row: 4, Col: 2}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(t, 5, 5, tt.topo)
			fill(g)
			if got := CountAlive(g, tt.pos); got != tt.want {
				t.Errorf("CountAlive(%v) = %d, want %d", tt.pos, got, tt.want)
			}
			if got := len(Neighbors(g, tt.pos)); got != tt.want {
				t.Errorf("len(Neighbors(%v)) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestIsolatedCellDies(t *testing.T) {
	g := newGrid(t, 3, 3, grid.Bounded)
	g.Set(grid.Position{Row: 1, Col: 1}, grid.Alive)

	ds := Step(g)
	if len(ds) != 1 {
		t.Fatalf("expected exactly one diff, got %v", ds)
	}
	want := grid.Diff{Pos: grid.Position{Row: 1, Col: 1}, State: grid.Empty}
	if ds[0] != want {
		t.Errorf("got %v, want %v", ds[0], want)
	}
}

func TestStepDoesNotMutate(t *testing.T) {
	g := newGrid(t, 5, 5, grid.Toroidal)
	if err := PlaceCentered(g, mustPattern(t, "blinker")); err != nil {
		t.Fatal(err)
	}
	before := g.Clone()
	Step(g)
	if !g.Equal(before) {
		t.Error("Step modified the board")
	}
}

func TestBlinkerOscillation(t *testing.T) {
	g := newGrid(t, 5, 5, grid.Bounded)
	g.Set(grid.Position{Row: 1, Col: 2}, grid.Alive)
	g.Set(grid.Position{Row: 2, Col: 2}, grid.Alive)
	g.Set(grid.Position{Row: 3, Col: 2}, grid.Alive)
	start := g.Clone()

	ds := Step(g)
	if len(ds) != 4 || !ds.Canonical() {
		t.Fatalf("expected 4 canonical diffs, got %v", ds)
	}
	grid.Apply(g, ds)

	expects := map[grid.Position]bool{{Row: 2, Col: 1}: true, {Row: 2, Col: 2}: true, {Row: 2, Col: 3}: true}
	g.Each(func(p grid.Position, c grid.Cell) {
		if (c == grid.Alive) != expects[p] {
			t.Errorf("cell %v alive=%v, expected %v", p, c == grid.Alive, expects[p])
		}
	})

	grid.Apply(g, Step(g))
	if !g.Equal(start) {
		t.Errorf("blinker did not return after two steps:\n%s", g)
	}
}

func TestGliderTranslates(t *testing.T) {
	g := newGrid(t, 10, 10, grid.Toroidal)
	if err := Place(g, mustPattern(t, "glider"), grid.Position{Row: 8, Col: 8}); err != nil {
		t.Fatal(err)
	}
	original := g.LiveCells()
	if len(original) != 5 {
		t.Fatalf("expected 5 live cells, got %d", len(original))
	}

	for i := 0; i < 4; i++ {
		grid.Apply(g, Step(g))
	}

	want := make(map[grid.Position]bool)
	for _, p := range original {
		want[g.Wrap(grid.Position{Row: p.Row + 1, Col: p.Col + 1})] = true
	}
	got := g.LiveCells()
	if len(got) != len(want) {
		t.Fatalf("expected %d live cells, got %d:\n%s", len(want), len(got), g)
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected live cell %v:\n%s", p, g)
		}
	}
}

func TestStepRoundTrip(t *testing.T) {
	for _, topo := range []grid.Topology{grid.Bounded, grid.Toroidal} {
		for seed := int64(1); seed <= 20; seed++ {
			g := newGrid(t, 7, 9, topo)
			Prepopulate(g, seed, 0.4)
			before := g.Clone()

			ds := Step(g)
			if len(ds) > g.Size() {
				t.Fatalf("%v seed %d: %d diffs exceed board size", topo, seed, len(ds))
			}
			for _, d := range ds {
				if before.At(d.Pos) == d.State {
					t.Fatalf("%v seed %d: diff %v does not change its cell", topo, seed, d)
				}
			}

			grid.Apply(g, ds)
			grid.Unapply(g, ds)
			if !g.Equal(before) {
				t.Fatalf("%v seed %d: unapply(apply(step)) differs from original", topo, seed)
			}
		}
	}
}

func TestStepDeterministic(t *testing.T) {
	a := newGrid(t, 12, 12, grid.Toroidal)
	b := newGrid(t, 12, 12, grid.Toroidal)
	Prepopulate(a, 99, 0.3)
	Prepopulate(b, 99, 0.3)

	da, db := Step(a), Step(b)
	if len(da) != len(db) {
		t.Fatalf("diff lengths differ: %d vs %d", len(da), len(db))
	}
	for i := range da {
		if da[i] != db[i] {
			t.Fatalf("diff %d differs: %v vs %v", i, da[i], db[i])
		}
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"B3/S23", "B3/S23", false},
		{"b36/s23", "B36/S23", false},
		{"S23/B3", "B3/S23", false},
		{"B3", "", true},
		{"B9/S23", "", true},
		{"X3/S23", "", true},
	}
	for _, tt := range tests {
		r, err := ParseRule(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseRule(%q) err = %v", tt.in, err)
			continue
		}
		if tt.err {
			if !errors.Is(err, ErrInvalidRule) {
				t.Errorf("ParseRule(%q) expected ErrInvalidRule, got %v", tt.in, err)
			}
			continue
		}
		if r.String() != tt.want {
			t.Errorf("ParseRule(%q) = %s, want %s", tt.in, r, tt.want)
		}
	}
}

func TestHighLifeReplicatorBirth(t *testing.T) {
	highlife := MustParseRule("B36/S23")
	g := newGrid(t, 5, 5, grid.Bounded)
	for _, c := range []int{0, 1, 2} {
		g.Set(grid.Position{Row: 1, Col: c + 1}, grid.Alive)
		g.Set(grid.Position{Row: 3, Col: c + 1}, grid.Alive)
	}
	// (2,2) has six live neighbors: born under B36, not under B3.
	center := grid.Position{Row: 2, Col: 2}
	if !containsBirth(StepRule(g, highlife), center) {
		t.Error("expected birth at center under B36/S23")
	}
	if containsBirth(Step(g), center) {
		t.Error("unexpected birth at center under B3/S23")
	}
}

func containsBirth(ds grid.DiffSet, p grid.Position) bool {
	for _, d := range ds {
		if d.Pos == p && d.State == grid.Alive {
			return true
		}
	}
	return false
}

func mustPattern(t *testing.T, name string) Pattern {
	t.Helper()
	p, err := GetPattern(name)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPatternLibrary(t *testing.T) {
	for _, name := range ListPatterns() {
		p := mustPattern(t, name)
		if len(p.Cells()) == 0 {
			t.Errorf("pattern %s has no live cells", name)
		}
	}
	if _, err := GetPattern("nope"); !errors.Is(err, ErrUnknownPattern) {
		t.Errorf("expected ErrUnknownPattern, got %v", err)
	}
}

func TestPlaceTooLarge(t *testing.T) {
	g := newGrid(t, 5, 5, grid.Bounded)
	if err := PlaceCentered(g, mustPattern(t, "gosper-gun")); !errors.Is(err, ErrPatternTooLarge) {
		t.Errorf("expected ErrPatternTooLarge, got %v", err)
	}
	if err := Place(g, mustPattern(t, "glider"), grid.Position{Row: 4, Col: 4}); !errors.Is(err, ErrPatternTooLarge) {
		t.Errorf("expected ErrPatternTooLarge off the bounded edge, got %v", err)
	}
}

func TestPrepopulateSeeded(t *testing.T) {
	a := newGrid(t, 20, 20, grid.Toroidal)
	b := newGrid(t, 20, 20, grid.Toroidal)
	Prepopulate(a, 7, 0.5)
	Prepopulate(b, 7, 0.5)
	if !a.Equal(b) {
		t.Error("same seed produced different boards")
	}
	if a.Population() == 0 || a.Population() == a.Size() {
		t.Errorf("unexpected population %d at density 0.5", a.Population())
	}

	Prepopulate(a, 7, 0)
	if a.Population() != 0 {
		t.Errorf("density 0 should clear the board, got %d", a.Population())
	}
}

func TestPlaintextRoundTrip(t *testing.T) {
	g := newGrid(t, 4, 5, grid.Bounded)
	if err := Place(g, mustPattern(t, "glider"), grid.Position{Row: 1, Col: 1}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WritePlaintext(&buf, "saved", g); err != nil {
		t.Fatal(err)
	}
	p, err := ReadPlaintext(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if p.Name != "saved" {
		t.Errorf("expected name saved, got %q", p.Name)
	}

	h := newGrid(t, 4, 5, grid.Bounded)
	if err := Place(h, p, grid.Position{}); err != nil {
		t.Fatal(err)
	}
	if !h.Equal(g) {
		t.Errorf("plaintext round trip mismatch:\n%s\nvs\n%s", h, g)
	}
}

func TestReadPlaintextRejectsGarbage(t *testing.T) {
	_, err := ReadPlaintext(strings.NewReader("!Name: bad\n.O.\n.X.\n"))
	if !errors.Is(err, ErrInvalidPlaintext) {
		t.Errorf("expected ErrInvalidPlaintext, got %v", err)
	}
	_, err = ReadPlaintext(strings.NewReader("! only comments\n"))
	if !errors.Is(err, ErrInvalidPlaintext) {
		t.Errorf("expected ErrInvalidPlaintext for empty pattern, got %v", err)
	}
}
