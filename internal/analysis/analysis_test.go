package analysis

import (
	"math"
	"testing"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
)

func board(t *testing.T, rows, cols int, topo grid.Topology, pattern string, origin grid.Position) *grid.Grid {
	t.Helper()
	g, err := grid.New(rows, cols, topo)
	if err != nil {
		t.Fatal(err)
	}
	p, err := life.GetPattern(pattern)
	if err != nil {
		t.Fatal(err)
	}
	if err := life.Place(g, p, origin); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestDetectCycle(t *testing.T) {
	tests := []struct {
		name   string
		g      *grid.Grid
		start  int
		period int
	}{
		{"blinker", board(t, 5, 5, grid.Bounded, "blinker", grid.Position{Row: 2, Col: 1}), 0, 2},
		{"beacon", board(t, 6, 6, grid.Bounded, "beacon", grid.Position{Row: 1, Col: 1}), 0, 2},
		{"toad", board(t, 6, 6, grid.Bounded, "toad", grid.Position{Row: 2, Col: 1}), 0, 2},
		{"glider on torus", board(t, 8, 8, grid.Toroidal, "glider", grid.Position{}), 0, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := DetectCycle(tt.g, life.Conway, 100)
			if !ok {
				t.Fatal("no cycle found")
			}
			if c.Start != tt.start || c.Period != tt.period {
				t.Errorf("expected start %d period %d, got %+v", tt.start, tt.period, c)
			}
		})
	}
}

func TestDetectCycleSettles(t *testing.T) {
	g, _ := grid.New(6, 6, grid.Bounded)
	for _, p := range []grid.Position{{Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 3, Col: 2}} {
		g.Set(p, grid.Alive)
	}
	c, ok := DetectCycle(g, life.Conway, 10)
	if !ok || c.Start != 1 || c.Period != 1 {
		t.Errorf("expected still life from generation 1, got %+v %v", c, ok)
	}
	if g.Population() != 3 {
		t.Error("detection must not mutate the board")
	}
}

func TestDetectCycleLimit(t *testing.T) {
	g := board(t, 40, 40, grid.Bounded, "r-pentomino", grid.Position{Row: 18, Col: 18})
	if _, ok := DetectCycle(g, life.Conway, 5); ok {
		t.Error("r-pentomino should not settle within 5 generations")
	}
}

func TestDominantPeriod(t *testing.T) {
	series := make([]float64, 128)
	for i := range series {
		series[i] = 50 + 10*math.Sin(2*math.Pi*float64(i)/8)
	}

	p, ok := DominantPeriod(series)
	if !ok {
		t.Fatal("expected a period")
	}
	if math.Abs(p-8) > 0.5 {
		t.Errorf("expected period ~8, got %f", p)
	}
}

func TestDominantPeriodFlat(t *testing.T) {
	series := make([]float64, 64)
	for i := range series {
		series[i] = 12
	}
	if _, ok := DominantPeriod(series); ok {
		t.Error("constant series has no period")
	}
	if _, ok := DominantPeriod([]float64{1, 2}); ok {
		t.Error("two samples are too short")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Mean != 5 || s.StdDev != 2 || s.Min != 2 || s.Max != 9 || s.Change != 7 {
		t.Errorf("unexpected summary %+v", s)
	}
	if Summarize(nil).Samples != 0 {
		t.Error("empty series")
	}
}
