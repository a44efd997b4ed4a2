package metrics

import "github.com/SzymonKubica/game-console-sub000/internal/grid"

// Stability is the fraction of generations in which the board changed by at
// most threshold cells.
type Stability struct {
	name       string
	threshold  int
	violations int
	samples    int
}

func NewStability(threshold int) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(g *grid.Grid, ds grid.DiffSet, generation int) {
	s.samples++
	if len(ds) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// Defaults is the metric set recorded for saved runs.
func Defaults() []Metric {
	return []Metric{
		NewPopulation(),
		NewPeakPopulation(),
		NewBirths(),
		NewDeaths(),
		NewChurn(),
		NewStability(0),
	}
}

// Metric matches sim.Metric without importing it.
type Metric interface {
	Name() string
	Observe(g *grid.Grid, ds grid.DiffSet, generation int)
	Value() float64
	Reset()
}
