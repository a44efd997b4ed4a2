package sim

import (
	"errors"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
)

var ErrInvalidGenerations = errors.New("generations must be positive")

// Metric accumulates a scalar over the generations of one run.
type Metric interface {
	Name() string
	Observe(g *grid.Grid, ds grid.DiffSet, generation int)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(g *grid.Grid, ds grid.DiffSet, generation int)
}

type Config struct {
	Generations int
	Rule        life.Rule
	// StopOnStill ends the run at the first generation without changes.
	StopOnStill bool
}

type Result struct {
	Generations int
	Population  []int
	Births      []int
	Deaths      []int
	Metrics     map[string]float64
	Final       *grid.Grid
	Still       bool
}

// Series returns the population history as float64 for plotting and
// spectral analysis.
func (r *Result) Series() []float64 {
	out := make([]float64, len(r.Population))
	for i, p := range r.Population {
		out[i] = float64(p)
	}
	return out
}
