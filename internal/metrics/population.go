package metrics

import "github.com/SzymonKubica/game-console-sub000/internal/grid"

// Population is the mean number of live cells per generation.
type Population struct {
	name    string
	sum     float64
	samples int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(g *grid.Grid, ds grid.DiffSet, generation int) {
	p.sum += float64(g.Population())
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.sum / float64(p.samples)
}

func (p *Population) Reset() {
	p.sum = 0
	p.samples = 0
}

// PeakPopulation is the largest population seen.
type PeakPopulation struct {
	name string
	peak int
}

func NewPeakPopulation() *PeakPopulation {
	return &PeakPopulation{name: "peak_population"}
}

func (p *PeakPopulation) Name() string { return p.name }

func (p *PeakPopulation) Observe(g *grid.Grid, ds grid.DiffSet, generation int) {
	p.peak = max(p.peak, g.Population())
}

func (p *PeakPopulation) Value() float64 { return float64(p.peak) }
func (p *PeakPopulation) Reset()         { p.peak = 0 }
