package metrics

import "github.com/SzymonKubica/game-console-sub000/internal/grid"

// Births totals cells born over the run.
type Births struct {
	name  string
	total int
}

func NewBirths() *Births { return &Births{name: "births"} }

func (b *Births) Name() string { return b.name }
func (b *Births) Observe(g *grid.Grid, ds grid.DiffSet, generation int) {
	b.total += ds.Births()
}
func (b *Births) Value() float64 { return float64(b.total) }
func (b *Births) Reset()         { b.total = 0 }

// Deaths totals cells that died over the run.
type Deaths struct {
	name  string
	total int
}

func NewDeaths() *Deaths { return &Deaths{name: "deaths"} }

func (d *Deaths) Name() string { return d.name }
func (d *Deaths) Observe(g *grid.Grid, ds grid.DiffSet, generation int) {
	d.total += ds.Deaths()
}
func (d *Deaths) Value() float64 { return float64(d.total) }
func (d *Deaths) Reset()         { d.total = 0 }

// Churn is the mean fraction of the board that changes per generation.
type Churn struct {
	name    string
	sum     float64
	samples int
}

func NewChurn() *Churn {
	return &Churn{name: "churn"}
}

func (c *Churn) Name() string {
	return c.name
}

func (c *Churn) Observe(g *grid.Grid, ds grid.DiffSet, generation int) {
	c.sum += float64(len(ds)) / float64(g.Size())
	c.samples++
}

func (c *Churn) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Churn) Reset() {
	c.sum = 0
	c.samples = 0
}
