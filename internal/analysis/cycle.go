package analysis

import (
	"github.com/SzymonKubica/game-console-sub000/internal/grid"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
)

// Cycle describes a board that revisits an earlier state. Start is the first
// generation of the repeating part; a still life has Period 1.
type Cycle struct {
	Start  int
	Period int
}

// DetectCycle steps a copy of g under rule for at most maxGen generations
// and reports the first repeated state. A translating spaceship on a bounded
// board is not periodic; on a torus it eventually is.
func DetectCycle(g *grid.Grid, rule life.Rule, maxGen int) (Cycle, bool) {
	b := g.Clone()
	seen := map[string]int{b.String(): 0}
	for gen := 1; gen <= maxGen; gen++ {
		grid.Apply(b, life.StepRule(b, rule))
		key := b.String()
		if first, ok := seen[key]; ok {
			return Cycle{Start: first, Period: gen - first}, true
		}
		seen[key] = gen
	}
	return Cycle{}, false
}
