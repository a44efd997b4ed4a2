package compute

import (
	"runtime"
	"sync"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
)

// ParallelRows is the smallest board height stepped in parallel.
const ParallelRows = 64

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

// NewCPUBackendWorkers fixes the number of row bands.
func NewCPUBackendWorkers(workers int) *CPUBackend {
	return &CPUBackend{workers: max(workers, 1)}
}

func (c *CPUBackend) Name() string { return "cpu" }
func (c *CPUBackend) Cleanup()     {}

func (c *CPUBackend) Step(g *grid.Grid, rule life.Rule) grid.DiffSet {
	if g.Rows() < ParallelRows || c.workers < 2 {
		return life.StepRule(g, rule)
	}
	return c.stepParallel(g, rule)
}

func (c *CPUBackend) stepParallel(g *grid.Grid, rule life.Rule) grid.DiffSet {
	rows := g.Rows()
	bands := make([]grid.DiffSet, c.workers)

	var wg sync.WaitGroup
	chunkSize := (rows + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := min(start+chunkSize, rows)
			bands[worker] = stepRows(g, rule, start, end)
		}(w)
	}

	wg.Wait()

	n := 0
	for _, b := range bands {
		n += len(b)
	}
	ds := make(grid.DiffSet, 0, n)
	for _, b := range bands {
		ds = append(ds, b...)
	}
	return ds
}

// stepRows scans rows [from, to) only. The board is read, never written, so
// bands can run concurrently.
func stepRows(g *grid.Grid, rule life.Rule, from, to int) grid.DiffSet {
	var ds grid.DiffSet
	for r := from; r < to; r++ {
		for col := 0; col < g.Cols(); col++ {
			p := grid.Position{Row: r, Col: col}
			alive := g.Alive(p)
			next := rule.Next(alive, life.CountAlive(g, p))
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
