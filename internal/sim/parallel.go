package sim

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
)

// Board describes the randomly prepopulated starting board of an ensemble
// member.
type Board struct {
	Rows, Cols int
	Topology   grid.Topology
	Density    float64
}

// Ensemble runs the same configuration over consecutive seeds in parallel.
// Metrics are built per run by newMetrics since they carry state.
type Ensemble struct {
	numRuns    int
	seedStart  int64
	newMetrics func() []Metric
}

func NewEnsemble(numRuns int, seedStart int64, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{numRuns: numRuns, seedStart: seedStart, newMetrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context, board Board, cfg Config) ([]*Result, error) {
	ctx, span := otel.Tracer("sim").Start(ctx, "sim.Ensemble.Run",
		trace.WithAttributes(
			attribute.Int("runs", e.numRuns),
			attribute.Int64("seed_start", e.seedStart),
			attribute.Float64("density", board.Density),
		))
	defer span.End()

	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			g, err := grid.New(board.Rows, board.Cols, board.Topology)
			if err != nil {
				errs[idx] = err
				return
			}
			life.Prepopulate(g, e.seedStart+int64(idx), board.Density)

			sim := New()
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					sim.AddMetric(m)
				}
			}
			results[idx], errs[idx] = sim.Run(ctx, g, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	return results, nil
}
