package sim

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/SzymonKubica/game-console-sub000/internal/compute"
	"github.com/SzymonKubica/game-console-sub000/internal/grid"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
)

// Simulator advances a board without any display, for batch runs.
type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run steps a copy of g0; g0 itself is left untouched.
func (s *Simulator) Run(ctx context.Context, g0 *grid.Grid, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	rule := cfg.Rule
	if rule == (life.Rule{}) {
		rule = life.Conway
	}

	result := &Result{
		Population: make([]int, 0, cfg.Generations+1),
		Births:     make([]int, 0, cfg.Generations),
		Deaths:     make([]int, 0, cfg.Generations),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	backend := compute.GetBackend()
	ctx, span := otel.Tracer("sim").Start(ctx, "sim.Simulator.Run",
		trace.WithAttributes(
			attribute.Int("rows", g0.Rows()),
			attribute.Int("cols", g0.Cols()),
			attribute.Int("generations", cfg.Generations),
			attribute.String("rule", rule.String()),
			attribute.String("backend", backend.Name()),
		))
	defer span.End()

	g := g0.Clone()
	pop := g.Population()
	result.Population = append(result.Population, pop)

	for gen := 1; gen <= cfg.Generations; gen++ {
		select {
		case <-ctx.Done():
			result.Final = g
			span.RecordError(ctx.Err())
			span.SetStatus(codes.Error, "context cancelled")
			return result, ctx.Err()
		default:
		}

		ds := backend.Step(g, rule)
		grid.Apply(g, ds)
		births, deaths := ds.Births(), ds.Deaths()
		pop += births - deaths

		for _, m := range s.metrics {
			m.Observe(g, ds, gen)
		}
		for _, obs := range s.observers {
			obs.OnStep(g, ds, gen)
		}

		result.Generations = gen
		result.Population = append(result.Population, pop)
		result.Births = append(result.Births, births)
		result.Deaths = append(result.Deaths, deaths)

		if cfg.StopOnStill && len(ds) == 0 {
			result.Still = true
			slog.Debug("still life reached", "generation", gen, "population", pop)
			break
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = g
	span.SetAttributes(
		attribute.Int("generations_run", result.Generations),
		attribute.Bool("still", result.Still),
	)
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Generations <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidGenerations, cfg.Generations)
	}
	return nil
}

// RunWithCallback steps g in place until callback returns false, ctx is done
// or the configured number of generations has passed.
func (s *Simulator) RunWithCallback(ctx context.Context, g *grid.Grid, cfg Config, callback func(*grid.Grid, grid.DiffSet, int) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	rule := cfg.Rule
	if rule == (life.Rule{}) {
		rule = life.Conway
	}

	backend := compute.GetBackend()
	for gen := 1; gen <= cfg.Generations; gen++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ds := backend.Step(g, rule)
		grid.Apply(g, ds)
		if !callback(g, ds, gen) {
			return nil
		}
	}
	return nil
}
