// Package telemetry exports session counters to Prometheus.
package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SzymonKubica/game-console-sub000/internal/console"
)

var (
	generationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "console_life_generations_total",
		Help: "Total number of generations computed",
	})

	editsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "console_life_edits_total",
		Help: "Total number of cells toggled by the user",
	})

	rewindMovesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "console_life_rewind_moves_total",
		Help: "Rewind moves by direction",
	}, []string{"direction"})

	modeChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "console_life_mode_changes_total",
		Help: "Mode transitions by target mode",
	}, []string{"mode"})

	populationGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "console_life_population",
		Help: "Live cells on the displayed board",
	})

	generationGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "console_life_generation",
		Help: "Generation number of the displayed board",
	})

	diffsPerGeneration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "console_life_diffs_per_generation",
		Help:    "Number of cells changed by each generation",
		Buckets: []float64{0, 1, 4, 16, 64, 256, 1024, 4096},
	})
)

// Observer feeds controller events into the process metrics.
type Observer struct{}

func (Observer) Observe(e console.Event) {
	switch e.Kind {
	case console.Stepped:
		generationsTotal.Inc()
		diffsPerGeneration.Observe(float64(len(e.Entry.Diffs)))
	case console.Edited:
		editsTotal.Inc()
	case console.SteppedBack:
		rewindMovesTotal.WithLabelValues("back").Inc()
	case console.SteppedForward:
		rewindMovesTotal.WithLabelValues("forward").Inc()
	case console.ModeChanged:
		modeChangesTotal.WithLabelValues(e.Mode.String()).Inc()
	}
	populationGauge.Set(float64(e.Population))
	generationGauge.Set(float64(e.Generation))
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() {
		slog.Info("metrics listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
