package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/SzymonKubica/game-console-sub000/internal/analysis"
	"github.com/SzymonKubica/game-console-sub000/internal/automation"
	"github.com/SzymonKubica/game-console-sub000/internal/config"
	"github.com/SzymonKubica/game-console-sub000/internal/export"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
	"github.com/SzymonKubica/game-console-sub000/internal/metrics"
	"github.com/SzymonKubica/game-console-sub000/internal/optim"
	"github.com/SzymonKubica/game-console-sub000/internal/sim"
	"github.com/SzymonKubica/game-console-sub000/internal/storage"
	"github.com/SzymonKubica/game-console-sub000/internal/viz"
)

// Board size for headless runs that do not pin one.
const (
	defaultRows = 40
	defaultCols = 60
)

func newMetrics() []sim.Metric {
	ms := metrics.Defaults()
	out := make([]sim.Metric, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

func runSimulation(cmd *cobra.Command, args []string) error {
	ctx, cfg, _, cleanup, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer cleanup()

	session, err := cfg.Session()
	if err != nil {
		return err
	}
	r, c := session.Rows, session.Cols
	if r == 0 {
		r = defaultRows
	}
	if c == 0 {
		c = defaultCols
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	simCfg := sim.Config{Generations: generations, Rule: session.Rule, StopOnStill: stopOnStill}

	name := cfg.Life.Pattern
	if session.Pattern != nil {
		name = session.Pattern.Name
	}

	var results []*sim.Result
	var seeds []int64
	if runs > 1 {
		board := sim.Board{Rows: r, Cols: c, Topology: session.Topology, Density: session.Density}
		results, err = sim.NewEnsemble(runs, session.Seed, newMetrics).Run(ctx, board, simCfg)
		if err != nil {
			return err
		}
		for i := range results {
			seeds = append(seeds, session.Seed+int64(i))
		}
		name = ""
	} else {
		g0, err := session.Board(r, c)
		if err != nil {
			return err
		}
		s := sim.New()
		for _, m := range newMetrics() {
			s.AddMetric(m)
		}
		result, err := s.Run(ctx, g0, simCfg)
		if err != nil {
			return err
		}
		results = []*sim.Result{result}
		seeds = []int64{session.Seed}
	}

	for i, result := range results {
		spec := storage.RunSpec{
			Name:     name,
			Seed:     seeds[i],
			Density:  session.Density,
			Rule:     session.Rule.String(),
			Topology: session.Topology,
		}
		if !session.Prepopulate {
			spec.Density = 0
		}
		runID, err := st.Save(spec, result)
		if err != nil {
			return err
		}
		slog.Info("run saved", "id", runID, "generations", result.Generations)

		fmt.Printf("run: %s\n", runID)
		fmt.Printf("generations: %d", result.Generations)
		if result.Still {
			fmt.Print(" (still)")
		}
		fmt.Println()
		printMetrics(result.Metrics)
	}
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-16s %.4f\n", name, m[name])
	}
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

// runID returns the requested run or the latest one.
func runID(st *storage.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return st.Latest()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSIZE\tTOPOLOGY\tRULE\tGENS\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows, run.Cols,
			run.Topology,
			run.Rule,
			run.Generations,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	id, err := runID(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	h, err := st.LoadHistory(id)
	if err != nil {
		return err
	}
	if len(h.Population) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("board: %dx%d %s %s\n", meta.Rows, meta.Cols, meta.Topology, meta.Rule)
	fmt.Printf("samples: %d\n\n", len(h.Population))

	fmt.Println(asciigraph.Plot(h.Series(),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("population"),
	))
	fmt.Println()

	if len(h.Births) > 1 {
		births := make([]float64, len(h.Births)-1)
		deaths := make([]float64, len(h.Deaths)-1)
		for i := 1; i < len(h.Births); i++ {
			births[i-1] = float64(h.Births[i])
			deaths[i-1] = float64(h.Deaths[i])
		}
		fmt.Println(asciigraph.PlotMany([][]float64{births, deaths},
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
			asciigraph.Caption("births (green) / deaths (red)"),
		))
		fmt.Println()
	}

	if final, err := st.LoadFinal(id); err == nil {
		fmt.Println("final board:")
		fmt.Print(viz.Board(final).String())
		fmt.Println()
	}

	if svgOut != "" {
		svg := export.SeriesToSVG(h.Series(), 800, 200, "#00ff00")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	id, err := runID(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	h, err := st.LoadHistory(id)
	if err != nil {
		return err
	}

	s := analysis.Summarize(h.Series())
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("population: min %.0f  max %.0f  mean %.1f  stddev %.1f  change %+.0f\n",
		s.Min, s.Max, s.Mean, s.StdDev, s.Change)
	fmt.Print(viz.Series(h.Series(), 40, 2).String())

	if p, ok := analysis.DominantPeriod(h.Series()); ok {
		fmt.Printf("dominant period (fft): %.1f generations\n", p)
	} else {
		fmt.Println("dominant period (fft): none")
	}

	final, err := st.LoadFinal(id)
	if err != nil {
		return err
	}
	r := life.Conway
	if meta.Rule != "" {
		if r, err = life.ParseRule(meta.Rule); err != nil {
			return err
		}
	}
	if c, ok := analysis.DetectCycle(final, r, maxGen); ok {
		switch c.Period {
		case 1:
			fmt.Printf("exact: still life after %d more generations\n", c.Start)
		default:
			fmt.Printf("exact: period %d, entered after %d more generations\n", c.Period, c.Start)
		}
	} else {
		fmt.Printf("exact: no cycle within %d generations\n", maxGen)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	id, err := runID(st, args)
	if err != nil {
		return err
	}
	if asJSON {
		return st.ExportJSON(os.Stdout, id)
	}
	g, err := st.LoadFinal(id)
	if err != nil {
		return err
	}
	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.BoardToSVG(g, 8)), 0644); err != nil {
			return err
		}
	}
	return life.WritePlaintext(os.Stdout, id, g)
}

func sweepDensity(cmd *cobra.Command, args []string) error {
	ctx, cfg, _, cleanup, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer cleanup()

	session, err := cfg.Session()
	if err != nil {
		return err
	}
	r, c := session.Rows, session.Cols
	if r == 0 {
		r = defaultRows
	}
	if c == 0 {
		c = defaultCols
	}
	known := false
	for _, m := range metrics.Defaults() {
		known = known || m.Name() == sweepMetric
	}
	if !known {
		return fmt.Errorf("unknown metric: %s", sweepMetric)
	}
	simCfg := sim.Config{Generations: generations, Rule: session.Rule, StopOnStill: sweepStill}

	gs := optim.NewGridSearch([]string{"density"}, [][]float64{optim.Range(sweepMin, sweepMax, sweepSteps)})
	gs.Maximize = maximize

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DENSITY\t%s\n", sweepMetric)
	best, score, err := gs.Search(ctx, func(ctx context.Context, p map[string]float64) (float64, error) {
		board := sim.Board{Rows: r, Cols: c, Topology: session.Topology, Density: p["density"]}
		results, err := sim.NewEnsemble(sweepRuns, session.Seed, newMetrics).Run(ctx, board, simCfg)
		if err != nil {
			return 0, err
		}
		var sum float64
		for _, res := range results {
			sum += res.Metrics[sweepMetric]
		}
		mean := sum / float64(len(results))
		slog.Debug("sweep point", "density", p["density"], "score", mean)
		fmt.Fprintf(w, "%.3f\t%.4f\n", p["density"], mean)
		return mean, nil
	})
	w.Flush()
	if err != nil {
		return err
	}
	fmt.Printf("\nbest density: %.3f (%s %.4f)\n", best["density"], sweepMetric, score)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tTOPOLOGY\tSTEP\tDEPTH\tPATTERN\tTHEME")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		pat := p.Life.Pattern
		if pat == "" {
			pat = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%dms\t%d\t%s\t%s\n",
			name, p.Life.Topology, p.Life.StepPeriodMs, p.Life.RewindDepth, pat, p.Theme)
	}
	return w.Flush()
}

func listPatterns(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tSIZE\tDESCRIPTION")
	for _, name := range life.ListPatterns() {
		p, _ := life.GetPattern(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%s\n", name, p.Height(), p.Width(), p.Description)
	}
	return w.Flush()
}

func runScript(cmd *cobra.Command, args []string) error {
	ctx, cfg, observers, cleanup, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer cleanup()

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	session, err := cfg.Session()
	if err != nil {
		return err
	}
	report, err := automation.RunScenario(ctx, scenario, session, observers...)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", report.Name)
	fmt.Printf("iterations: %d  generation: %d  population: %d  mode: %s  history: %d\n",
		report.Iterations, report.Generation, report.Population, report.Mode, report.History)
	fmt.Print(viz.Board(report.Final).String())
	return nil
}
