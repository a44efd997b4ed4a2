package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/SzymonKubica/game-console-sub000/internal/audio"
	"github.com/SzymonKubica/game-console-sub000/internal/automation"
	"github.com/SzymonKubica/game-console-sub000/internal/config"
	"github.com/SzymonKubica/game-console-sub000/internal/console"
	"github.com/SzymonKubica/game-console-sub000/internal/gui"
	"github.com/SzymonKubica/game-console-sub000/internal/logging"
	"github.com/SzymonKubica/game-console-sub000/internal/telemetry"
	"github.com/SzymonKubica/game-console-sub000/internal/tui"
)

var (
	dataDir     string
	configFile  string
	preset      string
	logLevel    string
	logFile     string
	metricsAddr string
	// Life parameters
	topology    string
	prepopulate bool
	density     float64
	stepMs      int
	depth       int
	seed        int64
	pattern     string
	rule        string
	rows        int
	cols        int
	theme       string
	// Headless runs
	generations int
	runs        int
	stopOnStill bool
	// Analysis
	maxGen int
	asJSON bool
	svgOut string
	// Sweep
	sweepMetric string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	sweepRuns   int
	sweepStill  bool
	maximize    bool
	// Window
	scale int
	sound bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "console",
		Short:        "handheld game console, game of life with rewind",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return playTerminal(cmd, false)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	lifeFlags(rootCmd)

	lifeCmd := &cobra.Command{
		Use:   "life",
		Short: "play game of life directly",
		RunE: func(cmd *cobra.Command, args []string) error {
			return playTerminal(cmd, true)
		},
	}
	lifeFlags(lifeCmd)
	lifeCmd.Flags().BoolVar(&sound, "sound", false, "sonify the session (needs -tags portaudio)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "play game of life in a window (needs -tags ebiten)",
		RunE:  playWindow,
	}
	lifeFlags(guiCmd)
	guiCmd.Flags().IntVar(&scale, "scale", 8, "pixels per cell")
	guiCmd.Flags().BoolVar(&sound, "sound", false, "sonify the session (needs -tags portaudio)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		RunE:  runSimulation,
	}
	lifeFlags(runCmd)
	runCmd.Flags().IntVar(&generations, "generations", 500, "generations to simulate")
	runCmd.Flags().IntVar(&runs, "runs", 1, "number of seeds to run in parallel")
	runCmd.Flags().BoolVar(&stopOnStill, "stop-on-still", false, "stop when the board stops changing")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot population history (latest run by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the population plot as svg to this file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "period analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&maxGen, "max-gen", 1000, "generations to search for an exact cycle")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print the final board as life plaintext",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().BoolVar(&asJSON, "json", false, "export metadata and history as json")
	exportCmd.Flags().StringVar(&svgOut, "svg", "", "also write the final board as svg to this file")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "search the prepopulation density that best scores a metric",
		RunE:  sweepDensity,
	}
	lifeFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&generations, "generations", 500, "generations per run")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 4, "seeds averaged per density")
	sweepCmd.Flags().BoolVar(&sweepStill, "stop-on-still", true, "stop a run when the board stops changing")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "stability", "metric to score")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "lowest density")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.6, "highest density")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "densities to try")
	sweepCmd.Flags().BoolVar(&maximize, "maximize", false, "maximize instead of minimize")

	scriptCmd := &cobra.Command{
		Use:   "script <scenario.yaml>",
		Short: "play a scripted scenario headlessly",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	lifeFlags(scriptCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list built-in patterns",
		RunE:  listPatterns,
	}

	rootCmd.AddCommand(lifeCmd, guiCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportCmd, sweepCmd, scriptCmd, presetsCmd, patternsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func lifeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&topology, "topology", "toroidal", "board edges: bounded or toroidal")
	cmd.Flags().BoolVar(&prepopulate, "prepopulate", true, "start from a random board")
	cmd.Flags().Float64Var(&density, "density", config.DefaultDensity, "fraction of live cells when prepopulating")
	cmd.Flags().IntVar(&stepMs, "step-ms", config.DefaultStepPeriodMs, "milliseconds per generation")
	cmd.Flags().IntVar(&depth, "depth", config.DefaultRewindDepth, "rewind history depth")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "built-in pattern name or .cells file")
	cmd.Flags().StringVar(&rule, "rule", config.DefaultRule, "rulestring, e.g. B36/S23")
	cmd.Flags().IntVar(&rows, "rows", 0, "board rows (0 = fit display)")
	cmd.Flags().IntVar(&cols, "cols", 0, "board columns (0 = fit display)")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "terminal theme")
}

// loadConfig resolves preset < file < flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		var err error
		if cfg, err = config.LoadWith(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("topology") {
		cfg.Life.Topology = topology
	}
	if flags.Changed("prepopulate") {
		cfg.Life.Prepopulate = prepopulate
	}
	if flags.Changed("density") {
		cfg.Life.Density = density
	}
	if flags.Changed("step-ms") {
		cfg.Life.StepPeriodMs = stepMs
	}
	if flags.Changed("depth") {
		cfg.Life.RewindDepth = depth
	}
	if flags.Changed("seed") {
		cfg.Life.Seed = seed
	}
	if flags.Changed("pattern") {
		cfg.Life.Pattern = pattern
	}
	if flags.Changed("rule") {
		cfg.Life.Rule = rule
	}
	if flags.Changed("rows") {
		cfg.Life.Rows = rows
	}
	if flags.Changed("cols") {
		cfg.Life.Cols = cols
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads configuration, logging and the optional metrics endpoint.
// Interactive front ends own the terminal, so they only log to a file.
func setup(cmd *cobra.Command, interactive bool) (context.Context, *config.Config, []console.Observer, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := logging.Setup(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Discard: interactive && cfg.Log.File == "",
	}); err != nil {
		return nil, nil, nil, nil, err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	var observers []console.Observer
	if cfg.MetricsAddr != "" {
		observers = append(observers, telemetry.Observer{})
		go func() {
			if err := telemetry.Serve(ctx, cfg.MetricsAddr); err != nil {
				fmt.Fprintf(os.Stderr, "metrics server: %v\n", err)
			}
		}()
	}
	cleanup := func() {
		cancel()
		logging.Close()
	}
	return ctx, cfg, observers, cleanup, nil
}

func playTerminal(cmd *cobra.Command, direct bool) error {
	_, cfg, observers, cleanup, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	session, err := cfg.Session()
	if err != nil {
		return err
	}
	if o, stop := startSound(session); o != nil {
		defer stop()
		observers = append(observers, o)
	}
	return tui.Run(tui.Options{
		Session:   session,
		Theme:     cfg.Theme,
		Observers: observers,
		Direct:    direct,
	})
}

func playWindow(cmd *cobra.Command, args []string) error {
	ctx, cfg, observers, cleanup, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer cleanup()

	session, err := cfg.Session()
	if err != nil {
		return err
	}
	if o, stop := startSound(session); o != nil {
		defer stop()
		observers = append(observers, o)
	}
	start := time.Now()
	err = gui.Run(ctx, gui.Options{Session: session, Scale: scale, Observers: observers})
	if err == nil {
		fmt.Printf("session ended after %s\n", time.Since(start).Round(time.Second))
	}
	return err
}

// startSound starts audio output when --sound is set. Audio is optional, a
// failure only logs.
func startSound(session console.Config) (console.Observer, func()) {
	if !sound {
		return nil, nil
	}
	area := session.Rows * session.Cols
	if area == 0 {
		area = automation.DefaultRows * automation.DefaultCols
	}
	synth := audio.NewSynth(area)
	player, err := audio.Start(synth)
	if err != nil {
		slog.Warn("sound disabled", "err", err)
		return nil, nil
	}
	return synth, player.Stop
}
