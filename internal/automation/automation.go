// Package automation drives a console session from a scripted scenario
// instead of live input. Scenarios are YAML files listing button presses,
// pauses measured in loop iterations and optional expectations about the
// resulting session.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SzymonKubica/game-console-sub000/internal/console"
	"github.com/SzymonKubica/game-console-sub000/internal/grid"
)

var (
	ErrUnknownInput = errors.New("unknown input")
	ErrExpectation  = errors.New("expectation failed")
)

// Board size used when neither the scenario nor the session pins one.
const (
	DefaultRows = 20
	DefaultCols = 40
)

// Scenario defines a scripted session.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Rows        int            `yaml:"rows"`
	Cols        int            `yaml:"cols"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep presses each input in order, Repeat times, then lets the
// loop run Wait more iterations. Every press takes one iteration.
type ScenarioStep struct {
	Press  []string `yaml:"press"`
	Repeat int      `yaml:"repeat"`
	Wait   int      `yaml:"wait"`
	Expect *Expect  `yaml:"expect"`
}

// Expect is checked after the step; unset fields are not checked.
type Expect struct {
	Generation *int   `yaml:"generation"`
	Population *int   `yaml:"population"`
	Mode       string `yaml:"mode"`
}

// Report summarizes a finished scenario.
type Report struct {
	Name       string
	Iterations int
	Generation int
	Population int
	Mode       console.Mode
	History    int
	Exited     bool
	Final      *grid.Grid
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Validate checks every input name.
func (s *Scenario) Validate() error {
	for i, step := range s.Steps {
		for _, name := range step.Press {
			if _, err := parseInput(name); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	return nil
}

type input struct {
	action    console.Action
	direction console.Direction
	isAction  bool
}

func parseInput(name string) (input, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up":
		return input{direction: console.Up}, nil
	case "down":
		return input{direction: console.Down}, nil
	case "left":
		return input{direction: console.Left}, nil
	case "right":
		return input{direction: console.Right}, nil
	case "start", "pause", "start_pause":
		return input{action: console.StartPause, isAction: true}, nil
	case "toggle":
		return input{action: console.Toggle, isAction: true}, nil
	case "rewind":
		return input{action: console.Rewind, isAction: true}, nil
	case "exit":
		return input{action: console.Exit, isAction: true}, nil
	}
	return input{}, fmt.Errorf("%w: %q", ErrUnknownInput, name)
}

// headless satisfies console.Display without drawing anything.
type headless struct{ rows, cols int }

func (h headless) Initialize() error                      { return nil }
func (h headless) Clear(console.Color)                    {}
func (h headless) PaintCell(grid.Position, console.Color) {}
func (h headless) Dimensions() (int, int)                 { return h.rows, h.cols }

// RunScenario executes all steps in a scenario against a fresh session. The
// loop runs without delay so the outcome depends only on the script.
func RunScenario(ctx context.Context, scenario *Scenario, cfg console.Config, observers ...console.Observer) (*Report, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	rows, cols := DefaultRows, DefaultCols
	if scenario.Rows > 0 {
		cfg.Rows = scenario.Rows
	}
	if scenario.Cols > 0 {
		cfg.Cols = scenario.Cols
	}

	queue := &console.Queue{}
	ctrl, err := console.New(cfg, headless{rows: rows, cols: cols}, queue)
	if err != nil {
		return nil, err
	}
	for _, o := range observers {
		ctrl.AddObserver(o)
	}

	report := &Report{Name: scenario.Name}
	iterate := func() bool {
		report.Iterations++
		if !ctrl.Iterate() {
			report.Exited = true
			return false
		}
		return true
	}

steps:
	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slog.Debug("scenario step", "scenario", scenario.Name, "step", i+1, "press", step.Press, "wait", step.Wait)

		repeat := max(step.Repeat, 1)
		for r := 0; r < repeat; r++ {
			for _, name := range step.Press {
				in, _ := parseInput(name)
				if in.isAction {
					queue.PushAction(in.action)
				} else {
					queue.PushDirection(in.direction)
				}
				if !iterate() {
					break steps
				}
			}
		}
		for w := 0; w < step.Wait; w++ {
			if w%1024 == 0 && ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !iterate() {
				break steps
			}
		}

		if err := check(step.Expect, ctrl); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	report.Generation = ctrl.Generation()
	report.Population = ctrl.Population()
	report.Mode = ctrl.Mode()
	report.History = ctrl.History().Len()
	report.Final = ctrl.Snapshot()

	slog.Info("scenario finished",
		"scenario", scenario.Name,
		"iterations", report.Iterations,
		"generation", report.Generation,
		"population", report.Population)
	return report, nil
}

func check(e *Expect, ctrl *console.Controller) error {
	if e == nil {
		return nil
	}
	if e.Generation != nil && *e.Generation != ctrl.Generation() {
		return fmt.Errorf("%w: generation %d, want %d", ErrExpectation, ctrl.Generation(), *e.Generation)
	}
	if e.Population != nil && *e.Population != ctrl.Population() {
		return fmt.Errorf("%w: population %d, want %d", ErrExpectation, ctrl.Population(), *e.Population)
	}
	if e.Mode != "" && e.Mode != ctrl.Mode().String() {
		return fmt.Errorf("%w: mode %s, want %s", ErrExpectation, ctrl.Mode(), e.Mode)
	}
	return nil
}
