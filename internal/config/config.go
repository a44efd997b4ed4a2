package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SzymonKubica/game-console-sub000/internal/console"
	"github.com/SzymonKubica/game-console-sub000/internal/grid"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
)

const (
	DefaultStepPeriodMs = 200
	DefaultLoopDelayMs  = 10
	DefaultRewindDepth  = 128
	DefaultDensity      = 0.25
	DefaultRule         = "B3/S23"
	DefaultTheme        = "retro"
	DefaultDataDir      = ".console"
)

var (
	ErrInvalidRewindDepth = errors.New("rewind_depth must be positive")
	ErrInvalidStepPeriod  = errors.New("step_period_ms must be positive")
	ErrInvalidDensity     = errors.New("density must be within [0, 1]")
)

type Config struct {
	Life        LifeConfig `yaml:"life"`
	LoopDelayMs int        `yaml:"loop_delay_ms"`
	Theme       string     `yaml:"theme"`
	Log         LogConfig  `yaml:"log"`
	MetricsAddr string     `yaml:"metrics_addr"`
	DataDir     string     `yaml:"data_dir"`
}

type LifeConfig struct {
	Topology     string  `yaml:"topology"`
	Prepopulate  bool    `yaml:"prepopulate"`
	Density      float64 `yaml:"density"`
	Pattern      string  `yaml:"pattern"`
	Rule         string  `yaml:"rule"`
	StepPeriodMs int     `yaml:"step_period_ms"`
	RewindDepth  int     `yaml:"rewind_depth"`
	Rows         int     `yaml:"rows"`
	Cols         int     `yaml:"cols"`
	Seed         int64   `yaml:"seed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Life: LifeConfig{
			Topology:     grid.Toroidal.String(),
			Prepopulate:  true,
			Density:      DefaultDensity,
			Rule:         DefaultRule,
			StepPeriodMs: DefaultStepPeriodMs,
			RewindDepth:  DefaultRewindDepth,
		},
		LoopDelayMs: DefaultLoopDelayMs,
		Theme:       DefaultTheme,
		Log:         LogConfig{Level: "info"},
		DataDir:     DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	return LoadWith(path, DefaultConfig())
}

// LoadWith reads path over a copy of base, so keys missing from the file keep
// the base values.
func LoadWith(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values that would otherwise only fail once a session
// starts.
func (c *Config) Validate() error {
	if c.Life.RewindDepth <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidRewindDepth, c.Life.RewindDepth)
	}
	if c.Life.StepPeriodMs <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidStepPeriod, c.Life.StepPeriodMs)
	}
	if c.Life.Density < 0 || c.Life.Density > 1 {
		return fmt.Errorf("%w, got %g", ErrInvalidDensity, c.Life.Density)
	}
	if _, err := grid.ParseTopology(c.Life.Topology); err != nil {
		return err
	}
	if c.Life.Rule != "" {
		if _, err := life.ParseRule(c.Life.Rule); err != nil {
			return err
		}
	}
	return nil
}

// Session converts the file configuration into the controller's. A zero seed
// is replaced by a time based one so that the returned config is replayable.
func (c *Config) Session() (console.Config, error) {
	if err := c.Validate(); err != nil {
		return console.Config{}, err
	}
	topo, _ := grid.ParseTopology(c.Life.Topology)

	rule := life.Conway
	if c.Life.Rule != "" {
		rule, _ = life.ParseRule(c.Life.Rule)
	}

	seed := c.Life.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := console.Config{
		Topology:    topo,
		Prepopulate: c.Life.Prepopulate,
		Density:     c.Life.Density,
		Seed:        seed,
		Rule:        rule,
		StepPeriod:  time.Duration(c.Life.StepPeriodMs) * time.Millisecond,
		LoopDelay:   time.Duration(c.LoopDelayMs) * time.Millisecond,
		RewindDepth: c.Life.RewindDepth,
		Rows:        c.Life.Rows,
		Cols:        c.Life.Cols,
	}
	if c.Life.Pattern != "" {
		p, err := ResolvePattern(c.Life.Pattern)
		if err != nil {
			return console.Config{}, err
		}
		s.Pattern = &p
	}
	return s, nil
}

// ResolvePattern looks name up in the built-in library and falls back to
// reading it as a plaintext file.
func ResolvePattern(name string) (life.Pattern, error) {
	p, err := life.GetPattern(name)
	if err == nil {
		return p, nil
	}
	f, ferr := os.Open(name)
	if ferr != nil {
		return life.Pattern{}, err
	}
	defer f.Close()
	return life.ReadPlaintext(f)
}
