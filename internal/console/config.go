package console

import (
	"fmt"
	"time"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
)

const (
	DefaultStepPeriod  = 200 * time.Millisecond
	DefaultLoopDelay   = 10 * time.Millisecond
	DefaultRewindDepth = 128
	DefaultDensity     = 0.25
)

// Config is the session configuration handed to EnterLoop.
type Config struct {
	Topology    grid.Topology
	Prepopulate bool
	Density     float64
	Seed        int64

	// Pattern, when set, is placed centered on the board after any random
	// prepopulation.
	Pattern *life.Pattern
	Rule    life.Rule

	// StepPeriod is the time between generations while running.
	StepPeriod time.Duration
	// LoopDelay is the scheduling yield between loop iterations.
	LoopDelay time.Duration

	RewindDepth int

	// Rows and Cols pin the board size; zero means use the display's.
	Rows, Cols int
}

// DefaultConfig returns a toroidal, prepopulated session.
func DefaultConfig() Config {
	return Config{
		Topology:    grid.Toroidal,
		Prepopulate: true,
		Density:     DefaultDensity,
		Rule:        life.Conway,
		StepPeriod:  DefaultStepPeriod,
		LoopDelay:   DefaultLoopDelay,
		RewindDepth: DefaultRewindDepth,
	}
}

// Board creates the initial board: random prepopulation first, then the
// pattern centered on top.
func (c Config) Board(rows, cols int) (*grid.Grid, error) {
	board, err := grid.New(rows, cols, c.Topology)
	if err != nil {
		return nil, err
	}
	if c.Prepopulate {
		life.Prepopulate(board, c.Seed, c.Density)
	}
	if c.Pattern != nil {
		if err := life.PlaceCentered(board, *c.Pattern); err != nil {
			return nil, err
		}
	}
	return board, nil
}

func (c Config) validate() error {
	if c.StepPeriod <= 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidStepPeriod, c.StepPeriod)
	}
	return nil
}

// ticksPerStep is how many loop iterations pass between generations.
func (c Config) ticksPerStep() int {
	delay := c.LoopDelay
	if delay <= 0 {
		delay = DefaultLoopDelay
	}
	k := int(c.StepPeriod / delay)
	if k < 1 {
		k = 1
	}
	return k
}
