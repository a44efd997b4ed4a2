package console

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
	"github.com/SzymonKubica/game-console-sub000/internal/rewind"
)

// Controller owns one play session. It is not safe for concurrent use: every
// method must be called from the loop goroutine.
type Controller struct {
	cfg     Config
	display Display
	input   Input

	board   *grid.Grid
	history *rewind.Buffer
	caret   Caret

	mode   Mode
	ticks  int
	period int

	generation int
	population int

	// cells painted with the rewind palette, repainted on leaving rewind
	tinted map[grid.Position]struct{}

	observers []Observer
}

// New initializes the display, creates the board from its dimensions (unless
// cfg pins them) and paints the initial canvas. A non-positive rewind depth
// fails here, before any loop starts.
func New(cfg Config, display Display, input Input) (*Controller, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	history, err := rewind.New(cfg.RewindDepth)
	if err != nil {
		return nil, err
	}
	if err := display.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize display: %w", err)
	}

	rows, cols := display.Dimensions()
	if cfg.Rows > 0 {
		rows = cfg.Rows
	}
	if cfg.Cols > 0 {
		cols = cfg.Cols
	}
	board, err := cfg.Board(rows, cols)
	if errors.Is(err, grid.ErrTooSmall) {
		return nil, fmt.Errorf("%w: %w", ErrDisplayTooSmall, err)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Rule == (life.Rule{}) {
		cfg.Rule = life.Conway
	}

	c := &Controller{
		cfg:        cfg,
		display:    display,
		input:      input,
		board:      board,
		history:    history,
		caret:      newCaret(rows, cols),
		mode:       Paused,
		period:     cfg.ticksPerStep(),
		population: board.Population(),
		tinted:     make(map[grid.Position]struct{}),
	}
	c.paintCanvas()

	slog.Info("session started",
		"rows", rows, "cols", cols,
		"topology", cfg.Topology.String(),
		"rule", cfg.Rule.String(),
		"rewind_depth", cfg.RewindDepth,
		"ticks_per_step", c.period,
		"population", c.population)
	return c, nil
}

// AddObserver registers o for every subsequent event.
func (c *Controller) AddObserver(o Observer) { c.observers = append(c.observers, o) }

func (c *Controller) Mode() Mode              { return c.mode }
func (c *Controller) Generation() int         { return c.generation }
func (c *Controller) Population() int         { return c.population }
func (c *Controller) Caret() grid.Position    { return c.caret.Pos }
func (c *Controller) History() *rewind.Buffer { return c.history }
func (c *Controller) Rows() int               { return c.board.Rows() }
func (c *Controller) Cols() int               { return c.board.Cols() }
func (c *Controller) Topology() grid.Topology { return c.board.Topology() }
func (c *Controller) Snapshot() *grid.Grid    { return c.board.Clone() }
func (c *Controller) TicksPerStep() int       { return c.period }

// Alive reports the displayed state of p.
func (c *Controller) Alive(p grid.Position) bool { return c.board.Alive(p) }

// Iterate runs one loop iteration: at most one action and one direction are
// consumed, then a generation is computed if one is due. Input is never
// handled while a step is in progress. It returns false once the session
// should end.
func (c *Controller) Iterate() bool {
	if a, ok := c.input.PollAction(); ok {
		if a == Exit {
			slog.Info("session exit", "generation", c.generation, "population", c.population)
			return false
		}
		c.handleAction(a)
	}
	if d, ok := c.input.PollDirectional(); ok {
		c.handleDirection(d)
	}
	if c.mode == Running {
		c.ticks++
		if c.ticks >= c.period {
			c.ticks = 0
			c.Step()
		}
	}
	return true
}

func (c *Controller) handleAction(a Action) {
	switch c.mode {
	case Paused, Running:
		switch a {
		case StartPause:
			if c.mode == Running {
				c.setMode(Paused)
			} else {
				c.setMode(Running)
			}
		case Toggle:
			c.ToggleCell()
		case Rewind:
			c.enterRewind()
		}
	case Rewinding:
		switch a {
		case StartPause:
			c.exitRewind(Running)
		case Rewind:
			c.exitRewind(Paused)
		}
	}
}

func (c *Controller) handleDirection(d Direction) {
	if c.mode == Rewinding {
		switch d {
		case Left:
			c.StepBack()
		case Right:
			c.StepForward()
		}
		return
	}
	prev := c.caret.Move(d)
	c.paint(prev)
	c.paint(c.caret.Pos)
}

// Step computes, applies and records one generation.
func (c *Controller) Step() {
	ds := life.StepRule(c.board, c.cfg.Rule)
	grid.Apply(c.board, ds)
	c.generation++
	c.population += ds.Births() - ds.Deaths()
	e := c.history.Record(rewind.Entry{Generation: c.generation, Diffs: ds})
	c.paintDiffs(ds)

	slog.Debug("generation", "generation", c.generation, "diffs", len(ds), "population", c.population)
	c.notify(Stepped, e)
}

// ToggleCell flips the cell under the caret and records the edit so that it
// is visible to rewind.
func (c *Controller) ToggleCell() {
	ds := c.board.Toggle(c.caret.Pos)
	grid.Apply(c.board, ds)
	c.population += ds.Births() - ds.Deaths()
	e := c.history.Record(rewind.Entry{Generation: c.generation, Edit: true, Diffs: ds})
	c.paintDiffs(ds)

	slog.Debug("toggle", "pos", c.caret.Pos.String(), "state", ds[0].State.String())
	c.notify(Edited, e)
}

// StepBack moves one entry back in history while rewinding.
func (c *Controller) StepBack() bool {
	e, ok := c.history.StepBack(c.board)
	if !ok {
		return false
	}
	c.generation = e.Before()
	c.population -= e.Diffs.Births() - e.Diffs.Deaths()
	c.paintDiffs(e.Diffs)
	c.notify(SteppedBack, e)
	return true
}

// StepForward replays one entry while rewinding.
func (c *Controller) StepForward() bool {
	e, ok := c.history.StepForward(c.board)
	if !ok {
		return false
	}
	c.generation = e.Generation
	c.population += e.Diffs.Births() - e.Diffs.Deaths()
	c.paintDiffs(e.Diffs)
	c.notify(SteppedForward, e)
	return true
}

func (c *Controller) enterRewind() {
	if !c.history.EnterRewind() {
		slog.Debug("rewind unavailable, no history recorded")
		return
	}
	c.setMode(Rewinding)
}

func (c *Controller) exitRewind(next Mode) {
	c.history.ExitRewind()
	c.ticks = 0
	c.setMode(next)
	for p := range c.tinted {
		delete(c.tinted, p)
		c.paint(p)
	}
}

func (c *Controller) setMode(m Mode) {
	if c.mode == m {
		return
	}
	slog.Info("mode", "from", c.mode.String(), "to", m.String(), "generation", c.generation)
	c.mode = m
	c.notify(ModeChanged, rewind.Entry{})
}

func (c *Controller) notify(kind EventKind, e rewind.Entry) {
	ev := Event{Kind: kind, Entry: e, Mode: c.mode, Generation: c.generation, Population: c.population}
	for _, o := range c.observers {
		o.Observe(ev)
	}
}

func (c *Controller) colorOf(p grid.Position) Color {
	alive := c.board.Alive(p)
	switch {
	case p == c.caret.Pos && alive:
		return CaretLive
	case p == c.caret.Pos:
		return CaretDead
	case c.mode == Rewinding && alive:
		return RewindLive
	case c.mode == Rewinding:
		return RewindDead
	case alive:
		return Live
	}
	return Dead
}

func (c *Controller) paint(p grid.Position) {
	col := c.colorOf(p)
	if col == RewindLive || col == RewindDead {
		c.tinted[p] = struct{}{}
	}
	c.display.PaintCell(p, col)
}

func (c *Controller) paintDiffs(ds grid.DiffSet) {
	for _, d := range ds {
		c.paint(d.Pos)
	}
}

// paintCanvas is the only full redraw; everything after it is diff based.
func (c *Controller) paintCanvas() {
	c.display.Clear(Background)
	c.board.Each(func(p grid.Position, _ grid.Cell) {
		c.paint(p)
	})
}
