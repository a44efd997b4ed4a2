package console

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
	"github.com/SzymonKubica/game-console-sub000/internal/rewind"
)

type paint struct {
	pos   grid.Position
	color Color
}

type testDisplay struct {
	rows, cols int
	initErr    error
	inits      int
	clears     int
	paints     []paint
}

func (d *testDisplay) Initialize() error                  { d.inits++; return d.initErr }
func (d *testDisplay) Clear(c Color)                      { d.clears++ }
func (d *testDisplay) PaintCell(p grid.Position, c Color) { d.paints = append(d.paints, paint{p, c}) }
func (d *testDisplay) Dimensions() (int, int)             { return d.rows, d.cols }

func (d *testDisplay) last(p grid.Position) (Color, bool) {
	for i := len(d.paints) - 1; i >= 0; i-- {
		if d.paints[i].pos == p {
			return d.paints[i].color, true
		}
	}
	return 0, false
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Prepopulate = false
	cfg.StepPeriod = 10 * time.Millisecond
	cfg.LoopDelay = 10 * time.Millisecond
	cfg.RewindDepth = 16
	return cfg
}

func newController(t *testing.T, cfg Config, rows, cols int) (*Controller, *testDisplay, *Queue) {
	t.Helper()
	d := &testDisplay{rows: rows, cols: cols}
	q := &Queue{}
	c, err := New(cfg, d, q)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c, d, q
}

func TestNewRejectsZeroRewindDepth(t *testing.T) {
	cfg := testConfig()
	cfg.RewindDepth = 0
	d := &testDisplay{rows: 10, cols: 10}

	_, err := New(cfg, d, &Queue{})
	if !errors.Is(err, rewind.ErrZeroCapacity) {
		t.Fatalf("expected ErrZeroCapacity, got %v", err)
	}
	if d.inits != 0 {
		t.Error("display initialized despite invalid config")
	}
}

func TestNewRejectsBadStepPeriod(t *testing.T) {
	cfg := testConfig()
	cfg.StepPeriod = 0
	if _, err := New(cfg, &testDisplay{rows: 10, cols: 10}, &Queue{}); !errors.Is(err, ErrInvalidStepPeriod) {
		t.Errorf("expected ErrInvalidStepPeriod, got %v", err)
	}
}

func TestNewDisplayErrors(t *testing.T) {
	boom := errors.New("boom")
	if _, err := New(testConfig(), &testDisplay{rows: 10, cols: 10, initErr: boom}, &Queue{}); !errors.Is(err, boom) {
		t.Errorf("expected init error, got %v", err)
	}
	if _, err := New(testConfig(), &testDisplay{rows: 2, cols: 10}, &Queue{}); !errors.Is(err, ErrDisplayTooSmall) {
		t.Errorf("expected ErrDisplayTooSmall, got %v", err)
	}
}

func TestInitialCanvasIsFullRedraw(t *testing.T) {
	c, d, _ := newController(t, testConfig(), 6, 8)
	if d.clears != 1 {
		t.Errorf("expected one clear, got %d", d.clears)
	}
	if len(d.paints) != 48 {
		t.Errorf("expected 48 initial paints, got %d", len(d.paints))
	}
	if c.Mode() != Paused {
		t.Errorf("expected initial mode paused, got %v", c.Mode())
	}
	if col, _ := d.last(c.Caret()); col != CaretDead {
		t.Errorf("expected caret painted, got %v", col)
	}
}

func TestPinnedDimensions(t *testing.T) {
	cfg := testConfig()
	cfg.Rows, cfg.Cols = 5, 7
	c, _, _ := newController(t, cfg, 40, 40)
	if c.Rows() != 5 || c.Cols() != 7 {
		t.Errorf("expected 5x7 board, got %dx%d", c.Rows(), c.Cols())
	}
}

func TestRunningStepsOnlyChangedCells(t *testing.T) {
	cfg := testConfig()
	cfg.Topology = grid.Bounded
	blinker, _ := life.GetPattern("blinker")
	cfg.Pattern = &blinker
	c, d, q := newController(t, cfg, 5, 5)

	q.PushAction(StartPause)
	d.paints = nil
	if !c.Iterate() {
		t.Fatal("iterate ended session")
	}
	if c.Mode() != Running {
		t.Fatalf("expected running, got %v", c.Mode())
	}
	if c.Generation() != 1 {
		t.Fatalf("expected generation 1, got %d", c.Generation())
	}
	if len(d.paints) != 4 {
		t.Errorf("blinker step should paint 4 cells, painted %d", len(d.paints))
	}
	if c.Population() != 3 {
		t.Errorf("expected population 3, got %d", c.Population())
	}
	if c.History().Len() != 1 {
		t.Errorf("expected one recorded entry, got %d", c.History().Len())
	}
}

func TestTicksPerStep(t *testing.T) {
	cfg := testConfig()
	cfg.StepPeriod = 50 * time.Millisecond
	c, _, q := newController(t, cfg, 5, 5)
	if c.TicksPerStep() != 5 {
		t.Fatalf("expected 5 ticks per step, got %d", c.TicksPerStep())
	}

	q.PushAction(StartPause)
	for i := 0; i < 4; i++ {
		c.Iterate()
	}
	if c.Generation() != 0 {
		t.Fatalf("stepped early at generation %d", c.Generation())
	}
	c.Iterate()
	if c.Generation() != 1 {
		t.Errorf("expected generation 1 after 5 ticks, got %d", c.Generation())
	}
}

func TestPauseStopsStepping(t *testing.T) {
	c, _, q := newController(t, testConfig(), 5, 5)
	q.PushAction(StartPause)
	c.Iterate()
	c.Iterate()
	q.PushAction(StartPause)
	c.Iterate()
	gen := c.Generation()
	for i := 0; i < 5; i++ {
		c.Iterate()
	}
	if c.Mode() != Paused || c.Generation() != gen {
		t.Errorf("expected paused at generation %d, got %v at %d", gen, c.Mode(), c.Generation())
	}
}

func TestCaretWraps(t *testing.T) {
	c, d, q := newController(t, testConfig(), 4, 6)
	start := c.Caret()
	if start != (grid.Position{Row: 2, Col: 3}) {
		t.Fatalf("unexpected caret start %v", start)
	}

	for i := 0; i < 3; i++ {
		q.PushDirection(Up)
		c.Iterate()
	}
	if got := c.Caret(); got != (grid.Position{Row: 3, Col: 3}) {
		t.Errorf("caret should wrap to bottom row, got %v", got)
	}
	if col, _ := d.last(start); col != Dead {
		t.Errorf("old caret cell should be repainted dead, got %v", col)
	}

	q.PushDirection(Right)
	c.Iterate()
	q.PushDirection(Right)
	c.Iterate()
	q.PushDirection(Right)
	c.Iterate()
	if got := c.Caret(); got != (grid.Position{Row: 3, Col: 0}) {
		t.Errorf("caret should wrap to first column, got %v", got)
	}
}

func TestToggleIsRecordedAndRewindable(t *testing.T) {
	c, d, q := newController(t, testConfig(), 5, 5)
	p := c.Caret()

	q.PushAction(Toggle)
	c.Iterate()
	if !c.Alive(p) {
		t.Fatal("toggle did not set the cell")
	}
	if col, _ := d.last(p); col != CaretLive {
		t.Errorf("expected caret-live paint, got %v", col)
	}
	if c.History().Len() != 1 {
		t.Fatalf("expected toggle recorded, history len %d", c.History().Len())
	}
	if c.Generation() != 0 {
		t.Errorf("toggle must not advance the generation, got %d", c.Generation())
	}

	q.PushAction(Rewind)
	c.Iterate()
	q.PushDirection(Left)
	c.Iterate()
	if c.Alive(p) {
		t.Error("rewinding the toggle should clear the cell")
	}
	if c.Population() != 0 {
		t.Errorf("expected population 0, got %d", c.Population())
	}
}

func TestRewindRestoresAndResumes(t *testing.T) {
	cfg := testConfig()
	cfg.Prepopulate = true
	cfg.Seed = 11
	cfg.Density = 0.4
	c, d, q := newController(t, cfg, 10, 10)
	initial := c.Snapshot()
	initialPop := c.Population()

	q.PushAction(StartPause)
	for i := 0; i < 6; i++ {
		c.Iterate()
	}
	if c.Generation() != 6 {
		t.Fatalf("expected generation 6, got %d", c.Generation())
	}
	present := c.Snapshot()

	q.PushAction(Rewind)
	c.Iterate()
	if c.Mode() != Rewinding {
		t.Fatalf("expected rewind mode, got %v", c.Mode())
	}
	caret := c.Caret()

	for i := 0; i < 10; i++ {
		q.PushDirection(Left)
		c.Iterate()
	}
	if !c.Snapshot().Equal(initial) {
		t.Fatal("stepping back over all history did not restore the initial board")
	}
	if c.Generation() != 0 || c.Population() != initialPop {
		t.Errorf("expected generation 0 pop %d, got %d pop %d", initialPop, c.Generation(), c.Population())
	}

	q.PushDirection(Up)
	c.Iterate()
	if c.Caret() != caret {
		t.Error("vertical input must be ignored in rewind")
	}

	for i := 0; i < 10; i++ {
		q.PushDirection(Right)
		c.Iterate()
	}
	if !c.Snapshot().Equal(present) || c.Generation() != 6 {
		t.Fatal("stepping forward did not return to the present")
	}

	q.PushDirection(Left)
	c.Iterate()
	q.PushAction(Rewind)
	c.Iterate()
	if c.Mode() != Paused {
		t.Fatalf("rewind action should leave into paused, got %v", c.Mode())
	}
	for p := range c.tinted {
		t.Errorf("cell %v still tinted after leaving rewind", p)
	}
	for _, pt := range d.paints {
		if pt.color == RewindLive || pt.color == RewindDead {
			if col, _ := d.last(pt.pos); col == RewindLive || col == RewindDead {
				t.Errorf("cell %v left in rewind colors", pt.pos)
			}
		}
	}

	q.PushAction(StartPause)
	c.Iterate()
	if c.Generation() != 6 {
		t.Errorf("resuming from generation 5 should produce generation 6, got %d", c.Generation())
	}
	if c.History().Len() != 6 {
		t.Errorf("old future should have been replaced, history len %d", c.History().Len())
	}
}

func TestRewindNeedsHistory(t *testing.T) {
	c, _, q := newController(t, testConfig(), 5, 5)
	q.PushAction(Rewind)
	c.Iterate()
	if c.Mode() != Paused {
		t.Errorf("rewind with empty history should stay paused, got %v", c.Mode())
	}
}

func TestRewindIgnoresToggle(t *testing.T) {
	c, _, q := newController(t, testConfig(), 5, 5)
	q.PushAction(Toggle)
	c.Iterate()
	q.PushAction(Rewind)
	c.Iterate()
	q.PushAction(Toggle)
	c.Iterate()
	if c.History().Len() != 1 || c.Mode() != Rewinding {
		t.Errorf("toggle in rewind should be ignored")
	}
	q.PushAction(StartPause)
	c.Iterate()
	if c.Mode() != Running {
		t.Errorf("start/pause should leave rewind into running, got %v", c.Mode())
	}
}

func TestObserversSeeEvents(t *testing.T) {
	c, _, q := newController(t, testConfig(), 5, 5)
	var kinds []EventKind
	c.AddObserver(ObserverFunc(func(e Event) { kinds = append(kinds, e.Kind) }))

	q.PushAction(Toggle)
	c.Iterate()
	q.PushAction(StartPause)
	c.Iterate()

	want := []EventKind{Edited, ModeChanged, Stepped}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d: expected %v, got %v", i, want[i], kinds[i])
		}
	}
}

func TestExitEndsLoop(t *testing.T) {
	c, _, q := newController(t, testConfig(), 5, 5)
	q.PushAction(Exit)
	if c.Iterate() {
		t.Error("exit should end the session")
	}

	c, _, q = newController(t, testConfig(), 5, 5)
	q.PushAction(StartPause)
	q.PushAction(Exit)
	if err := c.Run(context.Background()); err != nil {
		t.Errorf("run: %v", err)
	}
	if c.Generation() != 1 {
		t.Errorf("expected one generation before exit, got %d", c.Generation())
	}
}

func TestRunHonoursContext(t *testing.T) {
	c, _, _ := newController(t, testConfig(), 5, 5)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := c.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestLaunchUnknownGame(t *testing.T) {
	err := Launch(context.Background(), Game(9), testConfig(), &testDisplay{rows: 5, cols: 5}, &Queue{})
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("expected ErrUnknownGame, got %v", err)
	}
	if _, err := ParseGame("tetris"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("expected ErrUnknownGame, got %v", err)
	}
}
