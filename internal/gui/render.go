// Package gui is the windowed front end. The window itself needs the ebiten
// build tag; the frame buffer and input plumbing here build everywhere.
package gui

import (
	"errors"
	"image/color"
	"sync"

	"github.com/SzymonKubica/game-console-sub000/internal/console"
	"github.com/SzymonKubica/game-console-sub000/internal/grid"
)

// ErrUnavailable is returned by Run in builds without the ebiten tag.
var ErrUnavailable = errors.New("gui: built without the 'ebiten' tag")

// Palette (monochrome, rewind tinted blue)
var (
	ColBg         = color.RGBA{10, 10, 10, 255}
	ColDead       = color.RGBA{30, 30, 30, 255}
	ColLive       = color.RGBA{180, 180, 180, 255}
	ColCaret      = color.RGBA{255, 255, 255, 255}
	ColCaretLive  = color.RGBA{255, 220, 0, 255}
	ColRewindDead = color.RGBA{10, 20, 40, 255}
	ColRewindLive = color.RGBA{80, 160, 255, 255}
)

// Options configures the window.
type Options struct {
	Session   console.Config
	Rows      int
	Cols      int
	Scale     int
	Title     string
	Observers []console.Observer
}

func (o Options) withDefaults() Options {
	if o.Rows <= 0 {
		o.Rows = 60
	}
	if o.Cols <= 0 {
		o.Cols = 80
	}
	if o.Scale <= 0 {
		o.Scale = 8
	}
	if o.Title == "" {
		o.Title = "game console"
	}
	return o
}

func rgba(c console.Color) color.RGBA {
	switch c {
	case console.Dead:
		return ColDead
	case console.Live:
		return ColLive
	case console.CaretDead:
		return ColCaret
	case console.CaretLive:
		return ColCaretLive
	case console.RewindDead:
		return ColRewindDead
	case console.RewindLive:
		return ColRewindLive
	}
	return ColBg
}

// frame is a console.Display shared between the controller goroutine, which
// paints, and the window's draw callback, which reads.
type frame struct {
	mu         sync.Mutex
	rows, cols int
	cells      []console.Color
}

func newFrame(rows, cols int) *frame {
	return &frame{rows: rows, cols: cols, cells: make([]console.Color, rows*cols)}
}

func (f *frame) Initialize() error      { return nil }
func (f *frame) Dimensions() (int, int) { return f.rows, f.cols }

func (f *frame) Clear(c console.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.cells {
		f.cells[i] = c
	}
}

func (f *frame) PaintCell(p grid.Position, c console.Color) {
	if p.Row < 0 || p.Row >= f.rows || p.Col < 0 || p.Col >= f.cols {
		return
	}
	f.mu.Lock()
	f.cells[p.Row*f.cols+p.Col] = c
	f.mu.Unlock()
}

// pixels fills dst (RGBA, rows*cols*4 bytes) with one pixel per cell.
func (f *frame) pixels(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.cells {
		col := rgba(c)
		dst[4*i] = col.R
		dst[4*i+1] = col.G
		dst[4*i+2] = col.B
		dst[4*i+3] = col.A
	}
}

// syncInput is a console.Input fed from the window's update callback.
type syncInput struct {
	mu sync.Mutex
	q  console.Queue
}

func (in *syncInput) PushAction(a console.Action) {
	in.mu.Lock()
	in.q.PushAction(a)
	in.mu.Unlock()
}

func (in *syncInput) PushDirection(d console.Direction) {
	in.mu.Lock()
	in.q.PushDirection(d)
	in.mu.Unlock()
}

func (in *syncInput) PollAction() (console.Action, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.q.PollAction()
}

func (in *syncInput) PollDirectional() (console.Direction, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.q.PollDirectional()
}
