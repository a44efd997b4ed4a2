//go:build ebiten

package gui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/SzymonKubica/game-console-sub000/internal/console"
)

var directionKeys = map[ebiten.Key]console.Direction{
	ebiten.KeyArrowUp: console.Up, ebiten.KeyW: console.Up,
	ebiten.KeyArrowDown: console.Down, ebiten.KeyS: console.Down,
	ebiten.KeyArrowLeft: console.Left, ebiten.KeyA: console.Left,
	ebiten.KeyArrowRight: console.Right, ebiten.KeyD: console.Right,
}

var actionKeys = map[ebiten.Key]console.Action{
	ebiten.KeySpace:  console.StartPause,
	ebiten.KeyEnter:  console.Toggle,
	ebiten.KeyT:      console.Toggle,
	ebiten.KeyR:      console.Rewind,
	ebiten.KeyQ:      console.Exit,
	ebiten.KeyEscape: console.Exit,
}

// App adapts a console session to the ebiten.Game interface. The session
// loop runs on its own goroutine; Update only forwards keys.
type App struct {
	opts  Options
	frame *frame
	input *syncInput
	img   *ebiten.Image
	buf   []byte
	done  chan error
}

func newApp(opts Options) *App {
	rows, cols := opts.Rows, opts.Cols
	if opts.Session.Rows > 0 {
		rows = opts.Session.Rows
	}
	if opts.Session.Cols > 0 {
		cols = opts.Session.Cols
	}
	return &App{
		opts:  opts,
		frame: newFrame(rows, cols),
		input: &syncInput{},
		img:   ebiten.NewImage(cols, rows),
		buf:   make([]byte, rows*cols*4),
		done:  make(chan error, 1),
	}
}

func (a *App) Update() error {
	select {
	case err := <-a.done:
		if err != nil {
			return err
		}
		return ebiten.Termination
	default:
	}
	for k, d := range directionKeys {
		if inpututil.IsKeyJustPressed(k) {
			a.input.PushDirection(d)
		}
	}
	for k, act := range actionKeys {
		if inpututil.IsKeyJustPressed(k) {
			a.input.PushAction(act)
		}
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.frame.pixels(a.buf)
	a.img.WritePixels(a.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(a.opts.Scale), float64(a.opts.Scale))
	screen.DrawImage(a.img, op)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.frame.cols * a.opts.Scale, a.frame.rows * a.opts.Scale
}

// Run opens the window and plays Game of Life until the window closes or
// the session exits.
func Run(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()
	a := newApp(opts)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		a.done <- console.Launch(ctx, console.GameOfLife, opts.Session, a.frame, a.input, opts.Observers...)
	}()

	ebiten.SetWindowSize(a.frame.cols*opts.Scale, a.frame.rows*opts.Scale)
	ebiten.SetWindowTitle(opts.Title)
	err := ebiten.RunGame(a)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	slog.Info("window closed")
	return err
}
