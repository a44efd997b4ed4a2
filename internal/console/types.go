package console

import (
	"fmt"
	"strings"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
)

// Direction is a directional input.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", d)
}

// Action is one of the four semantic buttons.
type Action uint8

const (
	StartPause Action = iota
	Toggle
	Rewind
	Exit
)

func (a Action) String() string {
	switch a {
	case StartPause:
		return "start/pause"
	case Toggle:
		return "toggle"
	case Rewind:
		return "rewind"
	case Exit:
		return "exit"
	}
	return fmt.Sprintf("action(%d)", a)
}

// Color is a semantic paint color; front ends map it onto their palette.
type Color uint8

const (
	Background Color = iota
	Dead
	Live
	CaretDead
	CaretLive
	RewindDead
	RewindLive
)

// Display is the rendering collaborator.
type Display interface {
	Initialize() error
	Clear(c Color)
	PaintCell(p grid.Position, c Color)
	// Dimensions reports how many cells fit the drawable area.
	Dimensions() (rows, cols int)
}

// Input is the polling input collaborator. Each call consumes at most one
// pending event.
type Input interface {
	PollDirectional() (Direction, bool)
	PollAction() (Action, bool)
}

// Mode is the controller state.
type Mode uint8

const (
	Paused Mode = iota
	Running
	Rewinding
)

func (m Mode) String() string {
	switch m {
	case Paused:
		return "paused"
	case Running:
		return "running"
	case Rewinding:
		return "rewind"
	}
	return fmt.Sprintf("mode(%d)", m)
}

// Game selects which game a menu entry launches.
type Game uint8

const (
	GameOfLife Game = iota
)

func (g Game) String() string {
	switch g {
	case GameOfLife:
		return "life"
	}
	return fmt.Sprintf("game(%d)", g)
}

// ParseGame maps a menu or CLI name onto a Game.
func ParseGame(s string) (Game, error) {
	switch strings.ToLower(s) {
	case "life", "game-of-life", "gol":
		return GameOfLife, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownGame, s)
}
