package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SzymonKubica/game-console-sub000/internal/console"
)

var directionKeys = map[string]console.Direction{
	"up": console.Up, "k": console.Up, "w": console.Up,
	"down": console.Down, "j": console.Down, "s": console.Down,
	"left": console.Left, "h": console.Left, "a": console.Left,
	"right": console.Right, "l": console.Right, "d": console.Right,
}

var actionKeys = map[string]console.Action{
	" ":     console.StartPause,
	"p":     console.StartPause,
	"enter": console.Toggle,
	"t":     console.Toggle,
	"x":     console.Toggle,
	"r":     console.Rewind,
	"q":     console.Exit,
	"esc":   console.Exit,
}

// pushKey translates a key press into console input. It reports whether the
// key was recognised.
func pushKey(q *console.Queue, msg tea.KeyMsg) bool {
	key := msg.String()
	if d, ok := directionKeys[key]; ok {
		q.PushDirection(d)
		return true
	}
	if a, ok := actionKeys[key]; ok {
		q.PushAction(a)
		return true
	}
	return false
}
