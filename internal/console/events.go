package console

import "github.com/SzymonKubica/game-console-sub000/internal/rewind"

// EventKind classifies controller events.
type EventKind uint8

const (
	Stepped EventKind = iota
	Edited
	SteppedBack
	SteppedForward
	ModeChanged
)

func (k EventKind) String() string {
	switch k {
	case Stepped:
		return "stepped"
	case Edited:
		return "edited"
	case SteppedBack:
		return "stepped-back"
	case SteppedForward:
		return "stepped-forward"
	case ModeChanged:
		return "mode-changed"
	}
	return "unknown"
}

// Event describes a change the controller made to the session.
type Event struct {
	Kind       EventKind
	Entry      rewind.Entry
	Mode       Mode
	Generation int
	Population int
}

// Observer is notified synchronously after every change.
type Observer interface {
	Observe(e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e Event)

func (f ObserverFunc) Observe(e Event) { f(e) }
