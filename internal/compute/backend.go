package compute

import (
	"sync"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
)

type Backend interface {
	Name() string
	// Step computes the next generation of g without modifying it.
	Step(g *grid.Grid, rule life.Rule) grid.DiffSet
	Cleanup()
}

var mu sync.RWMutex

var activeBackend = AutoSelectBackend()

func SetBackend(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	mu.RLock()
	defer mu.RUnlock()
	return activeBackend
}

// AutoSelectBackend picks the parallel backend when more than one CPU is
// available.
func AutoSelectBackend() Backend {
	cpu := NewCPUBackend()
	if cpu.workers > 1 {
		return cpu
	}
	return Serial{}
}

// Serial steps the board on the calling goroutine.
type Serial struct{}

func (Serial) Name() string { return "serial" }
func (Serial) Cleanup()     {}

func (Serial) Step(g *grid.Grid, rule life.Rule) grid.DiffSet {
	return life.StepRule(g, rule)
}
