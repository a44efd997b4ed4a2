package audio

import (
	"math"
	"testing"

	"github.com/SzymonKubica/game-console-sub000/internal/console"
)

func block() [][]float32 {
	return [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}
}

func energy(out [][]float32) float64 {
	var e float64
	for _, ch := range out {
		for _, v := range ch {
			e += float64(v) * float64(v)
		}
	}
	return e
}

func TestRenderBounded(t *testing.T) {
	s := NewSynth(100)
	s.Observe(console.Event{Kind: console.Stepped, Population: 100})
	for i := 0; i < 20; i++ {
		out := block()
		s.Render(out)
		for _, ch := range out {
			for _, v := range ch {
				if math.IsNaN(float64(v)) || v > 1 || v < -1 {
					t.Fatalf("sample %v out of range", v)
				}
			}
		}
	}
}

func TestEditClicks(t *testing.T) {
	quiet, clicked := NewSynth(100), NewSynth(100)
	clicked.Observe(console.Event{Kind: console.Edited, Population: 0})

	a, b := block(), block()
	quiet.Render(a)
	clicked.Render(b)
	if energy(b) <= energy(a) {
		t.Errorf("click energy %v should exceed quiet %v", energy(b), energy(a))
	}

	clicked.mu.Lock()
	pending := clicked.clicks
	clicked.mu.Unlock()
	if pending != 0 {
		t.Errorf("clicks = %d after render, want 0", pending)
	}
}

func TestObserveTracksMode(t *testing.T) {
	s := NewSynth(0)
	s.Observe(console.Event{Kind: console.ModeChanged, Mode: console.Rewinding, Population: 7})
	if !s.rewinding || s.population != 7 || s.area != 1 {
		t.Errorf("synth = rewinding %v population %v area %v", s.rewinding, s.population, s.area)
	}
	s.Observe(console.Event{Kind: console.ModeChanged, Mode: console.Paused})
	if s.rewinding {
		t.Error("rewinding should clear on leaving rewind")
	}
}
