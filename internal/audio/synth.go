// Package audio sonifies a session: a soft pad whose brightness follows the
// population, with a short click for every edit and a falling tone while
// rewinding. Output needs the portaudio build tag; the synthesizer itself
// is plain Go.
package audio

import (
	"errors"
	"math"
	"sync"

	"github.com/SzymonKubica/game-console-sub000/internal/console"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

var ErrUnavailable = errors.New("audio output not built in (rebuild with -tags portaudio)")

// Synth renders stereo audio driven by controller events. Observe may be
// called from the loop goroutine while Render runs on the audio callback.
type Synth struct {
	mu         sync.Mutex
	population float64
	area       float64
	clicks     int
	rewinding  bool

	// Synthesis state, owned by Render.
	time        float64
	popSmooth   float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int
	clickPhase  float64
	clickLeft   int
}

// NewSynth creates a synth for a board of the given area, used to normalize
// the population.
func NewSynth(area int) *Synth {
	// 0.4 second delay
	delayLen := int(float64(SampleRate) * 0.4)
	if area < 1 {
		area = 1
	}
	return &Synth{
		area:      float64(area),
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

// Observe implements console.Observer.
func (s *Synth) Observe(e console.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.population = float64(e.Population)
	s.rewinding = e.Mode == console.Rewinding
	if e.Kind == console.Edited {
		s.clicks++
	}
}

// Triangle wave, softer than a saw.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One pole low pass.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

// Render fills out[0] and out[1] with the next block of samples.
func (s *Synth) Render(out [][]float32) {
	s.mu.Lock()
	target := s.population / s.area
	rewinding := s.rewinding
	if s.clicks > 0 {
		s.clicks = 0
		s.clickLeft = SampleRate / 40
		s.clickPhase = 0
	}
	s.mu.Unlock()

	// Gm7 add9
	freqs := []float64{98.00, 116.54, 146.83, 174.61, 220.00}
	if rewinding {
		// a fourth down while history plays backwards
		for i := range freqs {
			freqs[i] *= 0.75
		}
	}

	dt := 1.0 / float64(SampleRate)
	vol := 0.25

	for i := 0; i < len(out[0]); i++ {
		s.popSmooth = s.popSmooth*0.9995 + target*0.0005
		// denser boards open the filter, 300Hz up to 1500Hz
		cutoff := 300.0 + math.Min(s.popSmooth*4000.0, 1200.0)

		sampleL, sampleR := 0.0, 0.0
		for j, f := range freqs {
			g := 1.0 / float64(len(freqs))
			lfo := math.Sin(s.time*0.2 + float64(j))
			sampleL += triangle(s.time*f*0.999) * g * (0.7 + 0.3*lfo)
			sampleR += triangle(s.time*f*1.001) * g * (0.7 + 0.3*lfo)
		}

		var outL, outR float64
		outL, s.filterState[0] = lpf(sampleL, cutoff, dt, s.filterState[0])
		outR, s.filterState[1] = lpf(sampleR, cutoff, dt, s.filterState[1])

		if s.clickLeft > 0 {
			env := float64(s.clickLeft) / float64(SampleRate/40)
			click := math.Sin(2*math.Pi*s.clickPhase) * env * 0.5
			s.clickPhase += 1760.0 * dt
			s.clickLeft--
			outL += click
			outR += click
		}

		delayL := s.delayLine[0][s.delayHead]
		delayR := s.delayLine[1][s.delayHead]
		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1
		s.delayLine[0][s.delayHead] = mixL * 0.6
		s.delayLine[1][s.delayHead] = mixR * 0.6
		s.delayHead = (s.delayHead + 1) % len(s.delayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		s.time += dt
	}
}
