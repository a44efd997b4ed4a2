//go:build !portaudio

package audio

type Player struct{}

func Start(*Synth) (*Player, error) { return nil, ErrUnavailable }

func (p *Player) Stop() {}
