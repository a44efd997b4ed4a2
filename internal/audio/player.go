//go:build portaudio

package audio

import (
	"log/slog"

	"github.com/gordonklaus/portaudio"
)

// Player streams a Synth to the default output device.
type Player struct {
	synth  *Synth
	stream *portaudio.Stream
}

// Start opens an output only stream; duplex streams often fail on Linux
// when the devices differ.
func Start(s *Synth) (*Player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.Render)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, err
	}
	slog.Info("audio started", "sample_rate", SampleRate, "buffer", BufferSize)
	return &Player{synth: s, stream: stream}, nil
}

func (p *Player) Stop() {
	if p.stream != nil {
		p.stream.Stop()
		p.stream.Close()
	}
	portaudio.Terminate()
}
