//go:build !portaudio

package audio

import (
	"errors"
	"testing"
)

func TestStartUnavailable(t *testing.T) {
	if _, err := Start(NewSynth(10)); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
