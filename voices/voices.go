// Package voices holds the instruments of the demo songs.
package voices

import (
	"math"

	"github.com/gordonklaus/avsynth/audio"
	"github.com/gordonklaus/avsynth/synth"
)

// FFTSize is the transform size of the spectrum displays.
const FFTSize = 4096

// Register adds the synthesized voices to s under their type names.  Voices
// that play sound files are registered with NewOpenHihat and NewSample.
func Register(s *synth.PolySynth) {
	s.Register("SineEnv", func() synth.Voice { return new(SineEnv) })
	s.Register("SquareWave", func() synth.Voice { return new(SquareWave) })
	s.Register("Kick", func() synth.Voice { return new(Kick) })
	s.Register("Hihat", func() synth.Voice { return new(Hihat) })
	s.Register("Snare", func() synth.Voice { return new(Snare) })
	s.Register("Lead", func() synth.Voice { return new(Lead) })
	s.Register("Pad", func() synth.Voice { return new(Pad) })
}

// envParams creates the parameters shared by the enveloped voices.
func envParams(b *synth.Base) {
	b.CreateTriggerParameter("amplitude", .3, 0, 1)
	b.CreateTriggerParameter("frequency", 60, 20, 5000)
	b.CreateTriggerParameter("attackTime", .1, .01, 3)
	b.CreateTriggerParameter("releaseTime", .1, .1, 10)
	b.CreateTriggerParameter("pan", 0, -1, 1)
}

// sustainEnv shapes e as a linear attack, sustain, release envelope.
func sustainEnv(e *audio.Env) {
	e.Levels(0, 1, 1, 0).Curve(0).SustainPoint(2)
}

// spectrum keeps the shaped magnitudes of the latest STFT frame.
type spectrum struct {
	stft *audio.STFT
	bins []float64
}

func newSpectrum() (*spectrum, error) {
	stft, err := audio.NewSTFT(FFTSize)
	if err != nil {
		return nil, err
	}
	return &spectrum{stft: stft, bins: make([]float64, stft.NumBins())}, nil
}

func (s *spectrum) push(x float64) {
	if !s.stft.Push(x) {
		return
	}
	for k := range s.bins {
		s.bins[k] = math.Tanh(math.Pow(s.stft.Bin(k), 1.3))
	}
}

func (s *spectrum) reset() {
	s.stft.Reset()
	clear(s.bins)
}
