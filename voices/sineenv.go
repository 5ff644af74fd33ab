package voices

import (
	"github.com/gordonklaus/avsynth/audio"
	"github.com/gordonklaus/avsynth/synth"
)

const maxPartials = 10

// SineEnv is additive: partial n is a sine at n times the frequency, weighted
// 1/n, all under one attack-sustain-release envelope.
type SineEnv struct {
	synth.Base
	Pan    audio.Pan
	Osc    [maxPartials]audio.SineOsc
	AmpEnv audio.Env
}

func (v *SineEnv) Init() error {
	sustainEnv(&v.AmpEnv)
	envParams(&v.Base)
	v.CreateTriggerParameter("partials", 3, 1, maxPartials)
	return nil
}

func (v *SineEnv) ProcessAudio(io *audio.IO) {
	freq := v.Param("frequency")
	partials := int(v.Param("partials"))
	for i := 0; i < partials; i++ {
		v.Osc[i].Freq(float64(i+1) * freq)
	}
	v.AmpEnv.Lengths()[0] = v.Param("attackTime")
	v.AmpEnv.Lengths()[2] = v.Param("releaseTime")
	v.Pan.Pos(v.Param("pan"))
	amp := v.Param("amplitude")
	for io.Next() {
		env := v.AmpEnv.Sing()
		s := 0.0
		for i := 0; i < partials; i++ {
			s += v.Osc[i].Sing() / float64(i+1)
		}
		io.AddStereo(v.Pan.Pan(s * env * amp))
	}
	if v.AmpEnv.Done() {
		v.Free()
	}
}

func (v *SineEnv) TriggerOn()  { v.AmpEnv.Reset() }
func (v *SineEnv) TriggerOff() { v.AmpEnv.Release() }

// SquareWave is the slap bass voice.  It is built like SineEnv but keeps its
// own name, and so its own presets.
type SquareWave struct {
	SineEnv
}
