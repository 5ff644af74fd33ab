package voices

import (
	"sync"

	"github.com/gordonklaus/avsynth/audio"
	"github.com/gordonklaus/avsynth/mesh"
	"github.com/gordonklaus/avsynth/synth"
)

// Kick is a sine whose pitch falls away under a decay, through a short
// attack-decay envelope.
type Kick struct {
	synth.Base
	Pan    audio.Pan
	Osc    audio.SineOsc
	Decay  audio.Decay
	AmpEnv audio.AD
}

func (v *Kick) Init() error {
	v.AmpEnv.Attack(.01).Decay(.3).Amp(1)
	v.Decay.Length(.3)
	v.CreateTriggerParameter("amplitude", .3, 0, 1)
	v.CreateTriggerParameter("frequency", 60, 20, 5000)
	v.CreateTriggerParameter("attackTime", .01, .001, 3)
	v.CreateTriggerParameter("releaseTime", .3, .01, 10)
	return nil
}

func (v *Kick) ProcessAudio(io *audio.IO) {
	amp := v.Param("amplitude")
	for io.Next() {
		v.Osc.FreqMul(v.Decay.Sing())
		io.AddStereo(v.Pan.Pan(v.Osc.Sing() * v.AmpEnv.Sing() * amp))
	}
	if v.AmpEnv.Done() {
		v.Free()
	}
}

func (v *Kick) TriggerOn() {
	v.AmpEnv.Attack(v.Param("attackTime")).Decay(v.Param("releaseTime"))
	v.AmpEnv.Reset()
	v.Decay.Reset()
	v.Osc.Freq(v.Param("frequency"))
}

func (v *Kick) TriggerOff() {
	v.AmpEnv.Release()
	v.Decay.Finish()
}

// Hihat is a short burst of high, resonant noise.
type Hihat struct {
	synth.Base
	Pan   audio.Pan
	Burst audio.Burst
}

func (v *Hihat) Init() error {
	v.Burst = *audio.NewBurst(20000, 15000, .05)
	return nil
}

func (v *Hihat) ProcessAudio(io *audio.IO) {
	for io.Next() {
		io.AddStereo(v.Pan.Pan(v.Burst.Sing()))
	}
	if v.Burst.Done() {
		v.Free()
	}
}

func (v *Hihat) TriggerOn() { v.Burst.Reset() }

// Snare is a rattle of noise over two falling sines, the top and bottom of
// the drum.  Its reverb parameter sends some of it through a reverb.
type Snare struct {
	synth.Base
	Pan    audio.Pan
	AmpEnv audio.AD
	Osc    audio.SineOsc
	Osc2   audio.SineOsc
	Decay  audio.Decay
	Burst  audio.Burst
	Params audio.Params

	reverb *audio.Reverb
	tail   int
}

// snareTail is how long the reverb rings after the drum, in seconds.
const snareTail = .5

var (
	snareMeshOnce sync.Once
	snareMesh     *mesh.Mesh
)

func (v *Snare) Init() error {
	v.Burst = *audio.NewBurst(10000, 5000, .3)
	v.AmpEnv.Attack(.01).Decay(.01).Amp(1)
	v.Decay.Length(.8)
	v.CreateTriggerParameter("reverb", 0, 0, 1)
	snareMeshOnce.Do(func() {
		snareMesh = mesh.New(mesh.Triangles)
		mesh.AddRect(snareMesh, .3, .5)
	})
	return nil
}

func (v *Snare) ProcessAudio(io *audio.IO) {
	send := v.Param("reverb")
	if v.reverb == nil {
		send = 0
	}
	for io.Next() {
		decay := v.Decay.Sing()
		v.Osc.FreqMul(decay)
		v.Osc2.FreqMul(decay)
		amp := v.AmpEnv.Sing()
		s := v.Burst.Sing() + v.Osc.Sing()*amp*.1 + v.Osc2.Sing()*amp*.05
		if send > 0 {
			s += v.reverb.Reverb(s) * send
		}
		io.AddStereo(v.Pan.Pan(s))
	}
	if v.AmpEnv.Done() && v.Burst.Done() {
		if send == 0 || v.tail <= 0 {
			v.Free()
		}
		v.tail -= io.Frames()
	}
}

func (v *Snare) ProcessGraphics(g mesh.Graphics) {
	g.PushMatrix()
	g.Translate(0, -1, -4)
	g.Color(mesh.RGB(.5, .5, .5))
	g.Draw(snareMesh)
	g.PopMatrix()
}

func (v *Snare) TriggerOn() {
	v.Burst.Reset()
	v.AmpEnv.Reset()
	v.Decay.Reset()
	v.Osc.Freq(200)
	v.Osc2.Freq(150)
	v.tail = int(snareTail * v.Params.SampleRate)
	// Reverbs are large, so only snares that use one get one.
	if v.reverb == nil && v.Param("reverb") > 0 {
		v.reverb = audio.NewReverb(.2, snareTail)
		audio.Init(v.reverb, v.Params)
	}
}

func (v *Snare) TriggerOff() {
	v.AmpEnv.Release()
	v.Decay.Finish()
}
