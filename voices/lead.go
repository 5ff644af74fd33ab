package voices

import (
	"math"
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gordonklaus/avsynth/audio"
	"github.com/gordonklaus/avsynth/mesh"
	"github.com/gordonklaus/avsynth/synth"
)

// Lead is two squares an octave apart.  Each note shows as a tumbling,
// lit sphere placed by pitch that swells with the envelope.
type Lead struct {
	synth.Base
	Pan       audio.Pan
	Square1   audio.SquareOsc
	Square2   audio.SquareOsc
	AmpEnv    audio.Env
	EnvFollow audio.EnvFollow

	a, b      float64
	position  mgl32.Vec3
	direction mgl32.Vec3
	wobble    *audio.SlowRand
}

// frameRate is the rate at which graphics advance.
const frameRate = 60

var (
	sphereOnce sync.Once
	sphere     *mesh.Mesh
)

func (v *Lead) Init() error {
	sustainEnv(&v.AmpEnv)
	sphereOnce.Do(func() {
		sphere = mesh.New(mesh.Triangles)
		mesh.AddSphere(sphere, 1, 24, 16)
		sphere.Decompress()
		sphere.GenerateNormals()
	})
	v.wobble = audio.NewSlowRand(.5)
	audio.Init(v.wobble, audio.Params{SampleRate: frameRate})
	envParams(&v.Base)
	v.CreateTriggerParameter("deltaA", .23, -1, 1)
	v.CreateTriggerParameter("deltaB", .29, -1, 1)
	return nil
}

func (v *Lead) ProcessAudio(io *audio.IO) {
	freq := v.Param("frequency")
	v.Square1.Freq(freq)
	v.Square2.Freq(freq * 2)
	v.AmpEnv.Lengths()[0] = v.Param("attackTime")
	v.AmpEnv.Lengths()[2] = v.Param("releaseTime")
	v.Pan.Pos(v.Param("pan"))
	amp := v.Param("amplitude")
	for io.Next() {
		s := (v.Square1.Sing() + v.Square2.Sing()*.5) * v.AmpEnv.Sing() * amp
		v.EnvFollow.Follow(s)
		io.AddStereo(v.Pan.Pan(s))
	}
	if v.AmpEnv.Done() {
		v.Free()
	}
}

func (v *Lead) ProcessGraphics(g mesh.Graphics) {
	v.a += v.Param("deltaA")
	v.b += v.Param("deltaB")
	freq := v.Param("frequency")
	env := v.AmpEnv.Value()
	pos := v.position.Add(v.direction.Mul(float32(v.wobble.Sing()) * .2))

	g.PushMatrix()
	g.DepthTesting(true)
	g.Lighting(true)
	g.Translate(pos[0], pos[1], pos[2])
	g.Rotate(float32(v.a), mgl32.Vec3{1, 0, 0})
	g.Rotate(float32(v.b), mgl32.Vec3{1, 1, 1})
	g.Scale(float32(.3+env*.2), float32(.3+env*.5), 1)
	g.Color(mesh.HSV(freq/1000, .5+env*.1, .3+.5*env))
	g.Draw(sphere)
	g.Lighting(false)
	g.DepthTesting(false)
	g.PopMatrix()
}

func (v *Lead) TriggerOn() {
	freq := v.Param("frequency")
	angle := freq / 200
	v.a = rand.Float64()
	v.b = rand.Float64()
	v.position = mgl32.Vec3{float32(freq/1000 - .5), 0, -15}
	v.direction = mgl32.Vec3{float32(math.Sin(angle)), float32(math.Cos(angle)), 0}
	v.AmpEnv.Reset()
}

func (v *Lead) TriggerOff() { v.AmpEnv.Release() }

// Pad is a sine under a slow envelope, drawn as its own spectrum.
type Pad struct {
	synth.Base
	Pan       audio.Pan
	Osc       audio.SineOsc
	AmpEnv    audio.Env
	EnvFollow audio.EnvFollow

	spectrum    *spectrum
	spectrogram *mesh.Mesh
}

func (v *Pad) Init() error {
	sustainEnv(&v.AmpEnv)
	s, err := newSpectrum()
	if err != nil {
		return err
	}
	v.spectrum = s
	v.spectrogram = mesh.New(mesh.LineStrip)
	envParams(&v.Base)
	return nil
}

func (v *Pad) ProcessAudio(io *audio.IO) {
	v.Osc.Freq(v.Param("frequency"))
	v.AmpEnv.Lengths()[0] = v.Param("attackTime")
	v.AmpEnv.Lengths()[2] = v.Param("releaseTime")
	v.Pan.Pos(v.Param("pan"))
	amp := v.Param("amplitude")
	for io.Next() {
		s := v.Osc.Sing() * v.AmpEnv.Sing() * amp
		v.EnvFollow.Follow(s)
		io.AddStereo(v.Pan.Pan(s))
		v.spectrum.push(s)
	}
	if v.AmpEnv.Done() {
		v.Free()
	}
}

func (v *Pad) ProcessGraphics(g mesh.Graphics) {
	freq := v.Param("frequency")
	bins := v.spectrum.bins

	v.spectrogram.Reset()
	for i := 0; i < FFTSize/90; i++ {
		v.spectrogram.Color(mesh.Hue(freq/500 - bins[i]*50))
		v.spectrogram.Vertex(float32(i), float32(bins[i]), 0)
	}

	g.MeshColor()
	g.PushMatrix()
	g.Translate(-1.5, 1, -10)
	g.Scale(350./FFTSize, 250, 1)
	g.LineWidth(float32(1 + v.EnvFollow.Value()*50))
	g.Draw(v.spectrogram)
	g.PopMatrix()
}

func (v *Pad) TriggerOn() {
	v.spectrum.reset()
	v.AmpEnv.Reset()
}

func (v *Pad) TriggerOff() { v.AmpEnv.Release() }
