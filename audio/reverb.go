package audio

import (
	"math"
	"math/rand"
	"time"
)

// Reverb is a granular feedback reverb: a chain of delay lines whose read
// taps jump to random positions with crossfades.
type Reverb struct {
	params    Params
	size      float64
	decayTime float64
	streams   []*grainStream
	rand      *rand.Rand
}

func NewReverb(size, decayTime float64) *Reverb {
	return &Reverb{size: size, decayTime: decayTime}
}

func (r *Reverb) InitAudio(p Params) {
	r.params = p
	if r.size == 0 {
		r.size = .2
	}
	if r.decayTime == 0 {
		r.decayTime = 4
	}
	r.streams = r.streams[:0]
	for i := 0; i < 10; i++ {
		s := &grainStream{buf: make([]float64, int(p.SampleRate)), t: 1}
		s.dcFilter.InitAudio(p)
		r.streams = append(r.streams, s)
	}
	r.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Reverb returns the wet signal mixed half and half with dry.
func (r *Reverb) Reverb(dry float64) float64 {
	wet := 0.0
	x := dry
	for _, s := range r.streams {
		if s.t >= 1 {
			s.t -= 1
			s.a1, s.i1 = s.a2, s.i2
			delay := math.Exp2(r.rand.Float64() - 2.5)
			s.dt = 1 / math.Exp2(r.rand.Float64()) / r.size / r.params.SampleRate
			s.a2 = math.Pow(.01, delay/r.decayTime)
			s.i2 = (s.i - int(delay*r.params.SampleRate) + len(s.buf)) % len(s.buf)
		}
		sin2 := math.Sin(math.Pi / 2 * s.t)
		sin2 *= sin2
		y := s.dcFilter.Filter(s.a1*(1-sin2)*s.buf[s.i1] + s.a2*sin2*s.buf[s.i2])
		s.i1 = (s.i1 + 1) % len(s.buf)
		s.i2 = (s.i2 + 1) % len(s.buf)
		s.t += s.dt
		s.buf[s.i] = x + y
		s.i = (s.i + 1) % len(s.buf)
		x = y // feed wet output into next stream's input
		wet += y
	}

	return (wet + dry) / 2
}

type grainStream struct {
	buf      []float64
	i        int
	t, dt    float64
	a1, a2   float64
	i1, i2   int
	dcFilter DCFilter
}
