package audio

import (
	"math/rand"
	"time"
)

// SlowRand is smooth random motion of amplitude about .8: a new random target every
// half period, joined by cubic interpolation.
type SlowRand struct {
	freq  float64
	i, n  int
	x     [4]float64
	rand  *rand.Rand
	t, dt float64
}

func NewSlowRand(freq float64) *SlowRand {
	return &SlowRand{
		freq: freq,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *SlowRand) InitAudio(p Params) {
	n := p.SampleRate / r.freq / 2
	r.n = max(int(n), 1)
	r.dt = 1 / float64(r.n)
}

// Seed makes the motion repeatable.
func (r *SlowRand) Seed(seed int64) { r.rand = rand.New(rand.NewSource(seed)) }

func (r *SlowRand) Sing() float64 {
	r.i--
	if r.i < 0 {
		r.i = r.n - 1
		r.x[0] = r.x[1]
		r.x[1] = r.x[2]
		r.x[2] = r.x[3]
		r.x[3] = .8 * (2*r.rand.Float64() - 1)
		r.t = 0
	}
	r.t += r.dt
	return Interp3(r.t, r.x[0], r.x[1], r.x[2], r.x[3])
}

// Interp3 is Catmull-Rom interpolation between x1 and x2 at t in [0, 1].
func Interp3(t, x0, x1, x2, x3 float64) float64 {
	c1 := (x2 - x0) / 2
	c2 := x0 - 2.5*x1 + 2*x2 - x3/2
	c3 := (x3-x0)/2 + 1.5*(x1-x2)
	return ((c3*t+c2)*t+c1)*t + x1
}
