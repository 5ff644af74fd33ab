package audio

import "math"

// DCFilter removes the DC offset from a signal (one-pole high-pass at 10Hz).
type DCFilter struct {
	a, x, y float64
}

func (f *DCFilter) InitAudio(p Params) {
	rc := 1 / (2 * math.Pi * 10)
	f.a = rc / (rc + 1/p.SampleRate)
}

func (f *DCFilter) Filter(x float64) float64 {
	f.y = f.a * (f.y + x - f.x)
	f.x = x
	return f.y
}

// Reson is a two-pole resonant band-pass with unity gain at its center
// frequency.  Call Set before or after InitAudio.
type Reson struct {
	Params         Params
	freq, q        float64
	b0, b2, a1, a2 float64
	x1, x2, y1, y2 float64
}

func (f *Reson) InitAudio(p Params) {
	f.Params = p
	f.Set(f.freq, f.q)
}

// Set updates the center frequency and Q.  Frequencies above 45% of the
// sample rate are clamped.
func (f *Reson) Set(freq, q float64) {
	f.freq, f.q = freq, q
	if f.Params.SampleRate == 0 {
		return
	}
	if q <= 0 {
		q = .7071
	}
	freq = math.Min(math.Max(freq, 1), .45*f.Params.SampleRate)
	w := 2 * math.Pi * freq / f.Params.SampleRate
	sin, cos := math.Sincos(w)
	alpha := sin / (2 * q)
	a0 := 1 + alpha
	f.b0 = alpha / a0
	f.b2 = -alpha / a0
	f.a1 = -2 * cos / a0
	f.a2 = (1 - alpha) / a0
}

func (f *Reson) Filter(x float64) float64 {
	y := f.b0*x + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// OnePole is a one-pole low-pass smoother.
type OnePole struct {
	Params Params
	freq   float64
	a      float64
	y      float64
}

func (f *OnePole) InitAudio(p Params) {
	f.Params = p
	f.Freq(f.freq)
}

func (f *OnePole) Freq(freq float64) *OnePole {
	f.freq = freq
	if f.Params.SampleRate > 0 {
		f.a = math.Exp(-2 * math.Pi * freq / f.Params.SampleRate)
	}
	return f
}

func (f *OnePole) Filter(x float64) float64 {
	f.y = x + (f.y-x)*f.a
	return f.y
}

func (f *OnePole) Value() float64 { return f.y }

// EnvFollow tracks the amplitude of a signal.
type EnvFollow struct {
	lp OnePole
}

const envFollowFreq = 10

func (e *EnvFollow) InitAudio(p Params) {
	e.lp.freq = envFollowFreq
	e.lp.InitAudio(p)
}

// Follow feeds x to the follower and returns x unchanged.
func (e *EnvFollow) Follow(x float64) float64 {
	e.lp.Filter(math.Abs(x))
	return x
}

func (e *EnvFollow) Value() float64 { return e.lp.Value() }

// Pan is an equal-power stereo panner.
type Pan struct {
	pos  float64
	l, r float64
	set  bool
}

// Pos sets the position, -1 hard left, 1 hard right.
func (p *Pan) Pos(pos float64) *Pan {
	pos = math.Max(-1, math.Min(1, pos))
	p.pos = pos
	p.l, p.r = math.Cos((pos+1)*math.Pi/4), math.Sin((pos+1)*math.Pi/4)
	p.set = true
	return p
}

func (p *Pan) Pan(x float64) (l, r float64) {
	if !p.set {
		p.Pos(0)
	}
	return x * p.l, x * p.r
}
