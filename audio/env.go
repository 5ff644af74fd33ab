package audio

import "math"

// Env is a breakpoint envelope made of len(levels)-1 curved segments.  The
// zero Env is done and silent; give it levels before resetting it.
//
// When a sustain point is set, the envelope holds at that point's level until
// Release is called.
type Env struct {
	Params  Params
	levels  []float64
	lengths []float64
	curves  []float64
	sustain int

	stage    int
	n, i     int
	from, to float64
	value    float64
	started  bool
	released bool
}

const defaultSegmentLength = .5

// Levels sets the breakpoint levels; their count fixes the number of
// segments.  Existing lengths and curves are kept where they fit.
func (e *Env) Levels(levels ...float64) *Env {
	e.levels = append(e.levels[:0], levels...)
	segs := len(levels) - 1
	if segs < 0 {
		segs = 0
	}
	for len(e.lengths) < segs {
		e.lengths = append(e.lengths, defaultSegmentLength)
	}
	for len(e.curves) < segs {
		e.curves = append(e.curves, 0)
	}
	e.lengths = e.lengths[:segs]
	e.curves = e.curves[:segs]
	if e.sustain == 0 || e.sustain >= len(e.levels) {
		e.sustain = -1
	}
	if !e.started || e.stage >= segs {
		e.stage = segs
		if segs > 0 {
			e.value = levels[segs]
		}
	}
	return e
}

// Lengths returns the segment durations in seconds.  The slice may be
// written to; a segment reads its length again on its first sample, so
// lengths written between Reset and the first Sing apply.
func (e *Env) Lengths() []float64 { return e.lengths }

// Curve sets the curvature of every segment; 0 is linear, positive values
// start slowly and negative values start quickly.
func (e *Env) Curve(c float64) *Env {
	for i := range e.curves {
		e.curves[i] = c
	}
	return e
}

// Curves sets per-segment curvature.
func (e *Env) Curves(c ...float64) *Env {
	copy(e.curves, c)
	return e
}

// SustainPoint makes the envelope hold at breakpoint i until Release.
// A negative i disables sustain.
func (e *Env) SustainPoint(i int) *Env {
	if i <= 0 || i >= len(e.levels)-1 {
		i = -1
	}
	e.sustain = i
	return e
}

func (e *Env) Segments() int { return len(e.lengths) }

// Reset restarts the envelope from its first level.
func (e *Env) Reset() {
	e.started = true
	e.released = false
	e.value = 0
	if len(e.levels) > 0 {
		e.value = e.levels[0]
	}
	e.enter(0, e.value)
}

// Release jumps to the segment after the sustain point (or to the last
// segment when there is none), continuing from the current value.
func (e *Env) Release() {
	if e.Done() || e.released {
		return
	}
	hold := e.holding()
	e.released = true
	stage := len(e.lengths) - 1
	if e.sustain >= 0 {
		stage = e.sustain
	}
	if stage < e.stage || stage == e.stage && !hold {
		// already releasing
		return
	}
	e.enter(stage, e.value)
}

func (e *Env) Released() bool { return e.released }

// Done reports whether the last segment has finished.
func (e *Env) Done() bool { return e.stage >= len(e.lengths) }

func (e *Env) Value() float64 { return e.value }

// Sing returns the current value and advances by one sample.
func (e *Env) Sing() float64 {
	v := e.value
	e.advance()
	return v
}

func (e *Env) running() bool { return e.stage < len(e.lengths) }

func (e *Env) holding() bool {
	return !e.released && e.sustain >= 0 && e.stage == e.sustain
}

func (e *Env) enter(stage int, from float64) {
	for ; stage < len(e.lengths); stage++ {
		e.stage = stage
		e.from, e.to = from, e.levels[stage+1]
		e.i = 0
		if e.holding() {
			e.value = from
			return
		}
		e.n = int(math.Round(e.lengths[stage] * e.Params.SampleRate))
		if e.n > 0 {
			e.value = from
			return
		}
		from = e.to
	}
	e.stage = len(e.lengths)
	e.value = from
}

func (e *Env) advance() {
	if !e.running() || e.holding() {
		return
	}
	if e.i == 0 {
		e.n = int(math.Round(e.lengths[e.stage] * e.Params.SampleRate))
	}
	e.i++
	if e.i >= e.n {
		e.enter(e.stage+1, e.to)
		return
	}
	e.value = e.from + (e.to-e.from)*curve(float64(e.i)/float64(e.n), e.curves[e.stage])
}

func curve(x, c float64) float64 {
	if math.Abs(c) < 1e-6 {
		return x
	}
	return (1 - math.Exp(c*x)) / (1 - math.Exp(c))
}

// AD is an attack/decay envelope.  The zero AD has a 10ms attack, 100ms
// decay and unit amplitude.
type AD struct {
	Env
}

func (a *AD) init() {
	if len(a.levels) == 0 {
		a.Levels(0, 1, 0)
		a.lengths[0], a.lengths[1] = .01, .1
		a.Curves(4, -4)
	}
}

func (a *AD) InitAudio(p Params) {
	a.init()
	a.Env.Params = p
}

func (a *AD) Attack(t float64) *AD {
	a.init()
	a.lengths[0] = t
	return a
}

func (a *AD) Decay(t float64) *AD {
	a.init()
	a.lengths[1] = t
	return a
}

func (a *AD) Amp(x float64) *AD {
	a.init()
	a.levels[1] = x
	return a
}

func (a *AD) Reset() { a.init(); a.Env.Reset() }

// Decay is an exponential decay from a start value down to a threshold of
// 0.001 (-60dB) over its decay time.
type Decay struct {
	Params Params
	length float64
	mul    float64
	value  float64
}

const decayThreshold = .001

func (d *Decay) InitAudio(p Params) {
	d.Params = p
	d.Length(d.length)
}

// Length sets the time in seconds to fall to the threshold.
func (d *Decay) Length(t float64) *Decay {
	d.length = t
	if d.Params.SampleRate > 0 && t > 0 {
		d.mul = math.Pow(decayThreshold, 1/(t*d.Params.SampleRate))
	}
	return d
}

func (d *Decay) Reset()         { d.value = 1 }
func (d *Decay) Finish()        { d.value = decayThreshold }
func (d *Decay) Done() bool     { return d.value <= decayThreshold }
func (d *Decay) Value() float64 { return d.value }

func (d *Decay) Sing() float64 {
	v := d.value
	d.value *= d.mul
	return v
}
