package audio

import "math"

// phasor is the phase accumulator shared by the oscillators.  Phase is in
// cycles, [0, 1).
type phasor struct {
	Params Params
	freq   float64
	inc    float64
	phase  float64
}

func (p *phasor) InitAudio(q Params) {
	p.Params = q
	p.Freq(p.freq)
}

// Freq sets the frequency in Hz.
func (p *phasor) Freq(freq float64) {
	p.freq = freq
	if p.Params.SampleRate > 0 {
		p.inc = freq / p.Params.SampleRate
	}
}

// FreqMul scales the current frequency.  Successive calls compound, so
// calling it once per sample with a decaying value sweeps the pitch down.
func (p *phasor) FreqMul(m float64) {
	p.freq *= m
	p.inc *= m
}

func (p *phasor) Frequency() float64 { return p.freq }

// Phase sets the phase in cycles.
func (p *phasor) Phase(phase float64) {
	_, p.phase = math.Modf(phase)
	if p.phase < 0 {
		p.phase++
	}
}

func (p *phasor) step() float64 {
	ph := p.phase
	_, p.phase = math.Modf(p.phase + p.inc)
	if p.phase < 0 {
		p.phase++
	}
	return ph
}

type SineOsc struct{ phasor }

func (o *SineOsc) Sing() float64 {
	return math.Sin(2 * math.Pi * o.step())
}

// SquareOsc is a band-limited square wave in [-1, 1].
type SquareOsc struct{ phasor }

func (o *SquareOsc) Sing() float64 {
	dt := math.Abs(o.inc)
	t := o.step()
	y := 1.0
	if t >= .5 {
		y = -1
	}
	_, t2 := math.Modf(t + .5)
	return y + polyBLEP(t, dt) - polyBLEP(t2, dt)
}

// polyBLEP smooths the discontinuity at t=0 of a unit-step waveform.
func polyBLEP(t, dt float64) float64 {
	switch {
	case dt == 0:
		return 0
	case t < dt:
		t /= dt
		return t + t - t*t - 1
	case t > 1-dt:
		t = (t - 1) / dt
		return t*t + t + t + 1
	}
	return 0
}
