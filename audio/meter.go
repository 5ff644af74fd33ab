package audio

import "math"

// RMS is a running root-mean-square over a fixed window.
type RMS struct {
	windowSize float64
	buf        []float64
	i          int
	sum        float64
}

func NewRMS(windowSize float64) *RMS {
	return &RMS{windowSize: windowSize}
}

func (r *RMS) InitAudio(p Params) {
	n := int(p.SampleRate * r.windowSize)
	if n < 1 {
		n = 1
	}
	r.buf = make([]float64, n)
	r.i, r.sum = 0, 0
}

func (r *RMS) Add(x float64) {
	r.sum -= r.buf[r.i]
	r.buf[r.i] = x * x
	r.sum += r.buf[r.i]
	r.i = (r.i + 1) % len(r.buf)
}

func (r *RMS) Amplitude() float64 {
	return math.Sqrt(math.Max(0, r.sum) / float64(len(r.buf)))
}

// AmpMeter measures the RMS amplitude of whole blocks.
type AmpMeter struct {
	RMS
}

func NewAmpMeter(windowSize float64) *AmpMeter {
	return &AmpMeter{RMS{windowSize: windowSize}}
}

func (a *AmpMeter) Amplitude(x []float32) float64 {
	for _, x := range x {
		a.Add(float64(x))
	}
	return a.RMS.Amplitude()
}
