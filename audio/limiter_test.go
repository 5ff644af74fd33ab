package audio

import (
	"math"
	"testing"
)

func TestLimiterReducesLoudSignal(t *testing.T) {
	l := NewLimiter(.25, .01, .5)
	Init(l, Params{SampleRate: 1000})
	var o SineOsc
	Init(&o, Params{SampleRate: 1000})
	o.Freq(50)
	for i := 0; i < 2000; i++ {
		l.Limit(4 * o.Sing())
	}
	if g := l.Gain(); g >= .5 {
		t.Errorf("gain = %v, want < .5", g)
	}
}

func TestLimiterLeavesQuietSignal(t *testing.T) {
	for _, amp := range []float64{0, .01, .05} {
		l := NewLimiter(.25, .01, .5)
		Init(l, Params{SampleRate: 1000})
		var o SineOsc
		Init(&o, Params{SampleRate: 1000})
		o.Freq(50)
		for i := 0; i < 2000; i++ {
			l.Limit(amp * o.Sing())
		}
		if g := l.Gain(); g != 1 {
			t.Errorf("amplitude %v: gain = %v, want 1", amp, g)
		}
	}
}

func TestAmpMeter(t *testing.T) {
	m := NewAmpMeter(.1)
	Init(m, Params{SampleRate: 1000})
	block := make([]float32, 100)
	for i := range block {
		block[i] = .5
	}
	if a := m.Amplitude(block); math.Abs(a-.5) > 1e-6 {
		t.Errorf("amplitude = %v, want .5", a)
	}
}
