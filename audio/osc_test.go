package audio

import (
	"math"
	"testing"
)

func TestSineOscFrequency(t *testing.T) {
	const sampleRate = 48000

	for _, freq := range []float64{60, 440, 1000, 5000} {
		var o SineOsc
		Init(&o, Params{SampleRate: sampleRate})
		o.Freq(freq)
		crossings := 0
		prev := o.Sing()
		for i := 1; i < sampleRate; i++ {
			x := o.Sing()
			if prev < 0 && x >= 0 {
				crossings++
			}
			prev = x
		}
		if math.Abs(float64(crossings)-freq) > 1 {
			t.Errorf("freq=%v: %d upward crossings in one second", freq, crossings)
		}
	}
}

func TestSineOscFreqBeforeInit(t *testing.T) {
	var o SineOsc
	o.Freq(100)
	Init(&o, Params{SampleRate: 400})
	want := []float64{0, 1, 0, -1}
	for i, w := range want {
		if x := o.Sing(); math.Abs(x-w) > 1e-9 {
			t.Errorf("sample %d = %v, want %v", i, x, w)
		}
	}
}

func TestFreqMulCompounds(t *testing.T) {
	var o SineOsc
	Init(&o, Params{SampleRate: 48000})
	o.Freq(600)
	for i := 0; i < 3; i++ {
		o.FreqMul(.5)
	}
	if f := o.Frequency(); f != 75 {
		t.Errorf("frequency after three halvings = %v, want 75", f)
	}
}

func TestBandLimitedRange(t *testing.T) {
	for name, sing := range map[string]func(*phasor) func() float64{
		"square": func(p *phasor) func() float64 { o := &SquareOsc{*p}; return o.Sing },
	} {
		p := &phasor{}
		p.InitAudio(Params{SampleRate: 48000})
		p.Freq(440)
		f := sing(p)
		sum := 0.0
		for i := 0; i < 48000; i++ {
			x := f()
			if x < -1.001 || x > 1.001 {
				t.Fatalf("%s: sample %d out of range: %v", name, i, x)
			}
			sum += x
		}
		if math.Abs(sum/48000) > .02 {
			t.Errorf("%s: DC offset %v", name, sum/48000)
		}
	}
}

func BenchmarkSineOsc(b *testing.B) {
	o := new(SineOsc)
	Init(o, Params{SampleRate: 96000})
	for i := 0; i < b.N; i++ {
		o.Freq(1234)
		o.Sing()
	}
}

func BenchmarkSquareOsc(b *testing.B) {
	o := new(SquareOsc)
	Init(o, Params{SampleRate: 96000})
	for i := 0; i < b.N; i++ {
		o.Freq(1234)
		o.Sing()
	}
}
