package audio

import (
	"math"
	"testing"
)

func TestEnvSustainRelease(t *testing.T) {
	var e Env
	e.Levels(0, 1, 1, 0).Curve(0).SustainPoint(2)
	Init(&e, Params{SampleRate: 100})
	e.Lengths()[0] = .1
	e.Lengths()[1] = .1
	e.Lengths()[2] = .2

	if !e.Done() {
		t.Fatal("new Env should be done")
	}
	e.Reset()
	var peak float64
	for i := 0; i < 10; i++ {
		peak = e.Sing()
	}
	if math.Abs(peak-.9) > 1e-9 {
		t.Errorf("value after 10 samples of attack = %v, want .9", peak)
	}
	for i := 0; i < 1000; i++ {
		if v := e.Sing(); i > 20 && v != 1 {
			t.Fatalf("not sustaining at sample %d: %v", i, v)
		}
	}
	if e.Done() {
		t.Fatal("done while sustaining")
	}

	e.Release()
	n := 0
	for !e.Done() {
		e.Sing()
		n++
		if n > 1000 {
			t.Fatal("release never finished")
		}
	}
	if n != 20 {
		t.Errorf("release took %d samples, want 20", n)
	}
	if e.Value() != 0 {
		t.Errorf("final value %v, want 0", e.Value())
	}
}

func TestEnvReleaseDuringAttack(t *testing.T) {
	var e Env
	e.Levels(0, 1, 1, 0).SustainPoint(2)
	Init(&e, Params{SampleRate: 100})
	e.Lengths()[0] = 1
	e.Lengths()[2] = .1

	e.Reset()
	for i := 0; i < 50; i++ {
		e.Sing()
	}
	start := e.Value()
	e.Release()
	prev := e.Sing()
	if prev != start {
		t.Errorf("release jumped from %v to %v", start, prev)
	}
	for !e.Done() {
		v := e.Sing()
		if v > prev {
			t.Fatalf("release not monotonic: %v after %v", v, prev)
		}
		prev = v
	}
}

func TestEnvZeroLengthSegments(t *testing.T) {
	var e Env
	e.Levels(1, .5, 0)
	Init(&e, Params{SampleRate: 100})
	e.Lengths()[0] = 0
	e.Lengths()[1] = 0
	e.Reset()
	if !e.Done() || e.Value() != 0 {
		t.Errorf("done=%v value=%v, want done at 0", e.Done(), e.Value())
	}
}

func TestEnvLengthWrittenAfterReset(t *testing.T) {
	var e Env
	e.Levels(0, 1, 1, 0).SustainPoint(2)
	Init(&e, Params{SampleRate: 100})

	for _, attack := range []float64{.1, .3} {
		e.Reset()
		e.Lengths()[0] = attack
		n := int(attack * 100)
		for i := 0; i < n; i++ {
			e.Sing()
		}
		if e.Value() != 1 {
			t.Errorf("attack %v: value after %d samples = %v, want 1", attack, n, e.Value())
		}
	}
}

func TestAD(t *testing.T) {
	var a AD
	a.Attack(.01).Decay(.3).Amp(.5)
	Init(&a, Params{SampleRate: 1000})
	a.Reset()

	max := 0.0
	n := 0
	for !a.Done() {
		max = math.Max(max, a.Sing())
		n++
	}
	if n != 310 {
		t.Errorf("AD lasted %d samples, want 310", n)
	}
	if math.Abs(max-.5) > .01 {
		t.Errorf("peak %v, want .5", max)
	}
}

func TestADRelease(t *testing.T) {
	var a AD
	Init(&a, Params{SampleRate: 1000})
	a.Attack(1).Decay(.01)
	a.Reset()
	for i := 0; i < 100; i++ {
		a.Sing()
	}
	a.Release()
	n := 0
	for !a.Done() {
		a.Sing()
		n++
	}
	if n != 10 {
		t.Errorf("release took %d samples, want 10", n)
	}
}

func TestDecay(t *testing.T) {
	d := new(Decay).Length(.5)
	Init(d, Params{SampleRate: 1000})
	if !d.Done() {
		t.Error("new Decay should be done")
	}
	d.Reset()
	n := 0
	for !d.Done() {
		d.Sing()
		n++
	}
	if n < 499 || n > 501 {
		t.Errorf("decay took %d samples, want ~500", n)
	}

	d.Reset()
	d.Finish()
	if !d.Done() {
		t.Error("Finish did not end the decay")
	}
}

func BenchmarkEnv(b *testing.B) {
	var e Env
	e.Levels(0, 1, 1, 0).SustainPoint(2)
	Init(&e, Params{SampleRate: 96000})
	for i := 0; i < b.N; i++ {
		if e.Done() {
			e.Reset()
		}
		if i%10000 == 0 {
			e.Release()
		}
		e.Sing()
	}
}
