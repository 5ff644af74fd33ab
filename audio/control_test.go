package audio

import (
	"math"
	"testing"
)

func TestControl(t *testing.T) {
	c := NewControl(ControlPoint{0, 1}, ControlPoint{1, 0}, ControlPoint{1, 5}, ControlPoint{2, 5})
	Init(c, Params{SampleRate: 10})
	var got []float64
	for !c.Done() {
		got = append(got, c.Sing())
	}
	if len(got) < 20 {
		t.Fatalf("got %d samples, want at least 20", len(got))
	}
	if math.Abs(got[4]-.5) > 1e-9 {
		t.Errorf("halfway value %v, want .5", got[4])
	}
	if x := got[len(got)-1]; x != 5 {
		t.Errorf("final value %v, want 5", x)
	}
	for _, x := range got[:10] {
		if x > 1 || x < -1e-9 {
			t.Errorf("ramp value %v out of range", x)
		}
	}
}

func TestControlSetTime(t *testing.T) {
	c := NewControl(ControlPoint{0, 0}, ControlPoint{1, 10})
	Init(c, Params{SampleRate: 100})
	c.SetTime(.5)
	if math.Abs(c.Value()-5) > 1e-9 {
		t.Errorf("value at .5s = %v, want 5", c.Value())
	}
	if err := c.SetPoints(ControlPoint{1, 0}, ControlPoint{0, 1}); err == nil {
		t.Error("out of order points accepted")
	}
}

func TestSlowRand(t *testing.T) {
	r := NewSlowRand(10)
	r.Seed(1)
	Init(r, Params{SampleRate: 1000})
	prev := r.Sing()
	for i := 0; i < 5000; i++ {
		x := r.Sing()
		if math.Abs(x) > 1.2 {
			t.Fatalf("sample %d = %v", i, x)
		}
		if math.Abs(x-prev) > .1 {
			t.Fatalf("jump of %v at sample %d", x-prev, i)
		}
		prev = x
	}
}
