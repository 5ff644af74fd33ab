package audio

import "testing"

func TestEventDelay(t *testing.T) {
	var d EventDelay
	Init(&d, Params{SampleRate: 1})

	var e, e2 delayedEvent
	d.Delay(4, e.f)
	e.test(t, &d, 4)

	e = false
	e2 = false
	d.Delay(4, e.f)
	d.Delay(8, e2.f)
	e.test(t, &d, 4)
	e2.test(t, &d, 4)

	e = false
	e2 = false
	d.Delay(8, e2.f)
	d.Delay(4, e.f)
	e.test(t, &d, 4)
	e2.test(t, &d, 4)

	e = false
	e2 = false
	d.Delay(4, e.f)
	d.Delay(4, e2.f)
	for i := 0; i < 4; i++ {
		if e == true {
			t.Fatalf("true before %d", i)
		}
		if e2 == true {
			t.Fatalf("e2 true before %d", i)
		}
		d.Step()
	}
	if e == false {
		t.Fatalf("false after %d", 4)
	}
	if e2 == false {
		t.Fatalf("e2 false after %d", 4)
	}
}

func TestEventDelayAdvance(t *testing.T) {
	var d EventDelay
	Init(&d, Params{SampleRate: 1})

	var order []int
	d.DelayFrames(10, func() { order = append(order, 10) })
	d.DelayFrames(3, func() { order = append(order, 3) })
	d.DelayFrames(3, func() { order = append(order, 33) })
	d.DelayFrames(0, func() { order = append(order, 0) })

	if n, ok := d.Next(); !ok || n != 0 {
		t.Fatalf("Next = %d, %v; want 0, true", n, ok)
	}
	d.Flush()
	if len(order) != 1 || order[0] != 0 {
		t.Fatalf("after Flush: %v", order)
	}
	if n, _ := d.Next(); n != 3 {
		t.Fatalf("Next = %d, want 3", n)
	}
	d.Advance(5)
	if len(order) != 3 || order[1] != 3 || order[2] != 33 {
		t.Fatalf("after Advance(5): %v", order)
	}
	if n, _ := d.Next(); n != 5 {
		t.Fatalf("Next = %d, want 5", n)
	}
	d.Advance(100)
	if len(order) != 4 || d.Len() != 0 {
		t.Fatalf("after Advance(100): %v, %d pending", order, d.Len())
	}
}

type delayedEvent bool

func (e *delayedEvent) f() { *e = true }

func (e *delayedEvent) test(t *testing.T, d *EventDelay, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if *e == true {
			t.Fatalf("true before %d", i)
		}
		d.Step()
	}
	if *e == false {
		t.Fatalf("false after %d", n)
	}
}
