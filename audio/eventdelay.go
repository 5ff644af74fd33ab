package audio

// EventDelay runs callbacks a given number of samples in the future.  Events
// are kept as a delta list, so each entry counts samples after the previous.
type EventDelay struct {
	Params Params
	events []delayEvent
}

type delayEvent struct {
	n int
	f func()
}

// Delay schedules f to run t seconds from now.
func (d *EventDelay) Delay(t float64, f func()) {
	if d.Params.SampleRate == 0 {
		panic("EventDelay.Delay called before InitAudio")
	}
	d.DelayFrames(int(t*d.Params.SampleRate+.5), f)
}

// DelayFrames schedules f to run after n calls to Step.  Events scheduled
// for the same frame run in the order they were added.
func (d *EventDelay) DelayFrames(n int, f func()) {
	if n < 0 {
		n = 0
	}
	i := 0
	for ; i < len(d.events); i++ {
		e := &d.events[i]
		if n < e.n {
			e.n -= n
			break
		}
		n -= e.n
	}
	d.events = append(d.events, delayEvent{})
	copy(d.events[i+1:], d.events[i:])
	d.events[i] = delayEvent{n, f}
}

// Next returns the number of Steps until the next event fires.
func (d *EventDelay) Next() (n int, ok bool) {
	if len(d.events) == 0 {
		return 0, false
	}
	return d.events[0].n, true
}

// Len returns the number of pending events.
func (d *EventDelay) Len() int { return len(d.events) }

// Flush runs events that are due without advancing time.
func (d *EventDelay) Flush() {
	for len(d.events) > 0 && d.events[0].n <= 0 {
		f := d.events[0].f
		d.events = d.events[1:]
		f()
	}
}

func (d *EventDelay) Step() {
	d.Advance(1)
}

// Advance moves time forward by n samples, running every event that comes
// due on the way.
func (d *EventDelay) Advance(n int) {
	for n > 0 && len(d.events) > 0 {
		e := &d.events[0]
		if e.n > n {
			e.n -= n
			return
		}
		n -= e.n
		e.n = 0
		d.Flush()
	}
}

// Clear drops all pending events.
func (d *EventDelay) Clear() { d.events = d.events[:0] }
