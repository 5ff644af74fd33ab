package synth

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gordonklaus/avsynth/audio"
)

// Sequencer schedules notes on a PolySynth.  Note times are converted to
// frames and each block is split at note boundaries, so notes start and stop
// on the exact frame.
//
// Render must be called from the audio goroutine; everything else may be
// called from any goroutine.
type Sequencer struct {
	synth *PolySynth

	mu     sync.Mutex
	queue  []scheduled
	stop   bool
	nextID int

	events  audio.EventDelay
	pending atomic.Int32
}

type scheduled struct {
	at       float64
	fromNow  bool
	duration float64
	v        Voice
	id       int
	on, off  bool
}

const sequencerIDBase = 1 << 20

func NewSequencer(s *PolySynth) *Sequencer {
	q := &Sequencer{synth: s, nextID: sequencerIDBase}
	audio.Init(&q.events, s.params)
	return q
}

func (q *Sequencer) Synth() *PolySynth { return q.synth }

// AddVoiceFromNow plays v for duration seconds starting start seconds after
// the next block begins.
func (q *Sequencer) AddVoiceFromNow(v Voice, start, duration float64) {
	q.add(scheduled{at: start, fromNow: true, duration: duration, v: v, on: true, off: true})
}

// AddVoice plays v for duration seconds starting at time at on the synth's
// clock.  Times already past start at the next block.
func (q *Sequencer) AddVoice(v Voice, at, duration float64) {
	q.add(scheduled{at: at, duration: duration, v: v, on: true, off: true})
}

func (q *Sequencer) add(e scheduled) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if e.id == 0 {
		e.id = q.nextID
		q.nextID++
	}
	q.queue = append(q.queue, e)
	q.pending.Add(1)
}

// PlaySequence schedules events, with times relative to the next block.
// Voices are allocated now; an unknown voice name fails the whole sequence
// before anything is scheduled, and the voices already taken go back to the
// idle pool.
func (q *Sequencer) PlaySequence(events []Event) error {
	var todo []scheduled
	var taken []Voice
	ids := map[int]int{}
	voices := map[int]Voice{}
	for _, e := range events {
		switch e.Kind {
		case Note, On:
			v, err := q.synth.GetVoice(e.Voice)
			if err != nil {
				q.synth.putBack(taken...)
				return fmt.Errorf("sequence: %w", err)
			}
			taken = append(taken, v)
			v.base().SetParams(e.Params...)
			if e.Kind == Note {
				todo = append(todo, scheduled{at: e.Time, fromNow: true, duration: e.Duration, v: v, on: true, off: true})
				continue
			}
			q.mu.Lock()
			ids[e.ID] = q.nextID
			q.nextID++
			q.mu.Unlock()
			voices[e.ID] = v
			todo = append(todo, scheduled{at: e.Time, fromNow: true, v: v, id: ids[e.ID], on: true})
		case Off:
			id, ok := ids[e.ID]
			if !ok {
				continue
			}
			todo = append(todo, scheduled{at: e.Time, fromNow: true, v: voices[e.ID], id: id, off: true})
		}
	}
	for _, e := range todo {
		q.add(e)
	}
	return nil
}

// Playing reports whether any scheduled note has yet to start or stop.
func (q *Sequencer) Playing() bool { return q.pending.Load() > 0 }

// Time returns the synth's clock in seconds.
func (q *Sequencer) Time() float64 { return q.synth.Time() }

// Stop drops everything scheduled and releases every sounding voice.
func (q *Sequencer) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue = nil
	q.stop = true
}

// Render renders the synth, splitting io at scheduled note boundaries.
func (q *Sequencer) Render(io *audio.IO) {
	q.mu.Lock()
	queue := q.queue
	q.queue = nil
	stop := q.stop
	q.stop = false
	q.mu.Unlock()

	if stop {
		q.events.Clear()
		q.pending.Store(int32(len(queue)))
		q.synth.AllNotesOff()
	}
	sr := q.synth.params.SampleRate
	now := q.synth.Frames()
	for _, e := range queue {
		start := int(math.Round(e.at * sr))
		if !e.fromNow {
			start -= int(now)
		}
		start = max(start, 0)
		if e.on {
			q.events.DelayFrames(start, func() {
				q.synth.TriggerOn(e.v, 0, e.id)
				if !e.off {
					q.pending.Add(-1)
				}
			})
		}
		if e.off {
			end := start
			if e.on {
				end += max(int(math.Round(e.duration*sr)), 1)
			}
			q.events.DelayFrames(end, func() {
				q.synth.TriggerOff(e.id)
				q.pending.Add(-1)
			})
		}
	}

	start := io.Start()
	for {
		q.events.Flush()
		n := io.End() - start
		if next, ok := q.events.Next(); ok && next < n {
			n = next
		}
		q.synth.Render(io.Window(start, start+n))
		q.events.Advance(n)
		start += n
		if start >= io.End() {
			break
		}
	}
}
