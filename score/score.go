// Package score holds the arrangements played by the demo songs.  A Score
// is a list of sequence events, so it can be played by a synth.Sequencer or
// written out as a sequence file.
package score

import "github.com/gordonklaus/avsynth/synth"

// Note lengths in seconds.
const (
	Beat      = .5
	Measure   = Beat * 4
	Sixteenth = Beat / 4
	Eighth    = Beat / 2
	Half      = Beat * 2
	Whole     = Beat * 4
)

// Pitches in Hz.
const (
	Bb4 = 466.16
	C5  = 523.25
	Db5 = 554.37
	D5  = 587.33
	Eb5 = 622.25
	F5  = 698.46
	G5  = 783.99
	A5  = 880.00
	Ab5 = 830.61
)

type Score struct {
	Events []synth.Event
}

// note adds a note whose params are positional in the voice's parameter
// order.
func (s *Score) note(voice string, start, dur float64, params ...float64) {
	s.Events = append(s.Events, synth.Event{
		Kind:     synth.Note,
		Time:     start,
		Duration: dur,
		Voice:    voice,
		Params:   params,
	})
}

// Duration is the time at which the last note ends.
func (s *Score) Duration() float64 {
	end := 0.0
	for _, e := range s.Events {
		end = max(end, e.Time+e.Duration)
	}
	return end
}

func (s *Score) PlayKick(freq, start, dur, amp, attack, decay float64) {
	s.note("Kick", start, dur, amp, freq, attack, decay)
}

func (s *Score) PlayHihat(start, dur float64)     { s.note("Hihat", start, dur) }
func (s *Score) PlayOpenHihat(start, dur float64) { s.note("OpenHihat", start, dur) }
func (s *Score) PlaySnare(start, dur float64)     { s.note("Snare", start, dur) }

func (s *Score) PlayLead(freq, start, dur, amp, attack, decay float64) {
	s.note("Lead", start, dur, amp, freq, attack, decay, 0)
}

// PlayPad plays freq transposed by the factor offset.
func (s *Score) PlayPad(freq, offset, start, dur, amp, attack, decay float64) {
	s.note("Pad", start, dur, amp, freq*offset, attack, decay, 0)
}

func (s *Score) PlayPadChord(freqs []float64, offset, start, dur, amp, attack, decay float64) {
	for _, f := range freqs {
		s.PlayPad(f, offset, start, dur, amp, attack, decay)
	}
}

// PlayLeadChord divides amp by one less than the number of notes.
func (s *Score) PlayLeadChord(freqs []float64, offset, start, dur, amp, attack, decay float64) {
	n := float64(len(freqs) - 1)
	for _, f := range freqs {
		s.PlayLead(f*offset, start, dur, amp/n, attack, decay)
	}
}
