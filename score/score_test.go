package score

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/gordonklaus/avsynth/audio"
	"github.com/gordonklaus/avsynth/synth"
	"github.com/gordonklaus/avsynth/voices"
)

func TestSequenceA(t *testing.T) {
	s := SequenceA()
	count := map[string]int{}
	for _, e := range s.Events {
		count[e.Voice]++
	}
	want := map[string]int{
		"Kick":      48,
		"OpenHihat": 64,
		"Snare":     32,
		"Lead":      26 + 30 + 1,
		"Pad":       32 + 16,
	}
	for voice, n := range want {
		if count[voice] != n {
			t.Errorf("%d %s notes, want %d", count[voice], voice, n)
		}
	}
	if len(count) != len(want) {
		t.Errorf("voices %v", count)
	}
	if d := s.Duration(); math.Abs(d-32) > 1e-9 {
		t.Errorf("duration %v, want 32", d)
	}
}

func TestRhythm(t *testing.T) {
	var s Score
	s.PlayRhythm(2, 1)
	want := []struct {
		voice      string
		start, dur float64
	}{
		{"Kick", 2, Beat},
		{"Kick", 2 + Beat*1.75, Sixteenth},
		{"Kick", 2 + Beat*2, Beat},
		{"OpenHihat", 2 + Beat*.5, Eighth},
		{"OpenHihat", 2 + Beat*1.5, Eighth},
		{"OpenHihat", 2 + Beat*2.5, Eighth},
		{"OpenHihat", 2 + Beat*3.5, Eighth},
		{"Snare", 2 + Beat, Beat},
		{"Snare", 2 + Beat*3, Beat},
	}
	if len(s.Events) != len(want) {
		t.Fatalf("%d events, want %d", len(s.Events), len(want))
	}
	for i, w := range want {
		e := s.Events[i]
		if e.Voice != w.voice || e.Time != w.start || e.Duration != w.dur {
			t.Errorf("event %d = %s %v %v, want %s %v %v", i, e.Voice, e.Time, e.Duration, w.voice, w.start, w.dur)
		}
	}
	// amplitude, frequency, attackTime, releaseTime
	if p := s.Events[0].Params; len(p) != 4 || p[0] != .2 || p[1] != 600 || p[2] != .01 || p[3] != .1 {
		t.Errorf("kick params %v", p)
	}
}

func TestLeadChord(t *testing.T) {
	var s Score
	s.PlayLeadChord([]float64{Bb4, G5 / 2, Eb5}, .5, 0, 1, .2, .1, .1)
	for _, e := range s.Events {
		if amp := e.Params[0]; math.Abs(amp-.1) > 1e-9 {
			t.Errorf("chord note amplitude %v, want .1", amp)
		}
	}
	if f := s.Events[0].Params[1]; math.Abs(f-Bb4/2) > 1e-9 {
		t.Errorf("first note %v Hz, want %v", f, Bb4/2)
	}
}

func TestWriteSequence(t *testing.T) {
	var buf bytes.Buffer
	s := SequenceA()
	if err := synth.WriteSequence(&buf, s.Events); err != nil {
		t.Fatal(err)
	}
	events, err := synth.ParseSequence(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != len(s.Events) {
		t.Errorf("read %d events, want %d", len(events), len(s.Events))
	}
}

func TestPlayIntro(t *testing.T) {
	p := audio.Params{SampleRate: 8000, BufferSize: 256, Channels: 2}
	s := synth.New(p)
	voices.Register(s)
	q := synth.NewSequencer(s)

	if err := q.PlaySequence(SequenceA().Events); !errors.Is(err, synth.ErrUnknownVoice) {
		t.Errorf("song without OpenHihat: %v, want ErrUnknownVoice", err)
	}

	var intro Score
	intro.PlayIntroMelody(0, .5)
	intro.PlayIntroChordSequence(0, .5)
	if err := q.PlaySequence(intro.Events); err != nil {
		t.Fatal(err)
	}
	var blocks int
	var peak float32
	for ; q.Playing() || s.ActiveVoices() > 0; blocks++ {
		if blocks > 1000 {
			t.Fatal("intro never finished")
		}
		io := audio.NewIO(p.Channels, p.BufferSize)
		q.Render(io)
		peak = max(peak, audio.Buffer(io.Out(0)).Peak())
	}
	if peak == 0 {
		t.Error("intro was silent")
	}
	// Four measures plus the release.
	if d := float64(blocks*p.BufferSize) / p.SampleRate; d < 4*Measure || d > 4*Measure+1 {
		t.Errorf("intro took %vs", d)
	}
}

func TestTrackForKey(t *testing.T) {
	tr, ok := TrackForKey('g')
	if !ok || tr.File != "tate.wav" || tr.Duration != 56 {
		t.Errorf("TrackForKey(g) = %+v, %v", tr, ok)
	}
	if _, ok := TrackForKey('h'); ok {
		t.Error("h starts a track")
	}
}
