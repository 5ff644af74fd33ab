package synth

import (
	"bytes"
	"io"
	"log"
	"sync"
)

// Recorder observes a PolySynth and keeps the notes it plays as sequence
// events, timed from when recording started.
type Recorder struct {
	sampleRate float64

	mu        sync.Mutex
	verbose   bool
	recording bool
	start     int64
	events    []Event
}

// NewRecorder records the notes played by s.
func NewRecorder(s *PolySynth) *Recorder {
	r := &Recorder{sampleRate: s.params.SampleRate}
	s.Observe(r)
	return r
}

// Verbose logs every note on and off, recording or not.
func (r *Recorder) Verbose(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verbose = on
}

// Start discards anything recorded and starts a new recording.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = true
	r.start = -1
	r.events = nil
}

func (r *Recorder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false
}

func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

func (r *Recorder) VoiceOn(v Voice, id int, frame int64) {
	b := v.base()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.verbose {
		log.Printf("on  %d %s %v", id, b.name, b.ParamValues())
	}
	if r.recording {
		r.events = append(r.events, Event{Kind: On, Time: r.time(frame), ID: id, Voice: b.name, Params: b.ParamValues()})
	}
}

func (r *Recorder) VoiceOff(id int, frame int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.verbose {
		log.Printf("off %d", id)
	}
	if r.recording {
		r.events = append(r.events, Event{Kind: Off, Time: r.time(frame), ID: id})
	}
}

// time is seconds since the first recorded event.
func (r *Recorder) time(frame int64) float64 {
	if r.start < 0 {
		r.start = frame
	}
	return float64(frame-r.start) / r.sampleRate
}

// Events returns a copy of what has been recorded.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// WriteTo writes the recording as a sequence file.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := WriteSequence(&buf, r.Events()); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}
