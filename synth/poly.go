package synth

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/gordonklaus/avsynth/audio"
	"github.com/gordonklaus/avsynth/mesh"
)

// PolySynth renders any number of simultaneous voices.  Voices are allocated
// by kind name and returned to an idle pool when they call Free.
//
// Render must be called from a single goroutine.  GetVoice, TriggerOn,
// TriggerOff and AllNotesOff may be called from any goroutine; triggers are
// queued and applied at the start of the next Render.
type PolySynth struct {
	params audio.Params
	kinds  map[string]func() Voice

	mu        sync.Mutex
	idle      map[string][]Voice
	pending   []trigger
	observers []Observer
	nextID    int

	// voiceMu is held while active voices run, so graphics never see a voice
	// mid-block.
	voiceMu   sync.Mutex
	active    []Voice
	numActive atomic.Int32
	frames    atomic.Int64
}

type trigger struct {
	on     bool
	all    bool
	v      Voice
	offset int
	id     int
}

// An Observer is told about every note that starts or stops, with the frame
// at which it happened.  Observers are called from the audio goroutine.
type Observer interface {
	VoiceOn(v Voice, id int, frame int64)
	VoiceOff(id int, frame int64)
}

const autoIDBase = 1 << 24

func New(p audio.Params) *PolySynth {
	return &PolySynth{
		params: p,
		kinds:  map[string]func() Voice{},
		idle:   map[string][]Voice{},
		nextID: autoIDBase,
	}
}

func (s *PolySynth) Params() audio.Params { return s.params }

// Register makes a kind of voice available to GetVoice.
func (s *PolySynth) Register(name string, newVoice func() Voice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kinds[name] = newVoice
}

// Kinds returns the registered voice names, sorted.
func (s *PolySynth) Kinds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for name := range s.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Observe adds an observer of note on and off events.
func (s *PolySynth) Observe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// GetVoice returns an idle voice of the named kind, allocating and
// initializing a new one if none is idle.  The voice keeps the parameter
// values it last played with.
func (s *PolySynth) GetVoice(name string) (Voice, error) {
	s.mu.Lock()
	if idle := s.idle[name]; len(idle) > 0 {
		v := idle[len(idle)-1]
		s.idle[name] = idle[:len(idle)-1]
		s.mu.Unlock()
		return v, nil
	}
	newVoice, ok := s.kinds[name]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVoice, name)
	}
	return s.allocate(name, newVoice)
}

// putBack returns voices that were never triggered, or have freed
// themselves, to the idle pool.
func (s *PolySynth) putBack(vs ...Voice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vs {
		name := v.base().name
		s.idle[name] = append(s.idle[name], v)
	}
}

func (s *PolySynth) allocate(name string, newVoice func() Voice) (Voice, error) {
	v := newVoice()
	b := v.base()
	b.name = name
	b.free.Store(true)
	if err := v.Init(); err != nil {
		return nil, fmt.Errorf("init %s: %w", name, err)
	}
	audio.Init(v, s.params)
	return v, nil
}

// newTemplate allocates a voice that is never pooled.
func (s *PolySynth) newTemplate(name string) (Voice, error) {
	s.mu.Lock()
	newVoice, ok := s.kinds[name]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVoice, name)
	}
	return s.allocate(name, newVoice)
}

// TriggerOn starts v offset frames into the next block.  A negative id gets
// a fresh one; the id used is returned for a later TriggerOff.
func (s *PolySynth) TriggerOn(v Voice, offset, id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 0 {
		id = s.nextID
		s.nextID++
	}
	s.pending = append(s.pending, trigger{on: true, v: v, offset: max(offset, 0), id: id})
	return id
}

// TriggerOff releases every voice playing note id.
func (s *PolySynth) TriggerOff(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, trigger{id: id})
}

// AllNotesOff releases every active voice.
func (s *PolySynth) AllNotesOff() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, trigger{all: true})
}

// ActiveVoices returns how many voices were sounding after the last block.
func (s *PolySynth) ActiveVoices() int { return int(s.numActive.Load()) }

// Frames returns the number of frames rendered so far.
func (s *PolySynth) Frames() int64 { return s.frames.Load() }

// Time returns the rendered time in seconds.
func (s *PolySynth) Time() float64 { return float64(s.Frames()) / s.params.SampleRate }

// Render mixes every active voice into io's window and returns freed voices
// to the idle pool.  It does not clear io.
func (s *PolySynth) Render(io *audio.IO) {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	observers := s.observers
	s.mu.Unlock()

	s.voiceMu.Lock()
	frame := s.frames.Load()
	for _, t := range pending {
		switch {
		case t.on:
			b := t.v.base()
			b.id.Store(int64(t.id))
			b.offset = t.offset
			if !b.free.Load() {
				t.v.TriggerOn()
				break
			}
			b.free.Store(false)
			t.v.TriggerOn()
			s.active = append(s.active, t.v)
			for _, o := range observers {
				o.VoiceOn(t.v, t.id, frame+int64(t.offset))
			}
		default:
			for _, v := range s.active {
				if t.all || v.base().ID() == t.id {
					v.TriggerOff()
				}
			}
			if !t.all {
				for _, o := range observers {
					o.VoiceOff(t.id, frame)
				}
			}
		}
	}

	n := io.Frames()
	var freed []Voice
	active := s.active[:0]
	for _, v := range s.active {
		b := v.base()
		switch {
		case b.offset >= n:
			b.offset -= n
		case b.offset > 0:
			v.ProcessAudio(io.Window(io.Start()+b.offset, io.End()))
			b.offset = 0
		default:
			v.ProcessAudio(io)
		}
		if b.free.Load() {
			freed = append(freed, v)
			continue
		}
		active = append(active, v)
	}
	for i := len(active); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = active
	s.numActive.Store(int32(len(active)))
	s.frames.Add(int64(n))
	s.voiceMu.Unlock()

	if len(freed) > 0 {
		s.putBack(freed...)
	}
}

// RenderGraphics draws every active voice.
func (s *PolySynth) RenderGraphics(g mesh.Graphics) {
	s.voiceMu.Lock()
	defer s.voiceMu.Unlock()
	for _, v := range s.active {
		if v.base().offset == 0 {
			v.ProcessGraphics(g)
		}
	}
}
