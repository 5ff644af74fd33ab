// Package synth manages polyphonic voices: a pool that reuses idle voices, a
// sample-accurate sequencer, a trigger recorder, presets and sequence files.
package synth

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gordonklaus/avsynth/audio"
	"github.com/gordonklaus/avsynth/mesh"
)

var (
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrUnknownVoice     = errors.New("unknown voice")
)

// A Voice produces sound and, optionally, graphics between a TriggerOn and
// the moment it calls Free.  Implementations embed Base.
//
// Init is called once when the voice is allocated, before audio.Init.  The
// pool then reuses the voice for later notes, so TriggerOn must reset
// whatever state a note needs.
type Voice interface {
	Init() error
	ProcessAudio(io *audio.IO)
	ProcessGraphics(g mesh.Graphics)
	TriggerOn()
	TriggerOff()
	base() *Base
}

// Base holds what every voice shares: its trigger parameters, the id of the
// note it is playing and whether it has finished.
type Base struct {
	name   string
	id     atomic.Int64
	free   atomic.Bool
	offset int
	params []*Parameter
	byName map[string]*Parameter
}

func (b *Base) base() *Base { return b }

// ProcessGraphics draws nothing.
func (b *Base) ProcessGraphics(mesh.Graphics) {}

// TriggerOff does nothing; one-shot voices free themselves.
func (b *Base) TriggerOff() {}

// Name is the kind the voice was allocated as.
func (b *Base) Name() string { return b.name }

// ID is the id of the note the voice was last triggered with.
func (b *Base) ID() int { return int(b.id.Load()) }

// Free takes the voice out of the rendering chain after the current block.
func (b *Base) Free() { b.free.Store(true) }

func (b *Base) Active() bool { return !b.free.Load() }

// CreateTriggerParameter adds a named parameter with its default value and
// range.  Creating a name twice returns the existing parameter.
func (b *Base) CreateTriggerParameter(name string, def, min, max float64) *Parameter {
	if p, ok := b.byName[name]; ok {
		return p
	}
	if b.byName == nil {
		b.byName = map[string]*Parameter{}
	}
	p := &Parameter{Name: name, Default: def, Min: min, Max: max}
	p.Set(def)
	b.params = append(b.params, p)
	b.byName[name] = p
	return p
}

// Param returns the value of the named parameter, or 0 if there is none.
func (b *Base) Param(name string) float64 {
	if p, ok := b.byName[name]; ok {
		return p.Get()
	}
	return 0
}

// SetParam sets the named parameter, clamping v into its range.
func (b *Base) SetParam(name string, v float64) error {
	p, ok := b.byName[name]
	if !ok {
		return fmt.Errorf("%s: %w %q", b.name, ErrUnknownParameter, name)
	}
	p.Set(v)
	return nil
}

// Parameters returns the parameters in creation order.
func (b *Base) Parameters() []*Parameter { return b.params }

func (b *Base) ParamNames() []string {
	names := make([]string, len(b.params))
	for i, p := range b.params {
		names[i] = p.Name
	}
	return names
}

// ParamValues returns the current values in creation order.
func (b *Base) ParamValues() []float64 {
	values := make([]float64, len(b.params))
	for i, p := range b.params {
		values[i] = p.Get()
	}
	return values
}

// SetParams assigns values positionally, in creation order.  Extra values are
// ignored.
func (b *Base) SetParams(values ...float64) {
	for i, v := range values {
		if i == len(b.params) {
			break
		}
		b.params[i].Set(v)
	}
}

// CopyParams copies the values of every parameter that from shares with b.
func (b *Base) CopyParams(from Voice) {
	for _, p := range from.base().params {
		if q, ok := b.byName[p.Name]; ok {
			q.Set(p.Get())
		}
	}
}

// A Parameter is a named value with a range.  It may be read by the audio
// goroutine while another goroutine sets it.
type Parameter struct {
	Name              string
	Default, Min, Max float64
	bits              atomic.Uint64
}

func (p *Parameter) Get() float64 { return math.Float64frombits(p.bits.Load()) }

// Set stores v clamped into [Min, Max].
func (p *Parameter) Set(v float64) {
	if math.IsNaN(v) {
		v = p.Default
	}
	v = math.Max(p.Min, math.Min(p.Max, v))
	p.bits.Store(math.Float64bits(v))
}

// Step is one hundredth of the parameter's range.
func (p *Parameter) Step() float64 { return (p.Max - p.Min) / 100 }
