// Package engine mixes a song's renderers into the master bus and drives
// it, either from an audio device callback or offline into a file.
package engine

import (
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gordonklaus/avsynth/audio"
)

// A Renderer mixes a block of sound into io.
type Renderer interface {
	Render(io *audio.IO)
}

// Engine sums its renderers and passes the result through a fade and a
// limiter per channel.  Render is called by one goroutine, the audio
// device's; everything else may be called from any goroutine.
type Engine struct {
	params    audio.Params
	renderers []Renderer

	fade    *audio.Control
	limiter []*audio.Limiter
	meter   *audio.AmpMeter
	level   atomic.Uint64
	frames  atomic.Int64

	mu       sync.Mutex
	fadeDone chan struct{}

	// Owned by Render.
	fading, faded bool
}

const (
	fadeTime      = .05
	limit         = .5
	limiterAttack = .005
	limiterDecay  = .3
)

// New returns an engine that fades in over its first block.
func New(p audio.Params, renderers ...Renderer) *Engine {
	e := &Engine{
		params:    p,
		renderers: renderers,
		fade:      audio.NewControl(audio.ControlPoint{Time: 0, Value: 0}, audio.ControlPoint{Time: fadeTime, Value: 1}),
		meter:     audio.NewAmpMeter(.1),
	}
	for range p.Channels {
		e.limiter = append(e.limiter, audio.NewLimiter(limit, limiterAttack, limiterDecay))
	}
	audio.Init(e.fade, p)
	audio.Init(e.limiter, p)
	audio.Init(e.meter, p)
	return e
}

func (e *Engine) Params() audio.Params { return e.params }

// Render fills out, one slice per channel, with the next block.
func (e *Engine) Render(out [][]float32) {
	e.mu.Lock()
	done := e.fadeDone
	e.mu.Unlock()
	if done != nil && !e.fading {
		if err := e.fade.SetPoints(audio.ControlPoint{Time: 0, Value: e.fade.Value()}, audio.ControlPoint{Time: fadeTime, Value: 0}); err != nil {
			log.Println("fade out:", err)
		}
		e.fading = true
	}

	io := audio.WrapIO(out)
	io.Zero()
	for _, r := range e.renderers {
		r.Render(io)
	}

	n := io.Frames()
	limiters := e.limiter[:min(len(e.limiter), len(out))]
	for i := 0; i < n; i++ {
		g := e.fade.Sing()
		for c, l := range limiters {
			out[c][i] = float32(l.Limit(float64(out[c][i])) * g)
		}
	}
	if len(out) > 0 {
		e.level.Store(math.Float64bits(e.meter.Amplitude(out[0])))
	}
	e.frames.Add(int64(n))

	if e.fading && !e.faded && e.fade.Done() {
		close(done)
		e.faded = true
	}
}

// FadeOut starts fading to silence and returns a channel that is closed once
// the output is silent.
func (e *Engine) FadeOut() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fadeDone == nil {
		e.fadeDone = make(chan struct{})
	}
	return e.fadeDone
}

// Level is the RMS amplitude of the last block's first channel.
func (e *Engine) Level() float64 { return math.Float64frombits(e.level.Load()) }

// Time is the number of seconds rendered.
func (e *Engine) Time() float64 { return float64(e.frames.Load()) / e.params.SampleRate }
