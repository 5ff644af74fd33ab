package app

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/gordonklaus/avsynth/audio"
	"github.com/gordonklaus/avsynth/engine"
)

func playOto(ctx context.Context, e *engine.Engine) error {
	p := e.Params()
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(p.SampleRate),
		ChannelCount: p.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(float64(p.BufferSize) / p.SampleRate * float64(time.Second)),
	})
	if err != nil {
		return fmt.Errorf("oto: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(newEngineReader(e))
	player.Play()

	<-ctx.Done()
	fadeOut(e)
	player.Pause()
	return player.Err()
}

// engineReader streams an engine as interleaved little-endian float32s.
type engineReader struct {
	e       *engine.Engine
	io      *audio.IO
	out     [][]float32
	samples []float32
	bytes   []byte
	pending []byte
}

func newEngineReader(e *engine.Engine) *engineReader {
	p := e.Params()
	r := &engineReader{
		e:       e,
		io:      audio.NewIO(p.Channels, p.BufferSize),
		samples: make([]float32, p.Channels*p.BufferSize),
		bytes:   make([]byte, 4*p.Channels*p.BufferSize),
	}
	for c := range p.Channels {
		r.out = append(r.out, r.io.Out(c))
	}
	return r
}

func (r *engineReader) Read(b []byte) (int, error) {
	n := 0
	for n < len(b) {
		if len(r.pending) == 0 {
			r.render()
		}
		k := copy(b[n:], r.pending)
		r.pending = r.pending[k:]
		n += k
	}
	return n, nil
}

func (r *engineReader) render() {
	r.e.Render(r.out)
	n := r.io.Interleave(r.samples)
	for i, x := range r.samples[:n] {
		binary.LittleEndian.PutUint32(r.bytes[4*i:], math.Float32bits(x))
	}
	r.pending = r.bytes[:4*n]
}
