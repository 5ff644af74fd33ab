package engine

import (
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// MaxRender bounds a render that waits for the song to finish.
const MaxRender = 600.0

const (
	wavPCM   = 1
	wavDepth = 16
)

// RenderFile renders e into a 16-bit WAV file at path.  step, if not nil,
// is called before every block with the time rendered so far; it drives
// scripted input and reports whether anything is still playing.  With
// seconds > 0 exactly that much is rendered; otherwise rendering stops once
// step reports false, or after MaxRender.
func RenderFile(path string, e *Engine, seconds float64, step func(t float64) (playing bool)) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	p := e.Params()
	enc := wav.NewEncoder(f, int(p.SampleRate), wavDepth, p.Channels, wavPCM)
	out := make([][]float32, p.Channels)
	for c := range out {
		out[c] = make([]float32, p.BufferSize)
	}
	block := make([][]float32, p.Channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: p.Channels, SampleRate: int(p.SampleRate)},
		Data:           make([]int, 0, p.Channels*p.BufferSize),
		SourceBitDepth: wavDepth,
	}

	limit := seconds
	if limit <= 0 {
		limit = MaxRender
	}
	total := int(math.Round(limit * p.SampleRate))
	for frames := 0; frames < total; {
		playing := true
		if step != nil {
			playing = step(e.Time())
		}
		if seconds <= 0 && !playing {
			break
		}

		n := min(p.BufferSize, total-frames)
		for c := range block {
			block[c] = out[c][:n]
		}
		e.Render(block)

		buf.Data = buf.Data[:0]
		for i := 0; i < n; i++ {
			for _, ch := range block {
				buf.Data = append(buf.Data, toInt16(ch[i]))
			}
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("render %s: %w", path, err)
		}
		frames += n
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

func toInt16(x float32) int {
	return int(math.Round(float64(max(-1, min(1, x))) * math.MaxInt16))
}
