package voices

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/gordonklaus/avsynth/audio"
	"github.com/gordonklaus/avsynth/mesh"
	"github.com/gordonklaus/avsynth/synth"
)

var params = audio.Params{SampleRate: 48000, BufferSize: 512, Channels: 2}

func newSynth() *synth.PolySynth {
	s := synth.New(params)
	Register(s)
	return s
}

// block renders one block and returns its peak.
func block(s *synth.PolySynth) float32 {
	io := audio.NewIO(params.Channels, params.BufferSize)
	s.Render(io)
	return max(audio.Buffer(io.Out(0)).Peak(), audio.Buffer(io.Out(1)).Peak())
}

// play holds a note for the given number of blocks, releases it, and
// returns the peak while held and the number of blocks until the voice was
// freed, or -1.
func play(t *testing.T, s *synth.PolySynth, v synth.Voice, hold, limit int) (float32, int) {
	t.Helper()
	s.TriggerOn(v, 0, 1)
	var peak float32
	for i := 0; i < hold; i++ {
		peak = max(peak, block(s))
	}
	s.TriggerOff(1)
	for i := 0; i < limit; i++ {
		block(s)
		if s.ActiveVoices() == 0 {
			return peak, i
		}
	}
	return peak, -1
}

func TestVoicesSoundAndFree(t *testing.T) {
	for _, kind := range []string{"SineEnv", "SquareWave", "Kick", "Hihat", "Snare", "Lead", "Pad"} {
		s := newSynth()
		v, err := s.GetVoice(kind)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		peak, n := play(t, s, v, 10, 1000)
		if peak == 0 {
			t.Errorf("%s is silent", kind)
		}
		if n < 0 {
			t.Errorf("%s never freed", kind)
		}
	}
}

func TestVoiceReuse(t *testing.T) {
	s := newSynth()
	v, _ := s.GetVoice("Kick")
	play(t, s, v, 1, 1000)
	w, _ := s.GetVoice("Kick")
	if w != v {
		t.Error("freed voice was not reused")
	}
}

type setter interface{ SetParam(string, float64) error }

func ampEnv(v synth.Voice) *audio.Env {
	switch v := v.(type) {
	case *SineEnv:
		return &v.AmpEnv
	case *SquareWave:
		return &v.AmpEnv
	case *Lead:
		return &v.AmpEnv
	case *Pad:
		return &v.AmpEnv
	}
	return nil
}

func TestAttackTimeHonored(t *testing.T) {
	for _, kind := range []string{"SineEnv", "SquareWave", "Lead", "Pad"} {
		s := newSynth()
		v, _ := s.GetVoice(kind)
		v.(setter).SetParam("attackTime", .01)
		s.TriggerOn(v, 0, 1)
		for i := 0; i < 5; i++ {
			block(s)
		}
		if env := ampEnv(v).Value(); env != 1 {
			t.Errorf("%s: envelope %v after 5 blocks of a 10ms attack, want 1", kind, env)
		}

		// A reused voice takes its new attack time on the next note.
		s.TriggerOff(1)
		for i := 0; i < 1000 && s.ActiveVoices() > 0; i++ {
			block(s)
		}
		w, _ := s.GetVoice(kind)
		if w != v {
			t.Fatalf("%s: freed voice was not reused", kind)
		}
		w.(setter).SetParam("attackTime", .1)
		s.TriggerOn(w, 0, 2)
		for i := 0; i < 5; i++ {
			block(s)
		}
		if env := ampEnv(w).Value(); env <= .4 || env >= .7 {
			t.Errorf("%s: envelope %v after 5 blocks of a 100ms attack, want about .53", kind, env)
		}
	}
}

func TestKickFrequencyFalls(t *testing.T) {
	s := newSynth()
	v, _ := s.GetVoice("Kick")
	k := v.(*Kick)
	k.SetParam("frequency", 600)
	s.TriggerOn(v, 0, 1)
	block(s)
	if f := k.Osc.Frequency(); f >= 600 || f <= 0 {
		t.Errorf("frequency after one block = %v", f)
	}
}

func TestKickFollowsParams(t *testing.T) {
	s := newSynth()
	v, _ := s.GetVoice("Kick")
	_, long := play(t, s, v, 1, 1000)

	s = newSynth()
	v, _ = s.GetVoice("Kick")
	v.(*Kick).SetParams(.2, 600, .01, .1)
	_, short := play(t, s, v, 1, 1000)
	if long < 0 || short < 0 || short >= long {
		t.Errorf("kick with .3s decay freed after %d blocks, with .1s after %d", long, short)
	}
	if f := v.(*Kick).Osc.Frequency(); f >= 600 {
		t.Errorf("kick frequency %v did not fall from 600", f)
	}
}

func TestSnareReverbTail(t *testing.T) {
	dry, wet := newSynth(), newSynth()
	v, _ := dry.GetVoice("Snare")
	_, nDry := play(t, dry, v, 1, 1000)
	w, _ := wet.GetVoice("Snare")
	w.(*Snare).SetParam("reverb", .5)
	_, nWet := play(t, wet, w, 1, 1000)
	if nDry < 0 || nWet <= nDry {
		t.Errorf("dry snare freed after %d blocks, wet after %d", nDry, nWet)
	}
}

func TestLeadGraphics(t *testing.T) {
	s := newSynth()
	v, _ := s.GetVoice("Lead")
	v.(*Lead).SetParam("frequency", 440)
	s.TriggerOn(v, 0, 1)
	block(s)

	c := mesh.NewCanvas(320, 240)
	s.RenderGraphics(c)
	shapes := c.Shapes()
	if len(shapes) == 0 {
		t.Fatal("lead drew nothing")
	}
	for _, sh := range shapes {
		if sh.Primitive != mesh.Triangles {
			t.Fatalf("lead drew %v", sh.Primitive)
		}
	}
}

func TestPadSpectrum(t *testing.T) {
	s := newSynth()
	v, _ := s.GetVoice("Pad")
	p := v.(*Pad)
	p.SetParam("frequency", 440)
	p.SetParam("attackTime", .01)
	s.TriggerOn(v, 0, 1)
	for i := 0; i < 20; i++ {
		block(s)
	}

	c := mesh.NewCanvas(320, 240)
	s.RenderGraphics(c)
	shapes := c.Shapes()
	if len(shapes) != 1 || shapes[0].Primitive != mesh.LineStrip {
		t.Fatalf("pad drew %+v", shapes)
	}
	if n := len(shapes[0].Points); n != FFTSize/90 {
		t.Errorf("spectrum has %d points, want %d", n, FFTSize/90)
	}
	if w := shapes[0].Width; w <= 1 {
		t.Errorf("line width %v does not follow the envelope", w)
	}

	// 440Hz lands in bin 440*4096/48000, about 37.5.
	var peak int
	for k := 1; k < FFTSize/90; k++ {
		if p.spectrum.bins[k] > p.spectrum.bins[peak] {
			peak = k
		}
	}
	if peak < 36 || peak > 39 {
		t.Errorf("spectrum peak at bin %d", peak)
	}
}

// writeWAV writes a one-channel file of n frames at half scale.
func writeWAV(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	e := wav.NewEncoder(f, int(params.SampleRate), 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: int(params.SampleRate)},
		Data:           make([]int, n),
		SourceBitDepth: 16,
	}
	for i := range buf.Data {
		buf.Data[i] = 1 << 14
	}
	if err := e.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSamplePlaysToEnd(t *testing.T) {
	path := writeWAV(t, 3*params.BufferSize+100)
	s := newSynth()
	s.Register("Voice1", NewSample(path, -4))
	v, err := s.GetVoice("Voice1")
	if err != nil {
		t.Fatal(err)
	}
	s.TriggerOn(v, 0, 1)

	io := audio.NewIO(2, params.BufferSize)
	s.Render(io)
	if l, r := io.Out(0)[0], io.Out(1)[0]; l != .5 || r != .5 {
		t.Errorf("first frame = %v, %v, want .5 on both sides", l, r)
	}

	for i := 0; i < 3; i++ {
		block(s)
	}
	if n := s.ActiveVoices(); n != 0 {
		t.Errorf("%d voices active after the file ended", n)
	}

	// Graphics draw four discs and the spectrogram.
	s.TriggerOn(v, 0, 2)
	block(s)
	c := mesh.NewCanvas(320, 240)
	s.RenderGraphics(c)
	var strips int
	for _, sh := range c.Shapes() {
		if sh.Primitive == mesh.LineStrip {
			strips++
		}
	}
	if strips != 1 {
		t.Errorf("drew %d spectrograms", strips)
	}
}

func TestOpenHihatStops(t *testing.T) {
	path := writeWAV(t, 100*params.BufferSize)
	s := newSynth()
	s.Register("OpenHihat", NewOpenHihat(path))
	v, err := s.GetVoice("OpenHihat")
	if err != nil {
		t.Fatal(err)
	}
	peak, n := play(t, s, v, 2, 2)
	if peak != .5 {
		t.Errorf("peak = %v, want .5", peak)
	}
	if n != 0 {
		t.Errorf("hihat freed after %d blocks, want 0", n)
	}
	if pos := v.(*OpenHihat).Source.player.Position(); pos != 0 {
		t.Errorf("not rewound: position %d", pos)
	}
}

func TestMissingFile(t *testing.T) {
	s := newSynth()
	missing := filepath.Join(t.TempDir(), "missing.wav")
	s.Register("Voice1", NewSample(missing, -4))
	if _, err := s.GetVoice("Voice1"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("GetVoice = %v, want ErrNotExist", err)
	}
	if err := Preload(missing); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Preload = %v, want ErrNotExist", err)
	}
}

func TestBackingRestarts(t *testing.T) {
	path := writeWAV(t, params.BufferSize)
	b, err := NewBacking(path, params)
	if err != nil {
		t.Fatal(err)
	}
	render := func() float32 {
		io := audio.NewIO(params.Channels, params.BufferSize)
		b.Render(io)
		return audio.Buffer(io.Out(1)).Peak()
	}
	if p := render(); p != 0 {
		t.Errorf("peak %v before Restart, want silence", p)
	}
	for i := 0; i < 2; i++ {
		b.Restart()
		if p := render(); p != .5 {
			t.Errorf("restart %d: peak %v, want .5", i, p)
		}
		if p := render(); p != 0 {
			t.Errorf("restart %d: peak %v after the end, want silence", i, p)
		}
	}
}
