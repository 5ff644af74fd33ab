package voices

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/gordonklaus/avsynth/audio"
	"github.com/gordonklaus/avsynth/mesh"
	"github.com/gordonklaus/avsynth/soundfile"
	"github.com/gordonklaus/avsynth/synth"
)

// Source plays a sound file into a voice, resampled to the audio rate.
// Each voice has its own play position; the decoded data is shared.
type Source struct {
	path   string
	file   *soundfile.File
	player *soundfile.Player
	buf    []float32
}

type fileKey struct {
	path string
	rate float64
}

var files = struct {
	sync.Mutex
	m map[fileKey]*soundfile.File
}{m: map[fileKey]*soundfile.File{}}

// loadFile returns the file at path, resampled to rate unless rate is 0.
func loadFile(path string, rate float64) (*soundfile.File, error) {
	files.Lock()
	defer files.Unlock()
	if f, ok := files.m[fileKey{path, rate}]; ok {
		return f, nil
	}
	f, ok := files.m[fileKey{path, 0}]
	if !ok {
		var err error
		if f, err = soundfile.Load(path); err != nil {
			return nil, err
		}
		files.m[fileKey{path, 0}] = f
	}
	if rate > 0 {
		f = f.Resample(rate)
		files.m[fileKey{path, rate}] = f
	}
	return f, nil
}

// Preload decodes the given files so that a missing or broken one is
// found before any voice needs it.
func Preload(paths ...string) error {
	for _, p := range paths {
		if _, err := loadFile(p, 0); err != nil {
			return fmt.Errorf("preload: %w", err)
		}
	}
	return nil
}

func (s *Source) open(path string) error {
	f, err := loadFile(path, 0)
	if err != nil {
		return err
	}
	s.path, s.file = path, f
	return nil
}

func (s *Source) InitAudio(p audio.Params) {
	if s.file == nil {
		return
	}
	// Already decoded by open, so only the resampling is left to do.
	if f, err := loadFile(s.path, p.SampleRate); err == nil {
		s.file = f
	}
	s.player = soundfile.NewPlayer(s.file)
	s.buf = make([]float32, p.BufferSize*s.file.Channels())
}

func (s *Source) Play() { s.player.Play() }

// Stop pauses and rewinds, ready for the next Play.
func (s *Source) Stop() {
	s.player.Pause()
	s.player.Rewind()
}

func (s *Source) Paused() bool { return s.player.Paused() }

// mix adds the next block of the file to io, a mono file to both sides.
// tap, if not nil, sees the left channel.
func (s *Source) mix(io *audio.IO, tap func(x float64)) {
	ch := s.file.Channels()
	n := io.Frames()
	if len(s.buf) < n*ch {
		s.buf = make([]float32, n*ch)
	}
	s.player.Frames(n, s.buf)
	second := min(1, ch-1)
	for i := 0; io.Next(); i++ {
		l, r := float64(s.buf[i*ch]), float64(s.buf[i*ch+second])
		io.AddStereo(l, r)
		if tap != nil {
			tap(l)
		}
	}
}

// OpenHihat plays a recorded open hi-hat for as long as it is held.
type OpenHihat struct {
	synth.Base
	Source Source
	path   string
}

// NewOpenHihat returns a constructor for hi-hats playing the file at path.
func NewOpenHihat(path string) func() synth.Voice {
	return func() synth.Voice { return &OpenHihat{path: path} }
}

func (v *OpenHihat) Init() error { return v.Source.open(v.path) }

func (v *OpenHihat) ProcessAudio(io *audio.IO) {
	v.Source.mix(io, nil)
	if v.Source.Paused() {
		v.Free()
	}
}

func (v *OpenHihat) TriggerOn()  { v.Source.Play() }
func (v *OpenHihat) TriggerOff() { v.Source.Stop() }

// Sample plays a sound file and shows its spectrum twice over: as a
// spectrogram line and as four jittering discs colored by the energy in
// four bands.
type Sample struct {
	synth.Base
	Source Source

	path        string
	x           float32
	spectrum    *spectrum
	spectrogram *mesh.Mesh
	shape       *mesh.Mesh
}

var (
	discOnce sync.Once
	disc     *mesh.Mesh
)

// NewSample returns a constructor for voices playing the file at path, with
// the spectrogram drawn starting at x.
func NewSample(path string, x float32) func() synth.Voice {
	return func() synth.Voice { return &Sample{path: path, x: x} }
}

func (v *Sample) Init() error {
	if err := v.Source.open(v.path); err != nil {
		return err
	}
	s, err := newSpectrum()
	if err != nil {
		return err
	}
	v.spectrum = s
	v.spectrogram = mesh.New(mesh.LineStrip)
	v.shape = mesh.New(mesh.Triangles)
	discOnce.Do(func() {
		disc = mesh.New(mesh.Triangles)
		mesh.AddDisc(disc, .3, 30)
		disc.Decompress()
		disc.GenerateNormals()
	})
	return nil
}

func (v *Sample) ProcessAudio(io *audio.IO) {
	v.Source.mix(io, v.spectrum.push)
	if v.Source.Paused() {
		v.Free()
	}
}

func jitter() float32 { return .7 + .6*rand.Float32() }

func (v *Sample) ProcessGraphics(g mesh.Graphics) {
	bins := v.spectrum.bins

	v.spectrogram.Reset()
	for i := 0; i < FFTSize/4; i++ {
		v.spectrogram.Color(mesh.Hue(bins[i] * 5e7))
		v.spectrogram.Vertex(float32(i), float32(bins[i]), 0)
	}

	g.MeshColor()
	for i := 1; i <= 4; i++ {
		v.shape.Copy(disc)
		v.shape.Fill(mesh.Hue(bins[FFTSize/16*i] * 3e7))
		v.shape.Scale(jitter(), jitter(), jitter())
		g.PushMatrix()
		g.Translate(float32(-4+2*i), -1, -10)
		g.Draw(v.shape)
		g.PopMatrix()
	}

	g.PushMatrix()
	g.Translate(v.x, 0, -10)
	g.Scale(100./FFTSize, 50, 1)
	g.LineWidth(2)
	g.Draw(v.spectrogram)
	g.PopMatrix()
}

func (v *Sample) TriggerOn() {
	v.spectrum.reset()
	v.Source.Play()
}

func (v *Sample) TriggerOff() { v.Source.Stop() }

// Backing plays a sound file under a song, outside the voice pool.
type Backing struct {
	Source Source
}

// NewBacking loads the file at path for playing at p.
func NewBacking(path string, p audio.Params) (*Backing, error) {
	b := &Backing{}
	if err := b.Source.open(path); err != nil {
		return nil, err
	}
	audio.Init(b, p)
	return b, nil
}

// Restart plays the file from the beginning.
func (b *Backing) Restart() {
	b.Source.player.Rewind()
	b.Source.Play()
}

func (b *Backing) Render(io *audio.IO) { b.Source.mix(io, nil) }
