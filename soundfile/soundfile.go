// Package soundfile decodes sound files into memory and plays them back.
package soundfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

var ErrUnsupportedFormat = errors.New("unsupported sound file format")

// File is decoded audio, one slice of samples in [-1, 1] per channel.
type File struct {
	SampleRate float64
	Data       [][]float32
}

func (f *File) Channels() int { return len(f.Data) }

func (f *File) Frames() int {
	if len(f.Data) == 0 {
		return 0
	}
	return len(f.Data[0])
}

// Duration in seconds.
func (f *File) Duration() float64 { return float64(f.Frames()) / f.SampleRate }

// Load decodes the file at path, choosing the decoder by extension: .wav,
// .aif/.aiff, .mp3 or .ogg.
func Load(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	f, err := Decode(r, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode decodes r as the format named by ext, with or without the dot.
func Decode(r io.ReadSeeker, ext string) (*File, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "wav", "wave":
		return decodeWAV(r)
	case "aif", "aiff":
		return decodeAIFF(r)
	case "mp3":
		return decodeMP3(r)
	case "ogg", "oga":
		return decodeOgg(r)
	}
	return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
}

const (
	wavPCM        = 1
	wavExtensible = 0xfffe
)

func decodeWAV(r io.ReadSeeker) (*File, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV file", ErrUnsupportedFormat)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	if d.WavAudioFormat != wavPCM && d.WavAudioFormat != wavExtensible {
		return nil, fmt.Errorf("%w: WAV encoding %d, want PCM", ErrUnsupportedFormat, d.WavAudioFormat)
	}
	// 8-bit WAV is unsigned.
	bias := 0
	if d.BitDepth == 8 {
		bias = 128
	}
	return fromInts(buf, int(d.BitDepth), bias)
}

func decodeAIFF(r io.ReadSeeker) (*File, error) {
	d := aiff.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%w: not an AIFF file", ErrUnsupportedFormat)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	return fromInts(buf, int(d.BitDepth), 0)
}

func fromInts(buf *goaudio.IntBuffer, bitDepth, bias int) (*File, error) {
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("%w: no channels", ErrUnsupportedFormat)
	}
	if bitDepth < 8 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, bitDepth)
	}
	scale := 1 / float32(int64(1)<<(bitDepth-1))
	ch := buf.Format.NumChannels
	f := newFile(float64(buf.Format.SampleRate), ch, len(buf.Data)/ch)
	for i, x := range buf.Data[:f.Frames()*ch] {
		f.Data[i%ch][i/ch] = float32(x-bias) * scale
	}
	return f, nil
}

// go-mp3 always decodes to 16-bit little-endian stereo.
func decodeMP3(r io.Reader) (*File, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(d)
	if err != nil {
		return nil, err
	}
	samples := make([]int16, len(data)/2)
	if err := binary.Read(bytes.NewReader(data[:2*len(samples)]), binary.LittleEndian, samples); err != nil {
		return nil, err
	}
	f := newFile(float64(d.SampleRate()), 2, len(samples)/2)
	for i, x := range samples[:2*f.Frames()] {
		f.Data[i%2][i/2] = float32(x) / 32768
	}
	return f, nil
}

func decodeOgg(r io.Reader) (*File, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, err
	}
	ch := format.Channels
	if ch < 1 {
		return nil, fmt.Errorf("%w: no channels", ErrUnsupportedFormat)
	}
	f := newFile(float64(format.SampleRate), ch, len(samples)/ch)
	for i, x := range samples[:f.Frames()*ch] {
		f.Data[i%ch][i/ch] = x
	}
	return f, nil
}

func newFile(sampleRate float64, channels, frames int) *File {
	f := &File{SampleRate: sampleRate, Data: make([][]float32, channels)}
	for i := range f.Data {
		f.Data[i] = make([]float32, frames)
	}
	return f
}

// Resample returns f at the given rate using linear interpolation, or f
// itself if the rate already matches.
func (f *File) Resample(rate float64) *File {
	if rate == f.SampleRate || f.SampleRate == 0 || rate <= 0 {
		return f
	}
	ratio := f.SampleRate / rate
	n := int(float64(f.Frames()) / ratio)
	g := newFile(rate, f.Channels(), n)
	for c, in := range f.Data {
		out := g.Data[c]
		for i := range out {
			t := float64(i) * ratio
			j := int(t)
			frac := float32(t - float64(j))
			x0 := in[j]
			x1 := x0
			if j+1 < len(in) {
				x1 = in[j+1]
			}
			out[i] = x0 + (x1-x0)*frac
		}
	}
	return g
}
