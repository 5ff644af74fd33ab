package audio

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/ktye/fft"
)

// STFT is a Hann-windowed short-time Fourier transform producing magnitude
// spectra.  A new frame is computed every hop samples over the most recent
// size samples.
type STFT struct {
	size, hop int
	fft       fft.FFT
	win       []float64
	norm      float64

	ring  []float64
	i     int
	count int

	work []complex128
	mags []float64
}

// NewSTFT returns a transform of the given size (a power of two) with hop
// size/4.
func NewSTFT(size int) (*STFT, error) {
	return NewSTFTHop(size, size/4)
}

func NewSTFTHop(size, hop int) (*STFT, error) {
	if hop <= 0 || hop > size {
		return nil, fmt.Errorf("stft: hop %d out of range for size %d", hop, size)
	}
	f, err := fft.New(size)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}
	win := make([]float64, size)
	sum := 0.0
	for i := range win {
		win[i] = (1 - math.Cos(2*math.Pi*float64(i)/float64(size))) / 2
		sum += win[i]
	}
	return &STFT{
		size: size,
		hop:  hop,
		fft:  f,
		win:  win,
		norm: 2 / sum,
		ring: make([]float64, size),
		work: make([]complex128, size),
		mags: make([]float64, size/2+1),
	}, nil
}

// Push adds a sample and reports whether a new spectrum is ready.
func (s *STFT) Push(x float64) bool {
	s.ring[s.i] = x
	s.i = (s.i + 1) % s.size
	s.count++
	if s.count < s.hop {
		return false
	}
	s.count = 0
	s.transform()
	return true
}

func (s *STFT) transform() {
	for j := range s.work {
		k := (s.i + j) % s.size
		s.work[j] = complex(s.ring[k]*s.win[j], 0)
	}
	out := s.fft.Transform(s.work)
	for k := range s.mags {
		s.mags[k] = cmplx.Abs(out[k]) * s.norm
	}
}

func (s *STFT) Size() int    { return s.size }
func (s *STFT) NumBins() int { return len(s.mags) }

// Bin returns the magnitude of bin k of the latest frame.
func (s *STFT) Bin(k int) float64 { return s.mags[k] }

// BinFreq returns the center frequency of bin k.
func (s *STFT) BinFreq(k int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(s.size)
}

// Reset clears the analysis history.
func (s *STFT) Reset() {
	for i := range s.ring {
		s.ring[i] = 0
	}
	for i := range s.mags {
		s.mags[i] = 0
	}
	s.i, s.count = 0, 0
}
