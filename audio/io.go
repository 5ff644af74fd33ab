package audio

// IO is one block of audio handed to voices.  Channels are stored
// non-interleaved.  A voice walks the block with Next, mixing into Out:
//
//	for io.Next() {
//		io.Out(0)[io.Frame()] += x
//	}
//
// or, more conveniently, io.Add(0, x).
type IO struct {
	out        [][]float32
	start, end int
	frame      int
}

// NewIO allocates a block of the given shape.
func NewIO(channels, frames int) *IO {
	out := make([][]float32, channels)
	for i := range out {
		out[i] = make([]float32, frames)
	}
	return WrapIO(out)
}

// WrapIO makes an IO over existing channel buffers, which must all have the
// same length.
func WrapIO(out [][]float32) *IO {
	n := 0
	if len(out) > 0 {
		n = len(out[0])
	}
	return &IO{out: out, end: n, frame: -1}
}

// Window returns an IO sharing this block's buffers but restricted to the
// frames [start, end).  Frame numbers stay relative to the whole block.
func (io *IO) Window(start, end int) *IO {
	return &IO{out: io.out, start: start, end: end, frame: start - 1}
}

// Next advances to the next frame, reporting false at the end of the block.
// After it returns false the cursor is rewound so the block can be walked
// again.
func (io *IO) Next() bool {
	io.frame++
	if io.frame < io.end {
		return true
	}
	io.frame = io.start - 1
	return false
}

func (io *IO) Frame() int           { return io.frame }
func (io *IO) Start() int           { return io.start }
func (io *IO) End() int             { return io.end }
func (io *IO) Frames() int          { return io.end - io.start }
func (io *IO) BlockSize() int       { return len(io.out[0]) }
func (io *IO) Channels() int        { return len(io.out) }
func (io *IO) Out(ch int) []float32 { return io.out[ch] }

// Add mixes x into channel ch at the current frame.
func (io *IO) Add(ch int, x float64) {
	io.out[ch][io.frame] += float32(x)
}

// AddStereo mixes a stereo frame, folding to channel 0 on mono blocks.
func (io *IO) AddStereo(l, r float64) {
	if len(io.out) < 2 {
		io.out[0][io.frame] += float32((l + r) / 2)
		return
	}
	io.out[0][io.frame] += float32(l)
	io.out[1][io.frame] += float32(r)
}

// Zero clears the frames inside the window.
func (io *IO) Zero() {
	for _, c := range io.out {
		Buffer(c[io.start:io.end]).Zero()
	}
}

// Interleave writes the window's frames into dst as interleaved samples and
// returns the number of samples written.
func (io *IO) Interleave(dst []float32) int {
	n := 0
	for i := io.start; i < io.end; i++ {
		for _, c := range io.out {
			if n == len(dst) {
				return n
			}
			dst[n] = c[i]
			n++
		}
	}
	return n
}

// Buffer is a run of samples with in-place arithmetic.
type Buffer []float32

func (z Buffer) Zero() Buffer {
	for i := range z {
		z[i] = 0
	}
	return z
}

// Peak returns the largest absolute sample.
func (z Buffer) Peak() float32 {
	p := float32(0)
	for _, x := range z {
		if x < 0 {
			x = -x
		}
		if x > p {
			p = x
		}
	}
	return p
}
