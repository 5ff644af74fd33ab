package soundfile

import "sync/atomic"

// Player plays a File.  Play, Pause, Rewind and SetLoop may be called from
// any goroutine while the audio goroutine calls Frames.
type Player struct {
	file   *File
	pos    atomic.Int64
	paused atomic.Bool
	loop   atomic.Bool
	ended  atomic.Bool
}

// NewPlayer returns a paused player positioned at the start of f.
func NewPlayer(f *File) *Player {
	p := &Player{file: f}
	p.paused.Store(true)
	return p
}

func (p *Player) File() *File { return p.file }

// Play starts or resumes playback.  A player that reached the end of the
// file starts again from the beginning.
func (p *Player) Play() {
	if p.ended.Swap(false) {
		p.pos.Store(0)
	}
	p.paused.Store(false)
}

func (p *Player) Pause() { p.paused.Store(true) }

// Rewind moves back to the start of the file without changing whether the
// player is paused.
func (p *Player) Rewind() {
	p.ended.Store(false)
	p.pos.Store(0)
}

// SetLoop makes playback wrap around at the end of the file instead of
// pausing.
func (p *Player) SetLoop(loop bool) { p.loop.Store(loop) }

// Paused reports whether the player is paused, either by Pause or by
// reaching the end of the file.
func (p *Player) Paused() bool { return p.paused.Load() }

// Position returns the current frame.
func (p *Player) Position() int { return int(p.pos.Load()) }

// Frames writes n frames into dst, interleaved with the file's channel
// count, and returns the number of frames of the file that were played.
// Frames past the end of the file, and all frames while paused, are zero.
func (p *Player) Frames(n int, dst []float32) int {
	ch := p.file.Channels()
	if ch == 0 {
		return 0
	}
	n = min(n, len(dst)/ch)
	clear(dst[:n*ch])
	if p.paused.Load() {
		return 0
	}

	start := p.pos.Load()
	pos := int(start)
	total := p.file.Frames()
	played := 0
	for played < n {
		if pos >= total {
			if !p.loop.Load() || total == 0 {
				break
			}
			pos = 0
		}
		k := min(n-played, total-pos)
		for c, data := range p.file.Data {
			for i, x := range data[pos : pos+k] {
				dst[(played+i)*ch+c] = x
			}
		}
		played += k
		pos += k
	}
	if pos >= total && !p.loop.Load() {
		p.ended.Store(true)
		p.paused.Store(true)
	}
	// A concurrent Rewind wins over our progress.
	p.pos.CompareAndSwap(start, int64(pos))
	return played
}
