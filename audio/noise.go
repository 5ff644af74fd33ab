package audio

import (
	"math/rand"
	"time"
)

// Burst is a decaying burst of white noise through a resonant band-pass
// whose center sweeps from freqA down to freqB as the burst decays.
type Burst struct {
	freqA, freqB float64
	res          float64
	Env          Decay
	Filter       Reson
	rand         *rand.Rand
}

const burstResonance = 2

func NewBurst(freqA, freqB, dur float64) *Burst {
	return &Burst{
		freqA:  freqA,
		freqB:  freqB,
		res:    burstResonance,
		Env:    Decay{length: dur},
		Filter: Reson{freq: freqA, q: burstResonance},
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed makes the noise sequence repeatable.
func (b *Burst) Seed(seed int64) { b.rand = rand.New(rand.NewSource(seed)) }

func (b *Burst) Reset() { b.Env.Reset() }

func (b *Burst) Done() bool { return b.Env.Done() }

func (b *Burst) Sing() float64 {
	if b.Env.Done() {
		return 0
	}
	env := b.Env.Sing()
	b.Filter.Set(b.freqB+(b.freqA-b.freqB)*env, b.res)
	return b.Filter.Filter((2*b.rand.Float64() - 1) * env)
}
