package audio

import "math"

// A soft limiter.  The RMS amplitude of the output (averaged over the attack
// time) will approach the supplied limit; this means that much of the signal
// will actually exceed the limit.
type Limiter struct {
	limit         float64
	attack, decay float64
	down, up      float64
	amp           float64
	rms           *RMS
	delay         *ConstDelay
}

func NewLimiter(limit, attack, decay float64) *Limiter {
	return &Limiter{limit: limit, attack: attack, decay: decay, rms: NewRMS(attack), delay: NewConstDelay(attack)}
}

func (c *Limiter) InitAudio(p Params) {
	c.down = -1 / (c.attack * p.SampleRate)
	c.up = 1 / (c.decay * p.SampleRate)
	c.rms.InitAudio(p)
	c.delay.InitAudio(p)
}

// Limit returns x, delayed by the attack time, under the current gain.  The
// gain only falls while the target gain tanh(y)/y, for y the input RMS over
// the limit, lies more than one attack step below it.
func (c *Limiter) Limit(x float64) float64 {
	gain := math.Exp2(c.amp)
	c.rms.Add(x)
	target := 1.0
	if y := c.rms.Amplitude() / c.limit; y > 0 {
		target = math.Tanh(y) / y
	}
	if math.Log2(target) < c.amp+c.down {
		c.amp += c.down
	} else if c.amp < 0 {
		c.amp = math.Min(0, c.amp+c.up)
	}
	return gain * c.delay.Delay(x)
}

// Gain returns the current gain in [0, 1].
func (c *Limiter) Gain() float64 { return math.Exp2(c.amp) }
