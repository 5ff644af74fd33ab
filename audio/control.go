package audio

import "fmt"

// Control is a piecewise linear breakpoint function of time, sampled once
// per frame.  Zero-length segments mark discontinuities.
type Control struct {
	params  Params
	points  []ControlPoint
	periods []controlPeriod
	x       float64
}

type ControlPoint struct {
	Time, Value float64
}

type controlPeriod struct {
	n     int
	dx    float64
	value float64
}

// NewControl starts at the value of the first point.
func NewControl(points ...ControlPoint) *Control {
	c := &Control{points: points}
	if len(points) > 0 {
		c.x = points[0].Value
	}
	return c
}

func (c *Control) InitAudio(params Params) {
	c.params = params
	if err := c.SetPoints(c.points...); err != nil {
		panic(err)
	}
}

// SetPoints replaces the breakpoints and rewinds to time 0.  Points must be
// in time order.
func (c *Control) SetPoints(points ...ControlPoint) error {
	for i := range points {
		if i > 0 && points[i].Time < points[i-1].Time {
			return fmt.Errorf("control points out of order at %d: %v", i, points)
		}
	}
	c.points = points
	c.SetTime(0)
	return nil
}

// SetTime jumps to time t in seconds.
func (c *Control) SetTime(t float64) {
	c.periods = c.periods[:0]
	if len(c.points) == 0 {
		return
	}
	prev := c.points[0]
	c.x = prev.Value
	for _, p := range c.points[1:] {
		dn := (p.Time - prev.Time) * c.params.SampleRate
		dx := 0.0
		if dn >= 1 {
			dx = (p.Value - prev.Value) / dn
		}
		c.periods = append(c.periods, controlPeriod{int(dn), dx, p.Value})
		prev = p
	}

	n := int(t * c.params.SampleRate)
	for len(c.periods) > 0 {
		p := &c.periods[0]
		if p.n > n {
			p.n -= n
			c.x += float64(n) * p.dx
			break
		}
		n -= p.n
		c.x = p.value
		c.periods = c.periods[1:]
	}
}

func (c *Control) Sing() float64 {
	for len(c.periods) > 0 {
		p := &c.periods[0]
		if p.n > 0 {
			p.n--
			c.x += p.dx
			break
		}
		c.x = p.value // this is necessary for zero-length controlPeriods that mark discontinuities
		c.periods = c.periods[1:]
	}
	return c.x
}

func (c *Control) Value() float64 { return c.x }

func (c *Control) Done() bool {
	return len(c.periods) == 0
}
