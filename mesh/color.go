package mesh

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

func RGB(r, g, b float32) Color { return Color{r, g, b, 1} }

// HSV converts hue, saturation and value to a color.  Hue is in turns and
// wraps, so 1.25 is the same hue as .25.
func HSV(h, s, v float64) Color {
	_, h = math.Modf(h)
	if h < 0 {
		h++
	}
	if math.IsNaN(h) || math.IsInf(h, 0) {
		h = 0
	}
	c := colorful.Hsv(h*360, clamp01(s), clamp01(v))
	return Color{float32(c.R), float32(c.G), float32(c.B), 1}
}

// Hue is shorthand for a fully saturated, full value HSV color.
func Hue(h float64) Color { return HSV(h, 1, 1) }

// Scale multiplies the color components, leaving alpha alone.
func (c Color) Scale(f float32) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A}
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	conv := func(x float32) uint32 {
		return uint32(clamp01(float64(x))*float64(c.A)*0xffff + .5)
	}
	return conv(c.R), conv(c.G), conv(c.B), uint32(clamp01(float64(c.A))*0xffff + .5)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
