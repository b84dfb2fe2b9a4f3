package viewer

import (
	"image/color"
	"math"
)

// depthColor grades cutting moves from green at the top of the job (top)
// to red at its deepest point (bottom).
func depthColor(z, top, bottom float64) color.RGBA {
	if top <= bottom {
		return color.RGBA{G: 255, A: 255}
	}

	v := (top - z) / (top - bottom)
	v = math.Max(0, math.Min(1, v))

	// hue 120 is green, 0 is red
	return hsv(120*(1-v), 1, 1)
}

// hsv maps h in [0, 360) and s, v in [0, 1] to an opaque RGBA color
func hsv(h, s, v float64) color.RGBA {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var rgb [3]float64
	switch int(h/60) % 6 {
	case 0:
		rgb = [3]float64{c, x, 0}
	case 1:
		rgb = [3]float64{x, c, 0}
	case 2:
		rgb = [3]float64{0, c, x}
	case 3:
		rgb = [3]float64{0, x, c}
	case 4:
		rgb = [3]float64{x, 0, c}
	case 5:
		rgb = [3]float64{c, 0, x}
	}

	return color.RGBA{
		R: uint8(math.Round((rgb[0] + m) * 255)),
		G: uint8(math.Round((rgb[1] + m) * 255)),
		B: uint8(math.Round((rgb[2] + m) * 255)),
		A: 255,
	}
}
