// pkg/render/color.go
package render

import "image/color"

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// LightenColor осветляет цвет на amount по каждому каналу с насыщением в 255.
func LightenColor(c color.RGBA, amount uint8) color.RGBA {
	return color.RGBA{
		R: uint8(min(255, int(c.R)+int(amount))),
		G: uint8(min(255, int(c.G)+int(amount))),
		B: uint8(min(255, int(c.B)+int(amount))),
		A: c.A,
	}
}

// WithAlpha returns c with its alpha scaled by f in [0, 1].
func WithAlpha(c color.RGBA, f float64) color.RGBA {
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	c.A = uint8(float64(c.A) * f)
	return c
}
