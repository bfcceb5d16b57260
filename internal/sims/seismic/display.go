package seismic

import "image/color"

// displayGain maps displacement onto the signed palette; amplitudes beyond
// roughly +-5 saturate.
const displayGain = 24.0

var seismicPalette = buildSeismicPalette()

// Palette exposes the color palette used for rendering the wave field.
// Index 128 is the resting field; lower indices shade toward blue for
// negative displacement, higher indices toward red for positive.
func (w *World) Palette() []color.RGBA {
	return seismicPalette
}

func buildSeismicPalette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	rest := color.RGBA{R: 24, G: 26, B: 34, A: 255}
	cold := color.RGBA{R: 60, G: 130, B: 255, A: 255}
	hot := color.RGBA{R: 255, G: 90, B: 40, A: 255}
	for i := range palette {
		switch {
		case i < 128:
			t := float64(128-i) / 128
			palette[i] = blendRGBA(rest, cold, t)
		case i == 128:
			palette[i] = rest
		default:
			t := float64(i-128) / 127
			palette[i] = blendRGBA(rest, hot, t)
		}
	}
	return palette
}

func blendRGBA(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: 255,
	}
}

// refreshDisplay quantizes the displacement field into the display buffer.
func (w *World) refreshDisplay() {
	u := w.uCurr.Cells()
	for i, v := range u {
		level := 128 + v*displayGain
		if level < 0 {
			level = 0
		}
		if level > 255 {
			level = 255
		}
		w.display[i] = uint8(level)
	}
}
