package seismic

import (
	"math"

	"quakefield/pkg/core"
)

// fBm layering constants. The downstream terrain shaping (boundary masking,
// stiffness) is tuned against these exact multipliers.
const (
	fbmOctaves       = 5
	fbmBaseFrequency = 0.9
	fbmBaseAmplitude = 0.5
	fbmGain          = 0.55
)

type latticePoint struct {
	X, Y int
}

// Noise produces coherent 2D gradient noise. Unit gradient vectors are drawn
// lazily from the shared LCG on first visit to an integer lattice point and
// cached for the lifetime of the instance, so repeated queries stay spatially
// coherent and terrain regeneration is idempotent.
type Noise struct {
	rng       *core.LCG
	gradients map[latticePoint][2]float64
}

// NewNoise constructs a noise field drawing gradients from rng.
func NewNoise(rng *core.LCG) *Noise {
	return &Noise{
		rng:       rng,
		gradients: make(map[latticePoint][2]float64),
	}
}

func (n *Noise) gradient(ix, iy int) [2]float64 {
	key := latticePoint{X: ix, Y: iy}
	if g, ok := n.gradients[key]; ok {
		return g
	}
	angle := n.rng.NextRange(0, 2*math.Pi)
	g := [2]float64{math.Cos(angle), math.Sin(angle)}
	n.gradients[key] = g
	return g
}

// quintic smoothstep, zero first and second derivatives at t=0 and t=1.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Perlin returns smooth gradient noise at (x, y), approximately in [-1, 1].
func (n *Noise) Perlin(x, y float64) float64 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	dot := func(ix, iy int, dx, dy float64) float64 {
		g := n.gradient(ix, iy)
		return g[0]*dx + g[1]*dy
	}

	d00 := dot(x0, y0, fx, fy)
	d10 := dot(x0+1, y0, fx-1, fy)
	d01 := dot(x0, y0+1, fx, fy-1)
	d11 := dot(x0+1, y0+1, fx-1, fy-1)

	u := fade(fx)
	v := fade(fy)

	return lerp(lerp(d00, d10, u), lerp(d01, d11, u), v)
}

// FBM sums octaves of Perlin noise at doubling frequency and decaying
// amplitude, producing multi-scale terrain detail.
func (n *Noise) FBM(x, y float64, octaves int) float64 {
	sum := 0.0
	freq := fbmBaseFrequency
	amp := fbmBaseAmplitude
	for o := 0; o < octaves; o++ {
		sum += n.Perlin(x*freq, y*freq) * amp
		freq *= 2
		amp *= fbmGain
	}
	return sum
}
