package core

const (
	lcgModulus    = 2147483647 // 2^31 - 1, Mersenne prime
	lcgMultiplier = 16807
)

// LCG is a Lehmer (Park-Miller) multiplicative linear congruential generator.
// For a given seed it emits a bit-identical sequence on every run, which the
// terrain and fault generators rely on for reproducible layouts.
type LCG struct {
	state int64
}

// NewLCG creates a generator from the provided seed. Any seed value is
// accepted; it is wrapped into the valid state range [1, modulus-1].
func NewLCG(seed int64) *LCG {
	s := seed % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	if s == 0 {
		s = 1
	}
	return &LCG{state: s}
}

// Next returns the next value in [0, 1).
func (g *LCG) Next() float64 {
	g.state = g.state * lcgMultiplier % lcgModulus
	return float64(g.state-1) / float64(lcgModulus-1)
}

// NextRange returns the next value scaled into [min, max).
func (g *LCG) NextRange(min, max float64) float64 {
	return min + g.Next()*(max-min)
}
