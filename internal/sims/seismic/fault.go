package seismic

import (
	"math"

	"quakefield/pkg/core"
)

// faultDecay controls how quickly a fault's influence falls off with
// perpendicular distance from the fault line.
const faultDecay = 0.02

// Fault is a synthetic linear feature with a position, orientation and
// strength. Faults only bias where injected energy lands; they are not
// simulated rupture surfaces.
type Fault struct {
	CX, CY   float64
	Angle    float64
	Strength float64
}

// Segment returns fault line endpoints extending halfLength along the
// strike direction (perpendicular to the fault normal) on either side of
// the center.
func (f Fault) Segment(halfLength float64) (x1, y1, x2, y2 float64) {
	dx := -math.Sin(f.Angle) * halfLength
	dy := math.Cos(f.Angle) * halfLength
	return f.CX - dx, f.CY - dy, f.CX + dx, f.CY + dy
}

// FaultSystem owns the current fault layout for one simulation instance.
type FaultSystem struct {
	w, h   int
	rng    *core.LCG
	faults []Fault
}

// NewFaultSystem creates a fault system for a w*h grid, sampling layouts
// from the shared rng.
func NewFaultSystem(w, h int, rng *core.LCG) *FaultSystem {
	return &FaultSystem{w: w, h: h, rng: rng}
}

// Faults exposes the current fault list.
func (fs *FaultSystem) Faults() []Fault { return fs.faults }

// SetFaults replaces the entire fault list with count freshly sampled
// faults. Centers land in the central 60% of each dimension so fault lines
// stay clear of the absorbing border.
func (fs *FaultSystem) SetFaults(count int) {
	if count < 0 {
		count = 0
	}
	faults := make([]Fault, 0, count)
	for i := 0; i < count; i++ {
		faults = append(faults, Fault{
			CX:       fs.rng.NextRange(0.2, 0.8) * float64(fs.w),
			CY:       fs.rng.NextRange(0.2, 0.8) * float64(fs.h),
			Angle:    fs.rng.NextRange(0, math.Pi),
			Strength: fs.rng.NextRange(0.6, 1.3),
		})
	}
	fs.faults = faults
}

// EnergyBoost returns the nonnegative amplification factor at (x, y): the
// sum over all faults of strength decayed exponentially with perpendicular
// distance from the fault line. Zero faults yields zero everywhere.
func (fs *FaultSystem) EnergyBoost(x, y float64) float64 {
	boost := 0.0
	for i := range fs.faults {
		f := &fs.faults[i]
		dx := x - f.CX
		dy := y - f.CY
		perp := math.Abs(math.Cos(f.Angle)*dx + math.Sin(f.Angle)*dy)
		boost += f.Strength * math.Exp(-perp*faultDecay)
	}
	return boost
}
