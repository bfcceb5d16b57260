package seismic

import (
	"math"

	"quakefield/internal/core"
	pcore "quakefield/pkg/core"
)

// Numerical constants for the finite-difference scheme. DT is the fixed
// simulation time step; DX is the grid spacing (unit cells).
const (
	DT = 0.016
	DX = 1.0

	terrainStiffnessGain = 0.6
	boundaryFloor        = 0.2
	energyDisplayScale   = 1e-3

	terrainNoiseScale = 6.0
	terrainNoiseGain  = 0.4
	ridgeGain         = 0.2
	ridgeSharpness    = 20.0
	maskExponent      = 0.3

	disturbMinRadius    = 8.0
	disturbRadiusFactor = 1.2
)

// World simulates a damped 2D wave field over procedurally generated
// terrain. Displacement is triple-buffered across three grids whose roles
// rotate each step; terrain and the boundary mask are static between resets.
//
// A World is not safe for concurrent use: Step and Disturb must be
// serialized by the caller, which the frame loop does naturally.
type World struct {
	cfg Config

	w, h int

	uPrev    *core.FloatGrid
	uCurr    *core.FloatGrid
	uNext    *core.FloatGrid
	velocity *core.FloatGrid
	terrain  *core.FloatGrid
	boundary *core.FloatGrid

	display []uint8

	rng    *pcore.LCG
	noise  *Noise
	faults *FaultSystem

	time        float64
	lastRupture float64
	hasRupture  bool

	metrics core.StepMetrics
}

// New returns a seismic World with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a seismic World configured from the provided options.
// The returned World already has terrain, boundary mask and fault layout
// generated from the config seed; dynamic grids start at zero.
func NewWithConfig(cfg Config) *World {
	if cfg.Width <= 0 {
		cfg.Width = 1
	}
	if cfg.Height <= 0 {
		cfg.Height = 1
	}
	w := &World{
		cfg:      cfg,
		w:        cfg.Width,
		h:        cfg.Height,
		uPrev:    core.NewFloatGrid(cfg.Width, cfg.Height),
		uCurr:    core.NewFloatGrid(cfg.Width, cfg.Height),
		uNext:    core.NewFloatGrid(cfg.Width, cfg.Height),
		velocity: core.NewFloatGrid(cfg.Width, cfg.Height),
		terrain:  core.NewFloatGrid(cfg.Width, cfg.Height),
		boundary: core.NewFloatGrid(cfg.Width, cfg.Height),
		display:  make([]uint8, cfg.Width*cfg.Height),
	}
	w.seed(cfg.Seed)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "seismic" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Displacement exposes the current displacement field (read-only by
// convention; renderers must not write through it).
func (w *World) Displacement() []float64 { return w.uCurr.Cells() }

// Velocity exposes the most recent central-difference velocity estimate.
func (w *World) Velocity() []float64 { return w.velocity.Cells() }

// Terrain exposes the static terrain heightmap.
func (w *World) Terrain() []float64 { return w.terrain.Cells() }

// BoundaryMask exposes the static edge-attenuation mask.
func (w *World) BoundaryMask() []float64 { return w.boundary.Cells() }

// Faults exposes the current fault layout.
func (w *World) Faults() []Fault { return w.faults.Faults() }

// FaultLines returns renderable fault segments as (x1, y1, x2, y2) tuples
// in grid coordinates.
func (w *World) FaultLines() [][4]float64 {
	faults := w.faults.Faults()
	lines := make([][4]float64, 0, len(faults))
	half := 0.2 * float64(min(w.w, w.h))
	for _, f := range faults {
		x1, y1, x2, y2 := f.Segment(half)
		lines = append(lines, [4]float64{x1, y1, x2, y2})
	}
	return lines
}

// Time reports accumulated simulation time in seconds.
func (w *World) Time() float64 { return w.time }

// LastRupture reports the simulation time of the most recent disturbance
// and whether one has occurred since the last reset.
func (w *World) LastRupture() (float64, bool) { return w.lastRupture, w.hasRupture }

// Metrics reports the readouts from the most recent step.
func (w *World) Metrics() core.StepMetrics { return w.metrics }

// seed rebuilds the random source and everything derived from it.
func (w *World) seed(seed int64) {
	w.rng = pcore.NewLCG(seed)
	w.noise = NewNoise(w.rng)
	w.faults = NewFaultSystem(w.w, w.h, w.rng)
	w.faults.SetFaults(w.cfg.Params.Faults)
	w.ResetTerrain()
}

// Reset reinitializes the world using deterministic randomness. A zero seed
// falls back to the configured seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.seed(effective)
}

// ResetTerrain regenerates the terrain heightmap and boundary mask and
// zeroes all dynamic state. Gradients already cached by the noise field are
// reused, so consecutive calls produce identical maps.
func (w *World) ResetTerrain() {
	width, height := w.w, w.h
	terrain := w.terrain.Cells()
	boundary := w.boundary.Cells()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := w.terrain.Index(x, y)

			nx := float64(x) / float64(width)
			ny := float64(y) / float64(height)
			ridge := math.Exp(-ridgeSharpness * (nx - 0.5) * (nx - 0.5))
			terrain[idx] = w.noise.FBM(nx*terrainNoiseScale, ny*terrainNoiseScale, fbmOctaves)*terrainNoiseGain + ridge*ridgeGain

			// Normalize against dim-1 so the mask hits exactly zero on
			// both extreme rows and columns.
			bx := edgeNorm(x, width)
			by := edgeNorm(y, height)
			edge := math.Min(math.Min(bx, 1-bx), math.Min(by, 1-by))
			boundary[idx] = math.Pow(edge, maskExponent)
		}
	}

	w.uPrev.Clear()
	w.uCurr.Clear()
	w.uNext.Clear()
	w.velocity.Clear()
	w.time = 0
	w.lastRupture = 0
	w.hasRupture = false
	w.metrics = core.StepMetrics{}
	w.refreshDisplay()
}

func edgeNorm(i, dim int) float64 {
	if dim <= 1 {
		return 0
	}
	return float64(i) / float64(dim-1)
}

// SetFaultCount regenerates the fault layout with the requested count.
// Terrain and dynamic grids are unaffected.
func (w *World) SetFaultCount(count int) {
	if count < 0 {
		count = 0
	}
	w.cfg.Params.Faults = count
	w.faults.SetFaults(count)
}

// Disturb injects a localized energy impulse into the current displacement
// field, centered at (x, y) in grid coordinates (fractional values are
// floored). The impulse has a raised-cosine falloff over a radius scaled by
// magnitude and is amplified near fault lines. Contributions add onto the
// existing field, so overlapping disturbances superpose. Cells on or next
// to the border are skipped silently, as are cells outside the grid.
func (w *World) Disturb(x, y, magnitude float64) {
	cx := int(math.Floor(x))
	cy := int(math.Floor(y))
	radius := math.Max(disturbMinRadius, magnitude*disturbRadiusFactor)
	span := int(radius)

	uCurr := w.uCurr.Cells()
	for j := -span; j <= span; j++ {
		for i := -span; i <= span; i++ {
			dist := math.Sqrt(float64(i*i + j*j))
			if dist > radius {
				continue
			}
			gx := cx + i
			gy := cy + j
			if gx <= 1 || gx >= w.w-2 || gy <= 1 || gy >= w.h-2 {
				continue
			}
			falloff := math.Cos(dist/radius*math.Pi)*0.5 + 0.5
			boost := w.faults.EnergyBoost(float64(gx), float64(gy))
			uCurr[w.uCurr.Index(gx, gy)] += magnitude * falloff * (1 + boost)
		}
	}

	w.lastRupture = w.time
	w.hasRupture = true
}

// Advance evolves the wave field by one fixed time step using an explicit
// second-order finite-difference scheme for the damped wave equation
// u_tt = c^2 * laplacian(u). Damping multiplies the velocity-carrying part
// of the update directly; this response curve is what the parameter sliders
// are tuned against, so it is deliberately not a textbook velocity-damping
// discretization. Neither waveSpeed nor damping is validated (see Params).
func (w *World) Advance(waveSpeed, damping float64) core.StepMetrics {
	width, height := w.w, w.h
	uPrev := w.uPrev.Cells()
	uCurr := w.uCurr.Cells()
	uNext := w.uNext.Cells()
	velocity := w.velocity.Cells()
	terrain := w.terrain.Cells()
	boundary := w.boundary.Cells()

	c2dt2 := waveSpeed * waveSpeed * DT * DT / (DX * DX)

	peak := 0.0
	energy := 0.0
	for y := 1; y < height-1; y++ {
		row := y * width
		for x := 1; x < width-1; x++ {
			idx := row + x

			lap := uCurr[idx-1] + uCurr[idx+1] + uCurr[idx-width] + uCurr[idx+width] - 4*uCurr[idx]
			stiffness := 1 + terrain[idx]*terrainStiffnessGain
			damp := math.Max(boundary[idx], boundaryFloor)

			accel := c2dt2 * lap * stiffness
			next := (1-damping)*(2*uCurr[idx]-uPrev[idx]) + accel*damp

			uNext[idx] = next
			velocity[idx] = (next - uPrev[idx]) / (2 * DT)

			if abs := math.Abs(next); abs > peak {
				peak = abs
			}
			energy += 0.5 * next * next
		}
	}

	// Rotate buffer roles; the old uPrev becomes the next scratch buffer.
	w.uPrev, w.uCurr, w.uNext = w.uCurr, w.uNext, w.uPrev
	w.time += DT

	w.metrics = core.StepMetrics{Peak: peak, Energy: energy * energyDisplayScale}
	return w.metrics
}

// Step advances the simulation by one tick using the configured parameters.
// Spontaneous ruptures fire from the world's own random source, so runs with
// the same seed evolve identically.
func (w *World) Step() {
	p := w.cfg.Params
	if p.QuakeChance > 0 && w.rng.Next() < p.QuakeChance {
		mag := w.rng.NextRange(p.QuakeMagMin, p.QuakeMagMax)
		x, y := w.epicenter()
		w.Disturb(x, y, mag)
	}
	w.Advance(p.WaveSpeed, p.Damping)
	w.refreshDisplay()
}

// epicenter samples a rupture location, biased onto a fault line when any
// exist: a point along a random fault's strike direction, jittered.
func (w *World) epicenter() (float64, float64) {
	faults := w.faults.Faults()
	if len(faults) == 0 {
		return w.rng.NextRange(2, float64(w.w-2)), w.rng.NextRange(2, float64(w.h-2))
	}
	f := faults[int(w.rng.Next()*float64(len(faults)))]
	span := float64(min(w.w, w.h))
	t := w.rng.NextRange(-0.3, 0.3) * span
	// Strike direction is perpendicular to the fault normal (cos a, sin a).
	return f.CX - math.Sin(f.Angle)*t, f.CY + math.Cos(f.Angle)*t
}

func init() {
	core.Register("seismic", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
