package seismic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuietWorld(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	// Spontaneous ruptures off so tests control every disturbance.
	cfg.Params.QuakeChance = 0
	return NewWithConfig(cfg)
}

func TestDisturbThenStepScenario(t *testing.T) {
	world := newQuietWorld(200, 120)
	world.ResetTerrain()

	world.Disturb(100, 60, 5.0)
	stamp, ok := world.LastRupture()
	require.True(t, ok, "disturb must stamp the rupture time")
	require.Zero(t, stamp)

	m := world.Advance(2.0, 0.02)
	require.Greater(t, m.Peak, 0.0)
	require.Greater(t, m.Energy, 0.0)
	require.InDelta(t, 0.016, world.Time(), 1e-12)
}

func TestZeroSpeedZeroDampingRecurrence(t *testing.T) {
	world := newQuietWorld(64, 48)
	world.Disturb(32, 24, 4.0)

	prev := append([]float64(nil), world.uPrev.Cells()...)
	curr := append([]float64(nil), world.Displacement()...)

	world.Advance(0, 0)

	got := world.Displacement()
	for y := 1; y < 47; y++ {
		for x := 1; x < 63; x++ {
			idx := y*64 + x
			want := 2*curr[idx] - prev[idx]
			require.InDelta(t, want, got[idx], 1e-12, "pure recurrence violated at (%d,%d)", x, y)
		}
	}
}

func TestBorderNeverWritten(t *testing.T) {
	world := newQuietWorld(80, 50)
	world.Disturb(2, 2, 9.0)
	world.Disturb(40, 25, 6.0)
	for i := 0; i < 25; i++ {
		world.Advance(2.5, 0.01)
	}

	for _, grid := range [][]float64{world.Displacement(), world.uPrev.Cells(), world.uNext.Cells()} {
		require.Len(t, grid, 80*50)
		for x := 0; x < 80; x++ {
			assert.Zero(t, grid[x], "top border at x=%d", x)
			assert.Zero(t, grid[49*80+x], "bottom border at x=%d", x)
		}
		for y := 0; y < 50; y++ {
			assert.Zero(t, grid[y*80], "left border at y=%d", y)
			assert.Zero(t, grid[y*80+79], "right border at y=%d", y)
		}
	}
}

func TestBufferRotationNoCopies(t *testing.T) {
	world := newQuietWorld(32, 32)

	prev := world.uPrev
	curr := world.uCurr
	next := world.uNext

	world.Advance(1.0, 0)

	require.Same(t, curr, world.uPrev, "old current buffer must become previous")
	require.Same(t, next, world.uCurr, "freshly computed buffer must become current")
	require.Same(t, prev, world.uNext, "old previous buffer must become the scratch buffer")
}

func TestDisturbSuperposition(t *testing.T) {
	a := newQuietWorld(200, 120)
	b := newQuietWorld(200, 120)
	both := newQuietWorld(200, 120)

	// Radii are max(8, 3*1.2)=8, so these two impulses cannot overlap.
	a.Disturb(40, 40, 3.0)
	b.Disturb(150, 80, 3.0)
	both.Disturb(40, 40, 3.0)
	both.Disturb(150, 80, 3.0)

	ua, ub, uBoth := a.Displacement(), b.Displacement(), both.Displacement()
	for i := range uBoth {
		require.InDelta(t, ua[i]+ub[i], uBoth[i], 1e-12, "superposition broken at index %d", i)
	}
}

func TestDisturbAccumulates(t *testing.T) {
	world := newQuietWorld(64, 64)
	world.Disturb(32, 32, 2.0)
	once := append([]float64(nil), world.Displacement()...)

	world.Disturb(32, 32, 2.0)
	twice := world.Displacement()
	for i := range twice {
		require.InDelta(t, 2*once[i], twice[i], 1e-12, "overlapping impulses must add, index %d", i)
	}
}

func TestDisturbOutsideGridIsSilent(t *testing.T) {
	world := newQuietWorld(64, 64)

	require.NotPanics(t, func() {
		world.Disturb(-50, -50, 5.0)
		world.Disturb(500, 500, 5.0)
	})
	for i, v := range world.Displacement() {
		require.Zero(t, v, "fully out-of-range disturb must not touch cell %d", i)
	}

	// The rupture stamp still fires; the skip policy is per cell.
	_, ok := world.LastRupture()
	require.True(t, ok)
}

func TestDisturbZeroMagnitude(t *testing.T) {
	world := newQuietWorld(64, 64)
	world.Disturb(32, 32, 0)
	for _, v := range world.Displacement() {
		require.Zero(t, v)
	}
}

func TestResetTerrainIdempotent(t *testing.T) {
	world := newQuietWorld(100, 80)
	world.ResetTerrain()
	terrain := append([]float64(nil), world.Terrain()...)
	boundary := append([]float64(nil), world.BoundaryMask()...)

	world.Disturb(50, 40, 6.0)
	world.Advance(2.0, 0.02)
	world.ResetTerrain()

	require.Equal(t, terrain, world.Terrain(), "terrain must recompute identically from cached gradients")
	require.Equal(t, boundary, world.BoundaryMask())
	for _, grid := range [][]float64{world.Displacement(), world.uPrev.Cells(), world.uNext.Cells(), world.Velocity()} {
		for _, v := range grid {
			require.Zero(t, v)
		}
	}
	require.Zero(t, world.Time())
	_, ok := world.LastRupture()
	require.False(t, ok)
}

func TestBoundaryMaskShape(t *testing.T) {
	world := newQuietWorld(100, 80)
	mask := world.BoundaryMask()

	for x := 0; x < 100; x++ {
		require.Zero(t, mask[x], "mask must vanish on the top edge at x=%d", x)
		require.Zero(t, mask[79*100+x], "mask must vanish on the bottom edge at x=%d", x)
	}
	for _, v := range mask {
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}
	// Center of the domain: min distance 0.5 raised to the 0.3 power.
	require.Greater(t, mask[40*100+50], 0.75)
}

func TestResetDeterministicPerSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 64
	cfg.Height = 48
	cfg.Seed = 99

	a := NewWithConfig(cfg)
	b := NewWithConfig(cfg)

	require.Equal(t, a.Terrain(), b.Terrain())
	require.Equal(t, a.Faults(), b.Faults())

	a.Disturb(30, 20, 5.0)
	a.Advance(2.0, 0.02)
	a.Reset(0)

	require.Equal(t, b.Terrain(), a.Terrain(), "Reset with the config seed must rebuild the same world")
	require.Equal(t, b.Faults(), a.Faults())
}

func TestStepDeterministicWithSpontaneousRuptures(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 96
	cfg.Height = 64
	cfg.Seed = 7
	cfg.Params.QuakeChance = 0.2

	a := NewWithConfig(cfg)
	b := NewWithConfig(cfg)

	for i := 0; i < 200; i++ {
		a.Step()
		b.Step()
	}

	require.Equal(t, a.Displacement(), b.Displacement(), "seeded runs must evolve identically")
	require.Equal(t, a.Metrics(), b.Metrics())
	require.InDelta(t, 200*DT, a.Time(), 1e-9)
}

func TestDampingDrainsEnergy(t *testing.T) {
	world := newQuietWorld(120, 120)
	world.Disturb(60, 60, 6.0)

	world.Advance(2.0, 0.05)
	early := world.Metrics().Energy
	for i := 0; i < 400; i++ {
		world.Advance(2.0, 0.05)
	}
	late := world.Metrics().Energy

	require.Greater(t, early, 0.0)
	require.Less(t, late, early, "damped field must lose energy over time")
}

func TestSetFaultCountLeavesFieldAlone(t *testing.T) {
	world := newQuietWorld(100, 80)
	world.Disturb(50, 40, 4.0)
	terrain := append([]float64(nil), world.Terrain()...)
	displacement := append([]float64(nil), world.Displacement()...)

	world.SetFaultCount(7)

	require.Len(t, world.Faults(), 7)
	require.Equal(t, terrain, world.Terrain())
	require.Equal(t, displacement, world.Displacement())
}

func TestDisplayQuantization(t *testing.T) {
	world := newQuietWorld(64, 64)
	world.Step()

	cells := world.Cells()
	require.Len(t, cells, 64*64)
	for _, c := range cells {
		require.Equal(t, uint8(128), c, "resting field maps to the neutral palette index")
	}

	world.Disturb(32, 32, 8.0)
	world.Step()
	moved := false
	for _, c := range world.Cells() {
		if c != 128 {
			moved = true
			break
		}
	}
	require.True(t, moved, "a rupture must show up in the display buffer")
	require.Len(t, world.Palette(), 256)
}
