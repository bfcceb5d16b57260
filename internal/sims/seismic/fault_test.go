package seismic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"quakefield/pkg/core"
)

func TestSetFaultsSamplingRanges(t *testing.T) {
	fs := NewFaultSystem(200, 120, core.NewLCG(1337))
	fs.SetFaults(50)

	faults := fs.Faults()
	require.Len(t, faults, 50)
	for i, f := range faults {
		require.GreaterOrEqual(t, f.CX, 0.2*200, "fault %d center x", i)
		require.Less(t, f.CX, 0.8*200, "fault %d center x", i)
		require.GreaterOrEqual(t, f.CY, 0.2*120, "fault %d center y", i)
		require.Less(t, f.CY, 0.8*120, "fault %d center y", i)
		require.GreaterOrEqual(t, f.Angle, 0.0, "fault %d angle", i)
		require.Less(t, f.Angle, math.Pi, "fault %d angle", i)
		require.GreaterOrEqual(t, f.Strength, 0.6, "fault %d strength", i)
		require.Less(t, f.Strength, 1.3, "fault %d strength", i)
	}
}

func TestEnergyBoostNonnegative(t *testing.T) {
	fs := NewFaultSystem(200, 120, core.NewLCG(9))
	rng := core.NewLCG(3)

	for _, count := range []int{0, 1, 3, 8} {
		fs.SetFaults(count)
		for i := 0; i < 500; i++ {
			x := rng.NextRange(-50, 250)
			y := rng.NextRange(-50, 170)
			require.GreaterOrEqual(t, fs.EnergyBoost(x, y), 0.0, "count=%d at (%v, %v)", count, x, y)
		}
	}
}

func TestEnergyBoostZeroWithoutFaults(t *testing.T) {
	fs := NewFaultSystem(100, 100, core.NewLCG(1))
	fs.SetFaults(0)
	require.Zero(t, fs.EnergyBoost(50, 50))
}

func TestEnergyBoostDecaysAlongNormal(t *testing.T) {
	fs := NewFaultSystem(100, 100, core.NewLCG(1))
	// Horizontal fault line through (50, 50): normal points along +y.
	fs.faults = []Fault{{CX: 50, CY: 50, Angle: math.Pi / 2, Strength: 1}}

	on := fs.EnergyBoost(50, 50)
	require.InDelta(t, 1.0, on, 1e-12)

	// Moving along the fault line costs nothing; moving along the normal
	// decays exponentially.
	require.InDelta(t, on, fs.EnergyBoost(80, 50), 1e-12)
	require.InDelta(t, math.Exp(-10*faultDecay), fs.EnergyBoost(50, 60), 1e-12)
	require.Greater(t, fs.EnergyBoost(50, 55), fs.EnergyBoost(50, 70))
}

func TestSetFaultsRegeneratesNotCaches(t *testing.T) {
	fs := NewFaultSystem(200, 120, core.NewLCG(1337))
	fs.SetFaults(3)
	original := append([]Fault(nil), fs.Faults()...)

	fs.SetFaults(0)
	require.Empty(t, fs.Faults())

	fs.SetFaults(3)
	require.Len(t, fs.Faults(), 3)
	require.NotEqual(t, original, fs.Faults(), "regenerated layout must reflect the advanced random source")
}
