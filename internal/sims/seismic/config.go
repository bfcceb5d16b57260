package seismic

import "strconv"

// Params holds the tunable knobs for the seismic simulation.
//
// Recommended domains: WaveSpeed > 0 and Damping in [0, 1). Values outside
// those ranges are not rejected; they produce formally defined but
// numerically degenerate behavior (sign-inverted stiffness, instant total
// damping).
type Params struct {
	WaveSpeed float64
	Damping   float64
	Magnitude float64
	Faults    int

	QuakeChance float64
	QuakeMagMin float64
	QuakeMagMax float64
}

// Config controls the seismic simulation dimensions and initial parameters.
type Config struct {
	Width  int
	Height int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  200,
		Height: 120,
		Seed:   1337,
		Params: Params{
			WaveSpeed:   2.0,
			Damping:     0.02,
			Magnitude:   5.0,
			Faults:      3,
			QuakeChance: 0.004,
			QuakeMagMin: 2.0,
			QuakeMagMax: 7.0,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["wave_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.WaveSpeed = parsed
		}
	}
	if v, ok := cfg["damping"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.Damping = parsed
		}
	}
	if v, ok := cfg["magnitude"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.Magnitude = parsed
		}
	}
	if v, ok := cfg["faults"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.Faults = parsed
		}
	}
	if v, ok := cfg["quake_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.QuakeChance = parsed
		}
	}
	if v, ok := cfg["quake_mag_min"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.QuakeMagMin = parsed
		}
	}
	if v, ok := cfg["quake_mag_max"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.QuakeMagMax = parsed
		}
	}
	if c.Params.QuakeMagMax < c.Params.QuakeMagMin {
		c.Params.QuakeMagMax = c.Params.QuakeMagMin
	}
	return c
}
