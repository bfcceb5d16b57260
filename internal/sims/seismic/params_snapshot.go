package seismic

import (
	"strconv"

	"quakefield/internal/core"
)

// Parameters reports the current tunables for HUD display.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Wave",
			Params: []core.Parameter{
				floatParam("wave_speed", "Wave speed", params.WaveSpeed),
				floatParam("damping", "Damping", params.Damping),
			},
		},
		{
			Name: "Rupture",
			Params: []core.Parameter{
				floatParam("magnitude", "Click magnitude", params.Magnitude),
				intParam("faults", "Fault count", params.Faults),
				floatParam("quake_chance", "Quake chance", params.QuakeChance),
				floatParam("quake_mag_min", "Quake magnitude min", params.QuakeMagMin),
				floatParam("quake_mag_max", "Quake magnitude max", params.QuakeMagMax),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable knobs.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "wave_speed", Label: "Wave speed", Type: core.ParamTypeFloat, Step: 0.25, Min: 0.25, Max: 8, HasMin: true, HasMax: true},
		{Key: "damping", Label: "Damping", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, Max: 0.2, HasMin: true, HasMax: true},
		{Key: "magnitude", Label: "Magnitude", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.5, Max: 12, HasMin: true, HasMax: true},
		{Key: "faults", Label: "Faults", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 12, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a float knob from HUD interaction.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "wave_speed":
		w.cfg.Params.WaveSpeed = value
	case "damping":
		w.cfg.Params.Damping = value
	case "magnitude":
		w.cfg.Params.Magnitude = value
	case "quake_chance":
		w.cfg.Params.QuakeChance = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer knob from HUD interaction. Changing the
// fault count regenerates the fault layout immediately.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "faults":
		w.SetFaultCount(value)
	default:
		return false
	}
	return true
}

// PointerDown injects a rupture of the configured magnitude at the pointer
// location.
func (w *World) PointerDown(x, y float64) {
	w.Disturb(x, y, w.cfg.Params.Magnitude)
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
