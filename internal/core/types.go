package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a grid simulation must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// StepMetrics carries the scalar readouts produced by one simulation step.
type StepMetrics struct {
	Peak   float64
	Energy float64
}

// MetricsProvider is implemented by sims that report per-step readouts.
type MetricsProvider interface {
	Metrics() StepMetrics
}

// Pointable is implemented by sims that accept pointer interactions at a
// grid coordinate, such as injecting a disturbance where the user clicked.
type Pointable interface {
	PointerDown(x, y float64)
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
