package core

import "time"

// FixedStep helps run simulation updates at a steady ticks-per-second rate,
// decoupled from the display refresh rate.
type FixedStep struct {
	tps         int
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// TPS reports the current tick rate.
func (f *FixedStep) TPS() int { return f.tps }

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.tps = tps
	f.step = time.Second / time.Duration(tps)
}

// Faster doubles the tick rate up to a cap of 240 TPS.
func (f *FixedStep) Faster() {
	next := f.tps * 2
	if next > 240 {
		next = 240
	}
	f.SetTPS(next)
}

// Slower halves the tick rate down to a floor of 1 TPS.
func (f *FixedStep) Slower() {
	next := f.tps / 2
	if next < 1 {
		next = 1
	}
	f.SetTPS(next)
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
