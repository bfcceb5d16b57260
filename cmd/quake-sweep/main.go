// Command quake-sweep explores how the wave field responds across the
// wave-speed/damping parameter plane: each scenario injects a standard
// rupture into a fresh world, steps it for a fixed number of ticks and
// reports how quickly the field rings down.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"quakefield/internal/sims/seismic"
)

type paramSet struct {
	waveSpeed float64
	damping   float64
	magnitude float64
	faults    int
}

func (p paramSet) String() string {
	return fmt.Sprintf("speed=%.2f damping=%.3f mag=%.1f faults=%d",
		p.waveSpeed, p.damping, p.magnitude, p.faults)
}

type scenarioResult struct {
	params paramSet

	initialPeak    float64
	initialEnergy  float64
	residualEnergy float64
	settleStep     int
}

func main() {
	steps := flag.Int("steps", 600, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("w", 200, "grid width")
	height := flag.Int("h", 120, "grid height")
	seed := flag.Int64("seed", 1337, "world seed")
	flag.Parse()

	speedOptions := []float64{0.5, 1.0, 2.0, 3.0, 4.0}
	dampingOptions := []float64{0.005, 0.01, 0.02, 0.05, 0.1}
	magnitudeOptions := []float64{3.0, 5.0, 8.0}
	faultOptions := []int{0, 3, 6}

	var sets []paramSet
	for _, speed := range speedOptions {
		for _, damping := range dampingOptions {
			for _, mag := range magnitudeOptions {
				for _, faults := range faultOptions {
					sets = append(sets, paramSet{
						waveSpeed: speed,
						damping:   damping,
						magnitude: mag,
						faults:    faults,
					})
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(*width, *height, *seed, params, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].settleStep < all[j].settleStep })
	elapsed := time.Since(start)

	fmt.Printf("\nFastest ring-down (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 10; i++ {
		res := all[i]
		settle := fmt.Sprintf("%d", res.settleStep)
		if res.settleStep < 0 {
			settle = "never"
		}
		fmt.Printf("%2d) settle=%s peak0=%.3f energy0=%.3f residual=%.5f params=%s\n",
			i+1, settle, res.initialPeak, res.initialEnergy, res.residualEnergy, res.params)
	}
}

// runScenario steps an isolated world and reports when the field energy has
// decayed below 1% of its post-rupture level. A settle step of -1 means the
// field was still ringing when the scenario ended.
func runScenario(width, height int, seed int64, params paramSet, steps int) scenarioResult {
	cfg := seismic.DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.Seed = seed
	cfg.Params.Faults = params.faults
	cfg.Params.QuakeChance = 0

	world := seismic.NewWithConfig(cfg)
	world.Disturb(float64(width)/2, float64(height)/2, params.magnitude)

	first := world.Advance(params.waveSpeed, params.damping)
	threshold := first.Energy * 0.01

	res := scenarioResult{
		params:        params,
		initialPeak:   first.Peak,
		initialEnergy: first.Energy,
		settleStep:    -1,
	}

	last := first
	for i := 1; i < steps; i++ {
		last = world.Advance(params.waveSpeed, params.damping)
		if res.settleStep < 0 && last.Energy <= threshold {
			res.settleStep = i
		}
	}
	res.residualEnergy = last.Energy

	return res
}
