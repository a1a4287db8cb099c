package search

import (
	"math"

	"github.com/STRATEGUS-HE2022/flexman/internal/core"
	"github.com/STRATEGUS-HE2022/flexman/internal/linear"
)

// newToy builds the 1-D constant-velocity plant used across the search
// tests: target 1.0, threshold 0.01, three modes trading energy for speed.
func newToy() (*linear.Manager, []linear.Mode) {
	mgr := linear.NewManager(linear.State{0}, linear.State{1}, 0.1, 5.0, 0.01)
	modes := []linear.Mode{
		linear.VelocityMode(0, 2.0, 2.0, 0.1),   // +0.2/step, 0.2 energy/step
		linear.VelocityMode(1, 5.0, 10.0, 0.1),  // +0.5/step, 1.0 energy/step
		linear.VelocityMode(2, 10.0, 40.0, 0.1), // +1.0/step, 4.0 energy/step
	}
	return mgr, modes
}

func seedFor(mgr *linear.Manager, mode core.ModeID) linear.Solution {
	seed := core.NewSolution[linear.State, linear.Resources](mgr.InitialState)
	seed.Sequence = []core.ModeExecution{{Mode: mode, Times: 0}}
	return seed
}

func approx(a, b, tolerance float64) bool { return math.Abs(a-b) <= tolerance }

// activeModes returns the distinct modes with a positive execution count.
func activeModes(seq []core.ModeExecution) map[core.ModeID]bool {
	out := make(map[core.ModeID]bool)
	for _, e := range seq {
		if e.Times > 0 {
			out[e.Mode] = true
		}
	}
	return out
}

func minBy(solutions []linear.Solution, key func(*linear.Solution) float64) *linear.Solution {
	best := &solutions[0]
	for i := range solutions {
		if key(&solutions[i]) < key(best) {
			best = &solutions[i]
		}
	}
	return best
}

func energyOf(sol *linear.Solution) float64 { return sol.Resources.Energy }
func timeOf(sol *linear.Solution) float64   { return sol.Resources.Time }
