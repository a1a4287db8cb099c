package pso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/STRATEGUS-HE2022/flexman/internal/core"
	"github.com/STRATEGUS-HE2022/flexman/internal/linear"
	"github.com/STRATEGUS-HE2022/flexman/internal/search"
	"github.com/STRATEGUS-HE2022/flexman/internal/sim"
)

func newToy() (*linear.Manager, []linear.Mode) {
	mgr := linear.NewManager(linear.State{0}, linear.State{1}, 0.1, 5.0, 0.01)
	modes := []linear.Mode{
		linear.VelocityMode(0, 2.0, 2.0, 0.1),
		linear.VelocityMode(1, 5.0, 10.0, 0.1),
		linear.VelocityMode(2, 10.0, 40.0, 0.1),
	}
	return mgr, modes
}

func testParameters() Parameters {
	params := DefaultParameters()
	params.NumParticles = 20
	params.MaxIterations = 15
	params.Seed = 1
	return params
}

func TestDefaultParameters(t *testing.T) {
	params := DefaultParameters()
	assert.Equal(t, 100, params.NumParticles)
	assert.Equal(t, 50, params.MaxIterations)
	assert.InDelta(t, 0.2, params.Inertia, 1e-12)
	assert.InDelta(t, 0.4, params.Cognitive, 1e-12)
	assert.InDelta(t, 0.4, params.Social, 1e-12)
}

func TestOptimizeSolutionNeverWorsens(t *testing.T) {
	mgr, modes := newToy()

	seeds := [][]core.ModeExecution{
		{{Mode: 2, Times: 1}},
		{{Mode: 0, Times: 5}},
		{{Mode: 0, Times: 2}, {Mode: 1, Times: 2}},
	}
	for _, seq := range seeds {
		seed := sim.Replay[linear.State, linear.Mode, linear.Resources](mgr, modes, seq)
		require.True(t, mgr.IsComplete(&seed) || seed.Resources.Time > 0)

		refined := OptimizeSolution(mgr, testParameters(), modes, linear.TotalCost, seed)
		if mgr.IsComplete(&seed) {
			require.True(t, mgr.IsComplete(&refined), "refining a complete seed must stay complete")
			assert.LessOrEqual(t, linear.TotalCost(refined.Resources), linear.TotalCost(seed.Resources)+1e-9,
				"seed %v worsened", seq)
		}
	}
}

func TestOptimizeSolutionOnSlackSeed(t *testing.T) {
	mgr, modes := newToy()

	// A wasteful complete trajectory: sprint past the target region with
	// the expensive mode after creeping. The swarm should trim the counts.
	seed := sim.Replay[linear.State, linear.Mode, linear.Resources](mgr, modes, []core.ModeExecution{{Mode: 1, Times: 1}, {Mode: 2, Times: 3}})
	require.True(t, mgr.IsComplete(&seed))

	refined := OptimizeSolution(mgr, testParameters(), modes, linear.TotalCost, seed)
	require.True(t, mgr.IsComplete(&refined))
	assert.LessOrEqual(t, linear.TotalCost(refined.Resources), linear.TotalCost(seed.Resources)+1e-9)
}

func TestOptimizeSolutionKeepsSlotStructure(t *testing.T) {
	mgr, modes := newToy()

	seed := sim.Replay[linear.State, linear.Mode, linear.Resources](mgr, modes, []core.ModeExecution{{Mode: 0, Times: 2}, {Mode: 1, Times: 2}})
	refined := OptimizeSolution(mgr, testParameters(), modes, linear.TotalCost, seed)

	// The refined sequence replays the same modes in the same order; only
	// the counts move (trailing steps may be cut by early completion).
	var seedOrder, refinedOrder []core.ModeID
	for _, e := range seed.Sequence {
		seedOrder = append(seedOrder, e.Mode)
	}
	for _, e := range refined.Sequence {
		require.GreaterOrEqual(t, e.Times, 0)
		refinedOrder = append(refinedOrder, e.Mode)
	}
	assert.Subset(t, seedOrder, refinedOrder)
}

func TestOptimizeParetoFrontPreservesMetadata(t *testing.T) {
	mgr, modes := newToy()

	front := linear.Front{
		Solutions: []linear.Solution{
			sim.Replay[linear.State, linear.Mode, linear.Resources](mgr, modes, []core.ModeExecution{{Mode: 2, Times: 1}}),
			sim.Replay[linear.State, linear.Mode, linear.Resources](mgr, modes, []core.ModeExecution{{Mode: 0, Times: 5}}),
		},
		StepLength:        0.8,
		StepsPerIteration: 8,
		Iteration:         6,
		Runtime:           1.25,
	}

	refined := OptimizeParetoFront(mgr, testParameters(), modes, linear.TotalCost, front)

	assert.Len(t, refined.Solutions, len(front.Solutions))
	assert.Equal(t, front.StepLength, refined.StepLength)
	assert.Equal(t, front.StepsPerIteration, refined.StepsPerIteration)
	assert.Equal(t, front.Iteration, refined.Iteration)
	assert.Equal(t, front.Runtime, refined.Runtime)
}

// Refining a whole search result keeps its shape and never worsens the
// scalarized cost of any solution.
func TestOptimizeResultNeverWorsens(t *testing.T) {
	mgr, modes := newToy()

	result, err := search.PerformSearch[linear.State, linear.Mode, linear.Resources](
		search.Exhaustive, mgr, modes, 3)
	require.NoError(t, err)
	require.NotEmpty(t, result.ParetoFronts)

	refined := OptimizeResult(mgr, testParameters(), modes, linear.TotalCost, result)

	require.Len(t, refined.ParetoFronts, len(result.ParetoFronts))
	for i := range result.ParetoFronts {
		original := &result.ParetoFronts[i]
		optimized := &refined.ParetoFronts[i]
		require.Len(t, optimized.Solutions, len(original.Solutions))

		for j := range original.Solutions {
			assert.LessOrEqual(t,
				linear.TotalCost(optimized.Solutions[j].Resources),
				linear.TotalCost(original.Solutions[j].Resources)+1e-9,
				"front %d solution %d worsened", i, j)
		}
	}
}
