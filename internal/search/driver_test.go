package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/STRATEGUS-HE2022/flexman/internal/core"
	"github.com/STRATEGUS-HE2022/flexman/internal/linear"
)

func performToySearch(t *testing.T, alg Algorithm, iterations int) linear.Result {
	t.Helper()
	mgr, modes := newToy()
	result, err := PerformSearch[linear.State, linear.Mode, linear.Resources](alg, mgr, modes, iterations)
	require.NoError(t, err)
	return result
}

func lastFront(t *testing.T, result *linear.Result) *linear.Front {
	t.Helper()
	require.NotEmpty(t, result.ParetoFronts)
	return &result.ParetoFronts[len(result.ParetoFronts)-1]
}

func TestStepMovesCompleteSolutionsIntoAccepted(t *testing.T) {
	mgr, modes := newToy()

	partials := []linear.Solution{seedFor(mgr, 0), seedFor(mgr, 1), seedFor(mgr, 2)}
	var accepted []linear.Solution

	// A stride of 8 steps completes every branch in one iteration.
	partials, accepted, err := Step(Exhaustive, mgr, modes, 8, partials, accepted, nil)
	require.NoError(t, err)

	assert.Empty(t, partials, "every branch reaches the target within 8 steps")
	require.NotEmpty(t, accepted)
	for i := range accepted {
		assert.True(t, mgr.IsComplete(&accepted[i]), "accepted must hold complete solutions only")
	}
	// No accepted solution is dominated by another (invariant of the
	// front).
	for i := range accepted {
		for j := range accepted {
			if i == j {
				continue
			}
			assert.False(t, mgr.IsStrictlyBetter(&accepted[j], &accepted[i]),
				"front member %v dominated by %v", accepted[i].String(), accepted[j].String())
		}
	}
}

func TestStepHeuristicThinsPartials(t *testing.T) {
	mgr, modes := newToy()

	seeds := []linear.Solution{seedFor(mgr, 0), seedFor(mgr, 1), seedFor(mgr, 2)}

	// One step completes only the children extended with mode 2; the rest
	// stay partial.
	exhaustivePartials, _, err := Step(Exhaustive, mgr, modes, 1, seeds, nil, nil)
	require.NoError(t, err)
	heuristicPartials, _, err := Step(Heuristic, mgr, modes, 1, seeds, nil, nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(heuristicPartials), len(exhaustivePartials),
		"probable dominance may only shrink the partial set")
}

func TestSearchWithStrideIterationBound(t *testing.T) {
	mgr, modes := newToy()

	// time_max 5.0 at stride 8 caps the loop at 6 iterations.
	front, err := SearchWithStride(Exhaustive, mgr, modes, 8, linear.Front{}, nil)
	require.NoError(t, err)

	maxIterations := int(mgr.TimeMax / (mgr.TimeDelta * 8))
	assert.LessOrEqual(t, front.Iteration, maxIterations)
	assert.Equal(t, 8, front.StepsPerIteration)
	assert.InDelta(t, 0.8, front.StepLength, 1e-12)
}

func TestSearchWithStrideSeedsFromPreviousFront(t *testing.T) {
	mgr, modes := newToy()

	coarse, err := SearchWithStride(Exhaustive, mgr, modes, 8, linear.Front{}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, coarse.Solutions)

	fine, err := SearchWithStride(Exhaustive, mgr, modes, 1, coarse, nil)
	require.NoError(t, err)

	// The coarse solutions stay in the accepted set unless dominated.
	assert.GreaterOrEqual(t, len(fine.Solutions), 1)
	for i := range fine.Solutions {
		assert.True(t, mgr.IsComplete(&fine.Solutions[i]))
	}
}

func TestPerformSearchExhaustiveToy(t *testing.T) {
	result := performToySearch(t, Exhaustive, 4)
	mgr, _ := newToy()

	front := lastFront(t, &result)
	require.GreaterOrEqual(t, len(front.Solutions), 2,
		"the toy has at least an energy-optimal and a time-optimal solution")

	for i := range front.Solutions {
		assert.True(t, mgr.IsComplete(&front.Solutions[i]))
	}

	// Minimum energy: creep with mode 0 only, reaching 1.0 for ~1 J.
	minEnergy := minBy(front.Solutions, energyOf)
	assert.InDelta(t, 1.0, minEnergy.Resources.Energy, 0.05)
	for mode := range activeModes(minEnergy.Sequence) {
		assert.Equal(t, core.ModeID(0), mode, "energy-optimal sequence uses the cheap mode only")
	}

	// Minimum time: a single step of the fast mode.
	minTime := minBy(front.Solutions, timeOf)
	assert.InDelta(t, 0.1, minTime.Resources.Time, 0.01)
	assert.InDelta(t, 4.0, minTime.Resources.Energy, 0.1)
}

func TestPerformSearchHeuristicMatchesExhaustive(t *testing.T) {
	exhaustive := performToySearch(t, Exhaustive, 4)
	heuristic := performToySearch(t, Heuristic, 4)

	ef := lastFront(t, &exhaustive)
	hf := lastFront(t, &heuristic)

	assert.LessOrEqual(t, len(hf.Solutions), len(ef.Solutions))

	exMinEnergy := minBy(ef.Solutions, energyOf)
	heMinEnergy := minBy(hf.Solutions, energyOf)
	assert.InEpsilon(t, exMinEnergy.Resources.Energy, heMinEnergy.Resources.Energy, 0.10)

	exMinTime := minBy(ef.Solutions, timeOf)
	heMinTime := minBy(hf.Solutions, timeOf)
	assert.InEpsilon(t, exMinTime.Resources.Time, heMinTime.Resources.Time, 0.10)
}

func TestPerformSearchSingleMachine(t *testing.T) {
	result := performToySearch(t, SingleMachine, 4)

	require.Len(t, result.ParetoFronts, 1, "single-machine searches one stride level")
	front := &result.ParetoFronts[0]
	assert.Equal(t, 1, front.StepsPerIteration)

	// One complete solution per mode, and no cross-mode transitions.
	require.Len(t, front.Solutions, 3)
	seen := map[core.ModeID]bool{}
	for i := range front.Solutions {
		active := activeModes(front.Solutions[i].Sequence)
		require.Len(t, active, 1, "single-machine sequences never switch: %v", front.Solutions[i].Sequence)
		for mode := range active {
			seen[mode] = true
		}
	}
	assert.Len(t, seen, 3, "each mode yields its own solution")
}

func TestPerformSearchSingleIterationUsesSingleStride(t *testing.T) {
	result := performToySearch(t, Exhaustive, 1)

	require.Len(t, result.ParetoFronts, 1)
	assert.Equal(t, 1, result.ParetoFronts[0].StepsPerIteration)
}

func TestPerformSearchFrontsAreCoarsestFirst(t *testing.T) {
	result := performToySearch(t, Exhaustive, 4)

	require.NotEmpty(t, result.ParetoFronts)
	for i := 1; i < len(result.ParetoFronts); i++ {
		assert.Greater(t, result.ParetoFronts[i-1].StepsPerIteration, result.ParetoFronts[i].StepsPerIteration,
			"fronts must appear coarsest stride first")
	}
	assert.Greater(t, result.TotalRuntime(), 0.0)
}

func TestPerformSearchTinyTimeoutReturnsCleanly(t *testing.T) {
	mgr, modes := newToy()
	mgr.Timeout = time.Millisecond

	done := make(chan struct{})
	var result linear.Result
	var err error
	go func() {
		result, err = PerformSearch[linear.State, linear.Mode, linear.Resources](Exhaustive, mgr, modes, 10)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed-out search did not return promptly")
	}
	require.NoError(t, err, "a timeout is soft, never an error")
	assert.LessOrEqual(t, len(result.ParetoFronts), 10)
}

func TestPerformSearchInvalidArguments(t *testing.T) {
	mgr, modes := newToy()

	_, err := PerformSearch[linear.State, linear.Mode, linear.Resources](Exhaustive, nil, modes, 4)
	assert.Error(t, err, "nil manager")

	_, err = PerformSearch[linear.State, linear.Mode, linear.Resources](Exhaustive, mgr, nil, 4)
	assert.Error(t, err, "empty mode set")

	_, err = PerformSearch[linear.State, linear.Mode, linear.Resources](Exhaustive, mgr, modes, 0)
	assert.Error(t, err, "zero iterations")
}

func TestPerformSearchInteractiveQuit(t *testing.T) {
	mgr, modes := newToy()
	mgr.Interactive = true

	keys := []byte{'x', 'q'} // unknown keys are ignored
	presses := 0
	keyFn := func() (byte, error) {
		key := keys[presses%len(keys)]
		presses++
		return key, nil
	}

	result, err := performSearch[linear.State, linear.Mode, linear.Resources](Exhaustive, mgr, modes, 4, keyFn)
	require.NoError(t, err)
	assert.Len(t, result.ParetoFronts, 1, "'q' stops after the first stride")
	assert.Equal(t, 2, presses)
}

func TestPerformSearchInteractiveDisable(t *testing.T) {
	mgr, modes := newToy()
	mgr.Interactive = true

	presses := 0
	keyFn := func() (byte, error) {
		presses++
		return 'r', nil
	}

	result, err := performSearch[linear.State, linear.Mode, linear.Resources](Exhaustive, mgr, modes, 3, keyFn)
	require.NoError(t, err)
	assert.Len(t, result.ParetoFronts, 3, "'r' lets the search run to the end")
	assert.Equal(t, 1, presses, "'r' disables further pauses")
}

func TestSearchWithStrideNoProgressIsSuccess(t *testing.T) {
	// A plant that can never reach the target: partials die out against
	// the accepted set only when they complete, so here the loop simply
	// runs out of iterations without error.
	mgr := linear.NewManager(linear.State{0}, linear.State{1e9}, 0.1, 1.0, 0.01)
	modes := []linear.Mode{linear.VelocityMode(0, 1.0, 1.0, 0.1)}

	front, err := SearchWithStride(Exhaustive, mgr, modes, 1, linear.Front{}, nil)
	require.NoError(t, err)
	assert.Empty(t, front.Solutions)
	assert.Equal(t, int(mgr.TimeMax/mgr.TimeDelta), front.Iteration)
}
