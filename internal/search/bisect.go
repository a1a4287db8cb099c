package search

import (
	"math"

	"github.com/STRATEGUS-HE2022/flexman/internal/core"
)

// Bisect locates the completion crossing between two adjacent simulation
// snapshots: prev just before the target was reached, curr just after.
// It subsamples the step uniformly, linearly interpolating state and
// resources, and returns the first interpolated candidate that is
// complete. The subsample step is TimeDelta / (10 * max(1,
// |prev.Distance| / Threshold)): the farther prev lies from the target,
// the finer the subsampling. If no candidate completes, curr is returned
// unchanged.
//
// The returned candidate carries curr's sequence: the crossing happened
// inside curr's final step, and replaying that sequence reproduces the
// candidate up to interpolation tolerance.
func Bisect[S any, M core.Mode, R any](
	mgr core.Manager[S, M, R],
	prev, curr core.Solution[S, R],
) core.Solution[S, R] {
	cfg := mgr.Config()

	// A fresh seed carries an infinite distance; clamp the refinement
	// factor so the subsample step stays positive.
	factor := 1.0
	if d := math.Abs(prev.Distance); !math.IsInf(d, 0) && d > cfg.Threshold {
		factor = d / cfg.Threshold
	}
	step := cfg.TimeDelta / (10 * factor)

	candidate := curr.Clone()
	for t := 0.0; t <= cfg.TimeDelta; t += step {
		rel := t / cfg.TimeDelta
		candidate.Resources = mgr.InterpolateResources(prev.Resources, curr.Resources, rel)
		candidate.State = mgr.InterpolateState(prev.State, curr.State, rel)
		if mgr.IsComplete(&candidate) {
			candidate.Distance = mgr.Distance(&candidate)
			return candidate
		}
	}
	return curr
}
