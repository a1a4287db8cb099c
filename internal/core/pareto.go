package core

import (
	"fmt"
	"strings"
)

// ParetoFront is the set of non-dominated solutions found at one stride
// resolution, together with the resolution metadata.
type ParetoFront[S, R any] struct {
	Solutions []Solution[S, R] `json:"solutions"`
	// StepLength is the simulated duration of one iteration at this
	// resolution: TimeDelta * StepsPerIteration.
	StepLength        float64 `json:"step_length"`
	StepsPerIteration int     `json:"steps_per_iteration"`
	// Iteration counts the iterations executed to build this front.
	Iteration int `json:"iteration"`
	// Runtime is wall-clock seconds spent.
	Runtime float64 `json:"runtime"`
}

func (pf *ParetoFront[S, R]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ParetoFront{step_length: %g, steps_per_iteration: %d, iteration: %d, runtime: %.3f, solutions: %d}",
		pf.StepLength, pf.StepsPerIteration, pf.Iteration, pf.Runtime, len(pf.Solutions))
	return sb.String()
}
