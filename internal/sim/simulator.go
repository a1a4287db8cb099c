// Package sim provides the trajectory simulator: single-step advance,
// single-mode evolution traces, and end-to-end replay of mode execution
// sequences with overshoot correction.
package sim

import (
	"errors"
	"log/slog"

	"github.com/STRATEGUS-HE2022/flexman/internal/core"
	"github.com/STRATEGUS-HE2022/flexman/internal/search"
)

var (
	errNilManager = errors.New("manager must not be nil")
	errZeroSteps  = errors.New("steps must be greater than 0")
)

// Step advances sol by one simulation step under mode.
func Step[S any, M core.Mode, R any](
	mgr core.Manager[S, M, R],
	mode M,
	sol *core.Solution[S, R],
) {
	mgr.Advance(sol, mode)
}

// SingleMode simulates one mode from the initial state for up to steps
// steps, stopping early once the solution completes. It returns the full
// evolution trace, one solution snapshot per executed step. The snapshots
// carry no sequence; the trace describes state and resource evolution
// only.
func SingleMode[S any, M core.Mode, R any](
	mgr core.Manager[S, M, R],
	mode M,
	steps int,
) (core.Simulation[S, R], error) {
	if mgr == nil {
		return core.Simulation[S, R]{}, errNilManager
	}
	if steps <= 0 {
		return core.Simulation[S, R]{}, errZeroSteps
	}
	cfg := mgr.Config()

	simulation := core.Simulation[S, R]{
		InitialState: cfg.InitialState,
		TargetState:  cfg.TargetState,
	}

	sol := core.NewSolution[S, R](cfg.InitialState)
	for i := 0; i < steps && !mgr.IsComplete(&sol); i++ {
		Step(mgr, mode, &sol)
		simulation.Evolution = append(simulation.Evolution, sol.Clone())
	}

	slog.Debug("simulated single mode",
		"mode", mode.ModeID(), "steps", steps, "evolution", len(simulation.Evolution))
	return simulation, nil
}

// Replay drives a full mode execution sequence from the initial state and
// returns the resulting solution. Completion inside a run-length record is
// resolved by bisection against the pre-advance snapshot, and the rest of
// that record is skipped.
//
// Replay reports no errors: it exists to evaluate candidate sequences, and
// a sequence that never completes simply yields an incomplete solution.
func Replay[S any, M core.Mode, R any](
	mgr core.Manager[S, M, R],
	modes []M,
	sequence []core.ModeExecution,
) core.Solution[S, R] {
	sol := core.NewSolution[S, R](mgr.Config().InitialState)
	for _, exec := range sequence {
		for i := 0; i < exec.Times; i++ {
			prev := sol.Clone()
			mgr.Advance(&sol, modes[exec.Mode])
			sol.Sequence = core.AppendExecution(sol.Sequence, exec.Mode)
			if mgr.IsComplete(&sol) {
				sol = search.Bisect(mgr, prev, sol)
				break
			}
		}
	}
	return sol
}
