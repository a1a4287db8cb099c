package search

import (
	"log/slog"

	"github.com/STRATEGUS-HE2022/flexman/internal/core"
	"github.com/STRATEGUS-HE2022/flexman/internal/timing"
)

// SimulateMode advances seed under mode for up to steps simulation steps,
// appending to its run-length sequence. If the solution completes inside
// the loop, the overshoot is resolved by Bisect and the crossing solution
// is returned instead.
func SimulateMode[S any, M core.Mode, R any](
	mgr core.Manager[S, M, R],
	mode M,
	steps int,
	seed core.Solution[S, R],
) (core.Solution[S, R], error) {
	if mgr == nil {
		return seed, errNilManager
	}
	if steps <= 0 {
		return seed, errZeroSteps
	}

	sol := seed.Clone()
	for i := 0; i < steps; i++ {
		prev := sol.Clone()
		mgr.Advance(&sol, mode)
		sol.Sequence = core.AppendExecution(sol.Sequence, mode.ModeID())
		if mgr.IsComplete(&sol) {
			return Bisect(mgr, prev, sol), nil
		}
	}
	return sol, nil
}

// ExtendSolutions grows every partial solution by one macro-step of steps
// simulation steps, emitting children according to the switching policy:
//
//   - SwitchFree: one child per mode.
//   - SwitchIncreasing: children only for modes with ID >= the partial's
//     tail mode.
//   - SwitchNone: a single child re-using the tail mode.
//
// The timer is polled between partials; on timeout the children collected
// so far are returned with a warning.
func ExtendSolutions[S any, M core.Mode, R any](
	mgr core.Manager[S, M, R],
	modes []M,
	steps int,
	partials []core.Solution[S, R],
	sw Switching,
	timer *timing.Timer,
) ([]core.Solution[S, R], error) {
	if err := validate(mgr, modes, steps); err != nil {
		return nil, err
	}

	slog.Debug("extending partial solutions", "partials", len(partials), "switching", sw)

	var children []core.Solution[S, R]
	for i := range partials {
		partial := &partials[i]
		switch sw {
		case SwitchFree:
			for _, mode := range modes {
				child, err := SimulateMode(mgr, mode, steps, *partial)
				if err != nil {
					return nil, err
				}
				children = append(children, child)
			}
		case SwitchIncreasing:
			for id := partial.TailMode(); int(id) < len(modes); id++ {
				child, err := SimulateMode(mgr, modes[id], steps, *partial)
				if err != nil {
					return nil, err
				}
				children = append(children, child)
			}
		default:
			child, err := SimulateMode(mgr, modes[partial.TailMode()], steps, *partial)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}

		if timer != nil && timer.HasTimeout() {
			slog.Warn("timer expired while extending solutions",
				"extended", i+1, "partials", len(partials))
			break
		}
	}

	slog.Debug("extended partial solutions", "children", len(children))
	return children, nil
}
