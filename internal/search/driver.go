package search

import (
	"log/slog"

	"github.com/STRATEGUS-HE2022/flexman/internal/core"
	"github.com/STRATEGUS-HE2022/flexman/internal/interact"
	"github.com/STRATEGUS-HE2022/flexman/internal/timing"
)

// Step runs one iteration of the search: extend the partials, prune the
// children against the accepted front, move the newly complete children
// into the front, and refresh the partial set. It returns the updated
// partial and accepted sets.
//
// The children and the accepted front are always pruned by strict
// dominance, whatever the algorithm; Heuristic adds a second prune of the
// surviving partials against each other by probable dominance, thinning
// weak branches early.
func Step[S any, M core.Mode, R any](
	alg Algorithm,
	mgr core.Manager[S, M, R],
	modes []M,
	stepsPerIteration int,
	partials, accepted []core.Solution[S, R],
	timer *timing.Timer,
) (newPartials, newAccepted []core.Solution[S, R], err error) {
	if err := validate(mgr, modes, stepsPerIteration); err != nil {
		return nil, nil, err
	}

	sw := SwitchFree
	if alg == SingleMachine {
		sw = SwitchNone
	}
	extended, err := ExtendSolutions(mgr, modes, stepsPerIteration, partials, sw, timer)
	if err != nil {
		return nil, nil, err
	}

	extended, err = RemoveDominated(Exhaustive, mgr, extended, accepted)
	if err != nil {
		return nil, nil, err
	}

	complete, partial := SplitCompletePartial(mgr, extended)

	if len(complete) > 0 {
		accepted = append(cloneSet(accepted), complete...)
		accepted = RemoveDominatedWithin(Exhaustive, mgr, accepted)
		accepted = RemoveDuplicates(mgr, accepted)
	}

	if alg == Heuristic {
		partials, err = RemoveDominated(Heuristic, mgr, cloneSet(partial), partial)
		if err != nil {
			return nil, nil, err
		}
	} else {
		partials = partial
	}

	return partials, accepted, nil
}

// SearchWithStride runs the bounded iteration loop at one stride level.
// It seeds one partial per mode (a zero-times run-length record at the
// initial state), seeds the accepted set from the previous front, and
// iterates Step until floor(TimeMax / (TimeDelta * steps)) iterations have
// run, the partials die out, or the timer expires.
func SearchWithStride[S any, M core.Mode, R any](
	alg Algorithm,
	mgr core.Manager[S, M, R],
	modes []M,
	stepsPerIteration int,
	prev core.ParetoFront[S, R],
	timer *timing.Timer,
) (core.ParetoFront[S, R], error) {
	if err := validate(mgr, modes, stepsPerIteration); err != nil {
		return core.ParetoFront[S, R]{}, err
	}
	if timer == nil {
		timer = timing.New()
	}
	cfg := mgr.Config()

	partials := make([]core.Solution[S, R], 0, len(modes))
	for _, mode := range modes {
		seed := core.NewSolution[S, R](cfg.InitialState)
		seed.Sequence = []core.ModeExecution{{Mode: mode.ModeID(), Times: 0}}
		partials = append(partials, seed)
	}
	accepted := cloneSet(prev.Solutions)

	var frontTimer, roundTimer timing.Timer
	frontTimer.Start()

	stepLength := cfg.TimeDelta * float64(stepsPerIteration)
	maxIterations := int(cfg.TimeMax / stepLength)

	slog.Info("searching at stride",
		"algorithm", alg,
		"steps_per_iteration", stepsPerIteration,
		"step_length", stepLength,
		"max_iterations", maxIterations)

	iteration := 0
	for iteration < maxIterations && len(partials) > 0 {
		roundTimer.Start()

		var err error
		partials, accepted, err = Step(alg, mgr, modes, stepsPerIteration, partials, accepted, timer)
		if err != nil {
			return core.ParetoFront[S, R]{}, err
		}
		iteration++

		slog.Info("search iteration",
			"iteration", iteration,
			"max_iterations", maxIterations,
			"partial", len(partials),
			"accepted", len(accepted),
			"round", roundTimer.Elapsed(),
			"elapsed", timer.Elapsed(),
			"remaining", timer.Remaining())

		if timer.HasTimeout() {
			slog.Warn("search iteration went into timeout",
				"iteration", iteration,
				"max_iterations", maxIterations,
				"steps_per_iteration", stepsPerIteration,
				"elapsed", timer.Elapsed())
			break
		}
	}

	return core.ParetoFront[S, R]{
		Solutions:         accepted,
		StepLength:        stepLength,
		StepsPerIteration: stepsPerIteration,
		Iteration:         iteration,
		Runtime:           frontTimer.Elapsed().Seconds(),
	}, nil
}

// PerformSearch runs the outer stride-halving loop: searches at strides
// 2^(iterations-1), ..., 2, 1 (always 1 for SingleMachine), feeding each
// front back as the seed of the next, finer level. Non-empty fronts
// accumulate into the Result, coarsest first.
//
// A timeout on the manager settings bounds the whole run; it is soft, so
// the fronts built so far are returned without error. When the settings
// ask for interactive mode and stdin is a terminal, the driver pauses
// after each front for a single key: 'c' continues, 'r' continues and
// disables further pauses, 'q' stops the search.
func PerformSearch[S any, M core.Mode, R any](
	alg Algorithm,
	mgr core.Manager[S, M, R],
	modes []M,
	iterations int,
) (core.Result[S, R], error) {
	var keyFn interact.KeyFunc
	if mgr != nil && mgr.Config().Interactive && interact.IsTerminal() {
		keyFn = interact.WaitForKey
	}
	return performSearch(alg, mgr, modes, iterations, keyFn)
}

func performSearch[S any, M core.Mode, R any](
	alg Algorithm,
	mgr core.Manager[S, M, R],
	modes []M,
	iterations int,
	keyFn interact.KeyFunc,
) (core.Result[S, R], error) {
	var result core.Result[S, R]
	if mgr == nil {
		return result, errNilManager
	}
	if len(modes) == 0 {
		return result, errNoModes
	}
	if iterations <= 0 {
		return result, errZeroIters
	}
	cfg := mgr.Config()

	timer := timing.New()
	if cfg.Timeout > 0 {
		timer.SetTimeout(cfg.Timeout)
	}
	timer.Start()

	initStride := 1
	if alg != SingleMachine {
		initStride = 1 << (iterations - 1)
	}

	// Preview the stride plan before committing to it.
	for steps := initStride; steps >= 1; steps /= 2 {
		stepLength := cfg.TimeDelta * float64(steps)
		slog.Info("stride plan",
			"steps_per_iteration", steps,
			"step_length", stepLength,
			"max_iterations", int(cfg.TimeMax/stepLength))
	}

	var front core.ParetoFront[S, R]
	interactive := keyFn != nil

	for steps := initStride; steps >= 1; steps /= 2 {
		var err error
		front, err = SearchWithStride(alg, mgr, modes, steps, front, timer)
		if err != nil {
			return result, err
		}

		if len(front.Solutions) > 0 {
			front.Runtime = timer.Elapsed().Seconds()
			result.ParetoFronts = append(result.ParetoFronts, front)
		}

		if interactive {
			timer.Pause()
			slog.Warn("press 'c' to continue the search, 'r' to continue without pausing, 'q' to stop it now")
			stop := false
		keys:
			for {
				key, err := keyFn()
				if err != nil {
					// Lost the terminal; stop pausing, keep searching.
					interactive = false
					break
				}
				switch key {
				case 'c':
					break keys
				case 'r':
					interactive = false
					break keys
				case 'q':
					stop = true
					break keys
				}
			}
			timer.Resume()
			if stop {
				break
			}
		}

		if timer.HasTimeout() {
			slog.Warn("stopping the search because of time-out",
				"steps_per_iteration", steps,
				"elapsed", timer.Elapsed())
			break
		}
	}

	return result, nil
}
