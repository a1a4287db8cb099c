// Package search implements the multi-resolution Pareto search: solution
// extension under a switching policy, dominance filtering, duplicate
// removal, overshoot bisection, and the stride-halving driver that ties
// them together.
package search

import (
	"errors"
	"fmt"

	"github.com/STRATEGUS-HE2022/flexman/internal/core"
)

// Algorithm selects the search variant.
type Algorithm int

const (
	// Exhaustive explores every switching sequence, pruned only by strict
	// Pareto dominance.
	Exhaustive Algorithm = iota
	// Heuristic additionally prunes partial solutions against each other
	// by probable dominance, trading completeness for speed.
	Heuristic
	// SingleMachine forbids mode switching: each seed extends only its own
	// mode.
	SingleMachine
)

func (a Algorithm) String() string {
	switch a {
	case Exhaustive:
		return "exhaustive"
	case Heuristic:
		return "heuristic"
	case SingleMachine:
		return "single-machine"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps a CLI name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "exhaustive":
		return Exhaustive, nil
	case "heuristic":
		return Heuristic, nil
	case "single-machine", "single":
		return SingleMachine, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q", name)
	}
}

// Switching selects how extension may change modes between iterations.
type Switching int

const (
	// SwitchNone keeps extending the partial's current tail mode.
	SwitchNone Switching = iota
	// SwitchIncreasing switches only to modes with an ID >= the tail mode.
	SwitchIncreasing
	// SwitchFree switches to any mode.
	SwitchFree
)

func (s Switching) String() string {
	switch s {
	case SwitchNone:
		return "none"
	case SwitchIncreasing:
		return "increasing"
	case SwitchFree:
		return "free"
	default:
		return fmt.Sprintf("Switching(%d)", int(s))
	}
}

var (
	errNilManager  = errors.New("manager must not be nil")
	errNoModes     = errors.New("modes must not be empty")
	errZeroSteps   = errors.New("steps must be greater than 0")
	errZeroIters   = errors.New("iterations must be greater than 0")
	errAliasedSets = errors.New("candidates and reference must be distinct collections")
)

func validate[S any, M core.Mode, R any](mgr core.Manager[S, M, R], modes []M, steps int) error {
	if mgr == nil {
		return errNilManager
	}
	if len(modes) == 0 {
		return errNoModes
	}
	if steps <= 0 {
		return errZeroSteps
	}
	return nil
}

// cloneSet copies a slice of solutions into a fresh backing array. Element
// sequences are shared: filters never mutate solutions in place.
func cloneSet[S, R any](set []core.Solution[S, R]) []core.Solution[S, R] {
	out := make([]core.Solution[S, R], len(set))
	copy(out, set)
	return out
}
