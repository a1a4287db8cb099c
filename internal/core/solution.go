package core

import (
	"fmt"
	"math"
)

// Solution is a trajectory prefix: the run-length sequence of mode
// executions applied so far, the state it reached, the resources it
// consumed and the scalar distance to the target.
//
// State and Resources are opaque to the core; the Manager defines their
// arithmetic. By convention Advance replaces State rather than mutating it
// in place, so solutions that share a state value stay independent.
type Solution[S, R any] struct {
	Sequence  []ModeExecution `json:"sequence"`
	State     S               `json:"state"`
	Resources R               `json:"resources"`
	Distance  float64         `json:"-"`
}

// NewSolution returns a solution positioned at initial, with an empty
// sequence, zero resources and an infinite distance to target.
func NewSolution[S, R any](initial S) Solution[S, R] {
	return Solution[S, R]{
		State:    initial,
		Distance: math.Inf(1),
	}
}

// Clone returns a copy of the solution with an independent sequence.
func (s *Solution[S, R]) Clone() Solution[S, R] {
	out := *s
	out.Sequence = CloneSequence(s.Sequence)
	return out
}

// TailMode returns the mode of the last record in the sequence.
// Solutions handled by the search always carry at least the seed record.
func (s *Solution[S, R]) TailMode() ModeID {
	return s.Sequence[len(s.Sequence)-1].Mode
}

// Steps returns the total number of simulation steps in the sequence.
func (s *Solution[S, R]) Steps() int {
	total := 0
	for _, e := range s.Sequence {
		total += e.Times
	}
	return total
}

func (s *Solution[S, R]) String() string {
	return fmt.Sprintf("Solution{distance: %7.3f, resources: %v, sequence: %s}",
		s.Distance, s.Resources, FormatSequence(s.Sequence))
}
