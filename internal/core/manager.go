package core

import "time"

// Settings carries the problem parameters shared by every manager: the
// endpoints of the search, the simulation step, the completion threshold
// and the runtime limits.
type Settings[S any] struct {
	InitialState S             `json:"initial_state"`
	TargetState  S             `json:"target_state"`
	TimeDelta    float64       `json:"time_delta"`
	TimeMax      float64       `json:"time_max"`
	Threshold    float64       `json:"threshold"`
	Timeout      time.Duration `json:"timeout"` // <= 0 means no timeout
	Interactive  bool          `json:"interactive"`
}

// Config returns the settings themselves; embedding Settings in a concrete
// manager satisfies the accessor half of the Manager interface.
func (s *Settings[S]) Config() *Settings[S] { return s }

// Manager binds the core to a concrete problem. It owns the dynamics, the
// resource metric and the geometry; the search depends only on these
// callbacks.
//
// Contract notes:
//   - Advance applies one simulation step of mode to sol: it must replace
//     State, accumulate into Resources (componentwise non-decreasing) and
//     refresh Distance.
//   - Distance is signed and by convention positive while the target has
//     not been reached.
//   - IsStrictlyBetter is the Pareto dominance used by exhaustive pruning:
//     false whenever the sequences are identical, otherwise true iff a is
//     complete, a's resources are componentwise <= b's and not equal.
//   - IsProbablyBetter is the relaxed dominance used only by the heuristic
//     intra-partial prune: false on identical sequences, otherwise true iff
//     Distance(a) <= Distance(b) and a's resources <= b's with at least one
//     of the two strict.
//   - Equal is deliberately lossy: sequences identical OR resources equal.
//     It exists for duplicate removal, where two solutions of equal cost
//     are interchangeable even when their sequences differ.
//   - All floating-point comparisons behind these predicates must be
//     tolerance-based, not bitwise.
//   - Interpolate* are linear for rel in [0, 1].
type Manager[S any, M Mode, R any] interface {
	Config() *Settings[S]

	Advance(sol *Solution[S, R], mode M)
	Distance(sol *Solution[S, R]) float64
	IsComplete(sol *Solution[S, R]) bool

	IsStrictlyBetter(a, b *Solution[S, R]) bool
	IsProbablyBetter(a, b *Solution[S, R]) bool
	Equal(a, b *Solution[S, R]) bool

	InterpolateState(s0, s1 S, rel float64) S
	InterpolateResources(r0, r1 R, rel float64) R
}
