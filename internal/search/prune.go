package search

import (
	"log/slog"

	"github.com/STRATEGUS-HE2022/flexman/internal/core"
)

// Comparer is the slice of the manager contract consumed by dominance
// filtering, duplicate removal and completion partitioning. Filtering
// never simulates, so it does not depend on the mode type.
type Comparer[S, R any] interface {
	IsComplete(sol *core.Solution[S, R]) bool
	IsStrictlyBetter(a, b *core.Solution[S, R]) bool
	IsProbablyBetter(a, b *core.Solution[S, R]) bool
	Equal(a, b *core.Solution[S, R]) bool
}

// dominates returns the dominance predicate for the algorithm: probable
// dominance for Heuristic, strict Pareto dominance otherwise.
func dominates[S, R any](alg Algorithm, cmp Comparer[S, R]) func(a, b *core.Solution[S, R]) bool {
	if alg == Heuristic {
		return cmp.IsProbablyBetter
	}
	return cmp.IsStrictlyBetter
}

// RemoveDominated filters out every candidate dominated by some solution
// in reference. The two collections must be distinct: pruning a set
// against itself goes through RemoveDominatedWithin, which skips the
// identity comparison.
func RemoveDominated[S, R any](
	alg Algorithm,
	cmp Comparer[S, R],
	candidates, reference []core.Solution[S, R],
) ([]core.Solution[S, R], error) {
	if cmp == nil {
		return nil, errNilManager
	}
	if len(candidates) > 0 && len(reference) > 0 && &candidates[0] == &reference[0] {
		return nil, errAliasedSets
	}
	if len(reference) == 0 {
		return candidates, nil
	}

	slog.Debug("removing dominated solutions", "candidates", len(candidates), "reference", len(reference))

	better := dominates(alg, cmp)
	kept := candidates[:0:0]
	for i := range candidates {
		dominated := false
		for j := range reference {
			if better(&reference[j], &candidates[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, candidates[i])
		}
	}

	slog.Debug("removed dominated solutions", "kept", len(kept))
	return kept, nil
}

// RemoveDominatedWithin filters out every solution dominated by another
// member of the same set. A solution never dominates itself.
func RemoveDominatedWithin[S, R any](
	alg Algorithm,
	cmp Comparer[S, R],
	set []core.Solution[S, R],
) []core.Solution[S, R] {
	if len(set) == 0 {
		return set
	}

	better := dominates(alg, cmp)
	kept := set[:0:0]
	for i := range set {
		dominated := false
		for j := range set {
			if i == j {
				continue
			}
			if better(&set[j], &set[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, set[i])
		}
	}
	return kept
}

// RemoveDuplicates drops solutions that compare equal to an earlier one
// under the manager's lossy Equal predicate (identical sequence OR equal
// resources). Equal is not transitive, so the set is built greedily in
// input order rather than by sorting.
func RemoveDuplicates[S, R any](
	cmp Comparer[S, R],
	set []core.Solution[S, R],
) []core.Solution[S, R] {
	kept := set[:0:0]
	for i := range set {
		dup := false
		for j := range kept {
			if cmp.Equal(&kept[j], &set[i]) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, set[i])
		}
	}
	return kept
}

// SplitCompletePartial partitions a set into complete and partial
// solutions.
func SplitCompletePartial[S, R any](
	cmp Comparer[S, R],
	set []core.Solution[S, R],
) (complete, partial []core.Solution[S, R]) {
	for i := range set {
		if cmp.IsComplete(&set[i]) {
			complete = append(complete, set[i])
		} else {
			partial = append(partial, set[i])
		}
	}
	return complete, partial
}
