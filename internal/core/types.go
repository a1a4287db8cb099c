// Package core defines the data model shared by the flexman search,
// simulation and refinement layers: modes, run-length mode sequences,
// solutions, Pareto fronts and results.
package core

import (
	"fmt"
	"strings"
)

// ModeID identifies a mode within a mode set. IDs are dense: a mode set of
// size n uses IDs 0..n-1, so an ID doubles as an index into the set.
type ModeID uint

// Mode is implemented by problem-specific mode descriptors. The core never
// inspects a mode beyond its identifier; dynamics stay inside the Manager.
type Mode interface {
	ModeID() ModeID
}

// ModeExecution is a run-length record: Mode applied Times consecutive steps.
type ModeExecution struct {
	Mode  ModeID `json:"mode"`
	Times int    `json:"times"`
}

func (e ModeExecution) String() string {
	return fmt.Sprintf("%2d*%-3d", e.Mode, e.Times)
}

// AppendExecution appends one application of mode to a run-length sequence.
// If the tail record already carries the same mode its count is incremented,
// keeping the sequence canonical: no two adjacent records share a mode.
// Incrementing the tail is the only authorized mutation of a sequence.
func AppendExecution(seq []ModeExecution, mode ModeID) []ModeExecution {
	if n := len(seq); n > 0 && seq[n-1].Mode == mode {
		seq[n-1].Times++
		return seq
	}
	return append(seq, ModeExecution{Mode: mode, Times: 1})
}

// CloneSequence returns an independent copy of a run-length sequence.
func CloneSequence(seq []ModeExecution) []ModeExecution {
	if seq == nil {
		return nil
	}
	out := make([]ModeExecution, len(seq))
	copy(out, seq)
	return out
}

// SequenceEqual reports whether two sequences hold identical records.
func SequenceEqual(a, b []ModeExecution) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FormatSequence renders a sequence as "[  0*5    1*3   ]" for logs.
func FormatSequence(seq []ModeExecution) string {
	var sb strings.Builder
	sb.WriteString("[ ")
	for _, e := range seq {
		sb.WriteString(e.String())
		sb.WriteByte(' ')
	}
	sb.WriteString("]")
	return sb.String()
}
