// Package linear binds the flexman core to discrete linear time-invariant
// plants. A mode applies one step of x' = A*x + B*u with a fixed input u
// and a constant power draw; resources accumulate energy and time, and
// completion is measured on a tracked state component.
package linear

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/STRATEGUS-HE2022/flexman/internal/core"
)

// State is the plant state vector.
type State []float64

// Clone returns an independent copy of the state.
func (s State) Clone() State {
	out := make(State, len(s))
	copy(out, s)
	return out
}

// Resources tracks the cost of driving the plant.
type Resources struct {
	Energy float64 `json:"energy"`
	Time   float64 `json:"time"`
}

func (r Resources) String() string {
	return fmt.Sprintf("(%6.3f,%8.3f)", r.Time, r.Energy)
}

// TotalCost is the default scalarization used by the PSO refiner.
func TotalCost(r Resources) float64 { return r.Energy + r.Time }

// Mode is one discrete-time actuation mode of the plant.
type Mode struct {
	ID core.ModeID `json:"id"`
	// A and B are the discrete state-space matrices.
	A *mat.Dense `json:"-"`
	B *mat.Dense `json:"-"`
	// Input is the fixed input vector u applied while the mode is active.
	Input []float64 `json:"input"`
	// PowerDraw is the energy consumed per second of actuation.
	PowerDraw float64 `json:"power_draw"`
}

// ModeID implements core.Mode.
func (m Mode) ModeID() core.ModeID { return m.ID }

// NewMode builds a mode from row-major matrix data.
func NewMode(id core.ModeID, dim int, a []float64, b []float64, input []float64, powerDraw float64) Mode {
	return Mode{
		ID:        id,
		A:         mat.NewDense(dim, dim, a),
		B:         mat.NewDense(dim, len(input), b),
		Input:     input,
		PowerDraw: powerDraw,
	}
}

// VelocityMode builds a 1-D integrator mode: x advances by velocity*dt per
// step.
func VelocityMode(id core.ModeID, velocity, powerDraw, dt float64) Mode {
	return NewMode(id, 1, []float64{1}, []float64{dt}, []float64{velocity}, powerDraw)
}

// Aliases for the core types instantiated at the linear plant.
type (
	Solution   = core.Solution[State, Resources]
	Front      = core.ParetoFront[State, Resources]
	Result     = core.Result[State, Resources]
	Simulation = core.Simulation[State, Resources]
	Settings   = core.Settings[State]
)

// PowerFunc overrides the per-mode constant power draw with a
// state-dependent model.
type PowerFunc func(x State, u []float64) float64

// Manager implements the core manager contract for linear plants.
type Manager struct {
	core.Settings[State]

	// TrackIndex selects the state component measured against the target.
	TrackIndex int
	// Power, when set, replaces Mode.PowerDraw.
	Power PowerFunc
}

// NewManager returns a manager for a plant moving from initial to target.
func NewManager(initial, target State, timeDelta, timeMax, threshold float64) *Manager {
	return &Manager{
		Settings: core.Settings[State]{
			InitialState: initial,
			TargetState:  target,
			TimeDelta:    timeDelta,
			TimeMax:      timeMax,
			Threshold:    threshold,
		},
	}
}

// Advance applies one simulation step of mode.
func (m *Manager) Advance(sol *Solution, mode Mode) {
	n := len(sol.State)
	x := mat.NewVecDense(n, []float64(sol.State))
	u := mat.NewVecDense(len(mode.Input), mode.Input)

	var ax, bu mat.VecDense
	ax.MulVec(mode.A, x)
	bu.MulVec(mode.B, u)

	next := make(State, n)
	for i := range next {
		next[i] = ax.AtVec(i) + bu.AtVec(i)
	}
	sol.State = next
	sol.Distance = m.Distance(sol)

	power := mode.PowerDraw
	if m.Power != nil {
		power = m.Power(sol.State, mode.Input)
	}
	sol.Resources.Energy += power * m.TimeDelta
	sol.Resources.Time += m.TimeDelta
}

// Distance is the signed gap on the tracked component: positive while the
// target has not been reached.
func (m *Manager) Distance(sol *Solution) float64 {
	return m.TargetState[m.TrackIndex] - sol.State[m.TrackIndex]
}

// IsComplete reports whether the tracked component reached the target.
func (m *Manager) IsComplete(sol *Solution) bool {
	return m.Distance(sol) < m.Threshold
}

// IsStrictlyBetter is the Pareto dominance used by exhaustive pruning.
func (m *Manager) IsStrictlyBetter(a, b *Solution) bool {
	if core.SequenceEqual(a.Sequence, b.Sequence) {
		return false
	}
	return m.IsComplete(a) &&
		lessEqual(a.Resources, b.Resources) &&
		!equal(a.Resources, b.Resources)
}

// IsProbablyBetter is the relaxed dominance used by the heuristic prune.
func (m *Manager) IsProbablyBetter(a, b *Solution) bool {
	if core.SequenceEqual(a.Sequence, b.Sequence) {
		return false
	}
	ad, bd := m.Distance(a), m.Distance(b)
	if fle(ad, bd) && lessEqual(a.Resources, b.Resources) {
		return (ad < bd && !feq(ad, bd)) || less(a.Resources, b.Resources)
	}
	return false
}

// Equal reports the lossy solution equality used for duplicate removal:
// identical sequences or equal resources.
func (m *Manager) Equal(a, b *Solution) bool {
	return core.SequenceEqual(a.Sequence, b.Sequence) || equal(a.Resources, b.Resources)
}

// InterpolateState interpolates linearly between two states.
func (m *Manager) InterpolateState(s0, s1 State, rel float64) State {
	out := make(State, len(s0))
	for i := range out {
		out[i] = s0[i] + rel*(s1[i]-s0[i])
	}
	return out
}

// InterpolateResources interpolates linearly between two resource vectors.
func (m *Manager) InterpolateResources(r0, r1 Resources, rel float64) Resources {
	return Resources{
		Energy: r0.Energy + rel*(r1.Energy-r0.Energy),
		Time:   r0.Time + rel*(r1.Time-r0.Time),
	}
}
