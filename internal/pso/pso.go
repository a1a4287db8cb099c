// Package pso refines search solutions with particle swarm optimization
// over the execution counts of their mode sequences. The swarm perturbs
// the counts, evaluates each candidate by replaying it through the
// simulator, and follows personal and global bests toward cheaper
// complete solutions.
package pso

import (
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/STRATEGUS-HE2022/flexman/internal/core"
	"github.com/STRATEGUS-HE2022/flexman/internal/sim"
)

// Parameters tunes the swarm.
type Parameters struct {
	NumParticles  int     `json:"num_particles" yaml:"num_particles"`
	MaxIterations int     `json:"max_iterations" yaml:"max_iterations"`
	Inertia       float64 `json:"inertia" yaml:"inertia"`
	Cognitive     float64 `json:"cognitive" yaml:"cognitive"`
	Social        float64 `json:"social" yaml:"social"`
	// Seed makes a run reproducible; 0 seeds from the clock.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// DefaultParameters returns the stock swarm configuration.
func DefaultParameters() Parameters {
	return Parameters{
		NumParticles:  100,
		MaxIterations: 50,
		Inertia:       0.2,
		Cognitive:     0.4,
		Social:        0.4,
	}
}

// Scalarizer collapses a resource vector into the scalar fitness the swarm
// minimizes.
type Scalarizer[R any] func(R) float64

// OptimizeSolution refines one solution. Each particle starts as a copy of
// the seed sequence with jittered execution counts; fitness is the
// scalarized resources of the replayed sequence, with incomplete replays
// penalized to +Inf. The refiner never reports errors: a swarm that finds
// nothing better simply converges back to the seed.
func OptimizeSolution[S any, M core.Mode, R any](
	mgr core.Manager[S, M, R],
	params Parameters,
	modes []M,
	fitness Scalarizer[R],
	seed core.Solution[S, R],
) core.Solution[S, R] {
	rngSeed := params.Seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	slots := len(seed.Sequence)
	particles := make([][]core.ModeExecution, params.NumParticles)
	personalBest := make([][]core.ModeExecution, params.NumParticles)
	personalFit := make([]float64, params.NumParticles)
	velocities := make([][]float64, params.NumParticles)

	globalFit := fitness(seed.Resources)

	for i := range particles {
		particles[i] = core.CloneSequence(seed.Sequence)
		personalBest[i] = core.CloneSequence(seed.Sequence)
		personalFit[i] = math.Inf(1)
		velocities[i] = make([]float64, slots)

		// Jitter the execution counts while retaining the structure.
		for j := range particles[i] {
			jitter := 1.0 + 9.0*rng.Float64()
			particles[i][j].Times = int(math.Max(float64(particles[i][j].Times)+jitter-5.0, 1))
		}
	}
	globalBest := core.CloneSequence(seed.Sequence)

	for iter := 0; iter < params.MaxIterations; iter++ {
		valid := 0
		for i := range particles {
			sol := sim.Replay(mgr, modes, particles[i])
			fit := math.Inf(1)
			if mgr.IsComplete(&sol) {
				fit = fitness(sol.Resources)
				valid++
			}
			if fit < personalFit[i] {
				personalBest[i] = core.CloneSequence(particles[i])
				personalFit[i] = fit
			}
			if fit < globalFit {
				globalBest = core.CloneSequence(particles[i])
				globalFit = fit
			}
		}

		for i := range particles {
			for j := range particles[i] {
				v := params.Inertia*velocities[i][j] +
					params.Cognitive*(float64(personalBest[i][j].Times)-float64(particles[i][j].Times)) +
					params.Social*(float64(globalBest[j].Times)-float64(particles[i][j].Times))
				velocities[i][j] = v
				// Counts stay in [1, inf): a slot never drops out of the
				// sequence.
				particles[i][j].Times = int(math.Max(math.Round(float64(particles[i][j].Times)+v), 1))
			}
		}

		slog.Debug("pso iteration",
			"iteration", iter+1,
			"max_iterations", params.MaxIterations,
			"best_fitness", globalFit,
			"valid", valid,
			"particles", params.NumParticles)
	}

	return sim.Replay(mgr, modes, globalBest)
}

// OptimizeParetoFront refines every solution of a front, preserving the
// front metadata.
func OptimizeParetoFront[S any, M core.Mode, R any](
	mgr core.Manager[S, M, R],
	params Parameters,
	modes []M,
	fitness Scalarizer[R],
	front core.ParetoFront[S, R],
) core.ParetoFront[S, R] {
	optimized := core.ParetoFront[S, R]{
		Solutions:         make([]core.Solution[S, R], 0, len(front.Solutions)),
		StepLength:        front.StepLength,
		StepsPerIteration: front.StepsPerIteration,
		Iteration:         front.Iteration,
		Runtime:           front.Runtime,
	}
	for i := range front.Solutions {
		slog.Info("optimizing solution", "index", i+1, "total", len(front.Solutions))
		optimized.Solutions = append(optimized.Solutions,
			OptimizeSolution(mgr, params, modes, fitness, front.Solutions[i]))
	}
	return optimized
}

// OptimizeResult refines every front of a result.
func OptimizeResult[S any, M core.Mode, R any](
	mgr core.Manager[S, M, R],
	params Parameters,
	modes []M,
	fitness Scalarizer[R],
	result core.Result[S, R],
) core.Result[S, R] {
	optimized := core.Result[S, R]{
		ParetoFronts: make([]core.ParetoFront[S, R], 0, len(result.ParetoFronts)),
	}
	for i := range result.ParetoFronts {
		front := &result.ParetoFronts[i]
		slog.Info("optimizing pareto front",
			"step_length", front.StepLength, "index", i+1, "total", len(result.ParetoFronts))
		optimized.ParetoFronts = append(optimized.ParetoFronts,
			OptimizeParetoFront(mgr, params, modes, fitness, *front))
	}
	return optimized
}
