// Package main generates deterministic scenario families for flexman
// benchmarks: 1-D plants with mode sets spanning slow/cheap to fast/
// expensive actuation.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ScenarioParams defines parameters for scenario generation.
type ScenarioParams struct {
	Seed      int64   `yaml:"seed"`
	NumModes  int     `yaml:"num_modes"`
	Target    float64 `yaml:"target"`
	TimeDelta float64 `yaml:"time_delta"`
	TimeMax   float64 `yaml:"time_max"`
	Threshold float64 `yaml:"threshold"`
}

// Mode mirrors the scenario file schema of cmd/flexman.
type Mode struct {
	ID        uint        `yaml:"id"`
	A         [][]float64 `yaml:"a"`
	B         [][]float64 `yaml:"b"`
	Input     []float64   `yaml:"input"`
	PowerDraw float64     `yaml:"power_draw"`
}

// Scenario is a complete generated problem.
type Scenario struct {
	Name         string         `yaml:"name"`
	Params       ScenarioParams `yaml:"params"`
	InitialState []float64      `yaml:"initial_state"`
	TargetState  []float64      `yaml:"target_state"`
	TimeDelta    float64        `yaml:"time_delta"`
	TimeMax      float64        `yaml:"time_max"`
	Threshold    float64        `yaml:"threshold"`
	TrackIndex   int            `yaml:"track_index"`
	Modes        []Mode         `yaml:"modes"`
}

func generate(params ScenarioParams, name string) Scenario {
	rng := rand.New(rand.NewSource(params.Seed))

	sc := Scenario{
		Name:         name,
		Params:       params,
		InitialState: []float64{0},
		TargetState:  []float64{params.Target},
		TimeDelta:    params.TimeDelta,
		TimeMax:      params.TimeMax,
		Threshold:    params.Threshold,
	}

	// Velocities grow geometrically; power grows faster, so no mode
	// dominates the others outright.
	velocity := params.Target / params.TimeMax * 2
	for i := 0; i < params.NumModes; i++ {
		power := velocity * velocity * (1 + rng.Float64())
		sc.Modes = append(sc.Modes, Mode{
			ID:        uint(i),
			A:         [][]float64{{1}},
			B:         [][]float64{{params.TimeDelta}},
			Input:     []float64{velocity},
			PowerDraw: power,
		})
		velocity *= 2
	}
	return sc
}

func main() {
	outDir := flag.String("out", "scenarios", "output directory")
	count := flag.Int("count", 5, "number of scenarios")
	modes := flag.Int("modes", 3, "modes per scenario")
	seed := flag.Int64("seed", 42, "base random seed")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for i := 0; i < *count; i++ {
		params := ScenarioParams{
			Seed:      *seed + int64(i),
			NumModes:  *modes,
			Target:    1.0,
			TimeDelta: 0.1,
			TimeMax:   5.0,
			Threshold: 0.01,
		}
		name := fmt.Sprintf("linear-%dm-%02d", *modes, i)
		sc := generate(params, name)

		data, err := yaml.Marshal(sc)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		path := filepath.Join(*outDir, name+".yaml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s (%d modes)\n", path, len(sc.Modes))
	}
}
