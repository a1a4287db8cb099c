package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/STRATEGUS-HE2022/flexman/internal/core"
	"github.com/STRATEGUS-HE2022/flexman/internal/linear"
	"github.com/STRATEGUS-HE2022/flexman/internal/pso"
)

// scenarioFile is the YAML description of a linear search problem.
type scenarioFile struct {
	Name         string     `yaml:"name"`
	InitialState []float64  `yaml:"initial_state"`
	TargetState  []float64  `yaml:"target_state"`
	TimeDelta    float64    `yaml:"time_delta"`
	TimeMax      float64    `yaml:"time_max"`
	Threshold    float64    `yaml:"threshold"`
	TimeoutMs    int        `yaml:"timeout_ms"`
	Interactive  bool       `yaml:"interactive"`
	TrackIndex   int        `yaml:"track_index"`
	Modes        []modeSpec `yaml:"modes"`

	PSO *pso.Parameters `yaml:"pso"`
}

// modeSpec is one actuation mode: discrete state-space matrices, the
// fixed input applied while the mode is active, and its power draw.
type modeSpec struct {
	ID        uint        `yaml:"id"`
	A         [][]float64 `yaml:"a"`
	B         [][]float64 `yaml:"b"`
	Input     []float64   `yaml:"input"`
	PowerDraw float64     `yaml:"power_draw"`
}

func flatten(rows [][]float64, wantRows, wantCols int, name string, mode uint) ([]float64, error) {
	if len(rows) != wantRows {
		return nil, fmt.Errorf("mode %d: matrix %s has %d rows, want %d", mode, name, len(rows), wantRows)
	}
	flat := make([]float64, 0, wantRows*wantCols)
	for _, row := range rows {
		if len(row) != wantCols {
			return nil, fmt.Errorf("mode %d: matrix %s has a row of %d columns, want %d", mode, name, len(row), wantCols)
		}
		flat = append(flat, row...)
	}
	return flat, nil
}

// loadScenario parses a scenario file into a linear manager, its mode set
// and the PSO parameters (defaults when the file has no pso section).
func loadScenario(path string) (*linear.Manager, []linear.Mode, pso.Parameters, error) {
	params := pso.DefaultParameters()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, params, fmt.Errorf("read scenario: %w", err)
	}
	var sc scenarioFile
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, nil, params, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	dim := len(sc.InitialState)
	switch {
	case dim == 0:
		return nil, nil, params, fmt.Errorf("scenario %s: initial_state is empty", path)
	case len(sc.TargetState) != dim:
		return nil, nil, params, fmt.Errorf("scenario %s: target_state has %d components, want %d", path, len(sc.TargetState), dim)
	case sc.TimeDelta <= 0:
		return nil, nil, params, fmt.Errorf("scenario %s: time_delta must be positive", path)
	case sc.TimeMax <= 0:
		return nil, nil, params, fmt.Errorf("scenario %s: time_max must be positive", path)
	case len(sc.Modes) == 0:
		return nil, nil, params, fmt.Errorf("scenario %s: no modes", path)
	case sc.TrackIndex < 0 || sc.TrackIndex >= dim:
		return nil, nil, params, fmt.Errorf("scenario %s: track_index %d out of range", path, sc.TrackIndex)
	}

	modes := make([]linear.Mode, 0, len(sc.Modes))
	for i, ms := range sc.Modes {
		if int(ms.ID) != i {
			return nil, nil, params, fmt.Errorf("scenario %s: mode at position %d carries id %d; ids must be dense", path, i, ms.ID)
		}
		if len(ms.Input) == 0 {
			return nil, nil, params, fmt.Errorf("scenario %s: mode %d has no input vector", path, ms.ID)
		}
		a, err := flatten(ms.A, dim, dim, "a", ms.ID)
		if err != nil {
			return nil, nil, params, err
		}
		b, err := flatten(ms.B, dim, len(ms.Input), "b", ms.ID)
		if err != nil {
			return nil, nil, params, err
		}
		modes = append(modes, linear.NewMode(core.ModeID(ms.ID), dim, a, b, ms.Input, ms.PowerDraw))
	}

	mgr := linear.NewManager(linear.State(sc.InitialState), linear.State(sc.TargetState),
		sc.TimeDelta, sc.TimeMax, sc.Threshold)
	mgr.TrackIndex = sc.TrackIndex
	mgr.Timeout = time.Duration(sc.TimeoutMs) * time.Millisecond
	mgr.Interactive = sc.Interactive

	if sc.PSO != nil {
		params = *sc.PSO
	}
	return mgr, modes, params, nil
}
