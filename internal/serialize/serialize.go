// Package serialize persists search artifacts as JSON: results,
// simulation traces and the scenario view of a manager. The encoding
// round-trips structurally.
package serialize

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/STRATEGUS-HE2022/flexman/internal/core"
)

// ScenarioView is the persisted projection of a manager's settings.
type ScenarioView[S any] struct {
	InitialState S       `json:"initial_state"`
	TargetState  S       `json:"target_state"`
	TimeDelta    float64 `json:"time_delta"`
	TimeMax      float64 `json:"time_max"`
	Threshold    float64 `json:"threshold"`
	// Timeout is persisted in nanoseconds; zero means none.
	Timeout     int64 `json:"timeout"`
	Interactive bool  `json:"interactive"`
}

// ManagerView projects a manager's settings for persistence.
func ManagerView[S any, M core.Mode, R any](mgr core.Manager[S, M, R]) ScenarioView[S] {
	cfg := mgr.Config()
	return ScenarioView[S]{
		InitialState: cfg.InitialState,
		TargetState:  cfg.TargetState,
		TimeDelta:    cfg.TimeDelta,
		TimeMax:      cfg.TimeMax,
		Threshold:    cfg.Threshold,
		Timeout:      int64(cfg.Timeout),
		Interactive:  cfg.Interactive,
	}
}

// RunRecord wraps a persisted result with run metadata.
type RunRecord[S, R any] struct {
	RunID     string            `json:"run_id"`
	Algorithm string            `json:"algorithm"`
	Scenario  ScenarioView[S]   `json:"scenario"`
	Result    core.Result[S, R] `json:"result"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string { return uuid.NewString() }

func save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// SaveResult writes a result to path.
func SaveResult[S, R any](path string, result core.Result[S, R]) error {
	return save(path, result)
}

// LoadResult reads a result from path.
func LoadResult[S, R any](path string) (core.Result[S, R], error) {
	var result core.Result[S, R]
	err := load(path, &result)
	return result, err
}

// SaveRun writes a run record to path.
func SaveRun[S, R any](path string, run RunRecord[S, R]) error {
	return save(path, run)
}

// LoadRun reads a run record from path.
func LoadRun[S, R any](path string) (RunRecord[S, R], error) {
	var run RunRecord[S, R]
	err := load(path, &run)
	return run, err
}

// SaveSimulation writes a simulation trace to path.
func SaveSimulation[S, R any](path string, simulation core.Simulation[S, R]) error {
	return save(path, simulation)
}

// LoadSimulation reads a simulation trace from path.
func LoadSimulation[S, R any](path string) (core.Simulation[S, R], error) {
	var simulation core.Simulation[S, R]
	err := load(path, &simulation)
	return simulation, err
}
