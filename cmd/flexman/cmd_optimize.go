package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/STRATEGUS-HE2022/flexman/internal/linear"
	"github.com/STRATEGUS-HE2022/flexman/internal/pso"
	"github.com/STRATEGUS-HE2022/flexman/internal/serialize"
)

var optimizeFlags struct {
	scenario  string
	input     string
	output    string
	particles int
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Refine a search result with particle swarm optimization",
	Long: `Optimize replays the solutions of a previous run through the PSO
refiner, perturbing execution counts to further reduce total cost.

Usage:
  flexman optimize --scenario toy.yaml --input run.json -o refined.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, modes, params, err := loadScenario(optimizeFlags.scenario)
		if err != nil {
			return err
		}
		if optimizeFlags.particles > 0 {
			params.NumParticles = optimizeFlags.particles
		}

		run, err := serialize.LoadRun[linear.State, linear.Resources](optimizeFlags.input)
		if err != nil {
			return err
		}

		refined := pso.OptimizeResult(mgr, params, modes, linear.TotalCost, run.Result)

		out := serialize.RunRecord[linear.State, linear.Resources]{
			RunID:     serialize.NewRunID(),
			Algorithm: run.Algorithm + "+pso",
			Scenario:  run.Scenario,
			Result:    refined,
		}
		if err := serialize.SaveRun(optimizeFlags.output, out); err != nil {
			return err
		}

		fmt.Printf("run %s: refined %d front(s), written to %s\n",
			out.RunID, len(refined.ParetoFronts), optimizeFlags.output)
		printResult(&refined)
		return nil
	},
}

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeFlags.scenario, "scenario", "s", "", "scenario YAML file")
	optimizeCmd.Flags().StringVarP(&optimizeFlags.input, "input", "i", "", "run record JSON to refine")
	optimizeCmd.Flags().StringVarP(&optimizeFlags.output, "output", "o", "refined.json", "output JSON file")
	optimizeCmd.Flags().IntVar(&optimizeFlags.particles, "particles", 0, "override the particle count")
	_ = optimizeCmd.MarkFlagRequired("scenario")
	_ = optimizeCmd.MarkFlagRequired("input")
}
