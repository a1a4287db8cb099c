package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/STRATEGUS-HE2022/flexman/internal/linear"
	"github.com/STRATEGUS-HE2022/flexman/internal/search"
	"github.com/STRATEGUS-HE2022/flexman/internal/serialize"
)

var searchFlags struct {
	scenario    string
	algorithm   string
	iterations  int
	output      string
	interactive bool
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search a scenario for Pareto-optimal mode sequences",
	Long: `Search runs the multi-resolution Pareto search on a scenario file and
writes the resulting fronts as a JSON run record.

Usage:
  flexman search --scenario toy.yaml --algorithm exhaustive --iterations 4
  flexman search --scenario toy.yaml --algorithm single-machine -o run.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, err := search.ParseAlgorithm(searchFlags.algorithm)
		if err != nil {
			return err
		}
		mgr, modes, _, err := loadScenario(searchFlags.scenario)
		if err != nil {
			return err
		}
		if searchFlags.interactive {
			mgr.Interactive = true
		}

		result, err := search.PerformSearch[linear.State, linear.Mode, linear.Resources](
			alg, mgr, modes, searchFlags.iterations)
		if err != nil {
			return err
		}

		run := serialize.RunRecord[linear.State, linear.Resources]{
			RunID:     serialize.NewRunID(),
			Algorithm: alg.String(),
			Scenario:  serialize.ManagerView[linear.State, linear.Mode, linear.Resources](mgr),
			Result:    result,
		}
		if err := serialize.SaveRun(searchFlags.output, run); err != nil {
			return err
		}

		fmt.Printf("run %s: %d front(s), total runtime %.3fs, written to %s\n",
			run.RunID, len(result.ParetoFronts), result.TotalRuntime(), searchFlags.output)
		printResult(&result)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchFlags.scenario, "scenario", "s", "", "scenario YAML file")
	searchCmd.Flags().StringVarP(&searchFlags.algorithm, "algorithm", "a", "exhaustive", "exhaustive, heuristic or single-machine")
	searchCmd.Flags().IntVarP(&searchFlags.iterations, "iterations", "n", 5, "stride levels to search")
	searchCmd.Flags().StringVarP(&searchFlags.output, "output", "o", "result.json", "output JSON file")
	searchCmd.Flags().BoolVar(&searchFlags.interactive, "interactive", false, "pause after each front")
	_ = searchCmd.MarkFlagRequired("scenario")
}

func printResult(result *linear.Result) {
	for i := range result.ParetoFronts {
		front := &result.ParetoFronts[i]
		fmt.Printf("  %s\n", front.String())
		for j := range front.Solutions {
			fmt.Printf("    %s\n", front.Solutions[j].String())
		}
	}
}
