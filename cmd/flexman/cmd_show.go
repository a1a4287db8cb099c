package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/STRATEGUS-HE2022/flexman/internal/linear"
	"github.com/STRATEGUS-HE2022/flexman/internal/serialize"
)

var showCmd = &cobra.Command{
	Use:   "show <run.json>",
	Short: "Print the fronts of a saved run record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := serialize.LoadRun[linear.State, linear.Resources](args[0])
		if err != nil {
			return err
		}
		fmt.Printf("run %s (%s): %d front(s), total runtime %.3fs\n",
			run.RunID, run.Algorithm, len(run.Result.ParetoFronts), run.Result.TotalRuntime())
		printResult(&run.Result)
		return nil
	},
}
