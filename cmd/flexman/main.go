// Command flexman searches mode-switching control problems for Pareto
// optimal execution sequences, simulates single modes, and refines
// results with particle swarm optimization.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "flexman",
	Short: "Multi-objective search for mode-switching control problems",
	Long: "Flexman computes Pareto fronts of mode-execution sequences that drive\n" +
		"a dynamical system from an initial to a target state while trading off\n" +
		"resource costs such as energy and time.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
