/*
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gmofishsauce/formasm/pkg/sim"
)

var maxSteps int

// simCmd represents the sim command
var simCmd = &cobra.Command{
	Use:   "sim binFile",
	Short: "The form execution engine",
	Long: `Sim loads a .formexe file and runs it. The print syscall
writes R1 to standard output; the read syscall reads a value into R1
from standard input. The run ends at the terminate syscall or when
execution falls off the end of the program.
`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := cfg.Sim.MaxSteps
		if cmd.Flags().Changed("max-steps") {
			limit = maxSteps
		}
		return sim.Simulate(args[0], limit)
	},
}

func init() {
	rootCmd.AddCommand(simCmd)
	simCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "stop after this many instructions (0: no limit)")
}
