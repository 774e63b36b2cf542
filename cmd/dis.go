/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmofishsauce/formasm/pkg/dis"
)

// disCmd represents the dis command
var disCmd = &cobra.Command{
	Use:   "dis binFile",
	Short: "Disassemble a .formexe file",
	Long: `Dis prints one line per instruction of a .formexe file: the
program counter, the word in binary and the instruction in source form.
Jumps are shown as numeric displacements.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading executable: %w", err)
		}
		return dis.Disassemble(cmd.OutOrStdout(), code)
	},
}

func init() {
	rootCmd.AddCommand(disCmd)
}
