/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gmofishsauce/formasm/pkg/asm"
)

var dumpListing bool

// asmCmd represents the asm command
var asmCmd = &cobra.Command{
	Use:   "asm sourceFile outputFile",
	Short: "Assemble a source file into a .formexe executable",
	Long: `Asm reads one source file and writes the executable to
outputFile with the .formexe suffix appended. The source starts with
an optional macro section, each macro opened by 🔓 name and closed by 🔒,
followed by the 💬 marker and the code.

Nothing is written if the source contains any error. With --dump (or
dump = true in the [asm] section of the config file) the symbol table
and a listing of the encoded instructions are printed.
`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := asm.AssembleFile(args[0])
		if err != nil {
			return err
		}
		name, err := asm.WriteArtifact(args[1], prog)
		if err != nil {
			return err
		}
		if dumpListing || cfg.Asm.Dump {
			asm.Dump(cmd.OutOrStdout(), prog)
		}
		logrus.Infof("%s: %d instructions", name, len(prog.Words))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(asmCmd)
	asmCmd.Flags().BoolVarP(&dumpListing, "dump", "d", false, "print the symbol table and a binary listing")
}
