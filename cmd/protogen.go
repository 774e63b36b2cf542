/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gmofishsauce/formasm/pkg/protogen"
)

// protogenCmd represents the protogen command
var protogenCmd = &cobra.Command{
	Use:   "protogen",
	Short: "Generate download protocol definitions for the loader firmware",
	Long: `Protogen writes a C header defining the download protocol
constants used by "formasm download". The file is generated in "."
and must be copied into the loader firmware sources before rebuilding
the firmware.`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := protogen.Generate(); err != nil {
			return err
		}
		logrus.Infof("wrote %s", protogen.HeaderFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(protogenCmd)
}
