/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gmofishsauce/formasm/pkg/config"
)

var (
	cfgFile  string
	logLevel string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "formasm",
	Short: "Assembler and tools for the form 8-bit instruction set",
	Long: `Formasm assembles emoji-mnemonic source for the form 8-bit
instruction set into a flat binary executable (a .formexe file), and
provides tools to run, disassemble and download those executables.`,

	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		level := c.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		logrus.SetLevel(lvl)
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		cfg = c
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level: panic, fatal, error, warn, info, debug or trace")
}
