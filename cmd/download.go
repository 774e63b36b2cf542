/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmofishsauce/formasm/pkg/arduino"
	"github.com/gmofishsauce/formasm/pkg/host"
)

var device string

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download binFile",
	Short: "Send a .formexe file to the loader board",
	Long: `Download opens the serial line to the Arduino that loads form
programs, synchronizes with its firmware and transfers the executable.
Opening the port resets the board, so the command waits a few seconds
before talking to it. The device and baud rate come from the [download]
section of the config file; --device overrides the device.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading executable: %w", err)
		}
		dev := cfg.Download.Device
		if device != "" {
			dev = device
		}
		board, err := arduino.New(dev, cfg.Download.Baud)
		if err != nil {
			return err
		}
		defer board.Close()
		return host.NewDownloader(board, cfg.Download.ResponseTimeout.Duration).Download(program)
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().StringVar(&device, "device", "", "serial device of the loader board")
}
