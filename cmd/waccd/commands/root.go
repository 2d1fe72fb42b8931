package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "waccd",
	Short: "WACC calculator backend",
	Long: `Weighted Average Cost of Capital calculator.

Serves the calculation API the frontend form delegates to, and
computes one-off results from the command line.

Usage:
  go run ./cmd/waccd [command]

Examples:
  go run ./cmd/waccd api
  go run ./cmd/waccd calc --equity 200 --debt 50 --re 12 --rd 5 --tax 25`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
