// Package cmd provides the command-line interface of stagehand.
package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stagehand",
	Short: "stagehand plays scripted content through display slots.",
	Long: `stagehand plays scripted content through display slots. A ` +
		`scenario file lists the slots, the units, and when each unit is ` +
		`shown or cleared.`,
	SilenceUsage: true,
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}

	return 0
}
