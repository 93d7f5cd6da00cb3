package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/stagehand/config"
	"github.com/sarchlab/stagehand/scenario"
)

var validateEnvFiles []string

var validateCmd = &cobra.Command{
	Use:   "validate <scenario.yaml>",
	Short: "Check a scenario file without running it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(validateEnvFiles...)
		if err != nil {
			return err
		}

		s, err := scenario.Load(args[0])
		if err != nil {
			return err
		}

		applyConfig(s, cfg)

		fmt.Fprintf(cmd.OutOrStdout(),
			"%s: %d slots, %d units, %d actions, %d frames\n",
			args[0], len(s.Slots), len(s.Units), len(s.Actions), s.NumFrames())

		return nil
	},
}

func init() {
	validateCmd.Flags().StringSliceVar(&validateEnvFiles, "env-file", nil,
		".env files to load before reading the environment")

	rootCmd.AddCommand(validateCmd)
}
