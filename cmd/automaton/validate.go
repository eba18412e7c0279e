package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/automaton/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|example>",
	Short: "Check a definition against the structural rules",
	Long:  `Reports the first violated rule: unknown initial state, accepting states outside the state set, or transitions using unknown states or symbols.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Validate(cmd.Context(), opts, args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
