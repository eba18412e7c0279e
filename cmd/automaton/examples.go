package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/automaton/internal/cli"
)

var examplesCmd = &cobra.Command{
	Use:   "examples [name]",
	Short: "List the built-in automata or print one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return cli.Examples(opts, name)
	},
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}
