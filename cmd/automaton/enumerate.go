package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/automaton/internal/cli"
)

var enumerateCmd = &cobra.Command{
	Use:     "enumerate <file|example>",
	Aliases: []string{"enum"},
	Short:   "List accepted strings, shortest first",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := opts.Config.MaxResults
		if cmd.Flags().Changed("max-results") {
			n, _ = cmd.Flags().GetInt("max-results")
		}
		l := opts.Config.MaxLength
		if cmd.Flags().Changed("max-length") {
			l, _ = cmd.Flags().GetInt("max-length")
		}
		return cli.Enumerate(cmd.Context(), opts, args[0], n, l)
	},
}

func init() {
	rootCmd.AddCommand(enumerateCmd)
	enumerateCmd.Flags().IntP("max-results", "n", 10, "Maximum number of strings (config: max_results)")
	enumerateCmd.Flags().IntP("max-length", "l", 20, "Maximum string length in symbols (config: max_length)")
}
