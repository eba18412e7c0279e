package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/automaton/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run <file|example> [input...]",
	Short: "Simulate inputs and print the trace",
	Long: `Runs each input through the automaton and prints one step per consumed symbol.

Inputs are split per character when every alphabet symbol is a single character,
otherwise on commas or spaces. With --symbols, the remaining arguments form a single
input, one symbol per argument. No input means the empty string.`,
	Example: `  automaton run even-ones 0110 111
  automaton run traffic.yaml --symbols go stop go`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbols, _ := cmd.Flags().GetBool("symbols")
		return cli.Run(cmd.Context(), opts, args[0], args[1:], symbols)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("symbols", false, "Treat each argument as one symbol of a single input")
}
