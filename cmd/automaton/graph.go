package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/automaton/internal/cli"
)

var graphCmd = &cobra.Command{
	Use:   "graph <file|example>",
	Short: "Export the automaton as a Mermaid diagram",
	Long:  `Outputs a Mermaid flowchart (graph LR). Accepting states are double circles. With --input, the run of that input is highlighted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input *string
		if cmd.Flags().Changed("input") {
			v, _ := cmd.Flags().GetString("input")
			input = &v
		}
		return cli.Graph(opts, args[0], input)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("input", "", "Highlight the run of this input")
}
