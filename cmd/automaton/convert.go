package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/automaton/internal/cli"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a definition between JSON and YAML",
	Long:  `Reads a definition file (or built-in example) and writes it in the format implied by the output extension (.json, .yaml, .yml).`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Convert(opts, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
