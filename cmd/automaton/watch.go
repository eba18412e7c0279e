package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/automaton/internal/cli"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file> [input...]",
	Short: "Re-apply a definition file on every change",
	Long: `Watches a definition file and re-applies it whenever it changes, re-running the given inputs.
A change that fails to parse or validate is reported and the previous definition stays in effect.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()
		return cli.RunWatch(ctx, opts, args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
