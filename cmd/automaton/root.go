package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/automaton/internal/cli"
	"github.com/aretw0/automaton/internal/config"
)

// opts is filled by the root command before any subcommand runs.
var opts cli.Options

var rootCmd = &cobra.Command{
	Use:   "automaton",
	Short: "Automaton is a deterministic finite automaton workbench",
	Long: `Automaton validates DFA definitions, simulates inputs with a step-by-step trace
and enumerates the accepted language in shortlex order.

Definitions are JSON or YAML files, or one of the built-in examples (see 'automaton examples').`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		opts.Config = cfg
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Output, _ = cmd.Flags().GetString("output")
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().StringP("output", "o", cli.OutputText, "Output format: text, json or yaml")
}
