package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/automaton"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of automaton",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("automaton version %s\n", automaton.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
