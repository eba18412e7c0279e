package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/automaton/internal/cli"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage saved definitions",
	Long:  `Saves, loads, lists and deletes named definitions in the configured store (memory, file or redis).`,
}

var storeSaveCmd = &cobra.Command{
	Use:   "save <name> <file|example>",
	Short: "Validate a definition and save it under a name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.StoreSave(cmd.Context(), opts, args[0], args[1])
	},
}

var storeLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Print a saved definition or export it with --out",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		return cli.StoreLoad(cmd.Context(), opts, args[0], out)
	},
}

var storeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved definitions",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.StoreList(cmd.Context(), opts)
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved definition",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.StoreDelete(cmd.Context(), opts, args[0])
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.PersistentFlags().String("store", "", "Store backend: memory, file or redis (config: store)")
	storeCmd.PersistentFlags().String("store-dir", "", "Directory of the file store (config: store_dir)")
	storeCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetString("store"); v != "" {
			opts.Config.Store = v
		}
		if v, _ := cmd.Flags().GetString("store-dir"); v != "" {
			opts.Config.StoreDir = v
		}
		return opts.Config.Validate()
	}

	storeLoadCmd.Flags().String("out", "", "Write the definition to this .json/.yaml file")
	storeCmd.AddCommand(storeSaveCmd, storeLoadCmd, storeListCmd, storeDeleteCmd)
}
