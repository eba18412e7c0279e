package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/automaton/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes validation, simulation, enumeration and the definition store as a JSON API, plus Prometheus metrics on /metrics.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			opts.Config.HTTP.Port, _ = cmd.Flags().GetString("port")
		}
		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()
		return cli.Serve(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on (config: http.port)")
}
