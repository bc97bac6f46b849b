package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/railsheet/internal/server"
	"github.com/matzehuels/railsheet/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion pipeline over HTTP",
		Long: `Serve the conversion pipeline over HTTP.

Routes:
  POST /v1/import?format=xlsx|zip        workbook → graph JSON document
  POST /v1/export?format=xlsx|zip|json   graph JSON document → workbook
  POST /v1/lines                         graph JSON document → rebuilt rows
  GET  /healthz                          liveness probe

The listen address defaults to [server] addr in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, cfg, err := c.newRunner()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			observability.SetHTTPHooks(observability.NewLogHooks(c.Logger))
			srv := server.New(runner, server.Options{
				Logger:      c.Logger,
				MaxBodySize: cfg.Server.MaxBodySize,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, localhost:8080)")

	return cmd
}
