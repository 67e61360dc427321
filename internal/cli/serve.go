package cli

import (
	"github.com/spf13/cobra"

	"github.com/chdigius/awake.fm-artist-server-sub000/internal/server"
)

// serveCommand creates the serve command for running the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		graphPath  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a published content graph over HTTP",
		Long: `Serve a published content graph over HTTP.

The server loads one graph document at startup and exposes read-only JSON
endpoints for pages, collections, and navigation. The graph comes either
from a JSON file (--graph) or from the snapshot store configured in the
config file.

Flags override their config file counterparts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.DefaultConfig()
			if configPath != "" {
				loaded, err := server.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if graphPath != "" {
				cfg.Graph.Path = graphPath
			}

			srv, err := server.Load(cmd.Context(), cfg, c.Logger)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "graph document to serve")

	return cmd
}
