package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chdigius/awake.fm-artist-server-sub000/internal/server"
	"github.com/chdigius/awake.fm-artist-server-sub000/pkg/content"
	"github.com/chdigius/awake.fm-artist-server-sub000/pkg/store"
)

// publishCommand creates the publish command for storing graph snapshots.
func (c *CLI) publishCommand() *cobra.Command {
	var (
		configPath string
		site       string
	)

	cmd := &cobra.Command{
		Use:   "publish <graph.json>",
		Short: "Store a graph document in the snapshot store",
		Long: `Store a graph document in the snapshot store.

The document is decoded first, so malformed graphs are rejected before
anything is written. The snapshot key defaults to the site configured in
the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.DefaultConfig()
			if configPath != "" {
				loaded, err := server.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			key := site
			if key == "" {
				key = cfg.Site
			}
			if key == "" {
				return fmt.Errorf("no site key: pass --site or set site in the config file")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read graph %s: %w", args[0], err)
			}
			g, err := content.UnmarshalGraph(data)
			if err != nil {
				return fmt.Errorf("decode graph %s: %w", args[0], err)
			}

			st, err := server.OpenStore(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close()

			prog := newProgress(c.Logger)
			if err := st.Put(cmd.Context(), store.NewSnapshot(key, data)); err != nil {
				return fmt.Errorf("publish %s: %w", key, err)
			}
			prog.done(fmt.Sprintf("Stored snapshot for %s", key))

			printSuccess("Published %s", key)
			printDetail("%d nodes, root %s", g.NodeCount(), g.RootPath())
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	cmd.Flags().StringVarP(&site, "site", "s", "", "snapshot key (default from config)")

	return cmd
}

// sitesCommand creates the sites command for listing published snapshots.
func (c *CLI) sitesCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List published snapshot keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.DefaultConfig()
			if configPath != "" {
				loaded, err := server.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			st, err := server.OpenStore(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close()

			keys, err := st.Keys(cmd.Context())
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				printInfo("No published sites")
				return nil
			}
			for _, key := range keys {
				fmt.Println(StyleValue.Render(key))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")

	return cmd
}
