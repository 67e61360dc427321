package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chdigius/awake.fm-artist-server-sub000/internal/server"
	"github.com/chdigius/awake.fm-artist-server-sub000/pkg/content"
)

// loadOps reads a graph document and wraps it with navigation from an
// optional config file.
func loadOps(graphPath, configPath string) (*content.Ops, error) {
	g, err := content.ReadGraphFile(graphPath)
	if err != nil {
		return nil, fmt.Errorf("load graph %s: %w", graphPath, err)
	}

	nav := content.NavConfig{}
	if configPath != "" {
		cfg, err := server.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		nav = cfg.Nav.NavConfig()
	}
	return content.NewOps(g, nav), nil
}

// printJSON writes a payload to stdout as indented JSON.
func printJSON(payload any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(payload)
}

// pageCommand creates the page command for resolving one node.
func (c *CLI) pageCommand() *cobra.Command {
	var graphPath string

	cmd := &cobra.Command{
		Use:   "page [path]",
		Short: "Print the resolved payload for one node",
		Long: `Print the resolved payload for one node.

The payload is what the HTTP server would return for the path: node fields,
the effective theme, and all blocks with collections hydrated. Without a
path argument the graph's root node is resolved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := loadOps(graphPath, "")
			if err != nil {
				return err
			}

			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			payload := ops.Page(path)
			if payload == nil {
				return fmt.Errorf("no node at %q", path)
			}
			return printJSON(payload)
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "graph.json", "graph document to query")

	return cmd
}

// collectionCommand creates the collection command for standalone queries.
func (c *CLI) collectionCommand() *cobra.Command {
	var (
		graphPath string
		source    string
		page      int
		pageSize  int
		sort      string
		limit     int
		card      string
		mode      string
	)

	cmd := &cobra.Command{
		Use:   "collection <path>",
		Short: "Run a standalone paged collection query",
		Long: `Run a standalone paged collection query.

Resolves the direct children of the given base path, sorted and paginated
the same way the HTTP /api/collection endpoint does it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := loadOps(graphPath, "")
			if err != nil {
				return err
			}
			query := content.Query{
				Source:   source,
				Path:     args[0],
				Page:     page,
				PageSize: pageSize,
				Sort:     sort,
				Limit:    limit,
				Card:     card,
			}
			if mode != "" {
				query.Layout = map[string]any{"mode": mode}
			}
			return printJSON(ops.Collection(query))
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "graph.json", "graph document to query")
	cmd.Flags().StringVar(&source, "source", "", "collection source (default folder)")
	cmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "items per page (default 24)")
	cmd.Flags().StringVar(&sort, "sort", "", "sort order: name_asc, name_desc, random")
	cmd.Flags().IntVar(&limit, "limit", 0, "cap on total items (0 = no cap)")
	cmd.Flags().StringVar(&card, "card", "", "card variant hint passed through to the payload")
	cmd.Flags().StringVar(&mode, "mode", "", "layout mode hint: grid, list, carousel")

	return cmd
}

// navCommand creates the nav command for printing site navigation.
func (c *CLI) navCommand() *cobra.Command {
	var (
		graphPath  string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Print the site navigation payload",
		Long: `Print the site navigation payload.

Navigation items come from the [[nav.items]] entries in the config file and
are resolved against the graph; entries pointing at unregistered nodes are
skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := loadOps(graphPath, configPath)
			if err != nil {
				return err
			}
			return printJSON(ops.Nav())
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "graph.json", "graph document to query")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file with [[nav.items]]")

	return cmd
}
