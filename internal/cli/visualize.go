package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chdigius/awake.fm-artist-server-sub000/pkg/content"
	"github.com/chdigius/awake.fm-artist-server-sub000/pkg/render/sitemap"
)

// visualizeCommand creates the visualize command for rendering site maps.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "visualize <graph.json>",
		Short: "Render the content tree as a site map",
		Long: `Render the content tree as a site map.

Parent/child relationships are drawn as solid edges, collection discovery
as dashed edges. Output is SVG by default; --format dot emits the raw
Graphviz source instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := content.ReadGraphFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}

			dot := sitemap.ToDOT(g, sitemap.Options{Detailed: detailed})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = sitemap.RenderSVG(dot)
				if err != nil {
					return fmt.Errorf("render site map: %w", err)
				}
			default:
				return fmt.Errorf("unknown format %q (want svg or dot)", format)
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], ".json") + "." + format
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess("Rendered site map")
			printDetail("%d nodes", g.NodeCount())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default input name with new extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include layout and theme in node labels")

	return cmd
}
