package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chdigius/awake.fm-artist-server-sub000/pkg/content"
)

// browseCommand creates the browse command for exploring the content tree.
func (c *CLI) browseCommand() *cobra.Command {
	var graphPath string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Explore the content tree interactively",
		Long: `Explore the content tree interactively.

Navigate the node hierarchy with the arrow keys, expand folders with space,
and press enter on a node to print its resolved page payload.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := content.ReadGraphFile(graphPath)
			if err != nil {
				return fmt.Errorf("load graph %s: %w", graphPath, err)
			}

			final, err := tea.NewProgram(NewTreeModel(g)).Run()
			if err != nil {
				return fmt.Errorf("run browser: %w", err)
			}

			model, ok := final.(TreeModel)
			if !ok || model.Selected == "" {
				return nil
			}
			payload := g.PagePayload(model.Selected)
			if payload == nil {
				printError("No node at %s", model.Selected)
				return nil
			}
			printNewline()
			return printJSON(payload)
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "graph.json", "graph document to browse")

	return cmd
}
