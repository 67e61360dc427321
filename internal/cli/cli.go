// Package cli implements the artistnode command-line interface.
//
// This package provides commands for serving a published content graph over
// HTTP, querying pages and collections from the terminal, publishing graph
// documents to a snapshot store, and inspecting the content tree. The CLI
// is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - serve: Run the HTTP server for a published graph
//   - page: Print the resolved payload for one node
//   - collection: Run a standalone paged collection query
//   - nav: Print the site navigation payload
//   - publish: Store a graph document in the snapshot store
//   - sites: List published snapshot keys
//   - visualize: Render the content tree as an SVG site map
//   - browse: Explore the content tree interactively
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chdigius/awake.fm-artist-server-sub000/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "artistnode"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Artistnode serves file-driven musician websites",
		Long:         `Artistnode is the content engine behind file-driven musician websites: it resolves a tree of content nodes into page payloads, collections, and navigation, and serves them over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.pageCommand())
	root.AddCommand(c.collectionCommand())
	root.AddCommand(c.navCommand())
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.sitesCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}
