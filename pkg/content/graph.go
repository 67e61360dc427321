package content

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

var (
	// ErrEmptyPath is returned by [Graph.Register] when the node's path is
	// empty. Path is the node's only identity and must be set.
	ErrEmptyPath = errors.New("node path must not be empty")

	// ErrDuplicatePath is returned by [Graph.Register] when a node with the
	// same path is already registered. Two nodes never share a path.
	ErrDuplicatePath = errors.New("duplicate node path")
)

// Graph is the in-memory content graph: the full node set keyed by path, a
// derived parent→children index, and graph-wide fallbacks. Nodes are
// registered once at load time (append-only); afterwards the graph is
// read-only and safe for any number of concurrent readers.
//
// The parent→children index may be incomplete relative to the node map:
// intermediate folders often exist only as path segments and are never
// registered as real nodes. Every resolution algorithm tolerates this by
// falling back to the path string itself.
type Graph struct {
	rootPath  string // declared root node path, e.g. "server"
	rootTheme string // graph-wide default theme

	nodes            map[string]*ContentNode
	childrenByParent map[string][]string
}

// NewGraph creates an empty graph with the given root path and default
// theme. rootTheme may be empty when the site declares no default.
func NewGraph(rootPath, rootTheme string) *Graph {
	return &Graph{
		rootPath:         rootPath,
		rootTheme:        rootTheme,
		nodes:            make(map[string]*ContentNode),
		childrenByParent: make(map[string][]string),
	}
}

// RootPath returns the declared root node path.
func (g *Graph) RootPath() string { return g.rootPath }

// RootTheme returns the graph-wide default theme.
func (g *Graph) RootTheme() string { return g.rootTheme }

// Register adds a node and updates the parent→children index in the same
// operation, so the index can never drift from the node map. Returns
// ErrEmptyPath or ErrDuplicatePath on invalid input.
func (g *Graph) Register(n *ContentNode) error {
	path := n.Meta.Path
	if path == "" {
		return ErrEmptyPath
	}
	if _, exists := g.nodes[path]; exists {
		return ErrDuplicatePath
	}
	g.nodes[path] = n

	if parent := n.Meta.ParentPath; parent != "" {
		g.childrenByParent[parent] = append(g.childrenByParent[parent], path)
	}
	return nil
}

// Node returns the node registered at path, or nil if the path is unknown.
func (g *Graph) Node(path string) *ContentNode {
	return g.nodes[path]
}

// Children returns the indexed child paths of parent, in registration
// order. The result is a copy; callers may reorder it freely.
func (g *Graph) Children(parent string) []string {
	return slices.Clone(g.childrenByParent[parent])
}

// Paths returns every registered node path in sorted order.
func (g *Graph) Paths() []string {
	paths := maps.Keys(g.nodes)
	slices.Sort(paths)
	return paths
}

// NodeCount returns the number of registered nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// ResolveTheme walks ancestor paths starting at path and returns the
// nearest declared theme, falling back to the graph's root theme when no
// ancestor declares one. The walk prefers each node's recorded parent path
// but derives the parent from the path string when a level was never
// registered, so sparse trees resolve correctly. The requested path itself
// does not need to be registered.
func (g *Graph) ResolveTheme(path string) string {
	current := path
	for current != "" {
		node := g.nodes[current]
		if node != nil && node.Meta.Theme != "" {
			return node.Meta.Theme
		}

		switch {
		case node != nil && node.Meta.ParentPath != "":
			current = node.Meta.ParentPath
		case strings.Contains(current, "/"):
			current = current[:strings.LastIndex(current, "/")]
		default:
			// Root-level path with no recorded parent: the walk ends here.
			current = ""
		}
	}
	return g.rootTheme
}
