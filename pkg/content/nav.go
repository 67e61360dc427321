package content

// AutoChildrenSubpages asks nav building to expand an entry's children from
// the target node's nav-flagged subpage blocks, recursively.
const AutoChildrenSubpages = "from_subpages"

// NavEntry is one configured top-level navigation item. Ref is a node path;
// "." refers to the graph's root node.
type NavEntry struct {
	Label        string
	Ref          string
	AutoChildren string // "" or AutoChildrenSubpages
}

// NavConfig is the site's declared navigation, authored outside the graph.
type NavConfig struct {
	Items []NavEntry
}

// Ops is the request-facing surface over a loaded graph: page payloads,
// standalone collection queries, and navigation building. One Ops instance
// serves concurrent readers; it holds no mutable state.
type Ops struct {
	graph    *Graph
	nav      NavConfig
	resolver *Resolver
}

// NewOps wraps a loaded graph with its navigation config.
func NewOps(g *Graph, nav NavConfig) *Ops {
	return &Ops{graph: g, nav: nav, resolver: NewResolver(g)}
}

// Graph returns the underlying content graph.
func (o *Ops) Graph() *Graph { return o.graph }

// Page returns the full-page payload for path, or nil when the node is
// unregistered. An empty path resolves the graph's root node.
func (o *Ops) Page(path string) map[string]any {
	if path == "" {
		path = o.graph.rootPath
	}
	return o.graph.PagePayload(path)
}

// Collection executes a standalone paged collection query.
func (o *Ops) Collection(q Query) map[string]any {
	if q.CurrentNode == "" {
		q.CurrentNode = o.graph.rootPath
	}
	return o.resolver.Resolve(q)
}

// Nav builds the navigation payload from the configured entries. Entries
// whose ref does not resolve to a registered node are skipped.
func (o *Ops) Nav() map[string]any {
	items := make([]any, 0, len(o.nav.Items))
	for _, entry := range o.nav.Items {
		if item := o.navItem(entry); item != nil {
			items = append(items, item)
		}
	}
	return map[string]any{"items": items}
}

func (o *Ops) navItem(entry NavEntry) map[string]any {
	path := o.resolveRef(entry.Ref)
	if path == "" {
		return nil
	}
	node := o.graph.Node(path)
	if node == nil {
		return nil
	}

	children := []any{}
	if entry.AutoChildren == AutoChildrenSubpages {
		children = o.navTree(node, map[string]bool{})
	}

	return map[string]any{
		"label":    effectiveLabel(entry.Label, node),
		"href":     o.hrefFor(path),
		"children": children,
	}
}

// navTree builds the nested nav items below node from its nav-flagged
// subpage blocks, recursing into each target. The visited set breaks cycles
// between mutually-linking nodes.
func (o *Ops) navTree(node *ContentNode, visited map[string]bool) []any {
	if visited[node.Meta.Path] {
		return []any{}
	}
	visited[node.Meta.Path] = true

	children := []any{}
	for _, sub := range navSubpages(node.Content) {
		if sub.Ref == "" {
			continue
		}
		target := o.graph.Node(sub.Ref)
		if target == nil {
			continue
		}
		children = append(children, map[string]any{
			"label":    effectiveLabel(sub.Label, target),
			"href":     o.hrefFor(target.Meta.Path),
			"children": o.navTree(target, visited),
		})
	}
	return children
}

// navSubpages collects nav-flagged subpage blocks in document order,
// descending into sections.
func navSubpages(blocks []Block) []SubpageBlock {
	var out []SubpageBlock
	for _, block := range blocks {
		switch b := block.(type) {
		case SubpageBlock:
			if b.Nav {
				out = append(out, b)
			}
		case SectionBlock:
			out = append(out, navSubpages(b.Blocks)...)
		}
	}
	return out
}

// resolveRef maps a nav ref to a registered node path. "." and "./" refer
// to the root node. Returns "" when no node is registered at the target.
func (o *Ops) resolveRef(ref string) string {
	path := ref
	if ref == "." || ref == "./" {
		path = o.graph.rootPath
	}
	if o.graph.Node(path) == nil {
		return ""
	}
	return path
}

// hrefFor maps a node path to its public href: the root node is "/", every
// other node is "/" + path.
func (o *Ops) hrefFor(path string) string {
	if path == o.graph.rootPath {
		return "/"
	}
	return "/" + path
}

// effectiveLabel picks the display label for a nav item: the configured
// label, then the node's display name, title, slug, and finally its path.
func effectiveLabel(label string, node *ContentNode) string {
	for _, candidate := range []string{label, node.Meta.DisplayName, node.Title, node.Meta.Slug} {
		if candidate != "" {
			return candidate
		}
	}
	return node.Meta.Path
}
