package content

// NodeMeta is the descriptor for one content node: identity, tree position,
// and presentation metadata. Path is the node's only identity; it is
// hierarchical and slash-delimited ("server", "artists/zol", ...).
type NodeMeta struct {
	Path       string // globally unique, e.g. "artists/zol"
	ParentPath string // empty for declared roots
	Layout     string // layout kind consumed by the presentation layer
	Slug       string
	DisplayName string

	// Theme is this node's theme override. Empty means "inherit": the
	// effective theme is resolved by walking ancestors (Graph.ResolveTheme).
	Theme string

	// Effects are visual FX layers ("crt", "chroma", "glow"). They apply to
	// the owning node only and do not cascade to descendants.
	Effects []string

	// CollectionOrder is an explicit child ordering declared on a folder
	// node. It is the middle sort tier when the node is used as a
	// collection base and no explicit sort value is supplied.
	CollectionOrder []string

	// Extra is an intentionally schema-less bag for forward-compatible
	// metadata (imprints, roster, status, ...).
	Extra map[string]any
}

// NodePreview is the card-level projection of a node, used when it appears
// as a collection item. All fields are optional; Title falls back to the
// node's display name upstream.
type NodePreview struct {
	Title    string
	Subtitle string
	Image    string
	Badge    string // e.g. "Artist", "Album", "Set"
	Blurb    string // short card body text
}

// ContentNode is one addressable entry in the content tree: a descriptor,
// an ordered block list, and optional page-level fields. Nothing below node
// granularity is independently addressable.
type ContentNode struct {
	Meta       NodeMeta
	Title      string
	Tagline    string
	Background string // page-level background image path
	Preview    *NodePreview
	Content    []Block
}
