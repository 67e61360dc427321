package content

// PagePayload shapes the node at path into the full-page payload served by
// the page endpoint. Returns nil when the path is unregistered; callers map
// that to their own not-found handling.
//
// The payload is the node's document form with two additions: the effective
// theme (resolved via the ancestor walk) attached to the descriptor, and
// every block hydrated. Hydration is a single depth-first, order-preserving
// walk: sections recurse into their children, collection blocks are
// replaced by their fully-resolved form, and every other block passes
// through unchanged.
func (g *Graph) PagePayload(path string) map[string]any {
	node := g.Node(path)
	if node == nil {
		return nil
	}

	payload := EncodeNode(node)
	descriptor, _ := payload["descriptor"].(map[string]any)
	if descriptor != nil {
		descriptor["effective_theme"] = g.ResolveTheme(path)
	}

	resolver := NewResolver(g)
	blocks := make([]any, len(node.Content))
	for i, block := range node.Content {
		blocks[i] = hydrateBlock(resolver, block, path)
	}
	payload["blocks"] = blocks

	return payload
}

// hydrateBlock expands one block for page output. Sibling and nesting order
// mirrors the input exactly; this is a structural transform, not a
// re-ordering one.
func hydrateBlock(r *Resolver, block Block, currentNode string) map[string]any {
	switch b := block.(type) {
	case SectionBlock:
		data := b.encode()
		inner := make([]any, len(b.Blocks))
		for i, child := range b.Blocks {
			inner[i] = hydrateBlock(r, child, currentNode)
		}
		data["blocks"] = inner
		return data
	case CollectionBlock:
		return r.hydrateBlock(b, currentNode)
	default:
		return block.encode()
	}
}
