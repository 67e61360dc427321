package content

import (
	"math/rand"
	"slices"
	"strings"
)

// DefaultPageSize is the page size used when paging is enabled but the
// block or query does not specify one.
const DefaultPageSize = 24

// Sort values understood by the resolver. An empty sort falls through the
// three-tier priority: explicit sort, then the base node's declared
// collection order, then NameAsc.
const (
	SortNameAsc  = "name_asc"
	SortNameDesc = "name_desc"
	SortRandom   = "random"
)

// Query is a standalone paged-collection request, the shape the transport
// layer sends for "load more" and page-number flows. Zero values are
// clamped or defaulted, never rejected.
type Query struct {
	Source   string // defaults to "folder"
	Path     string // collection base path
	Page     int    // 1-based, clamped to >= 1
	PageSize int    // 0 defaults to DefaultPageSize; negative clamps to 1
	Sort     string
	Limit    int            // hard cap after sorting; 0 means no cap
	Layout   map[string]any // explicit layout overrides, merged over defaults
	Card     string

	// CurrentNode is the path of the node issuing the query, kept for
	// sources that resolve relative to their owner.
	CurrentNode string
}

// Resolver turns collection specifications into ordered, paginated item
// lists. It reads the graph and holds no state of its own, so a single
// resolver may serve concurrent requests.
//
// Only the "folder" source has resolution logic; other declared sources
// resolve to an empty candidate set.
type Resolver struct {
	graph *Graph
}

// NewResolver creates a resolver over g.
func NewResolver(g *Graph) *Resolver {
	return &Resolver{graph: g}
}

// Resolve executes a standalone paged query and returns a transport-neutral
// collection payload: merged layout, the requested page of item summaries,
// and paging metadata.
func (r *Resolver) Resolve(q Query) map[string]any {
	source := q.Source
	if source == "" {
		source = SourceFolder
	}
	page := max(1, q.Page)
	pageSize := q.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	pageSize = max(1, pageSize)

	block := CollectionBlock{
		Source: source,
		Path:   q.Path,
		Sort:   q.Sort,
		Limit:  q.Limit,
		Card:   q.Card,
	}

	candidates := r.candidates(block, q.CurrentNode)
	candidates = r.applySort(candidates, q.Sort, q.Path)
	if q.Limit > 0 && q.Limit < len(candidates) {
		candidates = candidates[:q.Limit]
	}

	totalItems := len(candidates)
	totalPages := (totalItems + pageSize - 1) / pageSize
	start := min((page-1)*pageSize, totalItems)
	end := min(start+pageSize, totalItems)

	items := make([]any, 0, end-start)
	for _, path := range candidates[start:end] {
		items = append(items, r.itemPayload(path))
	}

	payload := map[string]any{
		"type":   TypeCollection,
		"source": source,
		"path":   q.Path,
		"layout": mergedLayout(q.Layout),
		"items":  items,
		"paging": map[string]any{
			"enabled":     true,
			"mode":        PagingLoadMore,
			"page":        page,
			"page_size":   pageSize,
			"total_items": totalItems,
			"total_pages": totalPages,
			"has_more":    (page-1)*pageSize+pageSize < totalItems,
		},
	}
	putString(payload, "card", q.Card)
	putString(payload, "sort", q.Sort)
	return payload
}

// hydrateBlock expands a collection block into its fully-resolved payload:
// layout defaults merged with the block's overrides, the first page of item
// summaries per the block's own paging configuration, and paging metadata.
func (r *Resolver) hydrateBlock(block CollectionBlock, currentNode string) map[string]any {
	data := block.encode()

	overrides := map[string]any{}
	if block.Layout != nil {
		overrides = block.Layout.encode()
	}
	data["layout"] = mergedLayout(overrides)

	candidates := r.candidates(block, currentNode)
	candidates = r.applySort(candidates, block.Sort, block.Path)
	if block.Limit > 0 && block.Limit < len(candidates) {
		candidates = candidates[:block.Limit]
	}
	totalItems := len(candidates)

	// Page 1 only at hydration time; further pages go through Resolve.
	pagingEnabled := block.Paging != nil && block.Paging.Enabled
	pagingMode := PagingLoadMore
	if block.Paging != nil && block.Paging.Mode != "" {
		pagingMode = block.Paging.Mode
	}

	var pageSize int
	if pagingEnabled {
		pageSize = DefaultPageSize
		if block.Paging.PageSize != nil && *block.Paging.PageSize > 0 {
			pageSize = *block.Paging.PageSize
		}
	} else {
		// Paging disabled: one page containing every candidate.
		pageSize = totalItems
	}

	end := min(pageSize, totalItems)
	items := make([]any, 0, end)
	for _, path := range candidates[:end] {
		items = append(items, r.itemPayload(path))
	}
	data["items"] = items

	totalPages := 1
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}
	data["paging"] = map[string]any{
		"enabled":     pagingEnabled,
		"mode":        pagingMode,
		"page":        1,
		"page_size":   pageSize,
		"total_items": totalItems,
		"total_pages": totalPages,
		"has_more":    pageSize > 0 && pageSize < totalItems,
	}

	return data
}

// candidates resolves the candidate node paths for a collection block.
// Unsupported sources yield an empty set rather than an error.
func (r *Resolver) candidates(block CollectionBlock, currentNode string) []string {
	switch block.Source {
	case SourceFolder:
		return r.folderCandidates(block.Path)
	default:
		// roster, tag, query, media_folder: declared but not resolved here.
		return nil
	}
}

// folderCandidates returns the direct children of base. The parent index is
// the fast path; when the base path is missing from it (sparse tree), a
// prefix scan over all registered paths recovers the direct children.
func (r *Resolver) folderCandidates(base string) []string {
	if base == "" {
		return nil
	}
	base = strings.Trim(base, "/")

	if children := r.graph.childrenByParent[base]; children != nil {
		return slices.Clone(children)
	}

	prefix := base + "/"
	var out []string
	for _, path := range r.graph.Paths() {
		rest, ok := strings.CutPrefix(path, prefix)
		if !ok || strings.Contains(rest, "/") {
			continue
		}
		out = append(out, path)
	}
	return out
}

// applySort orders candidates by the three-tier priority:
//
//  1. an explicit sort value (random, name_asc, name_desc)
//  2. the base node's declared CollectionOrder, unlisted items trailing
//     alphabetically
//  3. case-insensitive name ascending
//
// Name sorts are stable: candidates with equal titles keep their discovery
// order.
func (r *Resolver) applySort(paths []string, sort, basePath string) []string {
	out := slices.Clone(paths)

	switch sort {
	case SortRandom:
		rand.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
		return out
	case SortNameAsc:
		slices.SortStableFunc(out, func(a, b string) int {
			return strings.Compare(r.sortKey(a), r.sortKey(b))
		})
		return out
	case SortNameDesc:
		slices.SortStableFunc(out, func(a, b string) int {
			return strings.Compare(r.sortKey(b), r.sortKey(a))
		})
		return out
	}

	if basePath != "" {
		if base := r.graph.Node(basePath); base != nil && len(base.Meta.CollectionOrder) > 0 {
			order := make(map[string]int, len(base.Meta.CollectionOrder))
			for i, slug := range base.Meta.CollectionOrder {
				order[slug] = i
			}
			slices.SortStableFunc(out, func(a, b string) int {
				ra, ia := orderRank(order, a)
				rb, ib := orderRank(order, b)
				switch {
				case ra != rb:
					return ra - rb
				case ra == 0:
					// Both listed: declared position decides.
					return ia - ib
				default:
					return strings.Compare(r.sortKey(a), r.sortKey(b))
				}
			})
			return out
		}
	}

	slices.SortStableFunc(out, func(a, b string) int {
		return strings.Compare(r.sortKey(a), r.sortKey(b))
	})
	return out
}

// orderRank returns (0, position) for slugs listed in the declared order
// and (1, 0) for unlisted ones.
func orderRank(order map[string]int, path string) (rank, pos int) {
	slug := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		slug = path[i+1:]
	}
	if p, ok := order[slug]; ok {
		return 0, p
	}
	return 1, 0
}

// sortKey returns the case-folded sortable title for a candidate: preview
// title, then node title, then the raw path.
func (r *Resolver) sortKey(path string) string {
	return strings.ToLower(r.sortTitle(path))
}

func (r *Resolver) sortTitle(path string) string {
	node := r.graph.Node(path)
	if node == nil {
		return path
	}
	if node.Preview != nil && node.Preview.Title != "" {
		return node.Preview.Title
	}
	if node.Title != "" {
		return node.Title
	}
	return path
}

// itemPayload reduces a candidate to the lightweight card summary served in
// collection responses. A path with no registered node still contributes a
// bare-path stub so sparse trees surface rather than silently shrink.
func (r *Resolver) itemPayload(path string) map[string]any {
	node := r.graph.Node(path)
	if node == nil {
		return map[string]any{"path": path}
	}

	item := map[string]any{
		"path":   node.Meta.Path,
		"layout": node.Meta.Layout,
	}
	putString(item, "slug", node.Meta.Slug)
	putString(item, "display_name", node.Meta.DisplayName)
	if node.Preview != nil {
		item["preview"] = encodePreview(node.Preview)
	}
	return item
}
