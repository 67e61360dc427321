package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMalformedDocument is returned by the graph decode entry points when the
// top-level document cannot be parsed into a node map. This is the one case
// that fails fast at load time; everything below the node map degrades
// instead of failing (unknown block tags, sparse indexes, missing parents).
var ErrMalformedDocument = errors.New("malformed content graph document")

// maxBlockDepth bounds section nesting during decode. Nothing in the
// document format caps nesting, so a guard is required to survive
// pathological or accidentally-cyclic input. Blocks past the limit decode
// as UnknownBlock with no further recursion.
const maxBlockDepth = 32

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a graph to JSON bytes.
// Node entries are keyed by path, so output order follows the JSON encoder's
// sorted map keys and is deterministic.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a graph document to a JSON file.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a graph document as JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// UnmarshalGraph decodes JSON bytes into a graph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	return readGraphFrom(bytes.NewReader(data))
}

// ReadGraphFile reads a JSON document file and returns the decoded graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph document from an io.Reader.
func ReadGraph(r io.Reader) (*Graph, error) {
	return readGraphFrom(r)
}

func writeGraphTo(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(EncodeGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*Graph, error) {
	var data map[string]any
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return DecodeGraph(data)
}

// =============================================================================
// Graph ↔ Document
// =============================================================================

// EncodeGraph renders the graph as its transport-neutral document: root
// path, root theme, the node map, and the parent→children index. The entire
// graph is re-derivable from this document via DecodeGraph.
func EncodeGraph(g *Graph) map[string]any {
	nodes := make(map[string]any, len(g.nodes))
	for path, node := range g.nodes {
		nodes[path] = EncodeNode(node)
	}

	doc := map[string]any{
		"root_path": g.rootPath,
		"nodes":     nodes,
	}
	if g.rootTheme != "" {
		doc["root_theme"] = g.rootTheme
	}
	if len(g.childrenByParent) > 0 {
		index := make(map[string]any, len(g.childrenByParent))
		for parent, children := range g.childrenByParent {
			vals := make([]any, len(children))
			for i, c := range children {
				vals[i] = c
			}
			index[parent] = vals
		}
		doc["parent_index"] = index
	}
	return doc
}

// DecodeGraph reconstructs a graph from its document form. A document
// without a root path or with an unparseable node map returns
// ErrMalformedDocument; individual node oddities degrade instead.
//
// When the document carries a parent_index it replaces the index derived
// during registration. Builders may persist a deliberately sparse index;
// collection discovery falls back to a prefix scan for missing keys.
func DecodeGraph(data map[string]any) (*Graph, error) {
	rootPath := stringVal(data["root_path"])
	if rootPath == "" {
		return nil, fmt.Errorf("%w: missing root_path", ErrMalformedDocument)
	}
	g := NewGraph(rootPath, stringVal(data["root_theme"]))

	if raw, present := data["nodes"]; present {
		nodesRaw, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: nodes is not an object", ErrMalformedDocument)
		}
		for path, nodeRaw := range nodesRaw {
			nodeData, ok := nodeRaw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: node %q is not an object", ErrMalformedDocument, path)
			}
			node := DecodeNode(nodeData)
			if node.Meta.Path == "" {
				node.Meta.Path = path
			}
			if err := g.Register(node); err != nil {
				return nil, fmt.Errorf("register node %q: %w", path, err)
			}
		}
	}

	if indexRaw, ok := data["parent_index"].(map[string]any); ok {
		index := make(map[string][]string, len(indexRaw))
		for parent, childrenRaw := range indexRaw {
			index[parent] = stringSlice(childrenRaw)
		}
		g.childrenByParent = index
	}

	return g, nil
}

// =============================================================================
// Node ↔ Document
// =============================================================================

// EncodeNode renders a node as its transport-neutral document form. Every
// field consumed by resolution round-trips; empty optionals are omitted.
func EncodeNode(n *ContentNode) map[string]any {
	descriptor := map[string]any{
		"layout": n.Meta.Layout,
	}
	putString(descriptor, "parent", n.Meta.ParentPath)
	putString(descriptor, "slug", n.Meta.Slug)
	putString(descriptor, "display_name", n.Meta.DisplayName)
	putString(descriptor, "theme", n.Meta.Theme)
	if len(n.Meta.Effects) > 0 {
		descriptor["effects"] = anySlice(n.Meta.Effects)
	}
	if len(n.Meta.CollectionOrder) > 0 {
		descriptor["collection_order"] = anySlice(n.Meta.CollectionOrder)
	}
	if len(n.Meta.Extra) > 0 {
		descriptor["extra"] = n.Meta.Extra
	}

	blocks := make([]any, len(n.Content))
	for i, b := range n.Content {
		blocks[i] = b.encode()
	}

	doc := map[string]any{
		"path":       n.Meta.Path,
		"descriptor": descriptor,
		"blocks":     blocks,
	}
	putString(doc, "title", n.Title)
	putString(doc, "tagline", n.Tagline)
	putString(doc, "background", n.Background)
	if n.Preview != nil {
		doc["preview"] = encodePreview(n.Preview)
	}
	return doc
}

// DecodeNode reconstructs a node from its document form. Missing fields
// decode to their zero values; block documents with unrecognized type tags
// decode to UnknownBlock rather than failing.
func DecodeNode(data map[string]any) *ContentNode {
	descriptor, _ := data["descriptor"].(map[string]any)

	node := &ContentNode{
		Meta: NodeMeta{
			Path:            stringVal(data["path"]),
			ParentPath:      stringVal(descriptor["parent"]),
			Layout:          stringVal(descriptor["layout"]),
			Slug:            stringVal(descriptor["slug"]),
			DisplayName:     stringVal(descriptor["display_name"]),
			Theme:           stringVal(descriptor["theme"]),
			Effects:         stringSlice(descriptor["effects"]),
			CollectionOrder: stringSlice(descriptor["collection_order"]),
			Extra:           anyMapVal(descriptor["extra"]),
		},
		Title:      stringVal(data["title"]),
		Tagline:    stringVal(data["tagline"]),
		Background: stringVal(data["background"]),
	}

	if previewRaw, ok := data["preview"].(map[string]any); ok {
		node.Preview = &NodePreview{
			Title:    stringVal(previewRaw["title"]),
			Subtitle: stringVal(previewRaw["subtitle"]),
			Image:    stringVal(previewRaw["image"]),
			Badge:    stringVal(previewRaw["badge"]),
			Blurb:    stringVal(previewRaw["blurb"]),
		}
	}

	if blocksRaw, ok := data["blocks"].([]any); ok {
		node.Content = make([]Block, 0, len(blocksRaw))
		for _, raw := range blocksRaw {
			blockData, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			node.Content = append(node.Content, decodeBlock(blockData, 0))
		}
	}

	return node
}

func encodePreview(p *NodePreview) map[string]any {
	doc := map[string]any{"title": p.Title}
	putString(doc, "subtitle", p.Subtitle)
	putString(doc, "image", p.Image)
	putString(doc, "badge", p.Badge)
	putString(doc, "blurb", p.Blurb)
	return doc
}

// =============================================================================
// Block ↔ Document
// =============================================================================

// EncodeBlock renders a block as a transport-neutral map carrying its type
// tag plus variant-specific fields.
func EncodeBlock(b Block) map[string]any {
	return b.encode()
}

// DecodeBlock reconstructs a block from its document form, dispatching on
// the type tag. Unrecognized tags decode to UnknownBlock; decoding never
// fails.
func DecodeBlock(data map[string]any) Block {
	return decodeBlock(data, 0)
}

func decodeBlock(data map[string]any, depth int) Block {
	tag := stringVal(data["type"])
	if depth >= maxBlockDepth {
		return unknownBlock(tag, data)
	}

	switch tag {
	case TypeHero:
		b := HeroBlock{
			Heading:    stringVal(data["heading"]),
			Subheading: stringVal(data["subheading"]),
			Body:       stringVal(data["body"]),
			CTA:        stringMapVal(data["cta"]),
			Background: stringVal(data["background"]),
		}
		if sigilRaw, ok := data["sigil"].(map[string]any); ok {
			b.Sigil = &SigilConfig{
				Type:    stringOr(sigilRaw["type"], "p5"),
				ID:      stringVal(sigilRaw["id"]),
				Src:     stringVal(sigilRaw["src"]),
				Alt:     stringVal(sigilRaw["alt"]),
				Options: anyMapVal(sigilRaw["options"]),
			}
		}
		return b

	case TypeSection:
		b := SectionBlock{
			ID:    stringVal(data["id"]),
			Label: stringVal(data["label"]),
			Align: stringVal(data["align"]),
		}
		if inner, ok := data["blocks"].([]any); ok {
			b.Blocks = make([]Block, 0, len(inner))
			for _, raw := range inner {
				childData, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				b.Blocks = append(b.Blocks, decodeBlock(childData, depth+1))
			}
		}
		return b

	case TypeMarkdown:
		return MarkdownBlock{Body: stringVal(data["body"])}

	case TypeSubpage:
		return SubpageBlock{
			Ref:        stringVal(data["ref"]),
			Label:      stringVal(data["label"]),
			Title:      stringVal(data["title"]),
			Badge:      stringVal(data["badge"]),
			Nav:        boolVal(data["nav"]),
			Align:      stringVal(data["align"]),
			Size:       stringVal(data["size"]),
			Weight:     stringVal(data["weight"]),
			Decoration: stringVal(data["decoration"]),
			Transform:  stringVal(data["transform"]),
			Font:       stringVal(data["font"]),
			Icon:       stringVal(data["icon"]),
		}

	case TypeCollection:
		b := CollectionBlock{
			Source:     stringOr(data["source"], SourceFolder),
			Path:       stringVal(data["path"]),
			Pattern:    stringVal(data["pattern"]),
			Card:       stringVal(data["card"]),
			Sort:       stringVal(data["sort"]),
			Limit:      intVal(data["limit"]),
			Filters:    anyMapVal(data["filters"]),
			EmptyState: stringMapVal(data["empty_state"]),
		}
		if layoutRaw, ok := data["layout"].(map[string]any); ok {
			b.Layout = decodeCollectionLayout(layoutRaw)
		}
		if optionsRaw, ok := data["sort_options"].([]any); ok {
			for _, raw := range optionsRaw {
				if opt := stringMapVal(raw); opt != nil {
					b.SortOptions = append(b.SortOptions, opt)
				}
			}
		}
		if pagingRaw, ok := data["paging"].(map[string]any); ok {
			b.Paging = &CollectionPaging{
				Enabled:  boolVal(pagingRaw["enabled"]),
				PageSize: intPtrVal(pagingRaw["page_size"]),
				Mode:     stringOr(pagingRaw["mode"], PagingLoadMore),
			}
		}
		if mediaRaw, ok := data["media"].(map[string]any); ok {
			b.Media = &CollectionMedia{
				Type:       stringOr(mediaRaw["type"], "audio"),
				Player:     anyMapVal(mediaRaw["player"]),
				Visualizer: anyMapVal(mediaRaw["visualizer"]),
			}
		}
		if thumbRaw, ok := data["thumbnail"].(map[string]any); ok {
			b.Thumbnail = &CollectionThumbnail{
				Type:      stringOr(thumbRaw["type"], "generative_from_seed"),
				SeedImage: stringVal(thumbRaw["seedImage"]),
				Style:     anyMapVal(thumbRaw["style"]),
				SeedFrom:  stringVal(thumbRaw["seedFrom"]),
			}
		}
		return b

	case TypeAudioPlayer:
		b := AudioPlayerBlock{
			Src:     stringVal(data["src"]),
			Title:   stringVal(data["title"]),
			Artist:  stringVal(data["artist"]),
			Artwork: stringVal(data["artwork"]),
		}
		if vizRaw, ok := data["visualizer"].(map[string]any); ok {
			b.Visualizer = &VisualizerConfig{
				Type:    stringOr(vizRaw["type"], "p5"),
				ID:      stringOr(vizRaw["id"], "spectrum-bars"),
				Options: anyMapVal(vizRaw["options"]),
			}
		}
		return b
	}

	return unknownBlock(tag, data)
}

func unknownBlock(tag string, data map[string]any) UnknownBlock {
	fields := make(map[string]any, len(data))
	for k, v := range data {
		if k == "type" {
			continue
		}
		fields[k] = v
	}
	return UnknownBlock{Tag: tag, Fields: fields}
}

func decodeCollectionLayout(data map[string]any) *CollectionLayout {
	return &CollectionLayout{
		Mode:          stringOr(data["mode"], LayoutGrid),
		Columns:       intMapVal(data["columns"]),
		Gap:           stringMapVal(data["gap"]),
		Align:         stringMapVal(data["align"]),
		MaxRows:       intPtrVal(data["max_rows"]),
		Pagination:    anyMapVal(data["pagination"]),
		Dense:         boolPtrVal(data["dense"]),
		ShowDividers:  boolPtrVal(data["show_dividers"]),
		ShowAvatar:    boolPtrVal(data["show_avatar"]),
		ShowMeta:      boolPtrVal(data["show_meta"]),
		MaxItems:      intPtrVal(data["max_items"]),
		SlidesPerView: intMapVal(data["slides_per_view"]),
		Spacing:       stringVal(data["spacing"]),
		Loop:          boolPtrVal(data["loop"]),
		Autoplay:      anyMapVal(data["autoplay"]),
		Controls:      anyMapVal(data["controls"]),
		SnapAlign:     stringVal(data["snap_align"]),
		MaxWidth:      stringVal(data["max_width"]),
	}
}

// =============================================================================
// Block encode methods
// =============================================================================

func (b HeroBlock) encode() map[string]any {
	doc := map[string]any{
		"type":    TypeHero,
		"heading": b.Heading,
	}
	putString(doc, "subheading", b.Subheading)
	putString(doc, "body", b.Body)
	putString(doc, "background", b.Background)
	if len(b.CTA) > 0 {
		doc["cta"] = anyMapFromStrings(b.CTA)
	}
	if b.Sigil != nil {
		sigil := map[string]any{"type": b.Sigil.Type}
		putString(sigil, "id", b.Sigil.ID)
		putString(sigil, "src", b.Sigil.Src)
		putString(sigil, "alt", b.Sigil.Alt)
		if len(b.Sigil.Options) > 0 {
			sigil["options"] = b.Sigil.Options
		}
		doc["sigil"] = sigil
	}
	return doc
}

func (b SectionBlock) encode() map[string]any {
	inner := make([]any, len(b.Blocks))
	for i, child := range b.Blocks {
		inner[i] = child.encode()
	}
	doc := map[string]any{
		"type":   TypeSection,
		"blocks": inner,
	}
	putString(doc, "id", b.ID)
	putString(doc, "label", b.Label)
	putString(doc, "align", b.Align)
	return doc
}

func (b MarkdownBlock) encode() map[string]any {
	return map[string]any{
		"type": TypeMarkdown,
		"body": b.Body,
	}
}

func (b SubpageBlock) encode() map[string]any {
	doc := map[string]any{
		"type": TypeSubpage,
		"ref":  b.Ref,
		"nav":  b.Nav,
	}
	putString(doc, "label", b.Label)
	putString(doc, "title", b.Title)
	putString(doc, "badge", b.Badge)
	putString(doc, "align", b.Align)
	putString(doc, "size", b.Size)
	putString(doc, "weight", b.Weight)
	putString(doc, "decoration", b.Decoration)
	putString(doc, "transform", b.Transform)
	putString(doc, "font", b.Font)
	putString(doc, "icon", b.Icon)
	return doc
}

func (b CollectionBlock) encode() map[string]any {
	doc := map[string]any{
		"type":   TypeCollection,
		"source": b.Source,
	}
	putString(doc, "path", b.Path)
	putString(doc, "pattern", b.Pattern)
	putString(doc, "card", b.Card)
	putString(doc, "sort", b.Sort)
	if b.Layout != nil {
		doc["layout"] = b.Layout.encode()
	}
	if len(b.SortOptions) > 0 {
		opts := make([]any, len(b.SortOptions))
		for i, opt := range b.SortOptions {
			opts[i] = anyMapFromStrings(opt)
		}
		doc["sort_options"] = opts
	}
	if b.Limit > 0 {
		doc["limit"] = b.Limit
	}
	if len(b.Filters) > 0 {
		doc["filters"] = b.Filters
	}
	if b.Paging != nil {
		paging := map[string]any{
			"enabled": b.Paging.Enabled,
			"mode":    b.Paging.Mode,
		}
		if b.Paging.PageSize != nil {
			paging["page_size"] = *b.Paging.PageSize
		}
		doc["paging"] = paging
	}
	if b.Media != nil {
		media := map[string]any{"type": b.Media.Type}
		if len(b.Media.Player) > 0 {
			media["player"] = b.Media.Player
		}
		if len(b.Media.Visualizer) > 0 {
			media["visualizer"] = b.Media.Visualizer
		}
		doc["media"] = media
	}
	if b.Thumbnail != nil {
		thumb := map[string]any{"type": b.Thumbnail.Type}
		putString(thumb, "seedImage", b.Thumbnail.SeedImage)
		putString(thumb, "seedFrom", b.Thumbnail.SeedFrom)
		if len(b.Thumbnail.Style) > 0 {
			thumb["style"] = b.Thumbnail.Style
		}
		doc["thumbnail"] = thumb
	}
	if len(b.EmptyState) > 0 {
		doc["empty_state"] = anyMapFromStrings(b.EmptyState)
	}
	return doc
}

func (l *CollectionLayout) encode() map[string]any {
	doc := map[string]any{"mode": l.Mode}
	if len(l.Columns) > 0 {
		doc["columns"] = anyMapFromInts(l.Columns)
	}
	if len(l.Gap) > 0 {
		doc["gap"] = anyMapFromStrings(l.Gap)
	}
	if len(l.Align) > 0 {
		doc["align"] = anyMapFromStrings(l.Align)
	}
	putIntPtr(doc, "max_rows", l.MaxRows)
	if len(l.Pagination) > 0 {
		doc["pagination"] = l.Pagination
	}
	putBoolPtr(doc, "dense", l.Dense)
	putBoolPtr(doc, "show_dividers", l.ShowDividers)
	putBoolPtr(doc, "show_avatar", l.ShowAvatar)
	putBoolPtr(doc, "show_meta", l.ShowMeta)
	putIntPtr(doc, "max_items", l.MaxItems)
	if len(l.SlidesPerView) > 0 {
		doc["slides_per_view"] = anyMapFromInts(l.SlidesPerView)
	}
	putString(doc, "spacing", l.Spacing)
	putBoolPtr(doc, "loop", l.Loop)
	if len(l.Autoplay) > 0 {
		doc["autoplay"] = l.Autoplay
	}
	if len(l.Controls) > 0 {
		doc["controls"] = l.Controls
	}
	putString(doc, "snap_align", l.SnapAlign)
	putString(doc, "max_width", l.MaxWidth)
	return doc
}

func (b AudioPlayerBlock) encode() map[string]any {
	doc := map[string]any{
		"type": TypeAudioPlayer,
		"src":  b.Src,
	}
	putString(doc, "title", b.Title)
	putString(doc, "artist", b.Artist)
	putString(doc, "artwork", b.Artwork)
	if b.Visualizer != nil {
		viz := map[string]any{
			"type": b.Visualizer.Type,
			"id":   b.Visualizer.ID,
		}
		if len(b.Visualizer.Options) > 0 {
			viz["options"] = b.Visualizer.Options
		}
		doc["visualizer"] = viz
	}
	return doc
}

func (b UnknownBlock) encode() map[string]any {
	doc := make(map[string]any, len(b.Fields)+1)
	for k, v := range b.Fields {
		doc[k] = v
	}
	doc["type"] = b.Tag
	return doc
}

// =============================================================================
// Value Helpers
// =============================================================================

// stringVal returns v as a string, or "" for nil and non-strings.
func stringVal(v any) string {
	s, _ := v.(string)
	return s
}

// stringOr returns v as a string, or fallback when v is absent or empty.
func stringOr(v any, fallback string) string {
	if s := stringVal(v); s != "" {
		return s
	}
	return fallback
}

func boolVal(v any) bool {
	b, _ := v.(bool)
	return b
}

func boolPtrVal(v any) *bool {
	if b, ok := v.(bool); ok {
		return &b
	}
	return nil
}

// intVal returns v as an int, accepting the numeric shapes produced by both
// in-memory construction and JSON decoding. Returns 0 for anything else.
func intVal(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	}
	return 0
}

func intPtrVal(v any) *int {
	switch v.(type) {
	case int, int64, float64, json.Number:
		n := intVal(v)
		return &n
	}
	return nil
}

func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func anySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func anyMapVal(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func stringMapVal(v any) map[string]string {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, item := range raw {
		if s, ok := item.(string); ok {
			out[k] = s
		}
	}
	return out
}

func intMapVal(v any) map[string]int {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]int, len(raw))
	for k, item := range raw {
		out[k] = intVal(item)
	}
	return out
}

func anyMapFromStrings(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func anyMapFromInts(m map[string]int) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func putString(doc map[string]any, key, value string) {
	if value != "" {
		doc[key] = value
	}
}

func putIntPtr(doc map[string]any, key string, value *int) {
	if value != nil {
		doc[key] = *value
	}
}

func putBoolPtr(doc map[string]any, key string, value *bool) {
	if value != nil {
		doc[key] = *value
	}
}
