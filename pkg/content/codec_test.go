package content

import (
	"reflect"
	"strings"
	"testing"
)

func intPtr(n int) *int    { return &n }
func boolPtr(b bool) *bool { return &b }

func TestBlockRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		block Block
	}{
		{
			name: "hero",
			block: HeroBlock{
				Heading:    "Welcome",
				Subheading: "to the node",
				Body:       "transmissions from the grid",
				CTA:        map[string]string{"label": "Enter", "target": "#main"},
				Sigil: &SigilConfig{
					Type:    "p5",
					ID:      "node-001",
					Options: map[string]any{"seed": "alpha"},
				},
				Background: "assets/backgrounds/starfield_1.jpg",
			},
		},
		{
			name: "section with nested children",
			block: SectionBlock{
				ID:    "links",
				Label: "Links",
				Blocks: []Block{
					MarkdownBlock{Body: "# hello"},
					SectionBlock{
						ID: "inner",
						Blocks: []Block{
							SubpageBlock{Ref: "artists/zol", Label: "Zol", Nav: true},
						},
					},
				},
			},
		},
		{
			name:  "markdown",
			block: MarkdownBlock{Body: "*static*"},
		},
		{
			name: "subpage",
			block: SubpageBlock{
				Ref:   "server/pages/store",
				Label: "Store",
				Badge: "New",
				Nav:   true,
				Align: "center",
				Font:  "mono",
			},
		},
		{
			name: "collection",
			block: CollectionBlock{
				Source: SourceFolder,
				Path:   "artists",
				Card:   "artist",
				Layout: &CollectionLayout{
					Mode:    LayoutGrid,
					Columns: map[string]int{"xl": 5, "lg": 4},
					Gap:     map[string]string{"row": "1.5rem"},
					Loop:    boolPtr(false),
					MaxRows: intPtr(2),
				},
				Sort:        SortNameAsc,
				SortOptions: []map[string]string{{"key": "name_asc", "label": "Name (A-Z)"}},
				Limit:       12,
				Paging:      &CollectionPaging{Enabled: true, PageSize: intPtr(6), Mode: PagingPages},
				Media:       &CollectionMedia{Type: "audio", Visualizer: map[string]any{"id": "spectrum-bars"}},
				Thumbnail:   &CollectionThumbnail{Type: "static", SeedImage: "seed.png"},
				EmptyState:  map[string]string{"heading": "Nothing here yet"},
			},
		},
		{
			name: "audio player",
			block: AudioPlayerBlock{
				Src:    "artists/zol/music/tracks/audio/atmos_77.mp3",
				Title:  "Atmos 77",
				Artist: "Zol",
				Visualizer: &VisualizerConfig{
					Type:    "p5",
					ID:      "spectrum-bars",
					Options: map[string]any{"barCount": 48},
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeBlock(EncodeBlock(tc.block))
			if !reflect.DeepEqual(got, tc.block) {
				t.Errorf("decode(encode(x)) mismatch\n got: %#v\nwant: %#v", got, tc.block)
			}
		})
	}
}

func TestDecodeBlockUnknownTag(t *testing.T) {
	raw := map[string]any{
		"type":   "hologram",
		"source": "future-builder",
		"depth":  3,
	}

	block := DecodeBlock(raw)
	unknown, ok := block.(UnknownBlock)
	if !ok {
		t.Fatalf("expected UnknownBlock, got %T", block)
	}
	if unknown.Tag != "hologram" {
		t.Errorf("Tag = %q, want hologram", unknown.Tag)
	}
	if unknown.Fields["source"] != "future-builder" {
		t.Errorf("Fields not preserved: %#v", unknown.Fields)
	}

	// Unknown blocks re-encode with their original tag so a round trip
	// through an older resolver does not lose newer content.
	encoded := EncodeBlock(block)
	if encoded["type"] != "hologram" {
		t.Errorf("re-encoded type = %v, want hologram", encoded["type"])
	}
	if encoded["depth"] != 3 {
		t.Errorf("re-encoded depth = %v, want 3", encoded["depth"])
	}
}

func TestDecodeBlockDepthGuard(t *testing.T) {
	// Build a section chain deeper than the guard allows.
	depth := maxBlockDepth + 8
	doc := map[string]any{"type": TypeMarkdown, "body": "leaf"}
	for i := 0; i < depth; i++ {
		doc = map[string]any{"type": TypeSection, "blocks": []any{doc}}
	}

	block := DecodeBlock(doc)

	// Walking the decoded chain must terminate: at the guard depth the
	// remaining subtree decodes as a single inert fallback block.
	steps := 0
	for {
		section, ok := block.(SectionBlock)
		if !ok {
			break
		}
		if len(section.Blocks) != 1 {
			t.Fatalf("section at depth %d has %d children", steps, len(section.Blocks))
		}
		block = section.Blocks[0]
		steps++
		if steps > depth {
			t.Fatal("decoded chain longer than input")
		}
	}
	if steps > maxBlockDepth {
		t.Errorf("decoded %d nested sections, guard is %d", steps, maxBlockDepth)
	}
	if _, ok := block.(UnknownBlock); !ok {
		t.Errorf("expected UnknownBlock past the guard, got %T", block)
	}
}

func TestNodeRoundTrip(t *testing.T) {
	node := &ContentNode{
		Meta: NodeMeta{
			Path:            "artists/zol",
			ParentPath:      "artists",
			Layout:          "artist",
			Slug:            "zol",
			DisplayName:     "Zol",
			Theme:           "vapor",
			Effects:         []string{"crt", "glow"},
			CollectionOrder: []string{"albums", "sets"},
			Extra:           map[string]any{"status": "active"},
		},
		Title:      "Zol",
		Tagline:    "signal in the noise",
		Background: "assets/zol_bg.jpg",
		Preview: &NodePreview{
			Title: "Zol",
			Badge: "Artist",
			Blurb: "drum & bass from the deep",
		},
		Content: []Block{
			HeroBlock{Heading: "Zol"},
			SectionBlock{ID: "music", Blocks: []Block{
				AudioPlayerBlock{Src: "a.mp3"},
			}},
		},
	}

	got := DecodeNode(EncodeNode(node))
	if !reflect.DeepEqual(got, node) {
		t.Errorf("decode(encode(node)) mismatch\n got: %#v\nwant: %#v", got, node)
	}
}

func TestGraphRoundTripThroughJSON(t *testing.T) {
	g := NewGraph("server", "dark")
	mustRegister(t, g, &ContentNode{
		Meta:  NodeMeta{Path: "server", Layout: "server"},
		Title: "awake.fm",
		Content: []Block{
			HeroBlock{Heading: "awake.fm"},
			CollectionBlock{Source: SourceFolder, Path: "artists"},
		},
	})
	mustRegister(t, g, &ContentNode{
		Meta:    NodeMeta{Path: "artists/zol", ParentPath: "artists", Layout: "artist", Theme: "vapor"},
		Preview: &NodePreview{Title: "Zol"},
	})

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}

	loaded, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}

	if loaded.RootPath() != "server" || loaded.RootTheme() != "dark" {
		t.Errorf("root fields = (%q, %q), want (server, dark)", loaded.RootPath(), loaded.RootTheme())
	}
	if loaded.NodeCount() != 2 {
		t.Fatalf("NodeCount = %d, want 2", loaded.NodeCount())
	}
	zol := loaded.Node("artists/zol")
	if zol == nil {
		t.Fatal("artists/zol missing after round trip")
	}
	if zol.Meta.ParentPath != "artists" || zol.Meta.Theme != "vapor" {
		t.Errorf("zol meta = %+v", zol.Meta)
	}
	if got := loaded.Children("artists"); !reflect.DeepEqual(got, []string{"artists/zol"}) {
		t.Errorf("Children(artists) = %v after round trip", got)
	}

	server := loaded.Node("server")
	if len(server.Content) != 2 {
		t.Fatalf("server has %d blocks, want 2", len(server.Content))
	}
	if _, ok := server.Content[1].(CollectionBlock); !ok {
		t.Errorf("second block = %T, want CollectionBlock", server.Content[1])
	}
}

func TestUnmarshalGraphMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", "{nope"},
		{"missing root_path", `{"nodes": {}}`},
		{"nodes wrong type", `{"root_path": "server", "nodes": []}`},
		{"node wrong type", `{"root_path": "server", "nodes": {"a": 7}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := UnmarshalGraph([]byte(tc.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDecodeGraphSparseParentIndex(t *testing.T) {
	// A persisted parent_index replaces the derived one, even when it is
	// deliberately sparse.
	data := `{
		"root_path": "server",
		"nodes": {
			"artists/zol": {"path": "artists/zol", "descriptor": {"parent": "artists", "layout": "artist"}},
			"artists/rom": {"path": "artists/rom", "descriptor": {"parent": "artists", "layout": "artist"}}
		},
		"parent_index": {}
	}`

	g, err := ReadGraph(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if got := g.Children("artists"); len(got) != 0 {
		t.Errorf("Children(artists) = %v, want empty per persisted index", got)
	}

	// Discovery still works through the prefix-scan fallback.
	resolver := NewResolver(g)
	got := resolver.folderCandidates("artists")
	want := []string{"artists/rom", "artists/zol"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("folderCandidates = %v, want %v", got, want)
	}
}

func mustRegister(t *testing.T, g *Graph, n *ContentNode) {
	t.Helper()
	if err := g.Register(n); err != nil {
		t.Fatalf("Register(%s): %v", n.Meta.Path, err)
	}
}
