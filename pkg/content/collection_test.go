package content

import (
	"fmt"
	"reflect"
	"sort"
	"testing"
)

// rosterGraph builds a graph with n children under "artists", titled
// "Artist 01".."Artist n" so name sorts are predictable.
func rosterGraph(t *testing.T, n int) *Graph {
	t.Helper()
	g := NewGraph("server", "")
	for i := 1; i <= n; i++ {
		path := fmt.Sprintf("artists/a%02d", i)
		mustRegister(t, g, &ContentNode{
			Meta:    NodeMeta{Path: path, ParentPath: "artists", Layout: "artist"},
			Preview: &NodePreview{Title: fmt.Sprintf("Artist %02d", i)},
		})
	}
	return g
}

func itemPaths(payload map[string]any) []string {
	items := payload["items"].([]any)
	out := make([]string, len(items))
	for i, raw := range items {
		out[i] = raw.(map[string]any)["path"].(string)
	}
	return out
}

func TestFolderCandidatesDirectChildrenOnly(t *testing.T) {
	g := NewGraph("server", "")
	mustRegister(t, g, &ContentNode{Meta: NodeMeta{Path: "artists/zol", ParentPath: "artists"}})
	mustRegister(t, g, &ContentNode{Meta: NodeMeta{Path: "artists/zol/tracks", ParentPath: "artists/zol"}})
	mustRegister(t, g, &ContentNode{Meta: NodeMeta{Path: "artists/rom", ParentPath: "artists"}})

	got := NewResolver(g).folderCandidates("artists")
	want := []string{"artists/zol", "artists/rom"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("candidates = %v, want direct children %v", got, want)
	}
}

func TestFolderCandidatesSparseIndexFallback(t *testing.T) {
	// Children registered without parent paths: the index has no "artists"
	// key, so discovery must fall back to the prefix scan.
	g := NewGraph("server", "")
	mustRegister(t, g, &ContentNode{Meta: NodeMeta{Path: "artists/zol"}})
	mustRegister(t, g, &ContentNode{Meta: NodeMeta{Path: "artists/rom"}})
	mustRegister(t, g, &ContentNode{Meta: NodeMeta{Path: "artists/zol/tracks"}})
	mustRegister(t, g, &ContentNode{Meta: NodeMeta{Path: "artistsother"}})

	got := NewResolver(g).folderCandidates("artists")
	want := []string{"artists/rom", "artists/zol"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fallback candidates = %v, want %v", got, want)
	}
}

func TestApplySortStability(t *testing.T) {
	g := NewGraph("server", "")
	mustRegister(t, g, &ContentNode{
		Meta:    NodeMeta{Path: "artists/first", ParentPath: "artists"},
		Preview: &NodePreview{Title: "Echo"},
	})
	mustRegister(t, g, &ContentNode{
		Meta:    NodeMeta{Path: "artists/second", ParentPath: "artists"},
		Preview: &NodePreview{Title: "ECHO"}, // same title, case-insensitively
	})
	mustRegister(t, g, &ContentNode{
		Meta:    NodeMeta{Path: "artists/third", ParentPath: "artists"},
		Preview: &NodePreview{Title: "Alpha"},
	})

	r := NewResolver(g)
	discovered := []string{"artists/first", "artists/second", "artists/third"}
	got := r.applySort(discovered, SortNameAsc, "artists")

	// Ties keep discovery order: first before second.
	want := []string{"artists/third", "artists/first", "artists/second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sorted = %v, want %v", got, want)
	}
}

func TestApplySortTitleFallbacks(t *testing.T) {
	g := NewGraph("server", "")
	mustRegister(t, g, &ContentNode{
		Meta:    NodeMeta{Path: "artists/a", ParentPath: "artists"},
		Preview: &NodePreview{Title: "Zeta"}, // preview title wins
		Title:   "Aardvark",
	})
	mustRegister(t, g, &ContentNode{
		Meta:  NodeMeta{Path: "artists/b", ParentPath: "artists"},
		Title: "Beta", // node title when no preview
	})
	// artists/c is unregistered: raw path is the sort key.

	r := NewResolver(g)
	got := r.applySort([]string{"artists/a", "artists/b", "artists/c"}, SortNameAsc, "artists")
	want := []string{"artists/b", "artists/c", "artists/a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sorted = %v, want %v", got, want)
	}
}

func TestApplySortCollectionOrder(t *testing.T) {
	g := NewGraph("server", "")
	mustRegister(t, g, &ContentNode{
		Meta: NodeMeta{Path: "artists", CollectionOrder: []string{"rom", "zol"}},
	})
	for _, slug := range []string{"dissolvr", "zol", "rom"} {
		mustRegister(t, g, &ContentNode{
			Meta: NodeMeta{Path: "artists/" + slug, ParentPath: "artists"},
		})
	}

	r := NewResolver(g)

	// No explicit sort: the base node's declared order wins, unlisted
	// items trail alphabetically.
	got := r.applySort(g.Children("artists"), "", "artists")
	want := []string{"artists/rom", "artists/zol", "artists/dissolvr"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("collection_order sort = %v, want %v", got, want)
	}

	// An explicit sort value overrides the declared order.
	got = r.applySort(g.Children("artists"), SortNameAsc, "artists")
	want = []string{"artists/dissolvr", "artists/rom", "artists/zol"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("explicit sort = %v, want %v", got, want)
	}
}

func TestApplySortRandomKeepsSet(t *testing.T) {
	g := rosterGraph(t, 10)
	r := NewResolver(g)
	discovered := r.folderCandidates("artists")

	shuffled := r.applySort(discovered, SortRandom, "artists")
	if len(shuffled) != len(discovered) {
		t.Fatalf("shuffle changed length: %d != %d", len(shuffled), len(discovered))
	}

	// Only set-equality is guaranteed; never assert order.
	a := append([]string(nil), discovered...)
	b := append([]string(nil), shuffled...)
	sort.Strings(a)
	sort.Strings(b)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("shuffle changed the candidate set: %v vs %v", a, b)
	}
}

func TestResolvePaginationArithmetic(t *testing.T) {
	g := rosterGraph(t, 25)
	r := NewResolver(g)

	tests := []struct {
		page      int
		wantItems int
		wantMore  bool
	}{
		{1, 10, true},
		{2, 10, true},
		{3, 5, false},
	}

	for _, tc := range tests {
		payload := r.Resolve(Query{Path: "artists", Page: tc.page, PageSize: 10})
		paging := payload["paging"].(map[string]any)

		if paging["total_items"] != 25 {
			t.Errorf("page %d: total_items = %v, want 25", tc.page, paging["total_items"])
		}
		if paging["total_pages"] != 3 {
			t.Errorf("page %d: total_pages = %v, want 3", tc.page, paging["total_pages"])
		}
		if got := len(payload["items"].([]any)); got != tc.wantItems {
			t.Errorf("page %d: %d items, want %d", tc.page, got, tc.wantItems)
		}
		if paging["has_more"] != tc.wantMore {
			t.Errorf("page %d: has_more = %v, want %v", tc.page, paging["has_more"], tc.wantMore)
		}
	}
}

func TestResolvePageSizeCoversAll(t *testing.T) {
	g := rosterGraph(t, 7)
	r := NewResolver(g)

	payload := r.Resolve(Query{Path: "artists", Page: 1, PageSize: 50})
	paging := payload["paging"].(map[string]any)
	if paging["total_pages"] != 1 {
		t.Errorf("total_pages = %v, want 1", paging["total_pages"])
	}
	if paging["has_more"] != false {
		t.Errorf("has_more = %v, want false", paging["has_more"])
	}
	if got := len(payload["items"].([]any)); got != 7 {
		t.Errorf("%d items, want 7", got)
	}
}

func TestResolveClampsInputs(t *testing.T) {
	g := rosterGraph(t, 3)
	r := NewResolver(g)

	payload := r.Resolve(Query{Path: "artists", Page: -4})
	paging := payload["paging"].(map[string]any)
	if paging["page"] != 1 {
		t.Errorf("page = %v, want clamped 1", paging["page"])
	}
	if paging["page_size"] != DefaultPageSize {
		t.Errorf("page_size = %v, want default %d", paging["page_size"], DefaultPageSize)
	}

	payload = r.Resolve(Query{Path: "artists", PageSize: -1})
	paging = payload["paging"].(map[string]any)
	if paging["page_size"] != 1 {
		t.Errorf("negative page_size = %v, want clamped 1", paging["page_size"])
	}
	if paging["total_pages"] != 3 {
		t.Errorf("total_pages = %v, want 3", paging["total_pages"])
	}
}

func TestResolveLimitWithSort(t *testing.T) {
	g := rosterGraph(t, 10)
	r := NewResolver(g)

	payload := r.Resolve(Query{Path: "artists", Sort: SortNameDesc, Limit: 3, PageSize: 10})

	// The three alphabetically-last titles, in descending order.
	want := []string{"artists/a10", "artists/a09", "artists/a08"}
	if got := itemPaths(payload); !reflect.DeepEqual(got, want) {
		t.Errorf("items = %v, want %v", got, want)
	}
	paging := payload["paging"].(map[string]any)
	if paging["total_items"] != 3 {
		t.Errorf("total_items = %v, want 3 (limit applies before pagination)", paging["total_items"])
	}
}

func TestResolveUnsupportedSource(t *testing.T) {
	g := rosterGraph(t, 4)
	r := NewResolver(g)

	for _, source := range []string{SourceRoster, SourceTag, SourceQuery, SourceMediaFolder} {
		payload := r.Resolve(Query{Source: source, Path: "artists"})
		if got := len(payload["items"].([]any)); got != 0 {
			t.Errorf("source %q resolved %d items, want 0", source, got)
		}
	}
}

func TestResolveEndToEndArtists(t *testing.T) {
	// Graph per the canonical scenario: "artists" has no own content, two
	// children carry preview titles, no custom ordering anywhere.
	g := NewGraph("server", "")
	mustRegister(t, g, &ContentNode{Meta: NodeMeta{Path: "artists"}})
	mustRegister(t, g, &ContentNode{
		Meta:    NodeMeta{Path: "artists/zol", ParentPath: "artists", Layout: "artist"},
		Preview: &NodePreview{Title: "Zol"},
	})
	mustRegister(t, g, &ContentNode{
		Meta:    NodeMeta{Path: "artists/rom_trooper", ParentPath: "artists", Layout: "artist"},
		Preview: &NodePreview{Title: "Rom Trooper"},
	})

	payload := NewResolver(g).Resolve(Query{Source: SourceFolder, Path: "artists"})

	want := []string{"artists/rom_trooper", "artists/zol"}
	if got := itemPaths(payload); !reflect.DeepEqual(got, want) {
		t.Errorf("items = %v, want %v", got, want)
	}
	paging := payload["paging"].(map[string]any)
	if paging["total_items"] != 2 {
		t.Errorf("total_items = %v, want 2", paging["total_items"])
	}
}

func TestHydrateBlockPagingDisabled(t *testing.T) {
	g := rosterGraph(t, 30)
	r := NewResolver(g)

	data := r.hydrateBlock(CollectionBlock{Source: SourceFolder, Path: "artists"}, "server")
	paging := data["paging"].(map[string]any)

	// One page containing everything.
	if paging["enabled"] != false {
		t.Errorf("enabled = %v, want false", paging["enabled"])
	}
	if paging["page_size"] != 30 || paging["total_pages"] != 1 {
		t.Errorf("page_size=%v total_pages=%v, want 30/1", paging["page_size"], paging["total_pages"])
	}
	if paging["has_more"] != false {
		t.Errorf("has_more = %v, want false", paging["has_more"])
	}
	if got := len(data["items"].([]any)); got != 30 {
		t.Errorf("%d items, want all 30", got)
	}
}

func TestHydrateBlockPagingEnabled(t *testing.T) {
	g := rosterGraph(t, 30)
	r := NewResolver(g)

	block := CollectionBlock{
		Source: SourceFolder,
		Path:   "artists",
		Paging: &CollectionPaging{Enabled: true, PageSize: intPtr(12), Mode: PagingPages},
	}
	data := r.hydrateBlock(block, "server")
	paging := data["paging"].(map[string]any)

	if got := len(data["items"].([]any)); got != 12 {
		t.Errorf("%d items on page 1, want 12", got)
	}
	if paging["page"] != 1 || paging["total_pages"] != 3 || paging["has_more"] != true {
		t.Errorf("paging = %v", paging)
	}
	if paging["mode"] != PagingPages {
		t.Errorf("mode = %v, want %q", paging["mode"], PagingPages)
	}
}

func TestHydrateBlockEmptyCollection(t *testing.T) {
	g := NewGraph("server", "")
	r := NewResolver(g)

	data := r.hydrateBlock(CollectionBlock{Source: SourceFolder, Path: "void"}, "server")
	if got := len(data["items"].([]any)); got != 0 {
		t.Errorf("%d items, want 0", got)
	}
	paging := data["paging"].(map[string]any)
	if paging["total_items"] != 0 || paging["total_pages"] != 1 || paging["has_more"] != false {
		t.Errorf("paging = %v", paging)
	}
}

func TestItemPayloadStubForUnregisteredPath(t *testing.T) {
	g := NewGraph("server", "")
	mustRegister(t, g, &ContentNode{Meta: NodeMeta{Path: "artists/zol", ParentPath: "artists"}})
	// The index claims a child that was never registered.
	g.childrenByParent["artists"] = append(g.childrenByParent["artists"], "artists/ghost")

	payload := NewResolver(g).Resolve(Query{Path: "artists", PageSize: 10})
	items := payload["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("%d items, want 2 (stub must not be dropped)", len(items))
	}

	var stub map[string]any
	for _, raw := range items {
		item := raw.(map[string]any)
		if item["path"] == "artists/ghost" {
			stub = item
		}
	}
	if stub == nil {
		t.Fatal("bare-path stub missing from items")
	}
	if len(stub) != 1 {
		t.Errorf("stub carries extra fields: %v", stub)
	}
}

func TestItemPayloadIsLightweight(t *testing.T) {
	g := NewGraph("server", "")
	mustRegister(t, g, &ContentNode{
		Meta:    NodeMeta{Path: "artists/zol", ParentPath: "artists", Layout: "artist", Slug: "zol", DisplayName: "Zol"},
		Preview: &NodePreview{Title: "Zol", Badge: "Artist"},
		Content: []Block{
			HeroBlock{Heading: "Zol"},
			MarkdownBlock{Body: "a very long page body"},
		},
	})

	item := NewResolver(g).itemPayload("artists/zol")
	if _, present := item["blocks"]; present {
		t.Error("item payload must never carry full block content")
	}
	if item["path"] != "artists/zol" || item["layout"] != "artist" || item["slug"] != "zol" {
		t.Errorf("item = %v", item)
	}
	preview := item["preview"].(map[string]any)
	if preview["badge"] != "Artist" {
		t.Errorf("preview = %v", preview)
	}
}
