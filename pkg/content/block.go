package content

// Block type tags used as the wire discriminant.
const (
	TypeHero        = "hero"
	TypeSection     = "section"
	TypeMarkdown    = "markdown"
	TypeSubpage     = "subpage"
	TypeCollection  = "collection"
	TypeAudioPlayer = "audio_player"
)

// Collection source types. Only SourceFolder has resolution logic; the
// others are accepted syntactically and resolve to an empty candidate set.
const (
	SourceFolder      = "folder"
	SourceMediaFolder = "media_folder"
	SourceRoster      = "roster"
	SourceTag         = "tag"
	SourceQuery       = "query"
)

// Collection layout modes.
const (
	LayoutGrid     = "grid"
	LayoutList     = "list"
	LayoutCarousel = "carousel"
)

// Collection paging modes.
const (
	PagingLoadMore = "load_more"
	PagingPages    = "pages"
)

// Block is one renderable content unit attached to a node. It is a closed
// union: the encode method is unexported, so only the variants declared in
// this package implement the interface. Decoding dispatches on the type tag
// and degrades unrecognized tags to [UnknownBlock] rather than failing.
type Block interface {
	// BlockType returns the wire discriminant ("hero", "section", ...).
	BlockType() string

	// encode renders the block as a transport-neutral map. Unexported to
	// seal the union; use EncodeBlock for the public entry point.
	encode() map[string]any
}

// SigilConfig describes the visual sigil on a hero block: either a
// registered generative sketch or a static image. The options bag is opaque
// to this package and passed through to the presentation layer.
type SigilConfig struct {
	Type    string         // "p5" or "image"
	ID      string         // registered sigil ID for generative sigils
	Src     string         // image path for static sigils
	Alt     string         // accessibility alt text
	Options map[string]any // seed, variant, etc.
}

// HeroBlock is the full-width page opener.
type HeroBlock struct {
	Heading    string
	Subheading string
	Body       string
	CTA        map[string]string // { "label": ..., "target": ... }
	Sigil      *SigilConfig
	Background string // background image path
}

func (HeroBlock) BlockType() string { return TypeHero }

// SectionBlock groups an ordered list of child blocks. It is the only
// recursive variant; children decode through the same dispatcher.
type SectionBlock struct {
	ID     string
	Label  string
	Blocks []Block
	Align  string
}

func (SectionBlock) BlockType() string { return TypeSection }

// MarkdownBlock carries a raw markdown body.
type MarkdownBlock struct {
	Body string
}

func (MarkdownBlock) BlockType() string { return TypeMarkdown }

// SubpageBlock links to another node. When Nav is set the link also feeds
// navigation building (see Ops.Nav). The presentation fields are opaque
// styling hints for the frontend link component.
type SubpageBlock struct {
	Ref   string // target node path
	Label string
	Title string
	Badge string
	Nav   bool // include in auto-built navigation

	Align      string
	Size       string
	Weight     string
	Decoration string
	Transform  string
	Font       string
	Icon       string
}

func (SubpageBlock) BlockType() string { return TypeSubpage }

// CollectionLayout configures how resolved collection items are presented.
// It is a superset across the three modes; fields not relevant to the active
// mode are inert but still round-trip.
//
//   - grid:     Columns, Gap, Align, MaxRows, Pagination
//   - list:     Dense, ShowDividers, ShowAvatar, ShowMeta, MaxItems
//   - carousel: SlidesPerView, Spacing, Loop, Autoplay, Controls, SnapAlign, MaxWidth
type CollectionLayout struct {
	Mode string

	Columns    map[string]int    // { "xl": 5, "lg": 4, ... }
	Gap        map[string]string // { "row": "1.5rem", "column": "1.5rem" }
	Align      map[string]string // { "horizontal": "stretch", "vertical": "start" }
	MaxRows    *int
	Pagination map[string]any

	Dense        *bool
	ShowDividers *bool
	ShowAvatar   *bool
	ShowMeta     *bool
	MaxItems     *int

	SlidesPerView map[string]int
	Spacing       string
	Loop          *bool
	Autoplay      map[string]any // { "enabled": true, "interval_ms": 8000, ... }
	Controls      map[string]any // { "arrows": true, "dots": true }
	SnapAlign     string         // "start" | "center"
	MaxWidth      string         // e.g. "100%", "1200px"
}

// CollectionPaging configures how many items go into the initial payload
// and how the frontend requests more.
type CollectionPaging struct {
	Enabled  bool
	PageSize *int   // items per page; nil means "all"
	Mode     string // "load_more" | "pages"
}

// CollectionMedia configures playback for audio/video collections. The
// player and visualizer bags are consumed by the presentation layer only.
type CollectionMedia struct {
	Type       string // "audio" | "video"
	Player     map[string]any
	Visualizer map[string]any
}

// CollectionThumbnail configures card thumbnails, either static or
// generated from a seed image.
type CollectionThumbnail struct {
	Type      string // "generative_from_seed" | "static"
	SeedImage string
	Style     map[string]any // { pattern, colorMode, blendSeed, blendMode }
	SeedFrom  string         // "filename", "title", ...
}

// CollectionBlock declares a dynamically resolved list of child-node
// summaries. Resolution (discovery → sort → limit → paginate → projection)
// happens at hydration time; see Resolver.
type CollectionBlock struct {
	Source  string // where the items come from
	Path    string // base path for folder sources
	Pattern string // file pattern for media_folder sources

	Layout    *CollectionLayout
	Card      string // card component hint, e.g. "artist"
	Media     *CollectionMedia
	Thumbnail *CollectionThumbnail

	Sort        string // "name_asc", "name_desc", "random"
	SortOptions []map[string]string
	Limit       int // hard cap after sorting; 0 means no cap
	Filters     map[string]any

	Paging     *CollectionPaging
	EmptyState map[string]string // { "heading": ..., "body": ... }
}

func (CollectionBlock) BlockType() string { return TypeCollection }

// VisualizerConfig selects a registered audio visualizer sketch. Options are
// opaque (sensitivity, bar count, mirror mode, ...).
type VisualizerConfig struct {
	Type    string // "p5"
	ID      string // registered visualizer ID, e.g. "spectrum-bars"
	Options map[string]any
}

// AudioPlayerBlock embeds a playable track with an optional visualizer.
type AudioPlayerBlock struct {
	Src        string // audio file path
	Title      string
	Artist     string
	Artwork    string // cover art path
	Visualizer *VisualizerConfig
}

func (AudioPlayerBlock) BlockType() string { return TypeAudioPlayer }

// UnknownBlock is the decode fallback for unrecognized type tags. It keeps
// the raw fields so documents written by a newer builder survive a round
// trip through an older resolver. Hydration passes it through unchanged.
type UnknownBlock struct {
	Tag    string         // the unrecognized type tag
	Fields map[string]any // raw fields, excluding "type"
}

func (b UnknownBlock) BlockType() string { return b.Tag }
