// Package content implements the artist-server content graph: an in-memory
// tree of content nodes compiled by the site builder, plus the resolution
// algorithms that turn it into API-ready payloads.
//
// # Architecture
//
// The package is organized around a few cooperating pieces:
//
//   - Block and its variants (hero, section, markdown, subpage, collection,
//     audio player) model the renderable units attached to a node. Section is
//     the only recursive variant. Unrecognized block documents decode to
//     UnknownBlock so that payloads written by a newer builder stay loadable.
//   - ContentNode couples one NodeMeta descriptor with an ordered block list
//     and optional preview data used when the node appears as a card.
//   - Graph owns the node set keyed by path, a derived parent→children index,
//     and graph-wide fallbacks (root path, root theme). Registration is
//     append-only; after loading, the graph is read-only and safe for any
//     number of concurrent readers.
//   - Resolver discovers, sorts, limits, and paginates collection candidates
//     and projects them to lightweight item summaries.
//   - Ops layers navigation building and the request-facing entry points
//     (page payloads, standalone collection queries) on top of a Graph.
//
// # Document Format
//
// The whole graph round-trips through a single transport-neutral document:
//
//	{
//	  "root_path": "server",
//	  "root_theme": "dark",
//	  "nodes": { "<path>": { "path", "descriptor", "blocks", ... } },
//	  "parent_index": { "<path>": ["<path>", ...] }
//	}
//
// Use [UnmarshalGraph], [ReadGraph], or [ReadGraphFile] to load a graph and
// [MarshalGraph], [WriteGraph], or [WriteGraphFile] to persist one. This is
// the only wire format the package owns; HTTP transport lives elsewhere.
//
// # Resolution Semantics
//
// Theme resolution walks ancestor paths with nearest-ancestor-wins semantics,
// tolerating sparse trees where intermediate folders were never registered as
// real nodes. Collection resolution supports the "folder" source (direct
// children of a base path) with a three-tier sort priority: an explicit sort
// value, the parent node's declared ordering, then case-insensitive name
// ascending. Effects do not cascade: each node's effects list is served
// exactly as declared.
package content
