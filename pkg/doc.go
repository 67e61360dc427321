// Package pkg provides the core libraries for the artistnode content engine.
//
// # Overview
//
// Artistnode resolves a file-driven musician website into servable JSON
// payloads: a tree of content nodes with theme inheritance, typed content
// blocks, folder-backed collections, and declared navigation. The pkg
// directory is organized into four areas:
//
//  1. [content] - Domain logic (graph, blocks, resolution, codec)
//  2. [store] - Snapshot storage backends (memory, file, Redis, MongoDB)
//  3. [render/sitemap] - Content tree visualization via Graphviz
//  4. [buildinfo] - Build-time version information
//
// # Architecture
//
// The typical data flow through artistnode:
//
//	Graph document (JSON)
//	         ↓
//	    [content] package (decode, register, resolve)
//	         ↓
//	    page / collection / nav payloads
//	         ↓
//	    HTTP API or CLI output
//
// # Quick Start
//
// Load a graph and resolve a page:
//
//	import "github.com/chdigius/awake.fm-artist-server-sub000/pkg/content"
//
//	g, _ := content.ReadGraphFile("graph.json")
//	ops := content.NewOps(g, nav)
//
//	payload := ops.Page("artists/zol")
//	collection := ops.Collection(content.Query{Path: "artists", Page: 2})
//
// # Main Packages
//
// [content] - The content graph and everything that runs on it: node
// registration, nearest-ancestor theme resolution, collection discovery
// with sorting and pagination, recursive block hydration, and the JSON
// codec for the discriminated block union.
//
// [store] - Published graph snapshots keyed by site. Memory and file
// backends for development and single instances, Redis and MongoDB for
// multi-instance deployments.
//
// [render/sitemap] - Renders the node hierarchy and collection discovery
// edges as a Graphviz site map.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/content/...     # Specific package
//
// [content]: https://pkg.go.dev/github.com/chdigius/awake.fm-artist-server-sub000/pkg/content
// [store]: https://pkg.go.dev/github.com/chdigius/awake.fm-artist-server-sub000/pkg/store
// [render/sitemap]: https://pkg.go.dev/github.com/chdigius/awake.fm-artist-server-sub000/pkg/render/sitemap
// [buildinfo]: https://pkg.go.dev/github.com/chdigius/awake.fm-artist-server-sub000/pkg/buildinfo
package pkg
