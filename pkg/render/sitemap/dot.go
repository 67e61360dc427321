// Package sitemap renders a content graph as a node-link site map.
//
// The tree of parent/child relationships is converted to Graphviz DOT and
// rendered to SVG. Collection blocks are drawn as dashed edges from the
// owning node to the collection base path, so the discovery structure is
// visible alongside the declared hierarchy.
package sitemap

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/chdigius/awake.fm-artist-server-sub000/pkg/content"
)

// Options configures site map rendering.
type Options struct {
	// Detailed includes layout and theme in node labels.
	// When false, only the node path is shown.
	Detailed bool
}

// ToDOT converts a content graph to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(g *content.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, path := range g.Paths() {
		node := g.Node(path)
		label := fmtLabel(g, node, opts.Detailed)
		attrs := fmtAttrs(g, node, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", path, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, path := range g.Paths() {
		node := g.Node(path)
		if parent := node.Meta.ParentPath; parent != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", parent, path)
		}
		for _, base := range collectionBases(node.Content) {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=grey];\n", path, base)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *content.Graph, n *content.ContentNode, detailed bool) string {
	if !detailed {
		return n.Meta.Path
	}

	parts := []string{}
	if n.Meta.Layout != "" {
		parts = append(parts, "layout: "+n.Meta.Layout)
	}
	parts = append(parts, "theme: "+g.ResolveTheme(n.Meta.Path))
	return n.Meta.Path + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(g *content.Graph, n *content.ContentNode, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Meta.Path == g.RootPath() {
		attrs = append(attrs, "fillcolor=lightblue")
	}
	return attrs
}

// collectionBases lists the folder-collection base paths declared by a
// node's blocks, descending into sections.
func collectionBases(blocks []content.Block) []string {
	var out []string
	for _, block := range blocks {
		switch b := block.(type) {
		case content.CollectionBlock:
			if b.Source == content.SourceFolder && b.Path != "" {
				out = append(out, strings.Trim(b.Path, "/"))
			}
		case content.SectionBlock:
			out = append(out, collectionBases(b.Blocks)...)
		}
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	gv := graphviz.New()
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg element so the view box starts at the
// origin, which keeps embedded rendering predictable across viewers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
