// Package render turns star maps into shareable artifacts. The DOT output
// feeds Graphviz for SVG rendering; the JSON export feeds the admin
// console's D3 frontend directly.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/meridian/starchart/pkg/sector"
	"github.com/meridian/starchart/pkg/starmap"
)

// Options configures map rendering.
type Options struct {
	// Detailed includes hazard level and faction in node labels.
	// When false, only the glyph and sector ID are shown.
	Detailed bool

	// ShowUndiscovered includes sectors no player has visited yet.
	// Admin views want the whole galaxy; player-facing exports do not.
	ShowUndiscovered bool
}

// ToDOT converts a star map to Graphviz DOT format. Node positions come
// from the map's projected coordinates and are pinned, so the neato engine
// preserves the spatial layout instead of inventing one.
//
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(g starmap.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph starmap {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"#0b0e14\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontcolor=white, fontsize=10, fixedsize=true, width=0.5];\n")
	buf.WriteString("  edge [color=\"#3d4654\"];\n")
	buf.WriteString("\n")

	visible := make(map[int]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if !n.Attrs.Discovered && !opts.ShowUndiscovered {
			continue
		}
		visible[n.ID] = true
		attrs := fmtAttrs(n, opts.Detailed)
		fmt.Fprintf(&buf, "  %d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if !visible[e.Source] || !visible[e.Target] {
			continue
		}
		if e.Kind == starmap.EdgeKindLongRange {
			fmt.Fprintf(&buf, "  %d -- %d [style=dashed, color=\"#45b8d6\"];\n", e.Source, e.Target)
		} else {
			fmt.Fprintf(&buf, "  %d -- %d;\n", e.Source, e.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n starmap.Node, detailed bool) []string {
	token := n.Attrs.Type.Visual()
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(n, token, detailed)),
		fmt.Sprintf("fillcolor=%q", token.Color),
		// Graphviz points are 1/72in; the divisor keeps game coordinates
		// from producing meter-wide canvases.
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.X/10, n.Y/10),
	}
	if !n.Attrs.Discovered {
		attrs = append(attrs, "style=\"filled,dashed\"")
	}
	if n.Attrs.HasPort {
		attrs = append(attrs, "penwidth=2", "color=\"#e8d56a\"")
	}
	return attrs
}

func fmtLabel(n starmap.Node, token sector.VisualToken, detailed bool) string {
	label := fmt.Sprintf("%s %d", token.Glyph, n.ID)
	if !detailed {
		return label
	}

	parts := []string{label, fmt.Sprintf("hazard %g", n.Attrs.HazardLevel)}
	if n.Attrs.Faction != "" {
		parts = append(parts, n.Attrs.Faction)
	}
	return strings.Join(parts, "\n")
}
