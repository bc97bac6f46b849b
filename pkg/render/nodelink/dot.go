package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/railsheet/pkg/network"
	"github.com/matzehuels/railsheet/pkg/render"
)

// uncolored is the stroke used for edges whose style embeds no color.
const uncolored = "#888888"

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the external id and station type to every label.
	// When false, only the display name is shown.
	Detailed bool

	// Geographic pins every station at its map coordinates and lays the
	// diagram out with neato. When false, Graphviz places stations freely.
	Geographic bool

	// Scale converts map units to points in geographic mode.
	// Zero selects 1.
	Scale float64
}

// ToDOT converts a network graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Edges are drawn without arrowheads in their line color. Hidden edges are
// dashed.
func ToDOT(g *network.Graph, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Geographic {
		buf.WriteString("  layout=neato;\n")
		buf.WriteString("  overlap=true;\n")
	} else {
		buf.WriteString("  rankdir=LR;\n")
	}
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.2, fixedsize=false];\n")
	buf.WriteString("  edge [dir=none, penwidth=4];\n")
	buf.WriteString("\n")

	stations := g.Stations()
	for _, s := range stations {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(s, opts.Detailed))}
		if opts.Geographic {
			// SVG y grows downwards, Graphviz y grows upwards.
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtNum(s.X*scale), fmtNum(-s.Y*scale)))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", s.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", stations[e.From].ID, stations[e.To].ID, strings.Join(fmtEdgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(s network.Station, detailed bool) string {
	name := s.Names[1]
	if name == "" {
		name = s.ExternalID()
	}
	if !detailed {
		return name
	}
	return fmt.Sprintf("%s\nid: %s\ntype: %s", name, s.ExternalID(), s.Type)
}

func fmtEdgeAttrs(e network.Edge) []string {
	color := e.StyleAttrs.Hex()
	if color == "" {
		color = uncolored
	}
	attrs := []string{fmt.Sprintf("color=%q", color)}
	if e.Reconcile != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", e.Reconcile))
	}
	if !e.Visible {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

func fmtNum(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Pass the same Options used for [ToDOT] so geographic diagrams are laid out
// with neato. Returns the SVG bytes ready for display or further conversion
// with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	if opts.Geographic {
		gv.SetLayout(graphviz.NEATO)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string, opts Options) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, opts)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, opts Options, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, opts)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
