// Package nodelink renders rail networks as node-link diagrams.
//
// # Overview
//
// This package produces a quick structural view of a [network.Graph] using
// Graphviz: stations are circles, edges are strokes in their line color.
// It is meant for inspecting imports, not for producing finished maps; the
// editor's rendering catalog does that.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	opts := nodelink.Options{Geographic: true}
//	dot := nodelink.ToDOT(g, opts)
//	svg, err := nodelink.RenderSVG(ctx, dot, opts)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot, opts)
//	png, err := nodelink.RenderPNG(ctx, dot, opts, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: labels include the external id and station type
//   - Geographic: stations are pinned at their coordinates (neato layout)
//   - Scale: map units to points in geographic mode
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
