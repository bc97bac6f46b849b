// Package render provides format conversion for rendered diagrams.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The [nodelink] subpackage
// uses them for its PDF and PNG output. Without rsvg-convert on PATH both
// return an UNSUPPORTED error; check [Available] first to degrade quietly.
//
//	svg, err := nodelink.RenderSVG(ctx, dot, opts)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2)  // 2x scale
//
// [nodelink]: github.com/matzehuels/railsheet/pkg/render/nodelink
package render
