// Package render draws model graphs as Graphviz node-link diagrams.
//
// # Overview
//
// [ToDOT] converts a model into DOT source: one box per model node, an
// arrow from each node to the nodes it owns and, with
// [Options.Projections], one ellipse per projection attached by a dashed
// edge. Projection state is encoded in the style:
//
//   - provided projections not yet realized are dashed
//   - realized projections are filled
//   - finalized projections carry a bold outline
//
// # Usage
//
//	dot := render.ToDOT(m, render.Options{Projections: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// PDF and PNG output go through SVG:
//
//	pdf, err := render.Convert(ctx, svg, render.FormatPDF, 0)
//	png, err := render.Convert(ctx, svg, render.FormatPNG, 2.0) // 2x scale
//
// # Dependencies
//
// SVG rendering runs in-process with [github.com/goccy/go-graphviz]. PDF and
// PNG conversion requires librsvg (rsvg-convert).
package render
