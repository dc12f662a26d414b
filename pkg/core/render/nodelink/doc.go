// Package nodelink draws the link structure of a diagram as a Graphviz graph.
//
// Each state becomes a node and each links-to relation a dashed edge. States
// of the same column share a rank, so the columns read left to right:
//
//	Diagram -> ToDOT() -> DOT -> RenderSVG() -> SVG
//
// The DOT text is also useful on its own, for example to check which states a
// large diagram connects before rendering the energy-level view.
//
// # Usage
//
//	dot := nodelink.ToDOT(d, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// RenderPDF and RenderPNG convert the SVG with rsvg-convert.
package nodelink
