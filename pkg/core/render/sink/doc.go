// Package sink encodes a [render.Scene] into output formats.
//
// # Overview
//
// A "sink" turns the format independent scene geometry into bytes:
//
//   - SVG: vector output written with github.com/ajstarks/svgo
//   - PNG: raster output drawn natively with github.com/fogleman/gg
//   - PDF: print-ready output (SVG converted by rsvg-convert)
//   - JSON: the placements of every state and its label
//
// Basic usage:
//
//	svg := sink.RenderSVG(scene, sink.WithFontFamily("serif"))
//	png, err := sink.RenderPNG(scene, 2.0)
//	pdf, err := sink.RenderPDF(ctx, scene)
//	js, err := sink.RenderJSON(scene, sink.WithResult(res))
//
// # Colours
//
// Colours are CSS-style: "#rgb", "#rrggbb" or an SVG colour name. SVG output
// passes them through; the PNG sink resolves them with [ParseColor] and fails
// with INVALID_COLOR on names it does not know.
package sink
