package sink

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/energylevels/pkg/core/render"
)

const defaultFontFamily = "serif"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fontFamily string
	background string
	title      string
}

// WithFontFamily sets the CSS font family of all text.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// WithBackground fills the canvas before drawing. The default is transparent.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG draws the scene as an SVG document.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: defaultFontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(px(s.Width), px(s.Height))
	if r.title != "" {
		canvas.Title(r.title)
	}
	if r.background != "" {
		canvas.Rect(0, 0, px(s.Width), px(s.Height), "fill:"+r.background)
	}

	canvas.Gid("axis")
	drawLines(canvas, s.AxisLines)
	drawTexts(canvas, s.AxisText, r.fontFamily, s.FontSize)
	canvas.Gend()

	canvas.Gid("links")
	drawLines(canvas, s.Links)
	canvas.Gend()

	canvas.Gid("levels")
	drawLines(canvas, s.Bars)
	drawLines(canvas, s.Connectors)
	canvas.Gend()

	canvas.Gid("labels")
	drawTexts(canvas, s.Energies, r.fontFamily, s.FontSize)
	drawTexts(canvas, s.Labels, r.fontFamily, s.FontSize)
	canvas.Gend()

	if len(s.Legend) > 0 {
		canvas.Gid("legend")
		for _, e := range s.Legend {
			drawLines(canvas, []render.Line{e.Swatch})
			drawTexts(canvas, []render.Text{e.Text}, r.fontFamily, s.FontSize)
		}
		canvas.Gend()
	}

	canvas.End()
	return buf.Bytes()
}

func drawLines(canvas *svg.SVG, lines []render.Line) {
	for _, l := range lines {
		style := fmt.Sprintf("stroke:%s;stroke-width:%g;fill:none", l.Color, l.Stroke)
		if l.Dashed {
			style += fmt.Sprintf(";stroke-dasharray:%g,%g", render.LinkDash[0], render.LinkDash[1])
		}
		canvas.Line(px(l.X1), px(l.Y1), px(l.X2), px(l.Y2), style)
	}
}

func drawTexts(canvas *svg.SVG, texts []render.Text, family string, size float64) {
	for _, t := range texts {
		style := fmt.Sprintf("fill:%s;font-family:%s;font-size:%gpx;text-anchor:%s;dominant-baseline:middle",
			t.Color, family, size, t.Anchor)
		if t.Rotate != 0 {
			canvas.Gtransform(fmt.Sprintf("rotate(%g %d %d)", t.Rotate, px(t.X), px(t.Y)))
			canvas.Text(px(t.X), px(t.Y), t.Text, style)
			canvas.Gend()
			continue
		}
		canvas.Text(px(t.X), px(t.Y), t.Text, style)
	}
}

func px(v float64) int { return int(math.Round(v)) }
