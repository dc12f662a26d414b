package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/energylevels/pkg/core/diagram"
	"github.com/matzehuels/energylevels/pkg/core/render"
	errs "github.com/matzehuels/energylevels/pkg/errors"
)

// Options configures node-link rendering.
type Options struct {
	// Detailed adds the label, energy and column to each node.
	// When false, only the state name is shown.
	Detailed bool
}

// ToDOT converts a diagram to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(d *diagram.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [style=dashed];\n")
	buf.WriteString("\n")

	byColumn := make(map[int][]diagram.State)
	for _, s := range d.States {
		byColumn[s.Column] = append(byColumn[s.Column], s)
	}
	for c := 1; c <= d.Columns(); c++ {
		states := byColumn[c]
		if len(states) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  subgraph column_%d {\n    rank=same;\n", c)
		for _, s := range states {
			fmt.Fprintf(&buf, "    %q [%s];\n", s.Name, strings.Join(fmtAttrs(s, fmtLabel(s, opts.Detailed)), ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, s := range d.States {
		for _, to := range s.LinksTo {
			fmt.Fprintf(&buf, "  %q -> %q;\n", s.Name, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(s diagram.State, detailed bool) string {
	if !detailed {
		return s.Name
	}
	parts := []string{
		"energy: " + render.FormatEnergy(s.Energy),
		fmt.Sprintf("column: %d", s.Column),
	}
	if s.Label != s.Name {
		parts = append([]string{"label: " + s.Label}, parts...)
	}
	return s.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(s diagram.State, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if s.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", s.Color))
	}
	if s.LabelColor != "" {
		attrs = append(attrs, fmt.Sprintf("fontcolor=%q", s.LabelColor))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing starts at the origin.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
