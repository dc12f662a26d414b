package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/energylevels/pkg/core/diagram"
	"github.com/matzehuels/energylevels/pkg/core/render"
	"github.com/matzehuels/energylevels/pkg/core/render/nodelink"
	"github.com/matzehuels/energylevels/pkg/core/render/sink"
	errs "github.com/matzehuels/energylevels/pkg/errors"
)

// Render generates output artifacts in the requested formats.
// laid is required for the levels view and ignored for the links view.
func Render(ctx context.Context, d *diagram.Diagram, laid *Laid, opts Options) (map[string][]byte, error) {
	if opts.IsLinks() {
		return renderLinks(ctx, d, opts)
	}
	if laid == nil {
		return nil, errs.New(errs.ErrCodeInternal, "levels view rendered without a layout")
	}
	return renderLevels(ctx, d, laid, opts)
}

func renderLevels(ctx context.Context, d *diagram.Diagram, laid *Laid, opts Options) (map[string][]byte, error) {
	scene, err := render.BuildScene(d, laid.Registry, laid.Axis, opts.Frame())
	if err != nil {
		return nil, err
	}

	var svgOpts []sink.SVGOption
	if d.OutputFile != "" {
		svgOpts = append(svgOpts, sink.WithTitle(d.OutputFile))
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(scene, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(scene, opts.Scale)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, scene, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(scene, sink.WithResult(laid.Result), sink.WithWarnings(d.Warnings))
		default:
			return nil, errs.New(errs.ErrCodeUnsupported, "unsupported levels format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderLinks(ctx context.Context, d *diagram.Diagram, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(d, nodelink.Options{Detailed: !opts.HideEnergies})

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatDOT:
			data = []byte(dot)
		default:
			return nil, errs.New(errs.ErrCodeUnsupported, "unsupported links format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
